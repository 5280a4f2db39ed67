// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import "github.com/pkg/errors"

// An EvalFn computes the outputs of a primitive circuit from its inputs.
// in holds the current input values in plug order, out initially holds the
// current output values and must be updated in place.
//
// An EvalFn must be deterministic and must not retain in or out, nor call
// into the Board: it runs while the board is locked.
//
// For example, a NOT gate is:
//
//	func(in, out []bool) { out[0] = !in[0] }
//
type EvalFn func(in, out []bool)

// A PartSpec is the blueprint of a primitive circuit.
//
// A NOT gate can be defined like this:
//
//	not := &logicsim.PartSpec{
//		Name:    "NOT",
//		Inputs:  []string{"I"},
//		Outputs: []string{"O"},
//		Eval:    func(in, out []bool) { out[0] = !in[0] },
//	}
//
// Then placed on a board:
//
//	c, err := board.New(logicsim.TopLevel, not, "")
//
type PartSpec struct {
	// Part name. Also used as the base of default circuit names.
	Name string
	// Display category. Not used by the simulation.
	Category string
	// Input plug names. Must be distinct.
	Inputs []string
	// Output plug names. Must be distinct.
	Outputs []string
	// Variadic parts accept inputs to be added or removed after placement.
	// Eval must then handle any number of inputs.
	Variadic bool
	// Evaluation function.
	Eval EvalFn
}

// A Part is anything that can be placed on a board: primitive parts
// (*PartSpec) or composite blueprints (*ChipSpec).
//
type Part interface {
	// PartName returns the part name.
	PartName() string
	// Pins returns the input and output plug names of the part.
	Pins() (inputs, outputs []string)
	// Place builds a new instance of the part on b, as a child of parent.
	Place(b *Board, parent Circuit, name string) (Circuit, error)
}

// PartName implements Part.
//
func (p *PartSpec) PartName() string { return p.Name }

// Pins implements Part.
//
func (p *PartSpec) Pins() (inputs, outputs []string) { return p.Inputs, p.Outputs }

// Place implements Part. It is the same as b.New(parent, p, name).
//
func (p *PartSpec) Place(b *Board, parent Circuit, name string) (Circuit, error) {
	return b.New(parent, p, name)
}

// Place places part on the board under parent.
//
func (b *Board) Place(parent Circuit, part Part, name string) (Circuit, error) {
	if part == nil {
		return Circuit{}, errors.New("nil part")
	}
	return part.Place(b, parent, name)
}

// A Sub is a part used inside a chip, together with its instance name and
// its connections within the chip. See Chip.
//
type Sub struct {
	Part  Part
	Name  string
	Conns string
}

// Wire returns a Sub for part. conns maps the part's pins to wires of the
// host chip, like "A=a, B=b, O=out". See Chip for the syntax.
//
func Wire(part Part, name, conns string) Sub {
	return Sub{Part: part, Name: name, Conns: conns}
}
