// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/db47h/logicsim/internal/hdl"
	"github.com/pkg/errors"
)

// A ChipSpec is the blueprint of a composite circuit, built with Chip.
//
type ChipSpec struct {
	Name     string
	Category string
	Inputs   []string
	Outputs  []string
	parts    []Sub
	nets     []net
}

// Chip composes existing parts into a new part packaged into a chip.
// inputs and outputs are comma separated pin lists where name[n] declares a
// bus of n pins. Parts are wired together by name: a wire named after a chip
// input is driven by that input, a wire named after a chip output drives that
// output, and any other name is an internal wire.
//
// A XOR gate could be created like this:
//
//	xor, err := logicsim.Chip("XOR", "a, b", "out",
//		logicsim.Wire(hwlib.Nand(2), "n0", "I0=a, I1=b, O=nandAB"),
//		logicsim.Wire(hwlib.Nand(2), "n1", "I0=a, I1=nandAB, O=w0"),
//		logicsim.Wire(hwlib.Nand(2), "n2", "I0=b, I1=nandAB, O=w1"),
//		logicsim.Wire(hwlib.Nand(2), "n3", "I0=w0, I1=w1, O=out"),
//	)
//
// Connection strings are comma separated pin=wire assignments where both
// sides accept indices and ranges: "A[0..3]=a[4..7], Cin=c".
//
// Chip checks the wiring: unknown pins, wires with more than one driver,
// wires read but never driven and wires driven but never read are
// reported as errors. Part inputs that are not mentioned stay unconnected.
//
func Chip(name, inputs, outputs string, parts ...Sub) (*ChipSpec, error) {
	ins, err := hdl.ParseIO(inputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" inputs")
	}
	outs, err := hdl.ParseIO(outputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" outputs")
	}
	isIn := index(ins)
	for _, o := range outs {
		if isIn[o] {
			return nil, errors.New(name + ": pin " + o + " declared as both input and output")
		}
	}
	seen := make(map[string]bool)
	for _, p := range parts {
		if p.Part == nil {
			return nil, errors.New(name + ": nil part")
		}
		if p.Name == "" {
			continue
		}
		if seen[p.Name] {
			return nil, errors.New(name + ": duplicate part name " + p.Name)
		}
		seen[p.Name] = true
	}
	nets, err := buildNets(ins, outs, parts)
	if err != nil {
		return nil, err
	}
	return &ChipSpec{
		Name:    name,
		Inputs:  ins,
		Outputs: outs,
		parts:   parts,
		nets:    nets,
	}, nil
}

// MustChip is like Chip but panics on error. It is meant for package level
// part definitions.
//
func MustChip(name, inputs, outputs string, parts ...Sub) *ChipSpec {
	c, err := Chip(name, inputs, outputs, parts...)
	if err != nil {
		panic(err)
	}
	return c
}

// PartName implements Part.
//
func (c *ChipSpec) PartName() string { return c.Name }

// Pins implements Part.
//
func (c *ChipSpec) Pins() (inputs, outputs []string) { return c.Inputs, c.Outputs }

// Place implements Part. It builds a composite circuit with the chip's
// inputs and outputs, places every part inside and connects them.
//
// Like any freshly built circuit, the result should be settled before use.
//
func (c *ChipSpec) Place(b *Board, parent Circuit, name string) (Circuit, error) {
	comp, err := b.newComposite(parent, name, c.Name)
	if err != nil {
		return Circuit{}, errors.Wrap(err, c.Name)
	}
	if err = c.build(comp); err != nil {
		// the composite is brand new, nothing outside refers to it.
		_ = comp.Remove()
		return Circuit{}, errors.Wrap(err, c.Name)
	}
	return comp, nil
}

func (c *ChipSpec) build(comp Circuit) error {
	comp.SetCategory(c.Category)
	for _, in := range c.Inputs {
		if _, err := comp.AddInput(in); err != nil {
			return err
		}
	}
	for _, out := range c.Outputs {
		if _, err := comp.AddOutput(out); err != nil {
			return err
		}
	}
	subs := make([]Circuit, len(c.parts))
	for i, p := range c.parts {
		sub, err := p.Part.Place(comp.b, comp, p.Name)
		if err != nil {
			return err
		}
		subs[i] = sub
	}
	plugOf := func(e end, driver bool) (Plug, error) {
		switch {
		case e.part == chipPins && driver:
			return comp.Input(e.pin)
		case e.part == chipPins:
			return comp.Output(e.pin)
		case driver:
			return subs[e.part].Output(e.pin)
		}
		return subs[e.part].Input(e.pin)
	}
	for _, n := range c.nets {
		src, err := plugOf(n.driver, true)
		if err != nil {
			return err
		}
		for _, s := range n.sinks {
			dst, err := plugOf(s, false)
			if err != nil {
				return err
			}
			if err = src.Connect(dst); err != nil {
				return errors.Wrap(err, "wire "+n.name)
			}
		}
	}
	return nil
}
