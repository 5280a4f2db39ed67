// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides a library of reusable parts for logicsim.
//
// Basic gates are primitive parts. Except for NOT, they are variadic: inputs
// can be added to or removed from a placed gate. Arithmetic parts, muxers
// and latches are chips built from those gates.
//
// Copyright 2018 Denis Bernard <db047h@gmail.com>
//
// This package is licensed under the MIT license. See license text in the LICENSE file.
//
package hwlib

import (
	"strconv"

	"github.com/db47h/logicsim"
)

// common pin names
const (
	pI   = "I"
	pO   = "O"
	pCin = "Cin"
	pCo  = "Cout"
)

// Category of basic gates.
const Gates = "Gates"

// gateInputs returns the default input names of a n inputs gate.
func gateInputs(n int) []string {
	ins := make([]string, n)
	for i := range ins {
		ins[i] = "I" + strconv.Itoa(i)
	}
	return ins
}

var notGate = &logicsim.PartSpec{
	Name:     "NOT",
	Category: Gates,
	Inputs:   []string{pI},
	Outputs:  []string{pO},
	Eval:     func(in, out []bool) { out[0] = !in[0] },
}

// Not returns a NOT gate.
//
//	Inputs: I
//	Outputs: O
//	Function: O = !I
//
func Not() *logicsim.PartSpec { return notGate }

// a gate reduces its inputs to a single output.
type gate func(in []bool) bool

func (g gate) eval(in, out []bool) { out[0] = g(in) }

func and(in []bool) bool {
	for _, v := range in {
		if !v {
			return false
		}
	}
	return true
}

func or(in []bool) bool {
	for _, v := range in {
		if v {
			return true
		}
	}
	return false
}

func xor(in []bool) bool {
	p := false
	for _, v := range in {
		p = p != v
	}
	return p
}

func newGate(name string, inputs int, fn gate) *logicsim.PartSpec {
	if inputs < 1 {
		panic("gate " + name + " with " + strconv.Itoa(inputs) + " inputs")
	}
	return &logicsim.PartSpec{
		Name:     name,
		Category: Gates,
		Inputs:   gateInputs(inputs),
		Outputs:  []string{pO},
		Variadic: true,
		Eval:     fn.eval,
	}
}

// And returns a AND gate with the given number of inputs.
//
//	Inputs: I0, I1, ..., In-1
//	Outputs: O
//	Function: O = I0 && I1 && ... && In-1
//
func And(inputs int) *logicsim.PartSpec { return newGate("AND", inputs, and) }

// Nand returns a NAND gate with the given number of inputs.
//
//	Inputs: I0, I1, ..., In-1
//	Outputs: O
//	Function: O = !(I0 && I1 && ... && In-1)
//
func Nand(inputs int) *logicsim.PartSpec {
	return newGate("NAND", inputs, func(in []bool) bool { return !and(in) })
}

// Or returns a OR gate with the given number of inputs.
//
//	Inputs: I0, I1, ..., In-1
//	Outputs: O
//	Function: O = I0 || I1 || ... || In-1
//
func Or(inputs int) *logicsim.PartSpec { return newGate("OR", inputs, or) }

// Nor returns a NOR gate with the given number of inputs.
//
//	Inputs: I0, I1, ..., In-1
//	Outputs: O
//	Function: O = !(I0 || I1 || ... || In-1)
//
func Nor(inputs int) *logicsim.PartSpec {
	return newGate("NOR", inputs, func(in []bool) bool { return !or(in) })
}

// Xor returns a XOR gate with the given number of inputs. The output is the
// parity of the inputs.
//
//	Inputs: I0, I1, ..., In-1
//	Outputs: O
//	Function: O = true if an odd number of inputs are true
//
func Xor(inputs int) *logicsim.PartSpec { return newGate("XOR", inputs, xor) }

// Xnor returns a XNOR gate with the given number of inputs.
//
//	Inputs: I0, I1, ..., In-1
//	Outputs: O
//	Function: O = true if an even number of inputs are true
//
func Xnor(inputs int) *logicsim.PartSpec {
	return newGate("XNOR", inputs, func(in []bool) bool { return !xor(in) })
}

// NotN returns a N-bits NOT gate.
//
//	Inputs: I[bits]
//	Outputs: O[bits]
//	Function: for i := range O { O[i] = !I[i] }
//
func NotN(bits int) *logicsim.PartSpec {
	return &logicsim.PartSpec{
		Name:     "NOT" + strconv.Itoa(bits),
		Category: Gates,
		Inputs:   bus(bits, pI),
		Outputs:  bus(bits, pO),
		Eval: func(in, out []bool) {
			for i, v := range in {
				out[i] = !v
			}
		},
	}
}

// make a bus name
func bus(bits int, names ...string) []string {
	b := make([]string, 0, len(names)*bits)
	for _, n := range names {
		for j := 0; j < bits; j++ {
			b = append(b, logicsim.BusPinName(n, j))
		}
	}
	return b
}
