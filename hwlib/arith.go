// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/logicsim"
)

// Category of arithmetic parts.
const Arithmetic = "Arithmetic"

var hAdder = arith(logicsim.MustChip("HalfAdder", "A, B", "S, C",
	logicsim.Wire(Xor(2), "XOR", "I0=A, I1=B, O=S"),
	logicsim.Wire(And(2), "AND", "I0=A, I1=B, O=C"),
))

// HalfAdder returns a half adder built from a XOR and an AND gate.
//
//	Inputs: A, B
//	Outputs: S, C
//	Function: S = lsb(A + B)
//	          C = msb(A + B)
//
func HalfAdder() *logicsim.ChipSpec { return hAdder }

var fAdder = arith(logicsim.MustChip("FullAdder", "A, B, Cin", "S, Cout",
	logicsim.Wire(hAdder, "HA0", "A=A, B=B, S=s0, C=c0"),
	logicsim.Wire(hAdder, "HA1", "A=s0, B=Cin, S=S, C=c1"),
	logicsim.Wire(Or(2), "OR", "I0=c0, I1=c1, O=Cout"),
))

// FullAdder returns a full adder built from two half adders.
//
//	Inputs: A, B, Cin
//	Outputs: S, Cout
//	Function: S = lsb(A + B + Cin)
//	          Cout = msb(A + B + Cin)
//
func FullAdder() *logicsim.ChipSpec { return fAdder }

// AdderN returns a N-bits ripple carry adder built from chained full adders.
// Bit 0 is the least significant bit.
//
//	Inputs: A[bits], B[bits], Cin
//	Outputs: S[bits], Cout
//	Function: S = lsbs(A + B + Cin)
//	          Cout = carry out of A + B + Cin
//
func AdderN(bits int) (*logicsim.ChipSpec, error) {
	bs := strconv.Itoa(bits)
	if bits < 1 {
		return nil, errInvalidWidth(bits)
	}
	parts := make([]logicsim.Sub, bits)
	carry := pCin
	for i := range parts {
		is := strconv.Itoa(i)
		cout := "c" + strconv.Itoa(i+1)
		if i == bits-1 {
			cout = pCo
		}
		parts[i] = logicsim.Wire(fAdder, "FA"+is,
			"A=A["+is+"], B=B["+is+"], Cin="+carry+", S=S["+is+"], Cout="+cout)
		carry = cout
	}
	c, err := logicsim.Chip("Adder"+bs, "A["+bs+"], B["+bs+"], Cin", "S["+bs+"], Cout", parts...)
	if err != nil {
		return nil, err
	}
	return arith(c), nil
}

func arith(c *logicsim.ChipSpec) *logicsim.ChipSpec {
	c.Category = Arithmetic
	return c
}
