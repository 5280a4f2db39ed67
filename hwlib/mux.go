// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// Category of plexers.
const Plexers = "Plexers"

func errInvalidWidth(bits int) error {
	return errors.Errorf("invalid bus width %d", bits)
}

func plexer(c *logicsim.ChipSpec) *logicsim.ChipSpec {
	c.Category = Plexers
	return c
}

var mux = plexer(logicsim.MustChip("MUX", "A, B, Sel", "O",
	logicsim.Wire(notGate, "NOT", "I=Sel, O=notSel"),
	logicsim.Wire(And(2), "AND0", "I0=A, I1=notSel, O=w0"),
	logicsim.Wire(And(2), "AND1", "I0=B, I1=Sel, O=w1"),
	logicsim.Wire(Or(2), "OR", "I0=w0, I1=w1, O=O"),
))

// Mux returns a multiplexer.
//
//	Inputs: A, B, Sel
//	Outputs: O
//	Function: if Sel == 0 { O = A } else { O = B }
//
func Mux() *logicsim.ChipSpec { return mux }

var dmux = plexer(logicsim.MustChip("DMUX", "I, Sel", "A, B",
	logicsim.Wire(notGate, "NOT", "I=Sel, O=notSel"),
	logicsim.Wire(And(2), "AND0", "I0=I, I1=notSel, O=A"),
	logicsim.Wire(And(2), "AND1", "I0=I, I1=Sel, O=B"),
))

// DMux returns a demultiplexer.
//
//	Inputs: I, Sel
//	Outputs: A, B
//	Function: if Sel == 0 { A = I; B = 0 } else { A = 0; B = I }
//
func DMux() *logicsim.ChipSpec { return dmux }

// MuxN returns a N-bits multiplexer.
//
//	Inputs: A[bits], B[bits], Sel
//	Outputs: O[bits]
//	Function: for i := range O { if Sel == 0 { O[i] = A[i] } else { O[i] = B[i] } }
//
func MuxN(bits int) (*logicsim.ChipSpec, error) {
	if bits < 1 {
		return nil, errInvalidWidth(bits)
	}
	bs := strconv.Itoa(bits)
	parts := make([]logicsim.Sub, bits)
	for i := range parts {
		is := strconv.Itoa(i)
		parts[i] = logicsim.Wire(mux, "MUX"+is, "A=A["+is+"], B=B["+is+"], Sel=Sel, O=O["+is+"]")
	}
	c, err := logicsim.Chip("MUX"+bs, "A["+bs+"], B["+bs+"], Sel", "O["+bs+"]", parts...)
	if err != nil {
		return nil, err
	}
	return plexer(c), nil
}
