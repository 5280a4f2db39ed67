// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/logicsim"
)

// Category of input/output parts.
const IO = "I/O"

// hold never changes its outputs: their values come from Plug.Set or a Clock.
func hold(in, out []bool) {}

var clockSource = &logicsim.PartSpec{
	Name:     "Clock",
	Category: IO,
	Outputs:  []string{pO},
	Eval:     hold,
}

// ClockSource returns a part with a single output O and no behavior of its
// own, meant to host a logicsim.Clock:
//
//	src, _ := board.New(logicsim.TopLevel, hwlib.ClockSource(), "clk")
//	o, _ := src.Output("O")
//	clk, _ := logicsim.NewClock(o, time.Second)
//
func ClockSource() *logicsim.PartSpec { return clockSource }

var switchPart = &logicsim.PartSpec{
	Name:     "Switch",
	Category: IO,
	Outputs:  []string{pO},
	Eval:     hold,
}

// Switch returns a user toggled 1 bit input. Its output O keeps whatever
// value it is Set to.
//
func Switch() *logicsim.PartSpec { return switchPart }

// SwitchN returns a user toggled input bus.
//
//	Outputs: O[bits]
//
func SwitchN(bits int) *logicsim.PartSpec {
	return &logicsim.PartSpec{
		Name:     "Switch" + strconv.Itoa(bits),
		Category: IO,
		Outputs:  bus(bits, pO),
		Eval:     hold,
	}
}

// Lamp returns a 1 bit output that calls f with the value of its input I
// whenever it is evaluated. f is called with the board locked and must not
// call into the board.
//
func Lamp(f func(value bool)) *logicsim.PartSpec {
	return &logicsim.PartSpec{
		Name:     "Lamp",
		Category: IO,
		Inputs:   []string{pI},
		Eval:     func(in, _ []bool) { f(in[0]) },
	}
}

// LampN returns an output bus that calls f with the value of its inputs
// I[bits], I[0] being the least significant bit.
//
func LampN(bits int, f func(value uint64)) *logicsim.PartSpec {
	return &logicsim.PartSpec{
		Name:     "Lamp" + strconv.Itoa(bits),
		Category: IO,
		Inputs:   bus(bits, pI),
		Eval: func(in, _ []bool) {
			var v uint64
			for i, b := range in {
				if b && i < 64 {
					v |= 1 << uint(i)
				}
			}
			f(v)
		},
	}
}
