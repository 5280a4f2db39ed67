// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"sort"
	"strings"

	"github.com/db47h/logicsim"
	hl "github.com/db47h/logicsim/hwlib"
	"github.com/pkg/errors"
)

// a partFunc returns a library part. n is the number of inputs of gates,
// or the bus width of bus parts. Fixed parts ignore it.
type partFunc func(n int) (logicsim.Part, error)

func gate(f func(inputs int) *logicsim.PartSpec) partFunc {
	return func(n int) (logicsim.Part, error) {
		if n < 1 {
			return nil, errors.Errorf("invalid number of inputs %d", n)
		}
		return f(n), nil
	}
}

func fixed(p logicsim.Part) partFunc {
	return func(int) (logicsim.Part, error) { return p, nil }
}

func chip(f func(bits int) (*logicsim.ChipSpec, error)) partFunc {
	return func(n int) (logicsim.Part, error) {
		c, err := f(n)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

// combinational parts of the library, by lowercase name.
var library = map[string]partFunc{
	"not":       fixed(hl.Not()),
	"and":       gate(hl.And),
	"nand":      gate(hl.Nand),
	"or":        gate(hl.Or),
	"nor":       gate(hl.Nor),
	"xor":       gate(hl.Xor),
	"xnor":      gate(hl.Xnor),
	"halfadder": fixed(hl.HalfAdder()),
	"fulladder": fixed(hl.FullAdder()),
	"adder":     chip(hl.AdderN),
	"mux":       fixed(hl.Mux()),
	"muxn":      chip(hl.MuxN),
	"dmux":      fixed(hl.DMux()),
}

func partNames() []string {
	names := make([]string, 0, len(library))
	for n := range library {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func lookupPart(name string, n int) (logicsim.Part, error) {
	f, ok := library[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("unknown part %q, expected one of %s", name, strings.Join(partNames(), ", "))
	}
	p, err := f(n)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return p, nil
}
