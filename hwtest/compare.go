// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/logicsim"
)

// maximum number of inputs tested exhaustively.
const maxExhaustive = 12

// number of random input combinations tested above maxExhaustive inputs.
const randomRounds = 1 << maxExhaustive

// Instance is a part placed alone on a fresh board, then settled.
//
type Instance struct {
	Board   *logicsim.Board
	Circuit logicsim.Circuit
	Inputs  []logicsim.Plug
	Outputs []logicsim.Plug
}

// Place places part on a new board and settles it. It fails the test on
// error.
//
func Place(t testing.TB, part logicsim.Part, opts ...logicsim.Option) *Instance {
	t.Helper()
	b := logicsim.NewBoard(opts...)
	c, err := b.Place(logicsim.TopLevel, part, "")
	if err != nil {
		t.Fatalf("%s: %+v", part.PartName(), err)
	}
	if err = b.Settle(); err != nil {
		t.Fatalf("%s: settle: %+v", part.PartName(), err)
	}
	return &Instance{
		Board:   b,
		Circuit: c,
		Inputs:  c.Inputs(),
		Outputs: c.Outputs(),
	}
}

// Apply sets the inputs to in, in order. It fails the test on error.
//
func (i *Instance) Apply(t testing.TB, in []bool) {
	t.Helper()
	for k, p := range i.Inputs {
		if err := p.Set(in[k]); err != nil {
			t.Fatalf("set %s: %+v", p, err)
		}
	}
}

// Values returns the current output values.
//
func (i *Instance) Values() []bool {
	return logicsim.Bits(i.Outputs)
}

// bits sets in to the binary representation of v, in[0] being the most
// significant bit like in the first column of a truth table.
func bits(in []bool, v int) {
	for bit := range in {
		in[len(in)-bit-1] = v&(1<<uint(bit)) != 0
	}
}

func format(names []string, values []bool) string {
	var b strings.Builder
	for i, n := range names {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", n, values[i])
	}
	return b.String()
}

// TruthTable checks the outputs of a combinational part against a truth
// table. want[o][i] is the expected value of output o for input combination
// i, where the inputs are the binary representation of i, the first input
// being the most significant bit.
//
func TruthTable(t *testing.T, part logicsim.Part, want [][]bool) {
	t.Helper()
	inst := Place(t, part)
	ins, outs := part.Pins()
	if len(want) != len(outs) {
		t.Fatalf("%s: %d outputs, got %d columns", part.PartName(), len(outs), len(want))
	}
	in := make([]bool, len(ins))
	tot := 1 << uint(len(ins))
	for i := 0; i < tot; i++ {
		bits(in, i)
		inst.Apply(t, in)
		got := inst.Values()
		for o := range outs {
			if got[o] != want[o][i] {
				t.Errorf("%s(%s) %s = %v, got %v", part.PartName(), format(ins, in), outs[o], want[o][i], got[o])
			}
		}
	}
}

// ComparePart takes two parts and compares their outputs given the same inputs.
// Both parts must have the same Input/Output interface.
//
// Inputs are tested exhaustively for parts with up to 12 inputs. Larger parts
// are tested with all inputs false, all inputs true, then random inputs.
//
func ComparePart(t *testing.T, part1, part2 logicsim.Part) {
	t.Helper()

	ins1, outs1 := part1.Pins()
	ins2, outs2 := part2.Pins()
	if strings.Join(ins1, ",") != strings.Join(ins2, ",") {
		t.Fatalf("inputs %v != %v", ins1, ins2)
	}
	if strings.Join(outs1, ",") != strings.Join(outs2, ",") {
		t.Fatalf("outputs %v != %v", outs1, outs2)
	}

	p1, p2 := Place(t, part1), Place(t, part2)
	in := make([]bool, len(ins1))

	check := func() {
		t.Helper()
		p1.Apply(t, in)
		p2.Apply(t, in)
		v1, v2 := p1.Values(), p2.Values()
		for o := range v1 {
			if v1[o] != v2[o] {
				t.Fatalf("\nExpected %s => %s=%v\nGot %v", format(ins1, in), outs1[o], v1[o], v2[o])
			}
		}
	}

	start := time.Now()
	rounds := 0
	if len(in) <= maxExhaustive {
		tot := 1 << uint(len(in))
		for i := 0; i < tot; i++ {
			bits(in, i)
			check()
		}
		rounds = tot
	} else {
		check()
		for i := range in {
			in[i] = true
		}
		check()
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for i := 0; i < randomRounds; i++ {
			for k := range in {
				in[k] = rnd.Intn(2) != 0
			}
			check()
		}
		rounds = randomRounds + 2
	}
	t.Logf("%s vs %s: %d input combinations in %v", part1.PartName(), part2.PartName(), rounds, time.Since(start))
}
