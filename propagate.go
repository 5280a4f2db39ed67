// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"go.uber.org/zap"
)

// number of plugs reported in a CycleError path.
const cycleTrail = 8

// propagate runs a complete propagation pass starting with plug n. The board
// must be locked and not halted.
//
func (b *Board) propagate(n int, v bool) error {
	b.trail = b.trail[:0]
	if err := b.set(n, v, 0); err != nil {
		return b.fatal(err)
	}
	return nil
}

// set changes the value of plug n and cascades the change depth first.
//
func (b *Board) set(n int, v bool, depth int) error {
	if b.plugs[n].value == v {
		return nil
	}
	if depth >= b.maxDepth {
		return b.cycleError(depth)
	}
	b.trail = append(b.trail, n)
	b.plugs[n].value = v
	for _, fn := range b.observers {
		fn(Plug{b, n}, v)
	}
	// dsts is not modified during a pass.
	for _, d := range b.plugs[n].dsts {
		if err := b.set(d, v, depth+1); err != nil {
			return err
		}
	}
	if pl := &b.plugs[n]; pl.input && b.circuits[pl.owner].spec != nil {
		if err := b.eval(pl.owner, depth+1); err != nil {
			return err
		}
	}
	b.trail = b.trail[:len(b.trail)-1]
	return nil
}

// eval evaluates primitive circuit c and sets its outputs in order.
//
func (b *Board) eval(c int, depth int) error {
	cc := &b.circuits[c]
	in := make([]bool, len(cc.ins))
	for i, p := range cc.ins {
		in[i] = b.plugs[p].value
	}
	out := make([]bool, len(cc.outs))
	for i, p := range cc.outs {
		out[i] = b.plugs[p].value
	}
	cc.spec.Eval(in, out)
	for i, p := range b.circuits[c].outs {
		if err := b.set(p, out[i], depth); err != nil {
			return err
		}
	}
	return nil
}

func (b *Board) cycleError(depth int) error {
	t := b.trail
	if len(t) > cycleTrail {
		t = t[len(t)-cycleTrail:]
	}
	path := make([]string, len(t))
	for i, n := range t {
		path[i] = b.plugPath(n)
	}
	return &CycleError{Depth: depth, Path: path}
}

// fatal halts the board.
//
func (b *Board) fatal(err error) error {
	b.err = err
	b.trail = b.trail[:0]
	b.log.Error("propagation halted", zap.Error(err))
	return err
}

// settle evaluates every live primitive in circuits (and their descendants)
// in creation order.
//
func (b *Board) settle(list []int) error {
	for _, c := range list {
		if b.circuits[c].dead {
			continue
		}
		if b.circuits[c].spec == nil {
			if err := b.settle(b.circuits[c].children); err != nil {
				return err
			}
			continue
		}
		b.trail = b.trail[:0]
		if err := b.eval(c, 0); err != nil {
			return b.fatal(err)
		}
	}
	return nil
}

// Settle evaluates once every primitive circuit on the board and
// propagates the results. Primitive outputs start out false and are only
// computed when an input changes; Settle brings freshly built circuits to a
// consistent state, like powering them on.
//
func (b *Board) Settle() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.halted(); err != nil {
		return err
	}
	return b.settle(b.top)
}
