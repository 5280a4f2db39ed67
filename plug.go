// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// A Plug is a handle to a boolean signal endpoint on a Board. A plug is
// either an input or an output of the Circuit that owns it.
//
// An input has at most one source, an output may drive any number of
// destinations. Plug values are comparable and may be used as map keys.
// The zero Plug is invalid.
//
type Plug struct {
	b *Board
	n int
}

// Valid returns true if p refers to a plug that has not been removed.
//
func (p Plug) Valid() bool {
	if p.b == nil {
		return false
	}
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	return !p.b.plugs[p.n].dead
}

// Board returns the board p lives on.
//
func (p Plug) Board() *Board { return p.b }

// Name returns the plug name.
//
func (p Plug) Name() string {
	if p.b == nil {
		return ""
	}
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	return p.b.plugs[p.n].name
}

// String returns the qualified name of the plug, like "Main.XOR.I0".
//
func (p Plug) String() string {
	if p.b == nil {
		return "<nil>"
	}
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	return p.b.plugPath(p.n)
}

// IsInput returns true for input plugs.
//
func (p Plug) IsInput() bool {
	if p.b == nil {
		return false
	}
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	return p.b.plugs[p.n].input
}

// Owner returns the circuit that owns p.
//
func (p Plug) Owner() Circuit {
	if p.b == nil {
		return Circuit{}
	}
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	return Circuit{p.b, p.b.plugs[p.n].owner}
}

// Value returns the current value of p.
//
func (p Plug) Value() bool {
	if p.b == nil {
		return false
	}
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	return p.b.plugs[p.n].value
}

// Source returns the plug driving p, if any.
//
func (p Plug) Source() (Plug, bool) {
	if p.b == nil {
		return Plug{}, false
	}
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	if s := p.b.plugs[p.n].src; s != none {
		return Plug{p.b, s}, true
	}
	return Plug{}, false
}

// Destinations returns the plugs driven by p in connection order.
//
func (p Plug) Destinations() []Plug {
	if p.b == nil {
		return nil
	}
	p.b.mu.Lock()
	defer p.b.mu.Unlock()
	return p.b.plugList(p.b.plugs[p.n].dsts)
}

// Rename changes the plug name. The name must be unique among the inputs
// (resp. outputs) of the owner. Renaming does not propagate anything.
//
func (p Plug) Rename(name string) error {
	if p.b == nil {
		return ErrInvalid
	}
	b := p.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkPlug(p); err != nil {
		return err
	}
	name = norm.NFC.String(name)
	if name == "" {
		return errors.New("empty plug name")
	}
	pl := &b.plugs[p.n]
	c := &b.circuits[pl.owner]
	list := c.outs
	if pl.input {
		list = c.ins
	}
	if n := b.findPlug(list, name); n != none && n != p.n {
		return errors.Wrapf(ErrDuplicateName, "plug %q in %s", name, b.circuitPath(pl.owner))
	}
	pl.name = name
	return nil
}

// Set sets the value of p. If the value changes, it is propagated to all
// destinations and, for inputs of a primitive circuit, the owner is
// evaluated. Set returns once the whole cascade has settled.
//
// The returned error is non-nil if the board is halted or if this pass
// tripped the depth limit, in which case it is a *CycleError and the board
// halts.
//
func (p Plug) Set(value bool) error {
	if p.b == nil {
		return ErrInvalid
	}
	b := p.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkPlug(p); err != nil {
		return err
	}
	if err := b.halted(); err != nil {
		return err
	}
	return b.propagate(p.n, value)
}

// Toggle inverts the value of p. It behaves exactly like Set(!p.Value()),
// atomically.
//
func (p Plug) Toggle() error {
	if p.b == nil {
		return ErrInvalid
	}
	b := p.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkPlug(p); err != nil {
		return err
	}
	if err := b.halted(); err != nil {
		return err
	}
	return b.propagate(p.n, !b.plugs[p.n].value)
}

// Connect creates a connection between p and other. The direction of the
// connection is deduced from the plugs:
//
//	- an output drives inputs of circuits sharing its owner's parent, and
//	  outputs of that parent.
//	- an input of a composite circuit drives inputs of its children and
//	  outputs of the composite itself.
//
// If both directions are possible, p is the source. The destination
// immediately takes the value of the source, which is then propagated.
//
// Connect fails with ErrSelfLoop, ErrDirection or ErrDriven without
// modifying the board.
//
func (p Plug) Connect(other Plug) error {
	if p.b == nil {
		return ErrInvalid
	}
	b := p.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkPlug(p); err != nil {
		return err
	}
	if err := b.checkPlug(other); err != nil {
		return err
	}
	if err := b.halted(); err != nil {
		return err
	}
	return b.connect(p.n, other.n)
}

// Disconnect removes the connection between p and other, in whichever
// direction it exists. The former destination keeps its current value.
//
func (p Plug) Disconnect(other Plug) error {
	if p.b == nil {
		return ErrInvalid
	}
	b := p.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkPlug(p); err != nil {
		return err
	}
	if err := b.checkPlug(other); err != nil {
		return err
	}
	switch {
	case b.plugs[other.n].src == p.n:
		b.unlink(p.n, other.n)
	case b.plugs[p.n].src == other.n:
		b.unlink(other.n, p.n)
	default:
		return errors.Wrapf(ErrNotConnected, "%s, %s", b.plugPath(p.n), b.plugPath(other.n))
	}
	return nil
}

// driveScope returns the scope plug n can drive: the parent of its owner for
// outputs, the owner itself for inputs of composites. Top level circuits
// share the none scope.
//
func (b *Board) driveScope(n int) (int, bool) {
	pl := &b.plugs[n]
	if !pl.input {
		return b.circuits[pl.owner].parent, true
	}
	if b.circuits[pl.owner].spec == nil {
		return pl.owner, true
	}
	return none, false
}

// receiveScope returns the scope plug n can be driven from: the parent of its
// owner for inputs, the owner itself for outputs of composites. Outputs of
// primitives are only driven by their owner's evaluation.
//
func (b *Board) receiveScope(n int) (int, bool) {
	pl := &b.plugs[n]
	if pl.input {
		return b.circuits[pl.owner].parent, true
	}
	if b.circuits[pl.owner].spec == nil {
		return pl.owner, true
	}
	return none, false
}

func (b *Board) canDrive(src, dst int) bool {
	ds, ok := b.driveScope(src)
	if !ok {
		return false
	}
	rs, ok := b.receiveScope(dst)
	return ok && ds == rs
}

// connect validates and creates a connection. The board must be locked.
//
func (b *Board) connect(a, c int) error {
	if a == c {
		return errors.Wrap(ErrSelfLoop, b.plugPath(a))
	}
	src, dst := a, c
	if !b.canDrive(a, c) {
		if !b.canDrive(c, a) {
			return errors.Wrapf(ErrDirection, "%s, %s", b.plugPath(a), b.plugPath(c))
		}
		src, dst = c, a
	}
	if s := b.plugs[dst].src; s != none {
		return errors.Wrapf(ErrDriven, "%s by %s", b.plugPath(dst), b.plugPath(s))
	}
	b.plugs[dst].src = src
	b.plugs[src].dsts = append(b.plugs[src].dsts, dst)
	b.log.Debug("connect", zap.String("src", b.plugPath(src)), zap.String("dst", b.plugPath(dst)))
	return b.propagate(dst, b.plugs[src].value)
}

// unlink removes the edge src -> dst, which must exist. The board must be
// locked.
//
func (b *Board) unlink(src, dst int) {
	ds := b.plugs[src].dsts
	for i, d := range ds {
		if d == dst {
			copy(ds[i:], ds[i+1:])
			b.plugs[src].dsts = ds[:len(ds)-1]
			break
		}
	}
	b.plugs[dst].src = none
	b.log.Debug("disconnect", zap.String("src", b.plugPath(src)), zap.String("dst", b.plugPath(dst)))
}

// isolate removes every connection of plug n. The board must be locked.
//
func (b *Board) isolate(n int) {
	if s := b.plugs[n].src; s != none {
		b.unlink(s, n)
	}
	for len(b.plugs[n].dsts) > 0 {
		b.unlink(n, b.plugs[n].dsts[0])
	}
}
