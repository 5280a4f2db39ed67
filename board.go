// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"
	"strings"
	"sync"

	"github.com/db47h/logicsim/internal/names"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxDepth is the default propagation depth limit.
//
const DefaultMaxDepth = 1024

const none = -1

type plug struct {
	name  string
	value bool
	input bool
	owner int
	src   int   // driving plug or none
	dsts  []int // driven plugs, in connection order
	dead  bool
}

type circuit struct {
	name     string
	category string
	spec     *PartSpec // nil for composites
	parent   int       // none for top level circuits
	ins      []int
	outs     []int
	children []int
	dead     bool
}

// A Board holds circuits, their plugs and the connections between them.
//
// Plugs and circuits are stored in append-only arenas and referenced by
// index. Removed entries are tombstoned and never reused, so a stale handle
// reports ErrRemoved instead of silently pointing to something else.
//
// All methods of a Board and of the Plug and Circuit handles it returns are
// safe for concurrent use. A single mutex serializes every read, mutation
// and propagation pass.
//
type Board struct {
	mu        sync.Mutex
	plugs     []plug
	circuits  []circuit
	top       []int
	maxDepth  int
	log       *zap.Logger
	names     *names.Table
	observers []func(Plug, bool)
	trail     []int // plugs being set by the current propagation pass
	err       error // fatal error
}

// An Option configures a Board.
//
type Option func(*Board)

// WithLogger sets the board logger.
//
func WithLogger(l *zap.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.log = l
		}
	}
}

// WithMaxDepth sets the propagation depth limit. Values <= 0 select
// DefaultMaxDepth.
//
func WithMaxDepth(depth int) Option {
	return func(b *Board) {
		if depth <= 0 {
			depth = DefaultMaxDepth
		}
		b.maxDepth = depth
	}
}

// WithLocale selects the string resource used for default names.
//
func WithLocale(tag language.Tag) Option {
	return func(b *Board) {
		t, err := names.Load(tag)
		if err != nil {
			b.log.Warn("locale unavailable, using defaults", zap.Stringer("locale", tag), zap.Error(err))
			return
		}
		b.names = t
	}
}

// WithObserver registers a function called with every plug whose value
// changes, in propagation order. Observers run with the board locked and
// must not call any method of the board or its handles.
//
func WithObserver(fn func(p Plug, value bool)) Option {
	return func(b *Board) {
		if fn != nil {
			b.observers = append(b.observers, fn)
		}
	}
}

// NewBoard returns a new empty board.
//
func NewBoard(opts ...Option) *Board {
	b := &Board{
		maxDepth: DefaultMaxDepth,
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(b)
	}
	if b.names == nil {
		b.names = names.Default()
	}
	return b
}

// Err returns the fatal error that halted the board, if any.
//
func (b *Board) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Resume clears the fatal error state. The caller is expected to have
// fixed the offending loop first, typically with Disconnect or Remove.
// Plug values are left as they were when the board halted; call Settle to
// recompute them.
//
func (b *Board) Resume() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		b.log.Info("board resumed", zap.NamedError("after", b.err))
	}
	b.err = nil
}

// Circuits returns the top level circuits.
//
func (b *Board) Circuits() []Circuit {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.circuitList(b.top)
}

// Circuit returns the top level circuit with the given name.
//
func (b *Board) Circuit(name string) (Circuit, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n := b.findCircuit(b.top, name); n != none {
		return Circuit{b, n}, nil
	}
	return Circuit{}, errors.Wrapf(ErrNotFound, "circuit %q", name)
}

func (b *Board) halted() error {
	if b.err != nil {
		return errors.Wrap(ErrHalted, b.err.Error())
	}
	return nil
}

func (b *Board) circuitList(ns []int) []Circuit {
	cs := make([]Circuit, len(ns))
	for i, n := range ns {
		cs[i] = Circuit{b, n}
	}
	return cs
}

func (b *Board) plugList(ns []int) []Plug {
	ps := make([]Plug, len(ns))
	for i, n := range ns {
		ps[i] = Plug{b, n}
	}
	return ps
}

// checkPlug validates a plug handle. The board must be locked.
//
func (b *Board) checkPlug(p Plug) error {
	switch {
	case p.b == nil:
		return ErrInvalid
	case p.b != b:
		return ErrForeign
	case b.plugs[p.n].dead:
		return errors.Wrap(ErrRemoved, "plug "+b.plugs[p.n].name)
	}
	return nil
}

// checkCircuit validates a circuit handle. The board must be locked.
//
func (b *Board) checkCircuit(c Circuit) error {
	switch {
	case c.b == nil:
		return ErrInvalid
	case c.b != b:
		return ErrForeign
	case b.circuits[c.n].dead:
		return errors.Wrap(ErrRemoved, "circuit "+b.circuits[c.n].name)
	}
	return nil
}

// checkParent validates a parent handle, the zero Circuit meaning top level.
// It returns the parent index.
//
func (b *Board) checkParent(parent Circuit) (int, error) {
	if parent.b == nil {
		return none, nil
	}
	if err := b.checkCircuit(parent); err != nil {
		return none, err
	}
	if b.circuits[parent.n].spec != nil {
		return none, errors.Wrap(ErrNotComposite, b.circuitPath(parent.n))
	}
	return parent.n, nil
}

func (b *Board) siblings(parent int) []int {
	if parent == none {
		return b.top
	}
	return b.circuits[parent].children
}

func (b *Board) findCircuit(list []int, name string) int {
	name = norm.NFC.String(name)
	for _, n := range list {
		if b.circuits[n].name == name {
			return n
		}
	}
	return none
}

func (b *Board) findPlug(list []int, name string) int {
	name = norm.NFC.String(name)
	for _, n := range list {
		if b.plugs[n].name == name {
			return n
		}
	}
	return none
}

// freeName returns base followed by the lowest index not yet in use.
//
func freeName(base string, used func(string) bool) string {
	for i := 0; ; i++ {
		n := base + strconv.Itoa(i)
		if !used(n) {
			return n
		}
	}
}

// defaultCircuitName returns a free name under parent for an instance of the
// named part. An empty part name denotes an anonymous composite.
//
func (b *Board) defaultCircuitName(parent int, part string) string {
	var base string
	if part == "" {
		base = b.names.Get(names.CircuitPrefix+"composite", "Circuit")
	} else {
		base = b.names.Get(names.CircuitPrefix+part, part)
	}
	sib := b.siblings(parent)
	return freeName(norm.NFC.String(base), func(n string) bool { return b.findCircuit(sib, n) != none })
}

func (b *Board) defaultPlugName(c int, input bool) string {
	var base string
	var list []int
	if input {
		base = b.names.Get(names.PlugPrefix+"input", "In")
		list = b.circuits[c].ins
	} else {
		base = b.names.Get(names.PlugPrefix+"output", "Out")
		list = b.circuits[c].outs
	}
	return freeName(norm.NFC.String(base), func(n string) bool { return b.findPlug(list, n) != none })
}

// circuitPath returns the dot separated path of circuit n from the top level.
//
func (b *Board) circuitPath(n int) string {
	var parts []string
	for ; n != none; n = b.circuits[n].parent {
		parts = append(parts, b.circuits[n].name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// plugPath returns the qualified name of plug n.
//
func (b *Board) plugPath(n int) string {
	return b.circuitPath(b.plugs[n].owner) + "." + b.plugs[n].name
}
