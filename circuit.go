// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// A Circuit is a handle to a circuit on a Board.
//
// A circuit is either a primitive, whose outputs are computed from its inputs
// by the Eval function of its PartSpec, or a composite that holds child
// circuits and whose behavior comes only from the way they are wired.
//
// The zero Circuit is not a valid circuit. Where a parent is expected, it
// stands for the top level of the board.
//
// Once a circuit is removed, Name and String still describe it. Methods
// returning an error fail with ErrRemoved and the other accessors return
// their zero value.
//
type Circuit struct {
	b *Board
	n int
}

// TopLevel is the parent of top level circuits.
//
var TopLevel = Circuit{}

// New places a new primitive circuit built from spec under parent. If name
// is empty, a default name is generated. Plugs are created with the value
// false and the circuit is not evaluated.
//
func (b *Board) New(parent Circuit, spec *PartSpec, name string) (Circuit, error) {
	if spec == nil || spec.Eval == nil {
		return Circuit{}, errors.New("nil part spec or Eval function")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	n, err := b.newCircuit(parent, spec, name, spec.Name)
	if err != nil {
		return Circuit{}, errors.Wrap(err, spec.Name)
	}
	for _, in := range spec.Inputs {
		if _, err = b.addPlug(n, in, true); err != nil {
			b.remove(n)
			return Circuit{}, errors.Wrap(err, spec.Name)
		}
	}
	for _, out := range spec.Outputs {
		if _, err = b.addPlug(n, out, false); err != nil {
			b.remove(n)
			return Circuit{}, errors.Wrap(err, spec.Name)
		}
	}
	return Circuit{b, n}, nil
}

// NewComposite places a new empty composite circuit under parent.
//
func (b *Board) NewComposite(parent Circuit, name string) (Circuit, error) {
	return b.newComposite(parent, name, "")
}

func (b *Board) newComposite(parent Circuit, name, part string) (Circuit, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, err := b.newCircuit(parent, nil, name, part)
	if err != nil {
		return Circuit{}, err
	}
	return Circuit{b, n}, nil
}

// newCircuit adds a circuit under parent. part is used to generate a
// default name if name is empty.
//
func (b *Board) newCircuit(parent Circuit, spec *PartSpec, name, part string) (int, error) {
	pn, err := b.checkParent(parent)
	if err != nil {
		return none, err
	}
	name = norm.NFC.String(name)
	if name == "" {
		name = b.defaultCircuitName(pn, part)
	} else if b.findCircuit(b.siblings(pn), name) != none {
		return none, errors.Wrapf(ErrDuplicateName, "circuit %q", name)
	}
	c := circuit{name: name, spec: spec, parent: pn}
	if spec != nil {
		c.category = spec.Category
	}
	n := len(b.circuits)
	b.circuits = append(b.circuits, c)
	b.attach(pn, n)
	return n, nil
}

func (b *Board) attach(parent, n int) {
	b.circuits[n].parent = parent
	if parent == none {
		b.top = append(b.top, n)
	} else {
		b.circuits[parent].children = append(b.circuits[parent].children, n)
	}
}

func (b *Board) detach(n int) {
	parent := b.circuits[n].parent
	list := b.siblings(parent)
	for i, c := range list {
		if c == n {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if parent == none {
		b.top = list
	} else {
		b.circuits[parent].children = list
	}
}

func (b *Board) addPlug(c int, name string, input bool) (int, error) {
	name = norm.NFC.String(name)
	cc := &b.circuits[c]
	list := cc.outs
	if input {
		list = cc.ins
	}
	if name == "" {
		name = b.defaultPlugName(c, input)
	} else if b.findPlug(list, name) != none {
		return none, errors.Wrapf(ErrDuplicateName, "plug %q", name)
	}
	n := len(b.plugs)
	b.plugs = append(b.plugs, plug{name: name, input: input, owner: c, src: none})
	if input {
		cc.ins = append(cc.ins, n)
	} else {
		cc.outs = append(cc.outs, n)
	}
	return n, nil
}

// remove disconnects and tombstones circuit n and its descendants.
//
func (b *Board) remove(n int) {
	b.detach(n)
	b.kill(n)
}

func (b *Board) kill(n int) {
	c := &b.circuits[n]
	for _, ch := range c.children {
		b.kill(ch)
	}
	for _, p := range c.ins {
		b.isolate(p)
		b.plugs[p].dead = true
	}
	for _, p := range c.outs {
		b.isolate(p)
		b.plugs[p].dead = true
	}
	c.dead = true
}

// Valid returns true if c refers to a circuit that has not been removed.
//
func (c Circuit) Valid() bool {
	if c.b == nil {
		return false
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	return !c.b.circuits[c.n].dead
}

// Board returns the board c lives on.
//
func (c Circuit) Board() *Board { return c.b }

// Name returns the circuit name.
//
func (c Circuit) Name() string {
	if c.b == nil {
		return ""
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	return c.b.circuits[c.n].name
}

// String returns the dot separated path of the circuit.
//
func (c Circuit) String() string {
	if c.b == nil {
		return "<top>"
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	return c.b.circuitPath(c.n)
}

// Rename changes the circuit name. It must be unique among its siblings.
//
func (c Circuit) Rename(name string) error {
	if c.b == nil {
		return ErrInvalid
	}
	b := c.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkCircuit(c); err != nil {
		return err
	}
	name = norm.NFC.String(name)
	if name == "" {
		return errors.New("empty circuit name")
	}
	if n := b.findCircuit(b.siblings(b.circuits[c.n].parent), name); n != none && n != c.n {
		return errors.Wrapf(ErrDuplicateName, "circuit %q", name)
	}
	b.circuits[c.n].name = name
	return nil
}

// Category returns the display category of the circuit.
//
func (c Circuit) Category() string {
	if c.b == nil {
		return ""
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if c.b.circuits[c.n].dead {
		return ""
	}
	return c.b.circuits[c.n].category
}

// SetCategory sets the display category of the circuit.
//
func (c Circuit) SetCategory(cat string) {
	if c.b == nil {
		return
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if cc := &c.b.circuits[c.n]; !cc.dead {
		cc.category = cat
	}
}

// IsPrimitive returns true if c has an evaluation function.
//
func (c Circuit) IsPrimitive() bool {
	if c.b == nil {
		return false
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	cc := &c.b.circuits[c.n]
	return !cc.dead && cc.spec != nil
}

// Spec returns the PartSpec of a primitive circuit, nil for composites.
//
func (c Circuit) Spec() *PartSpec {
	if c.b == nil {
		return nil
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if c.b.circuits[c.n].dead {
		return nil
	}
	return c.b.circuits[c.n].spec
}

// Parent returns the parent of c. The zero Circuit is returned for top
// level circuits.
//
func (c Circuit) Parent() Circuit {
	if c.b == nil {
		return Circuit{}
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if cc := &c.b.circuits[c.n]; !cc.dead && cc.parent != none {
		return Circuit{c.b, cc.parent}
	}
	return Circuit{}
}

// Children returns the child circuits of a composite.
//
func (c Circuit) Children() []Circuit {
	if c.b == nil {
		return nil
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if c.b.circuits[c.n].dead {
		return nil
	}
	return c.b.circuitList(c.b.circuits[c.n].children)
}

// Child returns the child circuit with the given name.
//
func (c Circuit) Child(name string) (Circuit, error) {
	if c.b == nil {
		return Circuit{}, ErrInvalid
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if err := c.b.checkCircuit(c); err != nil {
		return Circuit{}, err
	}
	if n := c.b.findCircuit(c.b.circuits[c.n].children, name); n != none {
		return Circuit{c.b, n}, nil
	}
	return Circuit{}, errors.Wrapf(ErrNotFound, "circuit %q in %s", name, c.b.circuitPath(c.n))
}

// Inputs returns the input plugs of c in order.
//
func (c Circuit) Inputs() []Plug {
	if c.b == nil {
		return nil
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if c.b.circuits[c.n].dead {
		return nil
	}
	return c.b.plugList(c.b.circuits[c.n].ins)
}

// Outputs returns the output plugs of c in order.
//
func (c Circuit) Outputs() []Plug {
	if c.b == nil {
		return nil
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if c.b.circuits[c.n].dead {
		return nil
	}
	return c.b.plugList(c.b.circuits[c.n].outs)
}

// NumInputs returns the number of inputs of c.
//
func (c Circuit) NumInputs() int {
	if c.b == nil {
		return 0
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if c.b.circuits[c.n].dead {
		return 0
	}
	return len(c.b.circuits[c.n].ins)
}

// NumOutputs returns the number of outputs of c.
//
func (c Circuit) NumOutputs() int {
	if c.b == nil {
		return 0
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if c.b.circuits[c.n].dead {
		return 0
	}
	return len(c.b.circuits[c.n].outs)
}

// Input returns the input plug with the given name. The error wraps
// ErrNotFound if there is no such input.
//
func (c Circuit) Input(name string) (Plug, error) {
	return c.lookup(name, true)
}

// Output returns the output plug with the given name. The error wraps
// ErrNotFound if there is no such output.
//
func (c Circuit) Output(name string) (Plug, error) {
	return c.lookup(name, false)
}

func (c Circuit) lookup(name string, input bool) (Plug, error) {
	if c.b == nil {
		return Plug{}, ErrInvalid
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if err := c.b.checkCircuit(c); err != nil {
		return Plug{}, err
	}
	cc := &c.b.circuits[c.n]
	list, kind := cc.outs, "output"
	if input {
		list, kind = cc.ins, "input"
	}
	if n := c.b.findPlug(list, name); n != none {
		return Plug{c.b, n}, nil
	}
	return Plug{}, errors.Wrapf(ErrNotFound, "%s %q in %s", kind, name, c.b.circuitPath(c.n))
}

// InputAt returns the input plug at index i. The error wraps ErrRange if i
// is out of range.
//
func (c Circuit) InputAt(i int) (Plug, error) {
	return c.at(i, true)
}

// OutputAt returns the output plug at index i. The error wraps ErrRange if i
// is out of range.
//
func (c Circuit) OutputAt(i int) (Plug, error) {
	return c.at(i, false)
}

func (c Circuit) at(i int, input bool) (Plug, error) {
	if c.b == nil {
		return Plug{}, ErrInvalid
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if err := c.b.checkCircuit(c); err != nil {
		return Plug{}, err
	}
	list := c.b.circuits[c.n].outs
	if input {
		list = c.b.circuits[c.n].ins
	}
	if i < 0 || i >= len(list) {
		return Plug{}, errors.Wrapf(ErrRange, "index %d in %s (len %d)", i, c.b.circuitPath(c.n), len(list))
	}
	return Plug{c.b, list[i]}, nil
}

// InputBus returns the inputs name[0], name[1], ... up to the first
// missing index.
//
func (c Circuit) InputBus(name string) ([]Plug, error) {
	return c.bus(name, true)
}

// OutputBus returns the outputs name[0], name[1], ... up to the first
// missing index.
//
func (c Circuit) OutputBus(name string) ([]Plug, error) {
	return c.bus(name, false)
}

func (c Circuit) bus(name string, input bool) ([]Plug, error) {
	if c.b == nil {
		return nil, ErrInvalid
	}
	c.b.mu.Lock()
	defer c.b.mu.Unlock()
	if err := c.b.checkCircuit(c); err != nil {
		return nil, err
	}
	list := c.b.circuits[c.n].outs
	if input {
		list = c.b.circuits[c.n].ins
	}
	var out []Plug
	for i := 0; ; i++ {
		n := c.b.findPlug(list, BusPinName(name, i))
		if n == none {
			break
		}
		out = append(out, Plug{c.b, n})
	}
	if len(out) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "bus %q in %s", name, c.b.circuitPath(c.n))
	}
	return out, nil
}

// AddInput adds an input plug to c. Composites accept any number of
// inputs. Primitives accept new inputs only if their PartSpec is Variadic,
// and are then evaluated again.
//
func (c Circuit) AddInput(name string) (Plug, error) {
	return c.addPlug(name, true)
}

// AddOutput adds an output plug to a composite circuit.
//
func (c Circuit) AddOutput(name string) (Plug, error) {
	return c.addPlug(name, false)
}

func (c Circuit) addPlug(name string, input bool) (Plug, error) {
	if c.b == nil {
		return Plug{}, ErrInvalid
	}
	b := c.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkCircuit(c); err != nil {
		return Plug{}, err
	}
	spec := b.circuits[c.n].spec
	if spec != nil && (!input || !spec.Variadic) {
		return Plug{}, errors.Wrap(ErrFixedArity, b.circuitPath(c.n))
	}
	n, err := b.addPlug(c.n, name, input)
	if err != nil {
		return Plug{}, errors.Wrap(err, b.circuitPath(c.n))
	}
	if spec != nil {
		if err = b.reeval(c.n); err != nil {
			return Plug{c.b, n}, err
		}
	}
	return Plug{b, n}, nil
}

// RemovePlug disconnects and removes plug p from c. A primitive only allows
// removal of inputs, if its PartSpec is Variadic and at least one input
// remains. It is then evaluated again.
//
func (c Circuit) RemovePlug(p Plug) error {
	if c.b == nil {
		return ErrInvalid
	}
	b := c.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkCircuit(c); err != nil {
		return err
	}
	if err := b.checkPlug(p); err != nil {
		return err
	}
	pl := &b.plugs[p.n]
	if pl.owner != c.n {
		return errors.Wrapf(ErrNotFound, "plug %s in %s", b.plugPath(p.n), b.circuitPath(c.n))
	}
	cc := &b.circuits[c.n]
	if cc.spec != nil && (!pl.input || !cc.spec.Variadic || len(cc.ins) <= 1) {
		return errors.Wrap(ErrFixedArity, b.circuitPath(c.n))
	}
	b.isolate(p.n)
	pl.dead = true
	if pl.input {
		cc.ins = removeIndex(cc.ins, p.n)
	} else {
		cc.outs = removeIndex(cc.outs, p.n)
	}
	if cc.spec != nil {
		return b.reeval(c.n)
	}
	return nil
}

func removeIndex(list []int, n int) []int {
	for i, v := range list {
		if v == n {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// reeval evaluates primitive c after a change of arity.
//
func (b *Board) reeval(c int) error {
	if b.err != nil {
		return nil
	}
	b.trail = b.trail[:0]
	if err := b.eval(c, 0); err != nil {
		return b.fatal(err)
	}
	return nil
}

// AddChild moves a top level circuit into composite c. The circuit must not
// have any connection, must not be an ancestor of c and its name must be
// free among the children of c.
//
func (c Circuit) AddChild(child Circuit) error {
	if c.b == nil {
		return ErrInvalid
	}
	b := c.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkCircuit(c); err != nil {
		return err
	}
	if err := b.checkCircuit(child); err != nil {
		return err
	}
	if b.circuits[c.n].spec != nil {
		return errors.Wrap(ErrNotComposite, b.circuitPath(c.n))
	}
	for a := c.n; a != none; a = b.circuits[a].parent {
		if a == child.n {
			return errors.Wrapf(ErrAncestor, "%s into %s", b.circuitPath(child.n), b.circuitPath(c.n))
		}
	}
	if b.circuits[child.n].parent == c.n {
		return nil
	}
	if b.circuits[child.n].parent != none {
		return errors.Errorf("%s is not a top level circuit", b.circuitPath(child.n))
	}
	if b.boundaryConnected(child.n) {
		return errors.Wrap(ErrConnected, b.circuitPath(child.n))
	}
	if b.findCircuit(b.circuits[c.n].children, b.circuits[child.n].name) != none {
		return errors.Wrapf(ErrDuplicateName, "circuit %q in %s", b.circuits[child.n].name, b.circuitPath(c.n))
	}
	b.detach(child.n)
	b.attach(c.n, child.n)
	return nil
}

// boundaryConnected returns true if any connection crosses the boundary of
// circuit n, that is a connection from or to n's plugs from outside n.
//
func (b *Board) boundaryConnected(n int) bool {
	outside := func(p int) bool { return !b.inside(b.plugs[p].owner, n) }
	for _, p := range b.circuits[n].ins {
		if s := b.plugs[p].src; s != none && outside(s) {
			return true
		}
	}
	for _, p := range b.circuits[n].outs {
		for _, d := range b.plugs[p].dsts {
			if outside(d) {
				return true
			}
		}
	}
	return false
}

// inside returns true if circuit c is a or a descendant of a.
//
func (b *Board) inside(c, a int) bool {
	for ; c != none; c = b.circuits[c].parent {
		if c == a {
			return true
		}
	}
	return false
}

// RemoveChild removes child from composite c. Every connection to the child
// or its descendants is removed first; plugs that lose their source keep
// their last value.
//
func (c Circuit) RemoveChild(child Circuit) error {
	if c.b == nil {
		return ErrInvalid
	}
	b := c.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkCircuit(c); err != nil {
		return err
	}
	if err := b.checkCircuit(child); err != nil {
		return err
	}
	if b.circuits[child.n].parent != c.n {
		return errors.Wrapf(ErrNotFound, "circuit %s in %s", b.circuitPath(child.n), b.circuitPath(c.n))
	}
	b.log.Debug("remove circuit", zap.String("circuit", b.circuitPath(child.n)))
	b.remove(child.n)
	return nil
}

// Remove removes c and its descendants from the board, disconnecting them
// first.
//
func (c Circuit) Remove() error {
	if c.b == nil {
		return ErrInvalid
	}
	b := c.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkCircuit(c); err != nil {
		return err
	}
	b.log.Debug("remove circuit", zap.String("circuit", b.circuitPath(c.n)))
	b.remove(c.n)
	return nil
}

// Settle evaluates every primitive in c and its descendants once. See
// Board.Settle.
//
func (c Circuit) Settle() error {
	if c.b == nil {
		return ErrInvalid
	}
	b := c.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkCircuit(c); err != nil {
		return err
	}
	if err := b.halted(); err != nil {
		return err
	}
	return b.settle([]int{c.n})
}

// BusPinName returns the name of the i-th pin in the given bus.
//
func BusPinName(bus string, i int) string {
	return bus + "[" + strconv.Itoa(i) + "]"
}
