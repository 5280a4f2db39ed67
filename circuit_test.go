package logicsim_test

import (
	"testing"

	"github.com/db47h/logicsim"
	hl "github.com/db47h/logicsim/hwlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestCircuit_lookup(t *testing.T) {
	b := logicsim.NewBoard()
	and := place(t, b, logicsim.TopLevel, hl.And(3), "")

	assert.Equal(t, "AND0", and.Name())
	assert.Equal(t, 3, and.NumInputs())
	assert.Equal(t, 1, and.NumOutputs())
	assert.True(t, and.IsPrimitive())
	assert.Equal(t, hl.Gates, and.Category())

	p, err := and.InputAt(2)
	require.NoError(t, err)
	assert.Equal(t, "I2", p.Name())
	assert.True(t, p.IsInput())
	assert.Equal(t, and, p.Owner())

	_, err = and.Input("X")
	assert.ErrorIs(t, err, logicsim.ErrNotFound)
	assert.NotErrorIs(t, err, logicsim.ErrRange)
	_, err = and.InputAt(3)
	assert.ErrorIs(t, err, logicsim.ErrRange)
	assert.NotErrorIs(t, err, logicsim.ErrNotFound)
	_, err = and.OutputAt(-1)
	assert.ErrorIs(t, err, logicsim.ErrRange)
	_, err = and.Output("I0")
	assert.ErrorIs(t, err, logicsim.ErrNotFound)

	c, err := b.Circuit("AND0")
	require.NoError(t, err)
	assert.Equal(t, and, c)
	_, err = b.Circuit("nope")
	assert.ErrorIs(t, err, logicsim.ErrNotFound)
}

func TestCircuit_defaultNames(t *testing.T) {
	td := []struct {
		locale language.Tag
		gate   string
		comp   string
		plug   string
	}{
		{language.English, "AND", "Circuit", "In"},
		{language.French, "ET", "Circuit", "Entrée"},
		{language.CanadianFrench, "ET", "Circuit", "Entrée"},
		{language.Japanese, "AND", "Circuit", "In"},
	}
	for _, d := range td {
		t.Run(d.locale.String(), func(t *testing.T) {
			b := logicsim.NewBoard(logicsim.WithLocale(d.locale))
			for i := 0; i < 2; i++ {
				place(t, b, logicsim.TopLevel, hl.And(2), "")
			}
			comp, err := b.NewComposite(logicsim.TopLevel, "")
			require.NoError(t, err)
			_, err = comp.AddInput("")
			require.NoError(t, err)
			_, err = comp.AddInput("")
			require.NoError(t, err)

			var names []string
			for _, c := range b.Circuits() {
				names = append(names, c.Name())
			}
			assert.Equal(t, []string{d.gate + "0", d.gate + "1", d.comp + "0"}, names)
			var plugs []string
			for _, p := range comp.Inputs() {
				plugs = append(plugs, p.Name())
			}
			assert.Equal(t, []string{d.plug + "0", d.plug + "1"}, plugs)

			// lowest free index
			c, err := b.Circuit(d.gate + "0")
			require.NoError(t, err)
			require.NoError(t, c.Remove())
			c = place(t, b, logicsim.TopLevel, hl.And(2), "")
			assert.Equal(t, d.gate+"0", c.Name())
		})
	}
}

func TestCircuit_names(t *testing.T) {
	b := logicsim.NewBoard()
	main, err := b.NewComposite(logicsim.TopLevel, "Main")
	require.NoError(t, err)
	adder, err := b.Place(main, hl.HalfAdder(), "adder")
	require.NoError(t, err)
	xor, err := adder.Child("XOR")
	require.NoError(t, err)
	assert.Equal(t, "Main.adder.XOR", xor.String())
	assert.Equal(t, "Main.adder.XOR.O", output(t, xor, "O").String())
	assert.Equal(t, adder, xor.Parent())
	assert.Equal(t, logicsim.TopLevel, main.Parent())
	assert.Equal(t, hl.Arithmetic, adder.Category())
	assert.False(t, adder.IsPrimitive())
	assert.Nil(t, adder.Spec())

	_, err = b.NewComposite(logicsim.TopLevel, "Main")
	assert.ErrorIs(t, err, logicsim.ErrDuplicateName)
	_, err = b.New(main, hl.Not(), "adder")
	assert.ErrorIs(t, err, logicsim.ErrDuplicateName)

	require.NoError(t, adder.Rename("add"))
	assert.Equal(t, "Main.add.XOR", xor.String())
	other := place(t, b, main, hl.Not(), "other")
	assert.ErrorIs(t, other.Rename("add"), logicsim.ErrDuplicateName)
	require.NoError(t, other.Rename("other"))

	// names are compared in normalized form
	e1 := place(t, b, logicsim.TopLevel, hl.Not(), "Entrée")
	_, err = b.New(logicsim.TopLevel, hl.Not(), "Entre\u0301e")
	assert.ErrorIs(t, err, logicsim.ErrDuplicateName)
	c, err := b.Circuit("Entre\u0301e")
	require.NoError(t, err)
	assert.Equal(t, e1, c)
}

func TestCircuit_arity(t *testing.T) {
	b := logicsim.NewBoard()
	not := place(t, b, logicsim.TopLevel, hl.Not(), "")
	and := place(t, b, logicsim.TopLevel, hl.And(2), "")

	_, err := not.AddInput("")
	assert.ErrorIs(t, err, logicsim.ErrFixedArity)
	_, err = and.AddOutput("")
	assert.ErrorIs(t, err, logicsim.ErrFixedArity)
	assert.ErrorIs(t, not.RemovePlug(input(t, not, "I")), logicsim.ErrFixedArity)

	_, err = and.AddInput("I0")
	assert.ErrorIs(t, err, logicsim.ErrDuplicateName)
	require.NoError(t, and.RemovePlug(input(t, and, "I0")))
	assert.ErrorIs(t, and.RemovePlug(input(t, and, "I1")), logicsim.ErrFixedArity, "last input")
	assert.ErrorIs(t, and.RemovePlug(output(t, not, "O")), logicsim.ErrNotFound)

	// index based lookups follow removals
	i, err := and.InputAt(0)
	require.NoError(t, err)
	assert.Equal(t, "I1", i.Name())

	comp, err := b.NewComposite(logicsim.TopLevel, "")
	require.NoError(t, err)
	o1, err := comp.AddOutput("Q")
	require.NoError(t, err)
	_, err = comp.AddOutput("Q")
	assert.ErrorIs(t, err, logicsim.ErrDuplicateName)
	require.NoError(t, comp.RemovePlug(o1))
	assert.Equal(t, 0, comp.NumOutputs())
	_, err = comp.AddOutput("Q")
	require.NoError(t, err)
}

func TestCircuit_AddChild(t *testing.T) {
	b := logicsim.NewBoard()
	outer, err := b.NewComposite(logicsim.TopLevel, "outer")
	require.NoError(t, err)
	inner, err := b.NewComposite(outer, "inner")
	require.NoError(t, err)
	not := place(t, b, logicsim.TopLevel, hl.Not(), "not")

	require.NoError(t, inner.AddChild(not))
	assert.Equal(t, inner, not.Parent())
	assert.Equal(t, []logicsim.Circuit{not}, inner.Children())
	_, err = b.Circuit("not")
	assert.ErrorIs(t, err, logicsim.ErrNotFound)
	require.NoError(t, inner.AddChild(not), "already a child")

	assert.ErrorIs(t, inner.AddChild(outer), logicsim.ErrAncestor)
	assert.ErrorIs(t, inner.AddChild(inner), logicsim.ErrAncestor)
	assert.ErrorIs(t, not.AddChild(outer), logicsim.ErrNotComposite)
	_, err = b.New(not, hl.Not(), "")
	assert.ErrorIs(t, err, logicsim.ErrNotComposite)

	// name clash
	not2 := place(t, b, logicsim.TopLevel, hl.Not(), "not")
	assert.ErrorIs(t, inner.AddChild(not2), logicsim.ErrDuplicateName)
	require.NoError(t, not2.Rename("not2"))

	// connected circuits cannot move
	sw := place(t, b, logicsim.TopLevel, hl.Switch(), "sw")
	require.NoError(t, output(t, sw, "O").Connect(input(t, not2, "I")))
	assert.ErrorIs(t, inner.AddChild(not2), logicsim.ErrConnected)
}

func TestCircuit_Remove(t *testing.T) {
	b := logicsim.NewBoard()
	sw := place(t, b, logicsim.TopLevel, hl.Switch(), "sw")
	lamp := place(t, b, logicsim.TopLevel, hl.Not(), "lamp")
	comp, err := b.Place(logicsim.TopLevel, hl.HalfAdder(), "ha")
	require.NoError(t, err)
	require.NoError(t, b.Settle())

	so, li := output(t, sw, "O"), input(t, lamp, "I")
	a, s := input(t, comp, "A"), output(t, comp, "S")
	require.NoError(t, so.Connect(a))
	require.NoError(t, s.Connect(li))
	require.NoError(t, so.Set(true))
	assert.True(t, li.Value())

	xor, err := comp.Child("XOR")
	require.NoError(t, err)
	xo := output(t, xor, "O")

	require.NoError(t, comp.Remove())
	assert.False(t, comp.Valid())
	assert.False(t, xor.Valid())
	assert.False(t, xo.Valid())
	assert.Empty(t, so.Destinations(), "dangling destination")
	_, ok := li.Source()
	assert.False(t, ok, "dangling source")
	assert.True(t, li.Value(), "disconnected input holds its value")
	assert.Empty(t, b.Circuits()[2:])

	assert.ErrorIs(t, comp.Remove(), logicsim.ErrRemoved)
	_, err = comp.AddInput("")
	assert.ErrorIs(t, err, logicsim.ErrRemoved)
	_, err = b.New(comp, hl.Not(), "")
	assert.ErrorIs(t, err, logicsim.ErrRemoved)
	require.NoError(t, so.Set(false))
}

func TestCircuit_removedAccessors(t *testing.T) {
	b := logicsim.NewBoard()
	comp, err := b.Place(logicsim.TopLevel, hl.HalfAdder(), "ha")
	require.NoError(t, err)
	xor, err := comp.Child("XOR")
	require.NoError(t, err)
	require.NoError(t, comp.Remove())

	// names survive for error reporting.
	assert.Equal(t, "ha", comp.Name())
	assert.Equal(t, "ha.XOR", xor.String())

	for _, c := range []logicsim.Circuit{comp, xor} {
		assert.Empty(t, c.Category())
		c.SetCategory("x")
		assert.Empty(t, c.Category())
		assert.False(t, c.IsPrimitive())
		assert.Nil(t, c.Spec())
		assert.Equal(t, logicsim.TopLevel, c.Parent())
		assert.Nil(t, c.Children())
		assert.Nil(t, c.Inputs())
		assert.Nil(t, c.Outputs())
		assert.Zero(t, c.NumInputs())
		assert.Zero(t, c.NumOutputs())
		_, err = c.Child("XOR")
		assert.ErrorIs(t, err, logicsim.ErrRemoved)
		_, err = c.Input("A")
		assert.ErrorIs(t, err, logicsim.ErrRemoved)
		_, err = c.Output("O")
		assert.ErrorIs(t, err, logicsim.ErrRemoved)
		_, err = c.InputAt(0)
		assert.ErrorIs(t, err, logicsim.ErrRemoved)
		_, err = c.OutputBus("S")
		assert.ErrorIs(t, err, logicsim.ErrRemoved)
	}
}

func TestCircuit_RemoveChild(t *testing.T) {
	b := logicsim.NewBoard()
	comp, err := b.NewComposite(logicsim.TopLevel, "c")
	require.NoError(t, err)
	in, err := comp.AddInput("A")
	require.NoError(t, err)
	not := place(t, b, comp, hl.Not(), "")
	other := place(t, b, logicsim.TopLevel, hl.Not(), "")
	require.NoError(t, in.Connect(input(t, not, "I")))

	assert.ErrorIs(t, comp.RemoveChild(other), logicsim.ErrNotFound)
	require.NoError(t, comp.RemoveChild(not))
	assert.Empty(t, comp.Children())
	assert.Empty(t, in.Destinations())
	assert.True(t, other.Valid())
}
