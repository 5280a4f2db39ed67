/*
Package logicsim provides an event driven simulator for digital logic circuits
along with an API to compose basic parts (logic gates, adders, latches, etc.)
into more complex ones.

A Board holds circuits. A circuit is either a primitive, whose outputs are
computed from its inputs by an evaluation function, or a composite: a
container of child circuits whose behavior only comes from the way they are
wired. Circuits expose input and output plugs that are connected together:

	b := logicsim.NewBoard()
	xor, _ := b.New(logicsim.TopLevel, hwlib.Xor(2), "sum")
	and, _ := b.New(logicsim.TopLevel, hwlib.And(2), "carry")
	a, _ := b.New(logicsim.TopLevel, hwlib.Switch(), "a")
	ao, _ := a.Output("O")
	xi, _ := xor.Input("I0")
	ai, _ := and.Input("I0")
	_ = ao.Connect(xi)
	_ = ao.Connect(ai)

An output drives any number of inputs. An input has at most one source.

Setting a plug propagates the new value depth first through every
connection, evaluating the primitive circuits whose inputs change. Set
returns once the whole cascade has settled. Freshly placed primitives are not
evaluated: call Board.Settle once the circuit is built, like powering it on.

A combinational loop that never settles trips a depth limit. The pass is then
aborted with a *CycleError and the board halts until Board.Resume is called.

Parts describe circuits before they are placed: a *PartSpec describes a
primitive, and Chip composes parts into a *ChipSpec using a small wiring
language:

	halfAdder, err := logicsim.Chip("HalfAdder", "A, B", "S, C",
		logicsim.Wire(hwlib.Xor(2), "", "I0=A, I1=B, O=S"),
		logicsim.Wire(hwlib.And(2), "", "I0=A, I1=B, O=C"),
	)

Sequential circuits are driven by a Clock, which toggles a plug from a
background goroutine. All operations on a board are serialized by a single
mutex, so clock toggles never interleave with other updates.

*/
package logicsim
