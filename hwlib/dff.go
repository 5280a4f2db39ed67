// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/db47h/logicsim"

// Category of memory parts.
const Memory = "Memory"

func memory(c *logicsim.ChipSpec) *logicsim.ChipSpec {
	c.Category = Memory
	return c
}

// The Qn gate comes first so that settling a fresh latch yields Q = 0.
var srLatch = memory(logicsim.MustChip("SRLatch", "S, R", "Q, Qn",
	logicsim.Wire(Nor(2), "NORn", "I0=S, I1=Q, O=Qn"),
	logicsim.Wire(Nor(2), "NOR", "I0=R, I1=Qn, O=Q"),
))

// SRLatch returns a set-reset latch made of two cross-coupled NOR gates.
// Once settled, a fresh latch is reset.
//
//	Inputs: S, R
//	Outputs: Q, Qn
//	Function: S = 1 sets Q, R = 1 resets Q, Q holds its value when S = R = 0.
//	          Qn = !Q unless S = R = 1.
//
func SRLatch() *logicsim.ChipSpec { return srLatch }

var dLatch = memory(logicsim.MustChip("DLatch", "D, E", "Q, Qn",
	logicsim.Wire(And(2), "AND0", "I0=D, I1=E, O=s"),
	logicsim.Wire(notGate, "NOT", "I=D, O=notD"),
	logicsim.Wire(And(2), "AND1", "I0=notD, I1=E, O=r"),
	logicsim.Wire(srLatch, "SR", "S=s, R=r, Q=Q, Qn=Qn"),
))

// DLatch returns a gated D latch.
//
//	Inputs: D, E
//	Outputs: Q, Qn
//	Function: if E == 1 { Q = D }, Qn = !Q
//
func DLatch() *logicsim.ChipSpec { return dLatch }

// The latch enables are interlocked: me = !(Clk | se), se = Clk & !me.
//
// Propagation updates the sinks of a wire in the order the parts below use
// it. The slave is listed first so that se reaches slave.E before NOR.I1: on a
// falling edge the slave closes before the master opens. On a rising edge,
// Clk reaches NOR.I0 before AND.I0, so the master closes before the slave
// opens. Reordering these parts breaks the flip flop.
var dff = memory(logicsim.MustChip("DFF", "D, Clk", "Q",
	logicsim.Wire(dLatch, "slave", "D=m, E=se, Q=Q"),
	logicsim.Wire(Nor(2), "NOR", "I0=Clk, I1=se, O=me"),
	logicsim.Wire(notGate, "NOT", "I=me, O=mc"),
	logicsim.Wire(And(2), "AND", "I0=Clk, I1=mc, O=se"),
	logicsim.Wire(dLatch, "master", "D=D, E=me, Q=m"),
))

// DFF returns a rising edge triggered data flip flop, built as a master-slave
// pair of D latches. Use a Clock on the Clk input to drive it. Q may be fed
// back to D, like in counters: the master is closed whenever the slave is
// open.
//
//	Inputs: D, Clk
//	Outputs: Q
//	Function: Q = D on the rising edge of Clk, otherwise Q holds its value.
//
func DFF() *logicsim.ChipSpec { return dff }
