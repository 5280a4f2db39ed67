package hwlib_test

import (
	"context"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/db47h/logicsim"
	hl "github.com/db47h/logicsim/hwlib"
	"github.com/db47h/logicsim/hwtest"
)

func randBool() bool {
	return rand.Int63()&(1<<62) != 0
}

func set(t *testing.T, p logicsim.Plug, v bool) {
	t.Helper()
	if err := p.Set(v); err != nil {
		t.Fatalf("set %s: %+v", p, err)
	}
}

func pins(t *testing.T, c logicsim.Circuit, inputs []string, outputs []string) (ins, outs []logicsim.Plug) {
	t.Helper()
	for _, n := range inputs {
		p, err := c.Input(n)
		if err != nil {
			t.Fatal(err)
		}
		ins = append(ins, p)
	}
	for _, n := range outputs {
		p, err := c.Output(n)
		if err != nil {
			t.Fatal(err)
		}
		outs = append(outs, p)
	}
	return ins, outs
}

func TestSRLatch(t *testing.T) {
	inst := hwtest.Place(t, hl.SRLatch())
	ins, outs := pins(t, inst.Circuit, []string{"S", "R"}, []string{"Q", "Qn"})
	s, r, q, qn := ins[0], ins[1], outs[0], outs[1]

	check := func(step string, wq bool) {
		t.Helper()
		if q.Value() != wq || qn.Value() == wq {
			t.Fatalf("%s: expected Q=%v, Qn=%v, got Q=%v, Qn=%v", step, wq, !wq, q.Value(), qn.Value())
		}
	}

	check("power on", false)
	set(t, s, true)
	check("set", true)
	set(t, s, false)
	check("hold after set", true)
	set(t, r, true)
	check("reset", false)
	set(t, r, false)
	check("hold after reset", false)
}

func TestDLatch(t *testing.T) {
	inst := hwtest.Place(t, hl.DLatch())
	ins, outs := pins(t, inst.Circuit, []string{"D", "E"}, []string{"Q", "Qn"})
	d, e, q := ins[0], ins[1], outs[0]

	set(t, d, true)
	if q.Value() {
		t.Fatal("latch open while E = 0")
	}
	set(t, e, true)
	if !q.Value() {
		t.Fatal("Q != D while E = 1")
	}
	set(t, d, false)
	if q.Value() {
		t.Fatal("Q != D while E = 1")
	}
	set(t, d, true)
	set(t, e, false)
	set(t, d, false)
	if !q.Value() {
		t.Fatal("latch did not hold its value")
	}
	if outs[1].Value() {
		t.Fatal("Qn == Q")
	}
}

func TestDFF(t *testing.T) {
	inst := hwtest.Place(t, hl.DFF())
	ins, outs := pins(t, inst.Circuit, []string{"D", "Clk"}, []string{"Q"})
	d, clk, q := ins[0], ins[1], outs[0]

	prev := false
	for i := 0; i < 200; i++ {
		in := randBool()
		set(t, d, in)
		if q.Value() != prev {
			t.Fatalf("step %d: Q changed with Clk = 0", i)
		}
		set(t, clk, true)
		if q.Value() != in {
			t.Fatalf("step %d: expected Q = %v after rising edge, got %v", i, in, q.Value())
		}
		set(t, d, !in)
		if q.Value() != in {
			t.Fatalf("step %d: Q changed with Clk = 1", i)
		}
		set(t, clk, false)
		if q.Value() != in {
			t.Fatalf("step %d: Q changed on falling edge", i)
		}
		prev = in
	}
}

// the latch enables of a DFF never overlap: on each edge, the latch that
// closes does so before the other one opens.
func TestDFF_enables(t *testing.T) {
	type change struct {
		p logicsim.Plug
		v bool
	}
	var log []change
	inst := hwtest.Place(t, hl.DFF(), logicsim.WithObserver(func(p logicsim.Plug, v bool) {
		log = append(log, change{p, v})
	}))
	enable := func(name string) logicsim.Plug {
		t.Helper()
		l, err := inst.Circuit.Child(name)
		if err != nil {
			t.Fatal(err)
		}
		e, err := l.Input("E")
		if err != nil {
			t.Fatal(err)
		}
		return e
	}
	me, se := enable("master"), enable("slave")
	d, clk := inst.Inputs[0], inst.Inputs[1]

	// order returns the changes of the master and slave enables in log.
	order := func() []string {
		var s []string
		for _, c := range log {
			switch c.p {
			case me:
				s = append(s, "master="+strconv.FormatBool(c.v))
			case se:
				s = append(s, "slave="+strconv.FormatBool(c.v))
			}
		}
		log = log[:0]
		return s
	}
	check := func(edge string, want ...string) {
		t.Helper()
		if got := order(); strings.Join(got, " ") != strings.Join(want, " ") {
			t.Fatalf("%s edge: expected %v, got %v", edge, want, got)
		}
	}

	set(t, d, true)
	log = log[:0]
	for i := 0; i < 4; i++ {
		set(t, clk, true)
		check("rising", "master=false", "slave=true")
		set(t, d, i&1 != 0)
		log = log[:0]
		set(t, clk, false)
		check("falling", "slave=false", "master=true")
	}
}

// toggle is a DFF with its output inverted and fed back to its input.
var toggle = logicsim.MustChip("Toggle", "Clk", "Q",
	logicsim.Wire(hl.DFF(), "DFF", "D=nq, Clk=Clk, Q=Q"),
	logicsim.Wire(hl.Not(), "NOT", "I=Q, O=nq"),
)

func TestDFF_feedback(t *testing.T) {
	inst := hwtest.Place(t, toggle)
	clk, q := inst.Inputs[0], inst.Outputs[0]
	for i := 1; i <= 16; i++ {
		set(t, clk, true)
		if want := i&1 != 0; q.Value() != want {
			t.Fatalf("edge %d: expected Q = %v, got %v", i, want, q.Value())
		}
		set(t, clk, false)
	}
	if err := inst.Board.Err(); err != nil {
		t.Fatal(err)
	}
}

func Test_bit_register(t *testing.T) {
	reg, err := logicsim.Chip("BitReg", "I, Load, Clk", "O",
		logicsim.Wire(hl.Mux(), "", "A=O, B=I, Sel=Load, O=muxOut"),
		logicsim.Wire(hl.DFF(), "", "D=muxOut, Clk=Clk, Q=O"),
	)
	if err != nil {
		t.Fatal(err)
	}

	inst := hwtest.Place(t, reg)
	ins, outs := pins(t, inst.Circuit, []string{"I", "Load", "Clk"}, []string{"O"})
	in, load, clk, out := ins[0], ins[1], ins[2], outs[0]

	p := false
	for i := 0; i < 1000; i++ {
		vi, vl := randBool(), randBool()
		set(t, in, vi)
		set(t, load, vl)
		if out.Value() != p {
			t.Fatal("output changed before clock edge")
		}
		set(t, clk, true)
		if vl {
			p = vi
		}
		if out.Value() != p {
			t.Fatalf("step %d: expected %v, got %v", i, p, out.Value())
		}
		set(t, clk, false)
	}
}

// waitTicks waits until clk has toggled n times.
func waitTicks(t *testing.T, clk *logicsim.Clock, n uint64) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for clk.Ticks() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timeout waiting for %d ticks, got %d", n, clk.Ticks())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestDFF_clock(t *testing.T) {
	b := logicsim.NewBoard()
	src, err := b.New(logicsim.TopLevel, hl.ClockSource(), "clk")
	if err != nil {
		t.Fatal(err)
	}
	cnt, err := b.Place(logicsim.TopLevel, toggle, "T")
	if err != nil {
		t.Fatal(err)
	}
	o, _ := src.Output("O")
	tIn, _ := cnt.Input("Clk")
	q, _ := cnt.Output("Q")
	if err = o.Connect(tIn); err != nil {
		t.Fatal(err)
	}
	if err = b.Settle(); err != nil {
		t.Fatal(err)
	}

	tick := make(chan time.Time)
	clk, err := logicsim.NewClock(o, time.Second, logicsim.WithTicker(tick))
	if err != nil {
		t.Fatal(err)
	}
	if err = clk.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer clk.Stop()

	// Q toggles on every rising edge, that is every other clock tick.
	for i := uint64(1); i <= 8; i++ {
		tick <- time.Now()
		waitTicks(t, clk, i)
		if want := (i+1)/2&1 != 0; q.Value() != want {
			t.Fatalf("tick %d: expected Q = %v, got %v", i, want, q.Value())
		}
	}
}
