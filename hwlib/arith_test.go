package hwlib_test

import (
	"testing"
	"testing/quick"

	"github.com/db47h/logicsim"
	hl "github.com/db47h/logicsim/hwlib"
	"github.com/db47h/logicsim/hwtest"
)

// fullAdder is a primitive full adder to compare chips against.
var fullAdder = &logicsim.PartSpec{
	Name:    "FA",
	Inputs:  []string{"A", "B", "Cin"},
	Outputs: []string{"S", "Cout"},
	Eval: func(in, out []bool) {
		n := 0
		for _, v := range in {
			if v {
				n++
			}
		}
		out[0] = n&1 != 0
		out[1] = n > 1
	},
}

func TestHalfAdder(t *testing.T) {
	hwtest.TruthTable(t, hl.HalfAdder(), [][]bool{
		{false, true, true, false},  // S
		{false, false, false, true}, // C
	})
}

func TestFullAdder(t *testing.T) {
	hwtest.TruthTable(t, hl.FullAdder(), [][]bool{
		{false, true, true, false, true, false, false, true}, // S
		{false, false, false, true, false, true, true, true}, // Cout
	})
	hwtest.ComparePart(t, fullAdder, hl.FullAdder())
}

func adder(t *testing.T, bits int) (a, b []logicsim.Plug, cin logicsim.Plug, s []logicsim.Plug, cout logicsim.Plug) {
	t.Helper()
	add, err := hl.AdderN(bits)
	if err != nil {
		t.Fatal(err)
	}
	c := hwtest.Place(t, add).Circuit
	if a, err = c.InputBus("A"); err != nil {
		t.Fatal(err)
	}
	if b, err = c.InputBus("B"); err != nil {
		t.Fatal(err)
	}
	if cin, err = c.Input("Cin"); err != nil {
		t.Fatal(err)
	}
	if s, err = c.OutputBus("S"); err != nil {
		t.Fatal(err)
	}
	if cout, err = c.Output("Cout"); err != nil {
		t.Fatal(err)
	}
	return a, b, cin, s, cout
}

func TestAdderN(t *testing.T) {
	a, b, _, s, cout := adder(t, 4)
	td := []struct {
		a, b  uint64
		s     string
		carry bool
	}{
		{3, 1, "0100", false},
		{15, 1, "0000", true},
		{0, 0, "0000", false},
		{7, 8, "1111", false},
		{9, 9, "0010", true},
	}
	for _, d := range td {
		if err := logicsim.SetUint(a, d.a); err != nil {
			t.Fatal(err)
		}
		if err := logicsim.SetUint(b, d.b); err != nil {
			t.Fatal(err)
		}
		if got := logicsim.FormatBits(s); got != d.s {
			t.Errorf("%d + %d = %s, got %s", d.a, d.b, d.s, got)
		}
		if cout.Value() != d.carry {
			t.Errorf("%d + %d: carry = %v, got %v", d.a, d.b, d.carry, cout.Value())
		}
	}
}

func TestAdderN_quick(t *testing.T) {
	a, b, cin, s, cout := adder(t, 16)
	f := func(x, y uint16, c bool) bool {
		if err := logicsim.SetUint(a, uint64(x)); err != nil {
			t.Fatal(err)
		}
		if err := logicsim.SetUint(b, uint64(y)); err != nil {
			t.Fatal(err)
		}
		if err := cin.Set(c); err != nil {
			t.Fatal(err)
		}
		sum := uint64(x) + uint64(y)
		if c {
			sum++
		}
		return logicsim.Uint(s) == sum&0xffff && cout.Value() == (sum > 0xffff)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestAdderN_compare(t *testing.T) {
	add2, err := hl.AdderN(2)
	if err != nil {
		t.Fatal(err)
	}
	add2fa := logicsim.MustChip("Adder2", "A[2], B[2], Cin", "S[2], Cout",
		logicsim.Wire(fullAdder, "", "A=A[0], B=B[0], Cin=Cin, S=S[0], Cout=c"),
		logicsim.Wire(fullAdder, "", "A=A[1], B=B[1], Cin=c, S=S[1], Cout=Cout"),
	)
	hwtest.ComparePart(t, add2fa, add2)

	if _, err = hl.AdderN(0); err == nil {
		t.Fatal("expected error for AdderN(0)")
	}
}
