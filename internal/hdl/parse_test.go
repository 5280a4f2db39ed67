package hdl_test

import (
	"testing"

	"github.com/db47h/logicsim/internal/hdl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIO(t *testing.T) {
	td := []struct {
		in  string
		out []string
		err string
	}{
		{"", nil, ""},
		{"a", []string{"a"}, ""},
		{"A[2], Cin", []string{"A[0]", "A[1]", "Cin"}, ""},
		{" a , b ,", []string{"a", "b"}, ""},
		{"Entrée", []string{"Entrée"}, ""},
		{"a b", nil, `in "a b" at pos 3: ',' expected, got "b"`},
		{"a[0]", nil, `in "a[0]" at pos 4: invalid bus size`},
		{"a[2", nil, `in "a[2" at pos 3: ']' expected, got end of input`},
		{"a, a", nil, `in "a, a" at pos 4: duplicate pin name a`},
		{"a, 2", nil, `in "a, 2" at pos 4: pin name expected, got "2"`},
	}
	for _, d := range td {
		t.Run(d.in, func(t *testing.T) {
			out, err := hdl.ParseIO(d.in)
			if d.err != "" {
				assert.EqualError(t, err, d.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, d.out, out)
		})
	}
}

func TestParseConns(t *testing.T) {
	td := []struct {
		in  string
		out []hdl.Conn
		err string
	}{
		{"", nil, ""},
		{"I0=A, O=S", []hdl.Conn{{"I0", "A"}, {"O", "S"}}, ""},
		{"A[0..1]=x[2..3]", []hdl.Conn{{"A[0]", "x[2]"}, {"A[1]", "x[3]"}}, ""},
		{"A[1..0]=x[0..1]", []hdl.Conn{{"A[1]", "x[0]"}, {"A[0]", "x[1]"}}, ""},
		{"O=x[0..1]", []hdl.Conn{{"O", "x[0]"}, {"O", "x[1]"}}, ""},
		{"I[0..1]=sel", []hdl.Conn{{"I[0]", "sel"}, {"I[1]", "sel"}}, ""},
		{"A[3]=a", []hdl.Conn{{"A[3]", "a"}}, ""},
		{"A[0..1]=x[0..2]", nil, `in "A[0..1]=x[0..2]" at pos 1: pin count mismatch in A=x`},
		{"A", nil, `in "A" at pos 1: '=' expected, got end of input`},
		{"A=", nil, `in "A=" at pos 2: pin name expected, got end of input`},
		{"A[0.1]=b", nil, `in "A[0.1]=b" at pos 5: '..' expected, got "1"`},
	}
	for _, d := range td {
		t.Run(d.in, func(t *testing.T) {
			out, err := hdl.ParseConns(d.in)
			if d.err != "" {
				assert.EqualError(t, err, d.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, d.out, out)
		})
	}
}
