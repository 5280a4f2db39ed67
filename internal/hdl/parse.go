// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl parses pin lists and connection strings.
//
// A pin list is a comma separated list of pin names, where name[n] declares
// a bus of n pins name[0] ... name[n-1]:
//
//	A[4], B[4], Cin
//
// A connection string is a comma separated list of pin=wire assignments.
// Either side may be a pin name, an indexed pin name[i] or a range
// name[i..j]:
//
//	A[0..3]=a[0..3], Cin=false, S[0]=sum
//
package hdl

import (
	"strconv"
	"strings"
	"text/scanner"

	"github.com/pkg/errors"
)

// Pin is a pin reference. For plain names, Start and End are -1. For
// indexed pins, Start == End.
//
type Pin struct {
	Name       string
	Start, End int
	Pos        int
}

// Names expands p into individual pin names.
//
func (p Pin) Names() []string {
	if p.Start < 0 {
		return []string{p.Name}
	}
	step := 1
	if p.End < p.Start {
		step = -1
	}
	var out []string
	for i := p.Start; ; i += step {
		out = append(out, busPin(p.Name, i))
		if i == p.End {
			break
		}
	}
	return out
}

func busPin(name string, i int) string {
	return name + "[" + strconv.Itoa(i) + "]"
}

// Conn connects a part pin to a wire of the host chip.
//
type Conn struct {
	Pin  string
	Wire string
}

type parser struct {
	in  string
	s   scanner.Scanner
	tok rune
	err error
}

func newParser(in string) *parser {
	p := &parser{in: in}
	p.s.Init(strings.NewReader(in))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts
	p.s.Error = func(s *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = p.errorf(s.Position.Offset, msg)
		}
	}
	p.next()
	return p
}

func (p *parser) next() { p.tok = p.s.Scan() }

func (p *parser) pos() int { return p.s.Position.Offset }

func (p *parser) errorf(pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", p.in, pos+1, msg)
}

func (p *parser) unexpected(what string) error {
	if p.tok == scanner.EOF {
		return p.errorf(len(p.in)-1, what+", got end of input")
	}
	return p.errorf(p.pos(), what+", got "+strconv.Quote(p.s.TokenText()))
}

func (p *parser) int() (int, error) {
	if p.tok != scanner.Int {
		return 0, p.unexpected("integer expected")
	}
	v, err := strconv.Atoi(p.s.TokenText())
	if err != nil {
		return 0, p.errorf(p.pos(), err.Error())
	}
	p.next()
	return v, nil
}

// pin parses name, name[i] or name[i..j]. If decl is true, only name and
// name[n] are accepted, the latter meaning name[0..n-1].
//
func (p *parser) pin(decl bool) (Pin, error) {
	if p.tok != scanner.Ident {
		return Pin{}, p.unexpected("pin name expected")
	}
	pin := Pin{Name: p.s.TokenText(), Start: -1, End: -1, Pos: p.pos()}
	p.next()
	if p.tok != '[' {
		return pin, nil
	}
	p.next()
	start, err := p.int()
	if err != nil {
		return Pin{}, err
	}
	end := start
	if decl {
		if start <= 0 {
			return Pin{}, p.errorf(p.pos(), "invalid bus size")
		}
		start, end = 0, start-1
	} else if p.tok == '.' {
		p.next()
		if p.tok != '.' {
			return Pin{}, p.unexpected("'..' expected")
		}
		p.next()
		if end, err = p.int(); err != nil {
			return Pin{}, err
		}
	}
	if p.tok != ']' {
		return Pin{}, p.unexpected("']' expected")
	}
	p.next()
	pin.Start, pin.End = start, end
	return pin, nil
}

// separator consumes a comma. It returns false at end of input.
//
func (p *parser) separator() (bool, error) {
	switch p.tok {
	case scanner.EOF:
		return false, nil
	case ',':
		p.next()
		return true, nil
	}
	return false, p.unexpected("',' expected")
}

// ParseIO parses a pin list and returns the expanded pin names. Duplicate
// names are reported as errors.
//
func ParseIO(spec string) ([]string, error) {
	p := newParser(spec)
	var out []string
	seen := make(map[string]bool)
	for p.tok != scanner.EOF {
		pin, err := p.pin(true)
		if err != nil {
			return nil, err
		}
		for _, n := range pin.Names() {
			if seen[n] {
				return nil, p.errorf(pin.Pos, "duplicate pin name "+n)
			}
			seen[n] = true
			out = append(out, n)
		}
		if more, err := p.separator(); err != nil {
			return nil, err
		} else if !more {
			break
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return out, nil
}

// ParseConns parses a connection string and returns the expanded
// connections in order.
//
// Ranges are expanded pairwise if both sides have the same number of pins.
// A single pin on the left side may be connected to several wires and
// several pins may be connected to a single wire.
//
func ParseConns(conns string) ([]Conn, error) {
	p := newParser(conns)
	var out []Conn
	for p.tok != scanner.EOF {
		lhs, err := p.pin(false)
		if err != nil {
			return nil, err
		}
		if p.tok != '=' {
			return nil, p.unexpected("'=' expected")
		}
		p.next()
		rhs, err := p.pin(false)
		if err != nil {
			return nil, err
		}
		ks, vs := lhs.Names(), rhs.Names()
		switch {
		case len(ks) == len(vs):
			for i := range ks {
				out = append(out, Conn{ks[i], vs[i]})
			}
		case len(ks) == 1:
			for _, v := range vs {
				out = append(out, Conn{ks[0], v})
			}
		case len(vs) == 1:
			for _, k := range ks {
				out = append(out, Conn{k, vs[0]})
			}
		default:
			return nil, p.errorf(lhs.Pos, "pin count mismatch in "+lhs.Name+"="+rhs.Name)
		}
		if more, err := p.separator(); err != nil {
			return nil, err
		} else if !more {
			break
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return out, nil
}
