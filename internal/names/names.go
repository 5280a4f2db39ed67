// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package names loads the line oriented string resources used to seed
// default plug and circuit names.
//
// A resource is a sequence of "Key = value" lines. Blank lines and lines
// starting with '#' are ignored. Values may be quoted with single or double
// quotes. Only keys in the Plug and Circuit sections are retained.
//
package names

import (
	"bufio"
	"embed"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

//go:embed lang/strings_*
var langFS embed.FS

var (
	supported = []language.Tag{language.English, language.French}
	matcher   = language.NewMatcher(supported)
)

// Sections retained by Parse.
const (
	PlugPrefix    = "Plug."
	CircuitPrefix = "Circuit."
)

// Table is a set of display strings for one locale.
//
type Table struct {
	tag language.Tag
	m   map[string]string
}

// Parse reads a string resource from r.
//
func Parse(r io.Reader) (*Table, error) {
	t := &Table{tag: language.Und, m: make(map[string]string)}
	s := bufio.NewScanner(r)
	for n := 1; s.Scan(); n++ {
		line := strings.TrimSpace(s.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		i := strings.IndexByte(line, '=')
		if i < 0 {
			return nil, errors.Errorf("line %d: missing '='", n)
		}
		key := strings.TrimSpace(line[:i])
		if key == "" {
			return nil, errors.Errorf("line %d: empty key", n)
		}
		if !strings.HasPrefix(key, PlugPrefix) && !strings.HasPrefix(key, CircuitPrefix) {
			continue
		}
		t.m[key] = norm.NFC.String(unquote(strings.TrimSpace(line[i+1:])))
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "read string resource")
	}
	return t, nil
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}

// Load returns the embedded table that best matches tag. English is used
// when nothing matches.
//
func Load(tag language.Tag) (*Table, error) {
	_, i, _ := matcher.Match(tag)
	best := supported[i]
	base, _ := best.Base()
	f, err := langFS.Open("lang/strings_" + base.String())
	if err != nil {
		return nil, errors.Wrap(err, "open string resource")
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, errors.Wrap(err, "strings_"+base.String())
	}
	t.tag = best
	return t, nil
}

// Default returns the English table.
//
func Default() *Table {
	t, err := Load(language.English)
	if err != nil {
		panic(err)
	}
	return t
}

// Tag returns the locale of the table.
//
func (t *Table) Tag() language.Tag { return t.tag }

// Lookup returns the value for key.
//
func (t *Table) Lookup(key string) (string, bool) {
	v, ok := t.m[key]
	return v, ok
}

// Get returns the value for key, or def if key is missing or empty.
//
func (t *Table) Get(key, def string) string {
	if v, ok := t.m[key]; ok && v != "" {
		return v
	}
	return def
}

// Len returns the number of retained entries.
//
func (t *Table) Len() int { return len(t.m) }
