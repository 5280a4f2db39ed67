// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Wiring errors.
var (
	ErrDirection    = errors.New("plugs cannot be connected in either direction")
	ErrDriven       = errors.New("input already driven")
	ErrSelfLoop     = errors.New("plug connected to itself")
	ErrNotConnected = errors.New("plugs are not connected")
)

// Lookup errors.
var (
	ErrNotFound = errors.New("not found")
	ErrRange    = errors.New("index out of range")
	ErrRemoved  = errors.New("removed from board")
)

// Structural and lifecycle errors.
var (
	ErrDuplicateName = errors.New("duplicate name")
	ErrNotComposite  = errors.New("not a composite circuit")
	ErrFixedArity    = errors.New("fixed arity")
	ErrAncestor      = errors.New("circuit would become its own ancestor")
	ErrConnected     = errors.New("circuit has live connections")
	ErrForeign       = errors.New("belongs to another board")
	ErrInvalid       = errors.New("invalid handle")
)

// ErrHalted is returned by operations that would propagate values on a board
// that has been stopped by a fatal topology error. See Board.Resume.
//
var ErrHalted = errors.New("board halted")

// ErrRunning is returned when starting a clock that is already running.
//
var ErrRunning = errors.New("clock already running")

// A CycleError is the fatal error reported when a propagation pass nests
// deeper than the board's depth limit, which only happens with a
// combinational loop that never settles.
//
type CycleError struct {
	Depth int
	// Path holds the qualified names of the last plugs visited, most recent
	// last.
	Path []string
}

func (e *CycleError) Error() string {
	var b strings.Builder
	b.WriteString("propagation depth ")
	b.WriteString(strconv.Itoa(e.Depth))
	b.WriteString(" exceeded, combinational loop")
	if len(e.Path) > 0 {
		b.WriteString(" through ")
		b.WriteString(strings.Join(e.Path, " -> "))
	}
	return b.String()
}
