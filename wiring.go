// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"github.com/db47h/logicsim/internal/hdl"
	"github.com/pkg/errors"
)

// chipPins is the part number of the host chip's own pins.
const chipPins = -1

// an end is a pin of a chip's part, or of the chip itself.
type end struct {
	part int
	pin  string
}

// a net is a named wire inside a chip with exactly one driver.
type net struct {
	name   string
	driver end
	sinks  []end
}

type wire struct {
	driver *end
	sinks  []end
	chipIn bool
}

// wiring collects the wires of a chip in order of appearance.
//
type wiring struct {
	m     map[string]*wire
	order []string
}

func (wr *wiring) get(name string) *wire {
	w := wr.m[name]
	if w == nil {
		w = new(wire)
		wr.m[name] = w
		wr.order = append(wr.order, name)
	}
	return w
}

func pinName(subs []Sub, e end) string {
	if e.part == chipPins {
		return e.pin
	}
	return subs[e.part].Part.PartName() + "." + e.pin
}

func index(list []string) map[string]bool {
	m := make(map[string]bool, len(list))
	for _, s := range list {
		m[s] = true
	}
	return m
}

// buildNets resolves the connection strings of parts into nets.
//
// Every wire must have exactly one driver: either a chip input or a part
// output. Wires that are driven but lead nowhere, and wires read by an input
// but never driven, are errors.
//
func buildNets(inputs, outputs []string, subs []Sub) ([]net, error) {
	wr := &wiring{m: make(map[string]*wire)}
	for _, in := range inputs {
		w := wr.get(in)
		w.driver = &end{chipPins, in}
		w.chipIn = true
	}

	for pnum, sub := range subs {
		ins, outs := sub.Part.Pins()
		isIn, isOut := index(ins), index(outs)
		conns, err := hdl.ParseConns(sub.Conns)
		if err != nil {
			return nil, errors.Wrap(err, sub.Part.PartName())
		}
		used := make(map[string]bool)
		for _, c := range conns {
			this := end{pnum, c.Pin}
			switch {
			case isIn[c.Pin]:
				if used[c.Pin] {
					return nil, errors.New(pinName(subs, this) + ": input pin connected more than once")
				}
				used[c.Pin] = true
				w := wr.get(c.Wire)
				w.sinks = append(w.sinks, this)
			case isOut[c.Pin]:
				w := wr.get(c.Wire)
				switch {
				case w.chipIn:
					return nil, errors.New(pinName(subs, this) + ":" + c.Wire + ": chip input pin used as output")
				case w.driver != nil:
					return nil, errors.New(pinName(subs, this) + ":" + c.Wire + ": wire already driven by " + pinName(subs, *w.driver))
				}
				w.driver = &this
			default:
				return nil, errors.New("invalid pin name " + c.Pin + " for part " + sub.Part.PartName())
			}
		}
	}

	isOut := index(outputs)
	for _, out := range outputs {
		w := wr.get(out)
		w.sinks = append(w.sinks, end{chipPins, out})
	}

	nets := make([]net, 0, len(wr.order))
	for _, name := range wr.order {
		w := wr.m[name]
		switch {
		case w.driver == nil:
			return nil, errors.New("pin " + name + " not connected to any output")
		case len(w.sinks) == 0 && !w.chipIn && !isOut[name]:
			return nil, errors.New("pin " + name + " not connected to any input")
		case len(w.sinks) == 0:
			continue
		}
		nets = append(nets, net{name: name, driver: *w.driver, sinks: w.sinks})
	}
	return nets, nil
}
