// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Evaluator is the interface that custom parts built using reflection must
// implement. See MakePart.
//
type Evaluator interface {
	Eval()
}

// a pinField maps a struct field to a range of input or output values.
type pinField struct {
	index int
	bus   bool
	first int // first value index
	size  int
}

// MakePart wraps an Evaluator into a primitive part.
// Input/output pins are identified by field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"` to identify input and output
// pins. By default, the pin name is the field name in lowercase. A specific
// pin name can be forced by adding it in the tag: `hw:"in,pin_name"`.
//
// Pins must be bool fields. Buses must be arrays of bool, and array fields
// named bus yield pins bus[0], bus[1], etc.
//
// On every evaluation a new value of the struct is created, its input fields
// are set to the input values, then its Eval method is called. Output fields
// are then copied to the outputs.
//
// MakePart panics if t is not a struct or pointer to struct, or if a tagged
// field has an unsupported type or tag.
//
//	type mux struct {
//		A   bool `hw:"in"`
//		B   bool `hw:"in"`
//		Sel bool `hw:"in"`
//		Out bool `hw:"out"`
//	}
//
//	func (m *mux) Eval() {
//		if m.Sel {
//			m.Out = m.B
//		} else {
//			m.Out = m.A
//		}
//	}
//
//	var Mux = logicsim.MakePart(&mux{})
//
func MakePart(t Evaluator) *PartSpec {
	typ := reflect.TypeOf(t)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}

	sp := &PartSpec{
		Name: typ.Name(),
	}
	var ins, outs []pinField

	n := typ.NumField()
	for i := 0; i < n; i++ {
		var isInput bool
		f := typ.Field(i)
		pin := strings.ToLower(f.Name)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		tv := strings.Split(tag, ",")
		if len(tv) > 2 {
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		if len(tv) == 2 && tv[1] != "" {
			pin = tv[1]
		}
		switch tv[0] {
		case "in":
			isInput = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}

		var names []string
		pf := pinField{index: i, size: 1}
		ft := f.Type
		switch k := ft.Kind(); {
		case k == reflect.Array && ft.Elem().Kind() == reflect.Bool:
			pf.bus = true
			pf.size = ft.Len()
			for j := 0; j < ft.Len(); j++ {
				names = append(names, BusPinName(pin, j))
			}
		case k == reflect.Bool:
			names = []string{pin}
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", k, f.Name, typ.Name()))
		}
		if isInput {
			pf.first = len(sp.Inputs)
			sp.Inputs = append(sp.Inputs, names...)
			ins = append(ins, pf)
		} else {
			pf.first = len(sp.Outputs)
			sp.Outputs = append(sp.Outputs, names...)
			outs = append(outs, pf)
		}
	}
	sp.Eval = reflectEval(typ, ins, outs)
	return sp
}

func reflectEval(typ reflect.Type, ins, outs []pinField) EvalFn {
	return func(in, out []bool) {
		v := reflect.New(typ)
		e := v.Elem()
		for _, pf := range ins {
			fv := e.Field(pf.index)
			if !pf.bus {
				fv.SetBool(in[pf.first])
				continue
			}
			for j := 0; j < pf.size; j++ {
				fv.Index(j).SetBool(in[pf.first+j])
			}
		}
		v.Interface().(Evaluator).Eval()
		for _, pf := range outs {
			fv := e.Field(pf.index)
			if !pf.bus {
				out[pf.first] = fv.Bool()
				continue
			}
			for j := 0; j < pf.size; j++ {
				out[pf.first+j] = fv.Index(j).Bool()
			}
		}
	}
}
