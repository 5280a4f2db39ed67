// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"strconv"

	"github.com/pkg/errors"
)

// SetUint sets the plugs of a bus to the binary representation of v,
// plugs[0] being the least significant bit. Each plug is set in turn, so
// intermediate values are propagated.
//
// SetUint fails with ErrRange if v does not fit in len(plugs) bits.
//
func SetUint(plugs []Plug, v uint64) error {
	if len(plugs) < 64 && v>>uint(len(plugs)) != 0 {
		return errors.Wrapf(ErrRange, "value %d on a %d bits bus", v, len(plugs))
	}
	for i, p := range plugs {
		if err := p.Set(i < 64 && v&(1<<uint(i)) != 0); err != nil {
			return errors.Wrap(err, "bit "+strconv.Itoa(i))
		}
	}
	return nil
}

// Uint returns the value of a bus, plugs[0] being the least significant bit.
// Bits beyond the 64th are ignored.
//
func Uint(plugs []Plug) uint64 {
	var v uint64
	for i, p := range plugs {
		if i >= 64 {
			break
		}
		if p.Value() {
			v |= 1 << uint(i)
		}
	}
	return v
}

// Bits returns the values of plugs in order.
//
func Bits(plugs []Plug) []bool {
	bs := make([]bool, len(plugs))
	for i, p := range plugs {
		bs[i] = p.Value()
	}
	return bs
}

// FormatBits returns the values of plugs as a string of 0s and 1s, most
// significant bit (the last plug) first.
//
func FormatBits(plugs []Plug) string {
	buf := make([]byte, len(plugs))
	for i, p := range plugs {
		c := byte('0')
		if p.Value() {
			c = '1'
		}
		buf[len(plugs)-1-i] = c
	}
	return string(buf)
}
