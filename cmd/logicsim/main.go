// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command logicsim builds and runs circuits from the hwlib part library.
//
//	logicsim truth xor -n 3
//	logicsim adder --bits 4 9 9
//	logicsim clock --period 500ms --count 10
//	logicsim demo
//
// Settings are read from a YAML file (see internal/config), by default
// logicsim.yaml in the current directory.
//
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
