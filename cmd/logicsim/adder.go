// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/db47h/logicsim"
	hl "github.com/db47h/logicsim/hwlib"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (a *app) adderCmd() *cobra.Command {
	var (
		bits  int
		carry bool
	)
	cmd := &cobra.Command{
		Use:   "adder A B",
		Short: "Add two numbers with a ripple carry adder",
		Long: `Build an N bits ripple carry adder out of full adders, set its inputs
and print the sum. Numbers accept the 0b, 0o and 0x prefixes.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if bits < 1 || bits > 64 {
				return errors.Errorf("invalid adder width %d", bits)
			}
			var xy [2]uint64
			for i, s := range args {
				v, err := strconv.ParseUint(s, 0, 64)
				if err != nil {
					return errors.Wrap(err, "operand")
				}
				xy[i] = v
			}
			spec, err := hl.AdderN(bits)
			if err != nil {
				return err
			}
			b := a.board()
			c, err := b.Place(logicsim.TopLevel, spec, "")
			if err != nil {
				return err
			}
			if err = b.Settle(); err != nil {
				return err
			}
			as, err := c.InputBus("A")
			if err != nil {
				return err
			}
			bs, err := c.InputBus("B")
			if err != nil {
				return err
			}
			cin, err := c.Input("Cin")
			if err != nil {
				return err
			}
			if err = logicsim.SetUint(as, xy[0]); err != nil {
				return errors.Wrap(err, "A")
			}
			if err = logicsim.SetUint(bs, xy[1]); err != nil {
				return errors.Wrap(err, "B")
			}
			if err = cin.Set(carry); err != nil {
				return err
			}
			s, err := c.OutputBus("S")
			if err != nil {
				return err
			}
			cout, err := c.Output("Cout")
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "  %s (%d)\n", logicsim.FormatBits(as), xy[0])
			fmt.Fprintf(w, "+ %s (%d)\n", logicsim.FormatBits(bs), xy[1])
			if carry {
				fmt.Fprintf(w, "+ carry in\n")
			}
			fmt.Fprintf(w, "= %s (%d), carry %s\n", logicsim.FormatBits(s), logicsim.Uint(s), bit(cout.Value()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&bits, "bits", "b", 8, "adder width")
	cmd.Flags().BoolVarP(&carry, "carry", "c", false, "set the carry input")
	return cmd
}
