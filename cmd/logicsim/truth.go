// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const maxTruthInputs = 12

func (a *app) truthCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "truth PART",
		Short: "Print the truth table of a library part",
		Long: `Print the truth table of a combinational part of the library.

The first input is the most significant bit of the row number.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: partNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			part, err := lookupPart(args[0], n)
			if err != nil {
				return err
			}
			b := a.board()
			c, err := b.Place(logicsim.TopLevel, part, "")
			if err != nil {
				return err
			}
			if err = b.Settle(); err != nil {
				return err
			}
			return printTruth(cmd.OutOrStdout(), c)
		},
	}
	cmd.Flags().IntVarP(&n, "width", "n", 2, "number of gate inputs, or bus width")
	return cmd
}

func printTruth(w io.Writer, c logicsim.Circuit) error {
	ins, outs := c.Inputs(), c.Outputs()
	if len(ins) > maxTruthInputs {
		return errors.Errorf("%s has %d inputs, at most %d are supported", c.Name(), len(ins), maxTruthInputs)
	}
	plugs := append(ins[:len(ins):len(ins)], outs...)
	widths := make([]int, len(plugs))
	names := make([]string, len(plugs))
	for i, p := range plugs {
		names[i] = p.Name()
		widths[i] = len(names[i])
	}

	r := lipgloss.NewRenderer(w)
	head := r.NewStyle().Bold(true)
	fmt.Fprintln(w, head.Render(truthRow(names, widths, len(ins))))

	cells := make([]string, len(plugs))
	for v := 0; v < 1<<uint(len(ins)); v++ {
		for i, p := range ins {
			if err := p.Set(v&(1<<uint(len(ins)-1-i)) != 0); err != nil {
				return err
			}
		}
		for i, p := range plugs {
			cells[i] = bit(p.Value())
		}
		fmt.Fprintln(w, truthRow(cells, widths, len(ins)))
	}
	return nil
}

// truthRow formats a table row, inputs and outputs separated by a bar.
func truthRow(cells []string, widths []int, nIn int) string {
	var sb strings.Builder
	for i, s := range cells {
		switch {
		case i == nIn:
			sb.WriteString(" | ")
		case i > 0:
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%-*s", widths[i], s)
	}
	return strings.TrimRight(sb.String(), " ")
}

func bit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
