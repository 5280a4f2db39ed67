// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/db47h/logicsim"
	hl "github.com/db47h/logicsim/hwlib"
	"github.com/spf13/cobra"
)

func (a *app) demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a half adder through all its inputs",
		Long: `Build a Main circuit around a half adder, run it through all its input
combinations and print the state of every plug.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemo(cmd.OutOrStdout())
		},
	}
}

func (a *app) runDemo(w io.Writer) error {
	b := a.board()
	top, err := b.NewComposite(logicsim.TopLevel, "Main")
	if err != nil {
		return err
	}
	var pins [4]logicsim.Plug // A, B, S, C
	for i, name := range []string{"A", "B"} {
		if pins[i], err = top.AddInput(name); err != nil {
			return err
		}
	}
	for i, name := range []string{"S", "C"} {
		if pins[2+i], err = top.AddOutput(name); err != nil {
			return err
		}
	}
	ha, err := b.Place(top, hl.HalfAdder(), "adder")
	if err != nil {
		return err
	}
	for i, name := range []string{"A", "B"} {
		p, err := ha.Input(name)
		if err != nil {
			return err
		}
		if err = pins[i].Connect(p); err != nil {
			return err
		}
	}
	for i, name := range []string{"S", "C"} {
		p, err := ha.Output(name)
		if err != nil {
			return err
		}
		if err = p.Connect(pins[2+i]); err != nil {
			return err
		}
	}
	if err = b.Settle(); err != nil {
		return err
	}

	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Bold(true)
	plugs := append(top.Inputs(), ha.Inputs()...)
	plugs = append(plugs, ha.Outputs()...)
	plugs = append(plugs, top.Outputs()...)
	for v := 0; v < 4; v++ {
		if err = pins[0].Set(v&2 != 0); err != nil {
			return err
		}
		if err = pins[1].Set(v&1 != 0); err != nil {
			return err
		}
		fmt.Fprintln(w, title.Render(fmt.Sprintf("A=%s B=%s -> S=%s C=%s",
			bit(pins[0].Value()), bit(pins[1].Value()), bit(pins[2].Value()), bit(pins[3].Value()))))
		for _, p := range plugs {
			printPlug(w, r, p)
		}
	}
	return nil
}

// printPlug prints the name, value, source and destinations of p.
func printPlug(w io.Writer, r *lipgloss.Renderer, p logicsim.Plug) {
	src := "-"
	if s, ok := p.Source(); ok {
		src = s.String()
	}
	var dst []string
	for _, d := range p.Destinations() {
		dst = append(dst, d.String())
	}
	if len(dst) == 0 {
		dst = []string{"-"}
	}
	fmt.Fprintf(w, "  %-14s %s  <- %-14s -> %s\n", p, level(r, p.Value()), src, strings.Join(dst, ", "))
}
