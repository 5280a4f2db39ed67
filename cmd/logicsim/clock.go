// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/db47h/logicsim"
	hl "github.com/db47h/logicsim/hwlib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func (a *app) clockCmd() *cobra.Command {
	var (
		period time.Duration
		count  int
	)
	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Drive a NOT gate with a clock",
		Long: `Connect a clock to a NOT gate and print the gate output on every
change, until count ticks have been printed or the command is
interrupted.

Line 0 shows the settled power-on state, before the first tick. It is not
counted: --count n prints n+1 lines, numbered 0 to n.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("period") {
				period = a.cfg.Clock.Period
			}
			return a.runClock(cmd, period, count)
		},
	}
	cmd.Flags().DurationVarP(&period, "period", "p", time.Second, "clock period (defaults to the configured period)")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "stop after count ticks, not counting the power-on line 0, 0 runs until interrupted")
	return cmd
}

func (a *app) runClock(cmd *cobra.Command, period time.Duration, count int) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// observers run with the board locked: only hand the value over.
	var out logicsim.Plug
	events := make(chan bool, 16)
	b := a.board(logicsim.WithObserver(func(p logicsim.Plug, v bool) {
		if p != out {
			return
		}
		select {
		case events <- v:
		case <-ctx.Done():
		}
	}))

	src, err := b.New(logicsim.TopLevel, hl.ClockSource(), "clk")
	if err != nil {
		return err
	}
	inv, err := b.New(logicsim.TopLevel, hl.Not(), "inv")
	if err != nil {
		return err
	}
	o, err := src.Output("O")
	if err != nil {
		return err
	}
	i, err := inv.Input("I")
	if err != nil {
		return err
	}
	if out, err = inv.Output("O"); err != nil {
		return err
	}
	if err = o.Connect(i); err != nil {
		return err
	}
	clk, err := logicsim.NewClock(o, period, logicsim.WithClockLogger(a.log.With(zap.String("cmd", "clock"))))
	if err != nil {
		return err
	}
	if err = b.Settle(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := clk.Start(gctx); err != nil {
			return err
		}
		<-gctx.Done()
		clk.Stop()
		return clk.Err()
	})
	g.Go(func() error {
		w := cmd.OutOrStdout()
		r := lipgloss.NewRenderer(w)
		// n is 0 for the power-on state, then the tick number.
		for n := 0; ; n++ {
			select {
			case <-gctx.Done():
				return nil
			case v := <-events:
				fmt.Fprintf(w, "%4d  clk %s  out %s\n", n, level(r, !v), level(r, v))
				if count > 0 && n >= count {
					cancel()
					return nil
				}
			}
		}
	})
	return g.Wait()
}

var (
	high = lipgloss.Color("2")
	low  = lipgloss.Color("1")
)

// level renders a logic level, green for 1 and red for 0.
func level(r *lipgloss.Renderer, v bool) string {
	c := low
	if v {
		c = high
	}
	return r.NewStyle().Foreground(c).Render(bit(v))
}
