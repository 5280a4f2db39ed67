// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"github.com/db47h/logicsim"
	"github.com/db47h/logicsim/internal/config"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	cfgPath string
	verbose bool
	locale  string

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:   "logicsim",
		Short: "Digital logic circuit simulator",
		Long: `logicsim simulates digital logic circuits built from gates, adders,
multiplexers and flip-flops.

Run "logicsim truth and" to print the truth table of a 2 inputs AND gate.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "logicsim.yaml", "configuration file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log debug messages")
	pf.StringVar(&a.locale, "locale", "", "locale used for default circuit names (overrides the configuration)")

	root.AddCommand(
		a.truthCmd(),
		a.adderCmd(),
		a.clockCmd(),
		a.demoCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.locale != "" {
		cfg.Locale = a.locale
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err = cfg.Validate(); err != nil {
		return err
	}
	if a.log, err = cfg.Logger(); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	a.cfg = cfg
	a.log.Debug("configuration loaded",
		zap.String("file", a.cfgPath),
		zap.String("locale", cfg.Locale),
		zap.Int("max_depth", cfg.Engine.MaxDepth),
		zap.Duration("clock_period", cfg.Clock.Period))
	return nil
}

func (a *app) board(opts ...logicsim.Option) *logicsim.Board {
	return logicsim.NewBoard(append(a.cfg.BoardOptions(a.log), opts...)...)
}
