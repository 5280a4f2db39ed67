// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the YAML settings of the logicsim command.
//
// A missing file yields the defaults:
//
//	locale: en
//	clock:
//	  period: 1s
//	engine:
//	  max_depth: 1024
//	log:
//	  level: warn
//	  development: false
//	  outputs: [stderr]
//
package config

import (
	"os"
	"time"

	"github.com/db47h/logicsim"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config holds the logicsim settings.
//
type Config struct {
	Locale string `yaml:"locale"`
	Clock  Clock  `yaml:"clock"`
	Engine Engine `yaml:"engine"`
	Log    Log    `yaml:"log"`
}

// Clock configures the simulation clock.
//
type Clock struct {
	Period time.Duration `yaml:"period"`
}

// Engine configures propagation.
//
type Engine struct {
	// Maximum propagation depth before a pass is aborted as a combinational
	// loop.
	MaxDepth int `yaml:"max_depth"`
}

// Log configures the zap logger.
//
type Log struct {
	Level       string   `yaml:"level"` // debug, info, warn, error
	Development bool     `yaml:"development"`
	Outputs     []string `yaml:"outputs"` // file paths, stdout or stderr
}

// Default returns the default settings.
//
func Default() *Config {
	return &Config{
		Locale: "en",
		Clock:  Clock{Period: time.Second},
		Engine: Engine{MaxDepth: logicsim.DefaultMaxDepth},
		Log: Log{
			Level:   "warn",
			Outputs: []string{"stderr"},
		},
	}
}

// Load reads the settings from the YAML file at path over the defaults. The
// defaults are returned as is if path is empty or the file does not exist.
//
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "read config")
	}
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config "+path)
	}
	if err = cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Validate checks the settings.
//
func (c *Config) Validate() error {
	if c.Clock.Period <= 0 {
		return errors.Errorf("clock.period: invalid period %v", c.Clock.Period)
	}
	if c.Engine.MaxDepth <= 0 {
		return errors.Errorf("engine.max_depth: invalid depth %d", c.Engine.MaxDepth)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return errors.Wrap(err, "locale")
	}
	return nil
}

// Tag returns the configured locale, English if it cannot be parsed.
//
func (c *Config) Tag() language.Tag {
	t, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return t
}

// Logger builds a zap logger from the log settings.
//
func (c *Config) Logger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	lvl, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, errors.Wrap(err, "log.level")
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	if len(c.Log.Outputs) > 0 {
		zc.OutputPaths = c.Log.Outputs
	}
	l, err := zc.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return l, nil
}

// BoardOptions returns the board options matching the settings, logging to
// l.
//
func (c *Config) BoardOptions(l *zap.Logger) []logicsim.Option {
	return []logicsim.Option{
		logicsim.WithLogger(l),
		logicsim.WithMaxDepth(c.Engine.MaxDepth),
		logicsim.WithLocale(c.Tag()),
	}
}
