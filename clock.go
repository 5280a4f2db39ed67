// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package logicsim

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// A Clock toggles a plug at a fixed period from a background goroutine.
//
// Each toggle is a regular call to Plug.Toggle, serialized with every other
// operation on the board by the board lock. The clock goroutine stops when
// Stop is called, when the context passed to Start is done, when the plug is
// removed or when the board halts.
//
type Clock struct {
	p      Plug
	period time.Duration
	log    *zap.Logger
	tick   <-chan time.Time

	mu    sync.Mutex
	stop  chan struct{} // nil when stopped
	done  chan struct{}
	ticks uint64
	err   error
}

// A ClockOption configures a Clock.
//
type ClockOption func(*Clock)

// WithClockLogger sets the clock logger. It defaults to the board logger.
//
func WithClockLogger(l *zap.Logger) ClockOption {
	return func(c *Clock) {
		if l != nil {
			c.log = l
		}
	}
}

// WithTicker makes the clock toggle its plug on every value received from
// ch instead of using a time.Ticker. The period is then only informative.
//
func WithTicker(ch <-chan time.Time) ClockOption {
	return func(c *Clock) {
		c.tick = ch
	}
}

// NewClock returns a new stopped clock that will toggle p every period.
//
// p must be able to drive other plugs and must not be driven itself: an
// output, or an input of a composite circuit, without source. A good host is
// the output of a part that never changes its outputs on its own, like
// hwlib.ClockSource.
//
func NewClock(p Plug, period time.Duration, opts ...ClockOption) (*Clock, error) {
	if p.b == nil {
		return nil, ErrInvalid
	}
	if period <= 0 {
		return nil, errors.Errorf("invalid clock period %v", period)
	}
	b := p.b
	b.mu.Lock()
	if err := b.checkPlug(p); err != nil {
		b.mu.Unlock()
		return nil, err
	}
	if _, ok := b.driveScope(p.n); !ok {
		err := errors.Wrapf(ErrDirection, "clock on %s", b.plugPath(p.n))
		b.mu.Unlock()
		return nil, err
	}
	if s := b.plugs[p.n].src; s != none {
		err := errors.Wrapf(ErrDriven, "clock on %s by %s", b.plugPath(p.n), b.plugPath(s))
		b.mu.Unlock()
		return nil, err
	}
	c := &Clock{
		p:      p,
		period: period,
		log:    b.log.With(zap.String("clock", b.plugPath(p.n))),
	}
	b.mu.Unlock()

	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Plug returns the plug driven by the clock.
//
func (c *Clock) Plug() Plug { return c.p }

// Period returns the clock period.
//
func (c *Clock) Period() time.Duration { return c.period }

// Start starts the clock. It returns ErrRunning if the clock is already
// running. The first toggle happens one period after Start.
//
func (c *Clock) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return ErrRunning
	}
	tick, release := c.tick, func() {}
	if tick == nil {
		t := time.NewTicker(c.period)
		tick, release = t.C, t.Stop
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	c.err = nil
	c.log.Debug("clock started", zap.Duration("period", c.period))
	go c.run(ctx, c.stop, c.done, tick, release)
	return nil
}

func (c *Clock) run(ctx context.Context, stop, done chan struct{}, tick <-chan time.Time, release func()) {
	defer close(done)
	defer release()
	for {
		select {
		case <-ctx.Done():
			c.finish(stop, nil)
			return
		case <-stop:
			return
		case <-tick:
			if !c.toggle(stop) {
				return
			}
		}
	}
}

// toggle toggles the plug unless the run identified by stop has been
// stopped in the meantime.
//
func (c *Clock) toggle(stop chan struct{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != stop {
		return false
	}
	if err := c.p.Toggle(); err != nil {
		c.err = err
		c.stop = nil
		c.log.Warn("clock stopped", zap.Error(err))
		return false
	}
	c.ticks++
	return true
}

func (c *Clock) finish(stop chan struct{}, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop == stop {
		c.stop = nil
		c.err = err
		c.log.Debug("clock context done")
	}
}

// Stop stops the clock and waits for its goroutine to exit. No toggle
// happens once Stop has returned and the plug keeps its last value. Calling
// Stop on a stopped clock is a no-op.
//
// Stop must not be called from a board observer.
//
func (c *Clock) Stop() {
	c.mu.Lock()
	if c.stop != nil {
		close(c.stop)
		c.stop = nil
		c.log.Debug("clock stopped", zap.Uint64("ticks", c.ticks))
	}
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Running returns true if the clock is running.
//
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

// Ticks returns the number of toggles performed since the clock was created.
//
func (c *Clock) Ticks() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// Err returns the error that stopped the clock on its own, like ErrRemoved
// if its plug was removed or ErrHalted if the board halted.
//
func (c *Clock) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
