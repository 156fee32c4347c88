// Package replay drives a tap.Writer from a tap.Suite, emitting the
// stream one line at a time as a live test run would.
package replay

import (
	"context"
	"errors"
	"math"

	"github.com/abdul-hamid-achik/testanything/packages/tap"
	"golang.org/x/time/rate"
)

// InterruptedMessage is the bail out message written when the context is cancelled
const InterruptedMessage = "interrupted"

// Summary describes what a replay emitted
type Summary struct {
	Emitted   int
	Passed    int
	Failed    int
	BailedOut bool
}

// Streamer replays suites through a tap.Writer
type Streamer struct {
	rate     float64
	bail     bool
	announce bool
}

type Option func(*Streamer)

// WithRate limits output to the given number of results per second.
// Zero or less means unlimited.
func WithRate(perSecond float64) Option {
	return func(s *Streamer) {
		s.rate = perSecond
	}
}

// WithBail stops the stream with a bail out line after the first failure
func WithBail(b bool) Option {
	return func(s *Streamer) {
		s.bail = b
	}
}

// WithAnnounce writes the writer's name banner after the plan
func WithAnnounce(a bool) Option {
	return func(s *Streamer) {
		s.announce = a
	}
}

func NewStreamer(opts ...Option) *Streamer {
	s := &Streamer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Streamer) limiter() *rate.Limiter {
	if s.rate <= 0 || math.IsInf(s.rate, 1) {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(s.rate), 1)
}

// Run writes the plan line and then every result of suite, numbered by
// position. With bail enabled the first failing result is followed by
// "Bail out! <name>" and nothing else. Cancelling ctx ends the stream
// with "Bail out! interrupted" and returns ctx's error.
func (s *Streamer) Run(ctx context.Context, w *tap.Writer, suite tap.Suite) (Summary, error) {
	var sum Summary

	if err := w.Plan(1, suite.Len()); err != nil {
		return sum, err
	}
	if s.announce {
		if err := w.Name(); err != nil {
			return sum, err
		}
	}

	limiter := s.limiter()
	for i, r := range suite.Tests() {
		if err := limiter.Wait(ctx); err != nil {
			return s.interrupt(ctx, w, sum, err)
		}

		if err := w.Result(i+1, r); err != nil {
			return sum, err
		}
		sum.Emitted++
		if r.Passed() {
			sum.Passed++
			continue
		}
		sum.Failed++

		if s.bail {
			sum.BailedOut = true
			return sum, w.BailOutWithMessage(r.Name())
		}
	}

	return sum, nil
}

func (s *Streamer) interrupt(ctx context.Context, w *tap.Writer, sum Summary, waitErr error) (Summary, error) {
	cause := ctx.Err()
	if cause == nil {
		// Wait can also fail when the deadline would pass before the next token
		cause = waitErr
	}
	sum.BailedOut = true
	if err := w.BailOutWithMessage(InterruptedMessage); err != nil {
		return sum, errors.Join(cause, err)
	}
	return sum, cause
}
