package console

import (
	"math/rand"
	"time"

	"github.com/okian/codearena/pkg/logger"
)

// Option applies a configuration option to the View.
type Option func(*View)

// WithColor enables or disables ANSI colouring.
func WithColor(enabled bool) Option {
	return func(v *View) { v.color = enabled }
}

// WithConfirm sets how yes/no questions are answered.
func WithConfirm(fn func(msg string) bool) Option {
	return func(v *View) {
		if fn != nil {
			v.confirm = fn
		}
	}
}

// WithSleep replaces the pause between confetti bursts.
func WithSleep(fn func(time.Duration)) Option {
	return func(v *View) {
		if fn != nil {
			v.sleep = fn
		}
	}
}

// WithSeed makes confetti deterministic.
func WithSeed(seed int64) Option {
	return func(v *View) { v.rnd = rand.New(rand.NewSource(seed)) } //nolint:gosec // decoration only
}

// WithLogger sets the logger for dispatch failures.
func WithLogger(l logger.Logger) Option {
	return func(v *View) {
		if l != nil {
			v.logger = l
		}
	}
}
