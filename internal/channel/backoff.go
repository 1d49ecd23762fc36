package channel

import (
	"math/rand"
	"time"

	"jobportal-client/internal/common/config"
)

// Backoff computes jittered exponential reconnect delays. Not safe for
// concurrent use; each connection loop owns one.
type Backoff struct {
	initial    time.Duration
	max        time.Duration
	multiplier float64
	jitter     float64

	next time.Duration
}

func NewBackoff(cfg config.BackoffConfig) *Backoff {
	b := &Backoff{
		initial:    time.Duration(cfg.Initial) * time.Millisecond,
		max:        time.Duration(cfg.Max) * time.Millisecond,
		multiplier: cfg.Multiplier,
		jitter:     cfg.Jitter,
	}
	b.Reset()
	return b
}

// Next returns the delay before the next attempt and advances the schedule.
func (b *Backoff) Next() time.Duration {
	d := b.next

	scaled := time.Duration(float64(b.next) * b.multiplier)
	if scaled > b.max {
		scaled = b.max
	}
	b.next = scaled

	if b.jitter > 0 {
		// Spread attempts across +/- jitter fraction of the delay.
		delta := float64(d) * b.jitter
		d = time.Duration(float64(d) - delta + rand.Float64()*2*delta)
	}
	if d < 0 {
		d = 0
	}
	return d
}

// Reset restarts the schedule after a successful connection.
func (b *Backoff) Reset() {
	b.next = b.initial
}
