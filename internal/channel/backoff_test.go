package channel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jobportal-client/internal/common/config"
)

func TestBackoffSchedule(t *testing.T) {
	b := NewBackoff(config.BackoffConfig{
		Initial:    1000,
		Max:        30000,
		Multiplier: 2.0,
		Jitter:     0,
	})

	expected := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
		30 * time.Second,
		30 * time.Second,
	}
	for i, want := range expected {
		assert.Equal(t, want, b.Next(), "attempt %d", i+1)
	}
}

func TestBackoffReset(t *testing.T) {
	b := NewBackoff(config.BackoffConfig{
		Initial:    1000,
		Max:        30000,
		Multiplier: 2.0,
		Jitter:     0,
	})

	b.Next()
	b.Next()
	b.Reset()

	assert.Equal(t, time.Second, b.Next())
}

func TestBackoffJitterBounds(t *testing.T) {
	b := NewBackoff(config.BackoffConfig{
		Initial:    1000,
		Max:        1000,
		Multiplier: 2.0,
		Jitter:     0.2,
	})

	for i := 0; i < 100; i++ {
		d := b.Next()
		assert.GreaterOrEqual(t, d, 800*time.Millisecond)
		assert.LessOrEqual(t, d, 1200*time.Millisecond)
	}
}
