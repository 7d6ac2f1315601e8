package session

import (
	"context"
	"time"
)

// Delayer models the artificial processing latency of the original flow. It
// must not busy-block: the timer implementation honours context cancellation.
type Delayer interface {
	Wait(ctx context.Context) error
}

type fixedDelay struct {
	d time.Duration
}

func (f fixedDelay) Wait(ctx context.Context) error {
	if f.d <= 0 {
		return nil
	}
	timer := time.NewTimer(f.d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FixedDelay returns a Delayer that waits the given duration.
func FixedDelay(d time.Duration) Delayer {
	return fixedDelay{d: d}
}

// NoDelay returns a Delayer that completes immediately. This is the test and
// default configuration.
func NoDelay() Delayer {
	return fixedDelay{}
}
