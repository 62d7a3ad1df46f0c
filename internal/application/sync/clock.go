package sync

import (
	"context"
	"time"
)

// Clock abstracts time for retry backoff and page pacing so tests can run
// without real delays
type Clock interface {
	// Now returns the current time
	Now() time.Time

	// Sleep blocks for the duration or until the context is cancelled.
	// Returns the context error on cancellation.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

// NewClock creates a Clock backed by real time
func NewClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
