package scraper

import (
	"context"
	"time"
)

// DefaultMaxRetries is the per-adapter attempt budget.
const DefaultMaxRetries = 3

// backoffDelay returns the wait after the failed zero-based attempt:
// 1s, 2s, 4s, doubling with each failure.
func backoffDelay(failedAttempt int) time.Duration {
	if failedAttempt < 0 {
		failedAttempt = 0
	}
	return time.Duration(1<<uint(failedAttempt)) * time.Second
}

// TimerSleeper implements Sleeper with a real timer that honors context
// cancellation.
type TimerSleeper struct{}

// Sleep blocks for d or until ctx finishes, whichever comes first.
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
