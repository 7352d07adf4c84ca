package scraper

import (
	"context"
	"testing"
	"time"
)

func TestBackoffDelayDoubles(t *testing.T) {
	cases := []struct {
		failed int
		want   time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{-1, 1 * time.Second},
	}
	for _, tc := range cases {
		if got := backoffDelay(tc.failed); got != tc.want {
			t.Fatalf("backoffDelay(%d) = %v, want %v", tc.failed, got, tc.want)
		}
	}
}

func TestTimerSleeperHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	TimerSleeper{}.Sleep(ctx, 5*time.Second)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("sleep did not return promptly on cancellation: %v", elapsed)
	}
}

func TestTimerSleeperZeroDelay(t *testing.T) {
	start := time.Now()
	TimerSleeper{}.Sleep(context.Background(), 0)
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("zero delay slept for %v", elapsed)
	}
}
