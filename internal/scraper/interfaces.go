package scraper

import (
	"context"
	"time"
)

// Fetcher is one strategy for retrieving a page's HTML. Implementations
// receive the zero-based attempt index so they can vary per-attempt
// behavior (the HTTP adapter rotates its User-Agent with it).
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, attempt int) (Page, error)
	Kind() Kind
}

// Sleeper abstracts the backoff waits between retry attempts so tests can
// observe the schedule without real delays.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// ArtifactSink receives raw page snapshots keyed by adapter kind.
// Failures are advisory; callers log and continue.
type ArtifactSink interface {
	Save(ctx context.Context, kind Kind, body []byte) (string, error)
}
