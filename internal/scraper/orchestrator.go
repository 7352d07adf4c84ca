package scraper

import (
	"context"
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anirudhrpi/stotram-scraper/internal/metrics"
)

// ErrAdaptersExhausted is the terminal absence value for one URL: every
// configured adapter spent its retry budget without an accepted page.
var ErrAdaptersExhausted = errors.New("all adapters exhausted")

// Orchestrator sequences the renderer adapters with per-adapter retries
// and shared acceptance gating, returning the first accepted page.
type Orchestrator struct {
	fetchers   []Fetcher
	gate       *ContentGate
	maxRetries int
	sleeper    Sleeper
	sink       ArtifactSink
	logger     *zap.Logger
}

// NewOrchestrator wires the adapter chain. Nil fetchers are skipped so a
// disabled browser adapter simply falls through. The sink may be nil.
func NewOrchestrator(
	fetchers []Fetcher,
	gate *ContentGate,
	maxRetries int,
	sleeper Sleeper,
	sink ArtifactSink,
	logger *zap.Logger,
) *Orchestrator {
	if gate == nil {
		gate = NewContentGate(0, nil)
	}
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	if sleeper == nil {
		sleeper = TimerSleeper{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		fetchers:   fetchers,
		gate:       gate,
		maxRetries: maxRetries,
		sleeper:    sleeper,
		sink:       sink,
		logger:     logger.With(zap.String("run_id", uuid.NewString())),
	}
}

// FetchPage walks the adapter chain and returns the first page that
// passes the gate, already parsed. Transport errors and gate rejections
// never escape; total exhaustion is reported as ErrAdaptersExhausted.
func (o *Orchestrator) FetchPage(ctx context.Context, rawURL string) (*goquery.Document, Kind, error) {
	engaged := 0
	for _, fetcher := range o.fetchers {
		if fetcher == nil {
			continue
		}
		if engaged > 0 {
			metrics.AdapterFallbacks.Inc()
			o.logger.Info("falling back to next adapter", zap.String("adapter", string(fetcher.Kind())))
		}
		engaged++

		doc, err := o.tryAdapter(ctx, fetcher, rawURL)
		if err == nil {
			return doc, fetcher.Kind(), nil
		}
		if ctx.Err() != nil {
			return nil, "", fmt.Errorf("fetch canceled: %w", ctx.Err())
		}
		o.logger.Warn("adapter exhausted",
			zap.String("adapter", string(fetcher.Kind())),
			zap.String("url", rawURL),
			zap.Error(err),
		)
	}
	return nil, "", ErrAdaptersExhausted
}

func (o *Orchestrator) tryAdapter(ctx context.Context, fetcher Fetcher, rawURL string) (*goquery.Document, error) {
	kind := string(fetcher.Kind())
	for attempt := 0; attempt < o.maxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(attempt - 1)
			o.logger.Info("waiting before retry",
				zap.String("adapter", kind),
				zap.Int("attempt", attempt+1),
				zap.Duration("delay", delay),
			)
			o.sleeper.Sleep(ctx, delay)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		metrics.FetchAttempts.WithLabelValues(kind).Inc()
		page, err := fetcher.Fetch(ctx, rawURL, attempt)
		if err != nil {
			metrics.FetchRejections.WithLabelValues(kind, "transport").Inc()
			o.logger.Warn("fetch attempt failed",
				zap.String("adapter", kind),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			continue
		}

		doc, gateErr := o.gate.Check(page.Body)
		if gateErr != nil {
			metrics.FetchRejections.WithLabelValues(kind, "gate").Inc()
			o.logger.Warn("page rejected by acceptance gate",
				zap.String("adapter", kind),
				zap.Int("attempt", attempt+1),
				zap.Int("bytes", page.ContentLength()),
				zap.Error(gateErr),
			)
			continue
		}

		metrics.PagesAccepted.WithLabelValues(kind).Inc()
		o.saveArtifact(ctx, fetcher.Kind(), page.Body)
		return doc, nil
	}
	return nil, fmt.Errorf("adapter %s: %d attempts exhausted", kind, o.maxRetries)
}

func (o *Orchestrator) saveArtifact(ctx context.Context, kind Kind, body []byte) {
	if o.sink == nil {
		return
	}
	path, err := o.sink.Save(ctx, kind, body)
	if err != nil {
		o.logger.Warn("failed to save debug artifact", zap.String("adapter", string(kind)), zap.Error(err))
		return
	}
	o.logger.Debug("saved debug artifact", zap.String("path", path))
}
