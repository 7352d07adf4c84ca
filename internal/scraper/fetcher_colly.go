package scraper

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// HTTPConfig controls the plain HTTP adapter.
type HTTPConfig struct {
	UserAgents []string
	Timeout    time.Duration
}

// HTTPFetcher issues single GETs through the Colly collector with the
// fixed browser header profile and a per-attempt rotated User-Agent.
// Redirects are followed and certificate verification stays enabled.
type HTTPFetcher struct {
	baseCollector *colly.Collector
	userAgents    []string
	logger        *zap.Logger
}

// NewHTTPFetcher constructs a configured Colly-based fetcher.
func NewHTTPFetcher(cfg HTTPConfig, logger *zap.Logger) *HTTPFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if len(cfg.UserAgents) == 0 {
		cfg.UserAgents = DefaultUserAgents()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	base := colly.NewCollector(colly.Async(false))
	base.AllowURLRevisit = true
	base.IgnoreRobotsTxt = true
	base.WithTransport(newHTTPTransport())
	base.SetRequestTimeout(cfg.Timeout)

	return &HTTPFetcher{
		baseCollector: base,
		userAgents:    cfg.UserAgents,
		logger:        logger,
	}
}

// Kind implements Fetcher.
func (f *HTTPFetcher) Kind() Kind {
	return KindHTTP
}

// Fetch performs one GET. Non-2xx responses surface as errors, which the
// orchestrator treats as an attempt failure.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string, attempt int) (Page, error) {
	userAgent := RotatedUserAgent(f.userAgents, attempt)
	f.logger.Debug("fetching over http",
		zap.String("url", rawURL),
		zap.Int("attempt", attempt+1),
		zap.String("user_agent", userAgent),
	)

	collector := f.baseCollector.Clone()
	collector.UserAgent = userAgent

	var (
		page     Page
		fetchErr error
		received bool
	)
	start := time.Now()

	collector.OnRequest(func(r *colly.Request) {
		for key, values := range BrowserHeaderProfile() {
			for _, v := range values {
				r.Headers.Set(key, v)
			}
		}
		r.Headers.Set("User-Agent", userAgent)
	})

	collector.OnResponse(func(r *colly.Response) {
		page = Page{
			URL:      r.Request.URL.String(),
			Body:     append([]byte(nil), r.Body...),
			Kind:     KindHTTP,
			Duration: time.Since(start),
		}
		received = true
	})

	collector.OnError(func(r *colly.Response, err error) {
		if err == nil {
			err = errors.New("unknown colly error")
		}
		if r != nil && r.StatusCode != 0 {
			err = fmt.Errorf("status %d: %w", r.StatusCode, err)
		}
		fetchErr = err
	})

	if err := collector.Visit(rawURL); err != nil {
		return Page{}, fmt.Errorf("http visit: %w", err)
	}
	collector.Wait()

	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	if fetchErr != nil {
		return Page{}, fmt.Errorf("http fetch: %w", fetchErr)
	}
	if !received {
		return Page{}, errors.New("http fetch produced no response")
	}
	return page, nil
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		ForceAttemptHTTP2:     true,
	}
}
