package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// DefaultProxyEndpoint is the rendering-as-a-service API.
const DefaultProxyEndpoint = "https://app.scrapingbee.com/api/v1/"

// ErrProxyNotConfigured indicates no API key was provided; the adapter is
// only engaged when explicitly configured.
var ErrProxyNotConfigured = errors.New("proxy rendering not configured")

// ProxyConfig controls the proxy rendering adapter.
type ProxyConfig struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
}

// ProxyFetcher delegates fetching to an external rendering service that
// executes JavaScript behind premium proxies.
type ProxyFetcher struct {
	baseCollector *colly.Collector
	apiKey        string
	endpoint      string
	logger        *zap.Logger
}

// NewProxyFetcher builds the adapter; it errors without an API key.
func NewProxyFetcher(cfg ProxyConfig, logger *zap.Logger) (*ProxyFetcher, error) {
	if cfg.APIKey == "" {
		return nil, ErrProxyNotConfigured
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultProxyEndpoint
	}
	if cfg.Timeout <= 0 {
		// API calls carry the upstream render wait, so allow extra room.
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	base := colly.NewCollector(colly.Async(false))
	base.AllowURLRevisit = true
	base.IgnoreRobotsTxt = true
	base.WithTransport(newHTTPTransport())
	base.SetRequestTimeout(cfg.Timeout)

	return &ProxyFetcher{
		baseCollector: base,
		apiKey:        cfg.APIKey,
		endpoint:      cfg.Endpoint,
		logger:        logger,
	}, nil
}

// Kind implements Fetcher.
func (f *ProxyFetcher) Kind() Kind {
	return KindProxy
}

// Fetch asks the rendering service for the target URL with JS rendering,
// premium proxies, and US geolocation.
func (f *ProxyFetcher) Fetch(ctx context.Context, rawURL string, attempt int) (Page, error) {
	apiURL, err := f.requestURL(rawURL)
	if err != nil {
		return Page{}, err
	}
	f.logger.Debug("fetching via rendering proxy",
		zap.String("url", rawURL),
		zap.Int("attempt", attempt+1),
	)

	collector := f.baseCollector.Clone()

	var (
		page     Page
		fetchErr error
		received bool
	)
	start := time.Now()

	collector.OnResponse(func(r *colly.Response) {
		page = Page{
			URL:      rawURL,
			Body:     append([]byte(nil), r.Body...),
			Kind:     KindProxy,
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

	if err := collector.Visit(apiURL); err != nil {
		return Page{}, fmt.Errorf("proxy visit: %w", err)
	}
	collector.Wait()

	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	if fetchErr != nil {
		return Page{}, fmt.Errorf("proxy fetch: %w", fetchErr)
	}
	if !received {
		return Page{}, errors.New("proxy fetch produced no response")
	}
	return page, nil
}

func (f *ProxyFetcher) requestURL(rawURL string) (string, error) {
	endpoint, err := url.Parse(f.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse proxy endpoint: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", f.apiKey)
	params.Set("url", rawURL)
	params.Set("render_js", "true")
	params.Set("premium_proxy", "true")
	params.Set("country_code", "us")
	params.Set("wait", "3000")
	params.Set("timeout", "30000")
	endpoint.RawQuery = params.Encode()
	return endpoint.String(), nil
}
