package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// ErrBrowserDisabled indicates browser rendering has been disabled via
// configuration.
var ErrBrowserDisabled = errors.New("browser rendering disabled")

// mainContentSelector mirrors the elements a rendered article page is
// expected to expose once its JavaScript has settled.
const mainContentSelector = `main, article, .content, .article, [role="main"]`

// BrowserConfig controls the chromedp-backed adapter.
type BrowserConfig struct {
	Enabled           bool
	UserAgent         string
	NavigationTimeout time.Duration
	SelectorTimeout   time.Duration
	SettlePause       time.Duration
}

// BrowserFetcher renders pages with headless Chrome via chromedp. It owns
// the allocator and browser contexts for its lifetime; Close releases
// them on every path.
type BrowserFetcher struct {
	allocatorCancel context.CancelFunc
	browserCtx      context.Context
	browserCancel   context.CancelFunc
	logger          *zap.Logger
	cfg             BrowserConfig
}

// NewBrowserFetcher launches the headless browser and warms it up. A
// failed launch tears down any partial state and returns the error so the
// caller disables this adapter instead of carrying a broken one.
func NewBrowserFetcher(cfg BrowserConfig, logger *zap.Logger) (*BrowserFetcher, error) {
	if !cfg.Enabled {
		return nil, ErrBrowserDisabled
	}
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = 120 * time.Second
	}
	if cfg.SelectorTimeout <= 0 {
		cfg.SelectorTimeout = 30 * time.Second
	}
	if cfg.SettlePause <= 0 {
		cfg.SettlePause = 2 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgents[0]
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("enable-automation", false),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(cfg.UserAgent),
	)
	allocatorCtx, allocatorCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocatorCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocatorCancel()
		return nil, fmt.Errorf("chromedp warmup: %w", err)
	}

	return &BrowserFetcher{
		allocatorCancel: allocatorCancel,
		browserCtx:      browserCtx,
		browserCancel:   browserCancel,
		logger:          logger,
		cfg:             cfg,
	}, nil
}

// Kind implements Fetcher.
func (f *BrowserFetcher) Kind() Kind {
	return KindBrowser
}

// Close tears down the chromedp browser and allocator contexts.
func (f *BrowserFetcher) Close(ctx context.Context) error {
	if f == nil {
		return nil
	}
	f.browserCancel()
	f.allocatorCancel()
	select {
	case <-ctx.Done():
	default:
	}
	return nil
}

// Fetch navigates with the headless browser, waits the page out, triggers
// lazy-loaded content with one scroll, and returns the rendered DOM.
func (f *BrowserFetcher) Fetch(ctx context.Context, rawURL string, _ int) (Page, error) {
	if f == nil {
		return Page{}, ErrBrowserDisabled
	}

	tabCtx, cancelTab := chromedp.NewContext(f.browserCtx)
	defer cancelTab()

	taskCtx, cancelTask := context.WithTimeout(tabCtx, f.cfg.NavigationTimeout)
	defer cancelTask()

	stopForward := forwardCancel(ctx, cancelTask)
	defer stopForward()

	start := time.Now()
	html, err := f.runBrowser(taskCtx, rawURL)
	if err != nil {
		return Page{}, fmt.Errorf("chromedp run: %w", err)
	}

	return Page{
		URL:      rawURL,
		Body:     []byte(html),
		Kind:     KindBrowser,
		Duration: time.Since(start),
	}, nil
}

func (f *BrowserFetcher) runBrowser(ctx context.Context, rawURL string) (string, error) {
	var html string
	tasks := chromedp.Tasks{
		network.Enable(),
		emulation.SetUserAgentOverride(f.cfg.UserAgent),
		f.extraHeadersAction(),
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		f.waitMainContentAction(),
		chromedp.Evaluate(`window.scrollBy(0, window.innerHeight)`, nil),
		chromedp.Sleep(f.cfg.SettlePause),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	}
	if err := chromedp.Run(ctx, tasks); err != nil {
		return "", err
	}
	return html, nil
}

// waitMainContentAction waits a bounded time for one of the main-content
// selectors to appear. Timing out is non-fatal: some pages never expose
// the expected landmarks, and the gate decides usability downstream.
func (f *BrowserFetcher) waitMainContentAction() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		waitCtx, cancel := context.WithTimeout(ctx, f.cfg.SelectorTimeout)
		defer cancel()
		if err := chromedp.WaitVisible(mainContentSelector, chromedp.ByQuery).Do(waitCtx); err != nil {
			f.logger.Warn("timeout waiting for main content selector", zap.Error(err))
		}
		return nil
	})
}

func (f *BrowserFetcher) extraHeadersAction() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		headers := BrowserHeaderProfile()
		if err := network.SetExtraHTTPHeaders(toNetworkHeaders(headers)).Do(ctx); err != nil {
			return fmt.Errorf("set extra headers: %w", err)
		}
		return nil
	})
}

func toNetworkHeaders(h http.Header) network.Headers {
	headers := network.Headers{}
	for key, values := range h {
		if len(values) == 0 {
			continue
		}
		if len(values) == 1 {
			headers[key] = values[0]
		} else {
			headers[key] = append([]string(nil), values...)
		}
	}
	return headers
}

func forwardCancel(parent context.Context, cancel context.CancelFunc) func() {
	if parent == nil {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-parent.Done():
			cancel()
		case <-done:
		}
	}()
	return func() { close(done) }
}
