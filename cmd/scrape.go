package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/anirudhrpi/stotram-scraper/internal/classify"
	"github.com/anirudhrpi/stotram-scraper/internal/clock/system"
	"github.com/anirudhrpi/stotram-scraper/internal/config"
	"github.com/anirudhrpi/stotram-scraper/internal/export"
	"github.com/anirudhrpi/stotram-scraper/internal/logging"
	"github.com/anirudhrpi/stotram-scraper/internal/report"
	"github.com/anirudhrpi/stotram-scraper/internal/scraper"
	"github.com/anirudhrpi/stotram-scraper/internal/sink"
)

// newScrapeCmd creates the 'scrape' subcommand, which runs the whole
// pipeline for exactly one URL.
func newScrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape <url>",
		Short: "Fetch, classify, and export one page",
		Long: `Fetches the given URL through the adapter chain (browser, HTTP,
rendering proxy), classifies its content, and writes the report to a
timestamped CSV file. The scheme defaults to https:// when missing.`,
		Args: cobra.ExactArgs(1),
		RunE: runScrapeCommand,
	}
}

func runScrapeCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Development, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // best-effort flush

	target, err := scraper.NormalizeURL(args[0])
	if err != nil {
		return err
	}
	logger.Info("starting scrape", zap.String("url", target))

	fetchers, closeFetchers := buildFetchers(cmd.Context(), cfg, logger)
	defer closeFetchers()

	artifacts, err := sink.NewFS(cfg.DebugDir, 0, logger)
	if err != nil {
		logger.Warn("debug sink unavailable", zap.Error(err))
		artifacts = nil
	}

	orchestrator := scraper.NewOrchestrator(
		fetchers,
		scraper.NewContentGate(cfg.MinContentBytes, cfg.BlocklistTerms),
		cfg.MaxRetries,
		scraper.TimerSleeper{},
		sinkOrNil(artifacts),
		logger,
	)

	doc, kind, err := orchestrator.FetchPage(cmd.Context(), target)
	if err != nil {
		if errors.Is(err, scraper.ErrAdaptersExhausted) {
			logger.Error("failed to fetch page", zap.String("url", target))
			return fmt.Errorf("failed to fetch %s: all strategies exhausted", target)
		}
		return fmt.Errorf("fetch %s: %w", target, err)
	}
	logger.Info("page accepted", zap.String("adapter", string(kind)))

	policy := classify.Detect(doc, logger)
	logger.Info("classification policy selected", zap.String("policy", policy.Name()))
	extraction := policy.Classify(doc)

	var clk scraper.Clock = system.New()
	rep := report.Build(target, doc, extraction, clk.Now())
	logger.Info("extraction complete",
		zap.Int("verses", rep.NumVerses),
		zap.Int("paragraphs", rep.NumParagraphs),
		zap.Int("sections", rep.NumSections),
	)

	path, err := export.WriteCSV(cfg.DataDir, scraper.URLDomain(target), rep, rep.ScrapedAt)
	if err != nil {
		return fmt.Errorf("export report: %w", err)
	}

	printSummary(cmd, rep, path)
	return nil
}

// buildFetchers assembles the adapter chain in fallback order. A failed
// browser launch disables that adapter rather than aborting the run; the
// proxy adapter joins only when a credential is configured.
func buildFetchers(ctx context.Context, cfg config.Config, logger *zap.Logger) ([]scraper.Fetcher, func()) {
	var (
		fetchers []scraper.Fetcher
		closers  []func()
	)

	browser, err := scraper.NewBrowserFetcher(scraper.BrowserConfig{
		Enabled:           cfg.BrowserEnabled,
		NavigationTimeout: cfg.NavigationTimeout,
		SelectorTimeout:   cfg.SelectorTimeout,
		SettlePause:       cfg.SettlePause,
	}, logger)
	switch {
	case err == nil:
		fetchers = append(fetchers, browser)
		closers = append(closers, func() {
			if cerr := browser.Close(ctx); cerr != nil {
				logger.Warn("browser teardown failed", zap.Error(cerr))
			}
		})
	case errors.Is(err, scraper.ErrBrowserDisabled):
		logger.Info("browser rendering disabled by configuration")
	default:
		logger.Warn("browser launch failed; adapter disabled", zap.Error(err))
	}

	fetchers = append(fetchers, scraper.NewHTTPFetcher(scraper.HTTPConfig{
		UserAgents: cfg.UserAgents,
		Timeout:    cfg.RequestTimeout,
	}, logger))

	if cfg.ProxyConfigured() {
		proxy, perr := scraper.NewProxyFetcher(scraper.ProxyConfig{
			APIKey:   cfg.ProxyAPIKey,
			Endpoint: cfg.ProxyEndpoint,
			Timeout:  cfg.ProxyTimeout,
		}, logger)
		if perr != nil {
			logger.Warn("proxy adapter unavailable", zap.Error(perr))
		} else {
			fetchers = append(fetchers, proxy)
		}
	}

	return fetchers, func() {
		for _, closeFn := range closers {
			closeFn()
		}
	}
}

// sinkOrNil keeps a typed nil from sneaking into the interface value.
func sinkOrNil(fs *sink.FS) scraper.ArtifactSink {
	if fs == nil {
		return nil
	}
	return fs
}

func printSummary(cmd *cobra.Command, rep report.PageReport, path string) {
	cmd.Printf("Scraped: %s\n", rep.URL)
	cmd.Printf("Title: %s\n", rep.Title)
	cmd.Printf("Verses: %d  Meanings: %d  Paragraphs: %d  Sections: %d\n",
		rep.NumVerses, len(rep.Meanings), rep.NumParagraphs, rep.NumSections)
	if rep.ContentPreview != "" {
		cmd.Printf("Preview:\n%s\n", rep.ContentPreview)
	}
	cmd.Printf("Results saved to: %s\n", path)
}
