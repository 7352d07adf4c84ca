// Package cmd defines and implements the CLI commands for the
// stotram-scraper executable.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anirudhrpi/stotram-scraper/internal/config"
)

var cfgFile string

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stotram-scraper",
		Short: "Scrape and classify devotional text pages.",
		Long: `stotram-scraper retrieves a single web page through a chain of
fetch strategies (headless browser, plain HTTP, rendering proxy) and
classifies its text into verses, meanings, and paragraphs, producing a
structured report saved as CSV.`,
		SilenceUsage: true,
	}

	cobra.OnInitialize(func() {
		config.Init(cfgFile)
	})

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./stotram-scraper.yaml)")

	cmd.AddCommand(newScrapeCmd())
	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
