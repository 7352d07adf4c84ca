// Package export serializes page reports to a tabular text format.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anirudhrpi/stotram-scraper/internal/report"
)

// utf8BOM prefixes output files so spreadsheet tools decode Devanagari
// text correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// columns lists the PageReport fields in export order.
var columns = []string{
	"url", "title", "scraped_at",
	"verses", "meanings", "paragraphs", "sections",
	"full_text", "meta_description",
	"num_links", "num_images", "num_paragraphs", "num_verses", "num_sections",
	"content_preview",
}

// WriteCSV writes one report as a single BOM-prefixed UTF-8 CSV row under
// dir, with a timestamped filename derived from the page's domain. It
// returns the written path.
func WriteCSV(dir, domain string, rep report.PageReport, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create data dir %s: %w", dir, err)
	}
	name := fmt.Sprintf("scrape_results_%s_%s.csv", domain, now.Format("20060102_150405"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if _, err := f.Write(utf8BOM); err != nil {
		return "", fmt.Errorf("write bom: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	if err := w.Write(row(rep)); err != nil {
		return "", fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return path, nil
}

// row stringifies every field; non-scalar fields get a readable join.
func row(rep report.PageReport) []string {
	return []string{
		rep.URL,
		rep.Title,
		rep.ScrapedAt.Format(time.RFC3339),
		joinList(rep.Verses),
		joinList(rep.Meanings),
		joinList(rep.Paragraphs),
		rep.Sections.String(),
		rep.FullText,
		rep.MetaDescription,
		fmt.Sprint(rep.NumLinks),
		fmt.Sprint(rep.NumImages),
		fmt.Sprint(rep.NumParagraphs),
		fmt.Sprint(rep.NumVerses),
		fmt.Sprint(rep.NumSections),
		rep.ContentPreview,
	}
}

func joinList(items []string) string {
	return strings.Join(items, " | ")
}
