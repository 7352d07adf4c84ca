// Package report aggregates classifier output with page metadata into the
// final immutable record for one URL.
package report

import (
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/anirudhrpi/stotram-scraper/internal/classify"
	"github.com/anirudhrpi/stotram-scraper/internal/metrics"
)

// NoTitlePlaceholder fills Title when the document has none.
const NoTitlePlaceholder = "No title found"

// previewRuneLimit bounds ContentPreview; the ellipsis marker is appended
// only when truncation actually occurred.
const previewRuneLimit = 1000

// PageReport is the structured record produced once per invocation.
// Counts always equal the lengths of the corresponding lists.
type PageReport struct {
	URL             string
	Title           string
	ScrapedAt       time.Time
	Verses          []string
	Meanings        []string
	Paragraphs      []string
	Sections        *classify.SectionMap
	FullText        string
	MetaDescription string
	NumLinks        int
	NumImages       int
	NumParagraphs   int
	NumVerses       int
	NumSections     int
	ContentPreview  string
}

// Build assembles the report from the parsed document and the classifier
// extraction.
func Build(url string, doc *goquery.Document, ex *classify.Extraction, now time.Time) PageReport {
	if ex == nil {
		ex = classify.NewExtraction()
	}
	fullText := ex.FullText()

	rep := PageReport{
		URL:             url,
		Title:           pageTitle(doc),
		ScrapedAt:       now,
		Verses:          ex.Verses,
		Meanings:        ex.Meanings,
		Paragraphs:      ex.Paragraphs,
		Sections:        ex.Sections,
		FullText:        fullText,
		MetaDescription: metaDescription(doc),
		NumLinks:        doc.Find("a").Length(),
		NumImages:       doc.Find("img").Length(),
		NumParagraphs:   len(ex.Paragraphs),
		NumVerses:       len(ex.Verses),
		NumSections:     ex.Sections.Len(),
		ContentPreview:  preview(fullText),
	}
	metrics.ReportsBuilt.Inc()
	return rep
}

func pageTitle(doc *goquery.Document) string {
	title := classify.NormalizeText(doc.Find("title").First().Text())
	if title == "" {
		return NoTitlePlaceholder
	}
	return title
}

// metaDescription prefers the name=description meta tag and falls back to
// property=og:description.
func metaDescription(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		return classify.NormalizeText(content)
	}
	if content, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
		return classify.NormalizeText(content)
	}
	return ""
}

func preview(fullText string) string {
	runes := []rune(fullText)
	if len(runes) <= previewRuneLimit {
		return fullText
	}
	return string(runes[:previewRuneLimit]) + "..."
}
