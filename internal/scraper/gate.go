package scraper

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Gate rejection reasons. The orchestrator treats both identically to a
// transport error for retry purposes.
var (
	ErrThinContent    = errors.New("content below minimum size")
	ErrBlockedContent = errors.New("content matched blocklist term")
)

// DefaultBlocklistTerms flag bot-detection and challenge pages.
var DefaultBlocklistTerms = []string{"captcha", "access denied", "cloudflare"}

// DefaultMinContentBytes is the smallest body accepted as a real page.
const DefaultMinContentBytes = 1000

// ContentGate decides whether a fetched page is usable. A page passes only
// if it meets the minimum size and no blocklist term appears in either the
// raw bytes or the parsed document's text.
type ContentGate struct {
	minBytes  int
	blocklist []string
}

// NewContentGate builds a gate; zero or empty arguments fall back to the
// defaults above.
func NewContentGate(minBytes int, blocklist []string) *ContentGate {
	if minBytes <= 0 {
		minBytes = DefaultMinContentBytes
	}
	if len(blocklist) == 0 {
		blocklist = DefaultBlocklistTerms
	}
	lowered := make([]string, 0, len(blocklist))
	for _, term := range blocklist {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			lowered = append(lowered, term)
		}
	}
	return &ContentGate{minBytes: minBytes, blocklist: lowered}
}

// Check gates the body and returns the parsed document on acceptance so
// callers do not parse twice.
func (g *ContentGate) Check(body []byte) (*goquery.Document, error) {
	if len(body) < g.minBytes {
		return nil, fmt.Errorf("%w: %d bytes < %d", ErrThinContent, len(body), g.minBytes)
	}
	lowerBody := strings.ToLower(string(body))
	for _, term := range g.blocklist {
		if strings.Contains(lowerBody, term) {
			return nil, fmt.Errorf("%w: %q in raw content", ErrBlockedContent, term)
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	// Structural re-scan: markup stripped, so terms split across tags in
	// the raw bytes still surface here.
	docText := strings.ToLower(doc.Text())
	for _, term := range g.blocklist {
		if strings.Contains(docText, term) {
			return nil, fmt.Errorf("%w: %q in document text", ErrBlockedContent, term)
		}
	}
	return doc, nil
}
