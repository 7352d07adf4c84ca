// Package scraper defines core types shared across the fetch pipeline.
package scraper

import "time"

// Kind identifies which renderer adapter produced a page. It tags
// provenance for diagnostics and debug artifacts only.
type Kind string

// Adapter kinds in fallback order.
const (
	KindBrowser Kind = "browser"
	KindHTTP    Kind = "http"
	KindProxy   Kind = "proxy"
)

// Page is the raw HTML returned by an adapter before gating. Transient:
// it is consumed by the classifier after parsing and never persisted.
type Page struct {
	URL      string
	Body     []byte
	Kind     Kind
	Duration time.Duration
}

// ContentLength returns the body size in bytes.
func (p Page) ContentLength() int {
	return len(p.Body)
}
