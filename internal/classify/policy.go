package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Classification thresholds. These mirror the long-standing extraction
// heuristics; tune with care since they decide category membership.
const (
	minTextRunes        = 10
	verseRuneCutoff     = 50
	paragraphRuneCutoff = 30
)

// verseMarkers are the sacred-script glyphs and words whose presence
// classifies a segment as a verse regardless of length.
var verseMarkers = []string{"॥", "।", "ॐ", "नमः", "शिव", "हर", "राम", "कृष्ण"}

// meaningMarkers flag translation or commentary segments (matched
// case-insensitively).
var meaningMarkers = []string{"meaning", "अर्थ", "भावार्थ", "explanation", "translation"}

// contentSelectors are probed in order to locate the main content root;
// the whole body is the fallback.
var contentSelectors = []string{
	"article",
	"main",
	"div.entry-content",
	"div.article-content",
	"div.post-content",
	"div.content",
	"div.main-content",
	"div#content",
	"div.post",
	"div.entry",
	"div.page-content",
}

// textTagSelector lists the text-bearing elements the classifier walks in
// document order.
const textTagSelector = "p, div, span, h1, h2, h3, h4, h5, h6, pre, blockquote"

var headingTags = map[string]struct{}{
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
}

// Policy is one classification strategy over a parsed document.
// Implementations must return a non-nil, valid (possibly empty)
// extraction for every input.
type Policy interface {
	Name() string
	Classify(doc *goquery.Document) *Extraction
}

// stotramSignature selects the specialized template policy when present
// anywhere in the document markup.
const stotramSignature = "shiv-tandav-stotram"

// Detect picks the policy for a page: the specialized stotram policy on a
// signature match, the generic policy otherwise.
func Detect(doc *goquery.Document, logger *zap.Logger) Policy {
	html, err := doc.Html()
	if err == nil && strings.Contains(html, stotramSignature) {
		return NewStotramPolicy(logger)
	}
	return NewGenericPolicy(logger)
}

// NormalizeText collapses all whitespace runs to single spaces and trims.
func NormalizeText(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

func containsAnyFold(text string, markers []string) bool {
	lower := strings.ToLower(text)
	for _, m := range markers {
		if strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

// contentRoot probes the structural selectors in order; first match wins,
// else the body.
func contentRoot(doc *goquery.Document) *goquery.Selection {
	for _, sel := range contentSelectors {
		if found := doc.Find(sel).First(); found.Length() > 0 {
			return found
		}
	}
	return doc.Find("body").First()
}
