package classify

import (
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// stotramVerseMarkers extends the generic glyph set with the tandava
// spellings common on stotram template pages.
var stotramVerseMarkers = []string{"॥", "।", "ॐ", "नमः", "शिव", "हर", "राम", "कृष्ण", "तांडव", "ताण्डव"}

// aggressiveGlyphs is the narrow subset the last-resort pass requires.
var aggressiveGlyphs = []string{"॥", "।", "ॐ"}

// StotramPolicy is the specialized variant selected by page signature.
// It differs from the generic policy only in the expanded glyph set, the
// default section label, and a secondary aggressive pass over all
// elements when the primary pass found no verses.
type StotramPolicy struct {
	rules  ruleset
	logger *zap.Logger
}

// NewStotramPolicy builds the template-specific policy.
func NewStotramPolicy(logger *zap.Logger) *StotramPolicy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StotramPolicy{
		rules: ruleset{
			verseMarkers:   stotramVerseMarkers,
			meaningMarkers: meaningMarkers,
			defaultSection: "Shiva Tandav Stotram",
		},
		logger: logger,
	}
}

// Name implements Policy.
func (p *StotramPolicy) Name() string {
	return "stotram"
}

// Classify runs the shared walk with the expanded ruleset. Any unexpected
// failure while walking the DOM degrades to an empty-but-valid extraction
// rather than propagating: a page with zero extracted content is a valid,
// if degenerate, result.
func (p *StotramPolicy) Classify(doc *goquery.Document) (ex *Extraction) {
	ex = NewExtraction()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("stotram extraction failed", zap.Any("panic", r))
			ex = NewExtraction()
		}
	}()

	root := contentRoot(doc)
	current := walkContent(root, p.rules, ex)

	if len(ex.Verses) == 0 {
		p.logger.Warn("no verses found, trying aggressive extraction")
		p.aggressivePass(root, current, ex)
	}
	return ex
}

// aggressivePass scans every descendant element for long texts carrying
// the core glyphs. This is a fallback of last resort, run only when the
// primary pass produced zero verses.
func (p *StotramPolicy) aggressivePass(root *goquery.Selection, section string, ex *Extraction) {
	root.Find("*").Each(func(_ int, s *goquery.Selection) {
		text := NormalizeText(s.Text())
		if runeLen(text) <= verseRuneCutoff {
			return
		}
		if !containsAny(text, aggressiveGlyphs) {
			return
		}
		if ex.addVerse(text) {
			ex.Sections.AppendIfPresent(section, "VERSE: "+text)
		}
	})
}
