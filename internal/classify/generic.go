package classify

import (
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// ruleset parameterizes the shared walk so the specialized policy only
// swaps markers and the default section label.
type ruleset struct {
	verseMarkers   []string
	meaningMarkers []string
	defaultSection string
}

// GenericPolicy applies the standard rule chain: verse, then meaning,
// then paragraph, first match wins.
type GenericPolicy struct {
	rules  ruleset
	logger *zap.Logger
}

// NewGenericPolicy builds the default classification policy.
func NewGenericPolicy(logger *zap.Logger) *GenericPolicy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenericPolicy{
		rules: ruleset{
			verseMarkers:   verseMarkers,
			meaningMarkers: meaningMarkers,
			defaultSection: "General",
		},
		logger: logger,
	}
}

// Name implements Policy.
func (p *GenericPolicy) Name() string {
	return "generic"
}

// Classify walks the main content root and buckets each text-bearing
// element.
func (p *GenericPolicy) Classify(doc *goquery.Document) *Extraction {
	ex := NewExtraction()
	root := contentRoot(doc)
	walkContent(root, p.rules, ex)
	p.logger.Debug("classified page",
		zap.Int("verses", len(ex.Verses)),
		zap.Int("meanings", len(ex.Meanings)),
		zap.Int("paragraphs", len(ex.Paragraphs)),
		zap.Int("sections", ex.Sections.Len()),
	)
	return ex
}

// walkContent iterates the text-bearing descendants in document order,
// tracking the active section heading. It returns the section active when
// the walk ended so a follow-up pass can keep attributing to it.
func walkContent(root *goquery.Selection, rules ruleset, ex *Extraction) string {
	current := rules.defaultSection
	root.Find(textTagSelector).Each(func(_ int, s *goquery.Selection) {
		text := NormalizeText(s.Text())
		if text == "" || runeLen(text) < minTextRunes {
			return
		}
		if _, heading := headingTags[goquery.NodeName(s)]; heading {
			current = text
			ex.Sections.Ensure(current)
			return
		}
		classifyText(text, current, rules, ex)
	})
	return current
}

// classifyText applies the fixed-precedence rule chain to one segment.
// The section list receives the (tagged) text only when the category
// dedup admitted it, so sections never hold a rejected duplicate.
func classifyText(text, section string, rules ruleset, ex *Extraction) {
	switch {
	case containsAny(text, rules.verseMarkers) || runeLen(text) > verseRuneCutoff:
		if ex.addVerse(text) {
			ex.Sections.AppendIfPresent(section, "VERSE: "+text)
		}
	case containsAnyFold(text, rules.meaningMarkers):
		if ex.addMeaning(text) {
			ex.Sections.AppendIfPresent(section, "MEANING: "+text)
		}
	case runeLen(text) > paragraphRuneCutoff:
		if ex.addParagraph(text) {
			ex.Sections.AppendIfPresent(section, text)
		}
	}
}
