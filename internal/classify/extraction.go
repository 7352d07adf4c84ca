// Package classify partitions a page's text nodes into verse, meaning,
// and paragraph segments grouped under heading-delimited sections.
package classify

import (
	"fmt"
	"strings"
)

// Extraction is the classifier output for one page. Within each category
// no two entries share the same normalized text; first occurrence wins.
type Extraction struct {
	Verses     []string
	Meanings   []string
	Paragraphs []string
	Sections   *SectionMap

	seenVerses     map[string]struct{}
	seenMeanings   map[string]struct{}
	seenParagraphs map[string]struct{}
}

// NewExtraction returns an empty but valid extraction.
func NewExtraction() *Extraction {
	return &Extraction{
		Verses:         []string{},
		Meanings:       []string{},
		Paragraphs:     []string{},
		Sections:       NewSectionMap(),
		seenVerses:     map[string]struct{}{},
		seenMeanings:   map[string]struct{}{},
		seenParagraphs: map[string]struct{}{},
	}
}

// addVerse appends text to the verse list unless already present,
// reporting whether it was admitted.
func (e *Extraction) addVerse(text string) bool {
	if _, dup := e.seenVerses[text]; dup {
		return false
	}
	e.seenVerses[text] = struct{}{}
	e.Verses = append(e.Verses, text)
	return true
}

func (e *Extraction) addMeaning(text string) bool {
	if _, dup := e.seenMeanings[text]; dup {
		return false
	}
	e.seenMeanings[text] = struct{}{}
	e.Meanings = append(e.Meanings, text)
	return true
}

func (e *Extraction) addParagraph(text string) bool {
	if _, dup := e.seenParagraphs[text]; dup {
		return false
	}
	e.seenParagraphs[text] = struct{}{}
	e.Paragraphs = append(e.Paragraphs, text)
	return true
}

// FullText renders the canonical report: a VERSES block, then MEANINGS,
// then SECTIONS, each omitted entirely when its source is empty.
func (e *Extraction) FullText() string {
	var parts []string
	if len(e.Verses) > 0 {
		parts = append(parts, "VERSES:")
		parts = append(parts, e.Verses...)
	}
	if len(e.Meanings) > 0 {
		parts = append(parts, "\nMEANINGS:")
		parts = append(parts, e.Meanings...)
	}
	if e.Sections.Len() > 0 {
		parts = append(parts, "\nSECTIONS:")
		for _, name := range e.Sections.Names() {
			parts = append(parts, fmt.Sprintf("\n--- %s ---", name))
			parts = append(parts, e.Sections.Items(name)...)
		}
	}
	return strings.Join(parts, "\n\n")
}

// SectionMap is an insertion-ordered mapping from section heading text to
// the segments assigned while that heading was active.
type SectionMap struct {
	names []string
	items map[string][]string
}

// NewSectionMap returns an empty section map.
func NewSectionMap() *SectionMap {
	return &SectionMap{items: map[string][]string{}}
}

// Ensure registers a heading, creating an empty segment list if unseen.
func (m *SectionMap) Ensure(name string) {
	if _, ok := m.items[name]; ok {
		return
	}
	m.items[name] = []string{}
	m.names = append(m.names, name)
}

// AppendIfPresent adds text under name only when a heading has already
// created the section. Content before the first heading stays out of the
// section map.
func (m *SectionMap) AppendIfPresent(name, text string) {
	if _, ok := m.items[name]; !ok {
		return
	}
	m.items[name] = append(m.items[name], text)
}

// Names returns section headings in first-seen order.
func (m *SectionMap) Names() []string {
	return append([]string(nil), m.names...)
}

// Items returns the segment list for a section.
func (m *SectionMap) Items(name string) []string {
	return append([]string(nil), m.items[name]...)
}

// Len reports the number of sections.
func (m *SectionMap) Len() int {
	return len(m.names)
}

// String renders the map in insertion order, for stringified export.
func (m *SectionMap) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, name := range m.names {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s: %v", name, m.items[name])
	}
	b.WriteString("}")
	return b.String()
}
