package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractionDedup(t *testing.T) {
	ex := NewExtraction()

	require.True(t, ex.addVerse("ॐ नमः शिवाय"))
	require.False(t, ex.addVerse("ॐ नमः शिवाय"))
	require.Len(t, ex.Verses, 1)

	require.True(t, ex.addMeaning("Meaning: salutations"))
	require.False(t, ex.addMeaning("Meaning: salutations"))
	require.Len(t, ex.Meanings, 1)

	require.True(t, ex.addParagraph("a plain paragraph of prose"))
	require.False(t, ex.addParagraph("a plain paragraph of prose"))
	require.Len(t, ex.Paragraphs, 1)
}

func TestFullTextBlocks(t *testing.T) {
	ex := NewExtraction()
	ex.addVerse("verse one")
	ex.addVerse("verse two")
	ex.addMeaning("meaning one")
	ex.Sections.Ensure("Intro")
	ex.Sections.AppendIfPresent("Intro", "VERSE: verse one")

	got := ex.FullText()
	require.True(t, strings.HasPrefix(got, "VERSES:"))
	require.Contains(t, got, "verse one\n\nverse two")
	require.Contains(t, got, "\nMEANINGS:\n\nmeaning one")
	require.Contains(t, got, "\nSECTIONS:")
	require.Contains(t, got, "\n--- Intro ---")

	verseIdx := strings.Index(got, "VERSES:")
	meaningIdx := strings.Index(got, "MEANINGS:")
	sectionIdx := strings.Index(got, "SECTIONS:")
	require.Less(t, verseIdx, meaningIdx)
	require.Less(t, meaningIdx, sectionIdx)
}

func TestFullTextOmitsEmptyBlocks(t *testing.T) {
	ex := NewExtraction()
	ex.addMeaning("only a meaning")

	got := ex.FullText()
	require.NotContains(t, got, "VERSES:")
	require.NotContains(t, got, "SECTIONS:")
	require.Contains(t, got, "MEANINGS:")
}

func TestFullTextEmptyExtraction(t *testing.T) {
	// Paragraphs never render in the full text, so a paragraphs-only
	// extraction is indistinguishable from an empty one here.
	ex := NewExtraction()
	ex.addParagraph("prose that no block surfaces directly")
	require.Equal(t, "", ex.FullText())
}

func TestSectionMapOrderAndGuards(t *testing.T) {
	m := NewSectionMap()

	// Appends before any heading registered the section are dropped.
	m.AppendIfPresent("Ghost", "orphan text")
	require.Zero(t, m.Len())

	m.Ensure("First")
	m.Ensure("Second")
	m.Ensure("First")
	require.Equal(t, []string{"First", "Second"}, m.Names())

	m.AppendIfPresent("Second", "line a")
	m.AppendIfPresent("Second", "line b")
	require.Equal(t, []string{"line a", "line b"}, m.Items("Second"))
	require.Empty(t, m.Items("First"))

	require.Equal(t, "{First: []; Second: [line a line b]}", m.String())
}
