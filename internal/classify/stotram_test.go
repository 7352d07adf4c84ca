package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStotramClassifyExpandedMarkers(t *testing.T) {
	// तांडव is not in the generic glyph set; only this policy should bucket
	// the short line as a verse.
	doc := mustDoc(t, `<html><body><article>
		<p>प्रदोष समय तांडव नृत्य करते</p>
	</article></body></html>`)

	ex := NewStotramPolicy(zap.NewNop()).Classify(doc)
	require.Equal(t, []string{"प्रदोष समय तांडव नृत्य करते"}, ex.Verses)

	generic := NewGenericPolicy(zap.NewNop()).Classify(doc)
	require.Empty(t, generic.Verses)
}

func TestStotramAggressivePass(t *testing.T) {
	// The verse hides in list markup the primary walk never visits, so the
	// first pass comes up empty and the element-wide sweep has to find it.
	verse := strings.Repeat("जटाटवीगलज्जलप्रवाहपावितस्थले ॥ ", 3)
	doc := mustDoc(t, `<html><body>
		<p>short</p>
		<ul><li>` + verse + `</li></ul>
	</body></html>`)

	ex := NewStotramPolicy(zap.NewNop()).Classify(doc)
	require.Len(t, ex.Verses, 1)
	require.Equal(t, NormalizeText(verse), ex.Verses[0])
}

func TestStotramAggressivePassSkippedWhenVersesFound(t *testing.T) {
	doc := mustDoc(t, `<html><body>
		<p>॥ नमः शिवाय ॥ found by the primary pass</p>
		<ul><li>` + strings.Repeat("भस्मदिग्धतनु ॐ नमः ", 5) + `</li></ul>
	</body></html>`)

	ex := NewStotramPolicy(zap.NewNop()).Classify(doc)
	// Only the primary pass ran; the list item stayed unseen.
	require.Len(t, ex.Verses, 1)
	require.Contains(t, ex.Verses[0], "primary pass")
}

func TestStotramClassifyEmptyDocument(t *testing.T) {
	doc := mustDoc(t, `<html><body></body></html>`)
	ex := NewStotramPolicy(zap.NewNop()).Classify(doc)
	require.NotNil(t, ex)
	require.Empty(t, ex.Verses)
	require.Empty(t, ex.Meanings)
	require.Empty(t, ex.Paragraphs)
	require.Zero(t, ex.Sections.Len())
}
