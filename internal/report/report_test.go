package report

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anirudhrpi/stotram-scraper/internal/classify"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestBuildFullPage(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<title>  Shiva Tandav  Stotram </title>
		<meta name="description" content=" Ancient  hymn ">
	</head><body><article>
		<h1>Introduction</h1>
		<p>`+strings.Repeat("जटाटवीगलज्जल ॥ ", 6)+`</p>
		<p>A forty character paragraph of plain prose.</p>
		<a href="/a">one</a><a href="/b">two</a>
		<img src="x.png">
	</article></body></html>`)

	ex := classify.NewGenericPolicy(zap.NewNop()).Classify(doc)
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	rep := Build("https://example.com/stotram", doc, ex, now)

	require.Equal(t, "https://example.com/stotram", rep.URL)
	require.Equal(t, "Shiva Tandav Stotram", rep.Title)
	require.Equal(t, "Ancient hymn", rep.MetaDescription)
	require.Equal(t, now, rep.ScrapedAt)
	require.Equal(t, 2, rep.NumLinks)
	require.Equal(t, 1, rep.NumImages)

	require.Equal(t, len(rep.Verses), rep.NumVerses)
	require.Equal(t, len(rep.Paragraphs), rep.NumParagraphs)
	require.Equal(t, rep.Sections.Len(), rep.NumSections)
	require.Equal(t, 1, rep.NumVerses)
	require.Equal(t, 1, rep.NumParagraphs)
	require.Equal(t, 1, rep.NumSections)

	items := rep.Sections.Items("Introduction")
	require.Len(t, items, 2)
	require.True(t, strings.HasPrefix(items[0], "VERSE: "))
	require.Equal(t, "A forty character paragraph of plain prose.", items[1])

	require.Equal(t, rep.FullText, rep.ContentPreview)
}

func TestBuildTitleFallback(t *testing.T) {
	doc := mustDoc(t, `<html><head></head><body></body></html>`)
	rep := Build("https://example.com", doc, classify.NewExtraction(), time.Now())
	require.Equal(t, NoTitlePlaceholder, rep.Title)
	require.Equal(t, "", rep.MetaDescription)
}

func TestBuildMetaDescriptionOpenGraphFallback(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<meta property="og:description" content="from open graph">
	</head><body></body></html>`)
	rep := Build("https://example.com", doc, classify.NewExtraction(), time.Now())
	require.Equal(t, "from open graph", rep.MetaDescription)
}

func TestBuildNilExtraction(t *testing.T) {
	doc := mustDoc(t, `<html><head><title>t</title></head><body></body></html>`)
	rep := Build("https://example.com", doc, nil, time.Now())
	require.Zero(t, rep.NumVerses)
	require.Zero(t, rep.NumSections)
	require.Equal(t, "", rep.FullText)
	require.Equal(t, "", rep.ContentPreview)
}

func TestPreviewTruncation(t *testing.T) {
	exact := strings.Repeat("न", 1000)
	require.Equal(t, exact, preview(exact))

	over := strings.Repeat("न", 1001)
	got := preview(over)
	require.True(t, strings.HasSuffix(got, "..."))
	require.Equal(t, 1003, len([]rune(got)))
	require.Equal(t, strings.Repeat("न", 1000), strings.TrimSuffix(got, "..."))
}
