package scraper

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// paddedPage builds an HTML page of at least n bytes around the given
// body fragment.
func paddedPage(fragment string, n int) []byte {
	page := "<html><head><title>t</title></head><body>" + fragment
	if pad := n - len(page) - len("</body></html>"); pad > 0 {
		page += strings.Repeat("x", pad)
	}
	page += "</body></html>"
	return []byte(page)
}

func TestContentGate_Check(t *testing.T) {
	gate := NewContentGate(0, nil)

	t.Run("accepts a clean page", func(t *testing.T) {
		doc, err := gate.Check(paddedPage("<p>hello world</p>", 2000))
		require.NoError(t, err)
		require.NotNil(t, doc)
	})

	t.Run("rejects 999 bytes", func(t *testing.T) {
		body := paddedPage("<p>short</p>", 0)
		require.Less(t, len(body), 1000)
		doc, err := gate.Check(body)
		require.ErrorIs(t, err, ErrThinContent)
		require.Nil(t, doc)
	})

	t.Run("rejects 2000 bytes containing CAPTCHA", func(t *testing.T) {
		body := paddedPage("<p>please solve this CAPTCHA to continue</p>", 2000)
		require.GreaterOrEqual(t, len(body), 2000)
		doc, err := gate.Check(body)
		require.ErrorIs(t, err, ErrBlockedContent)
		require.Nil(t, doc)
	})

	t.Run("rejects access denied and cloudflare", func(t *testing.T) {
		for _, term := range []string{"Access Denied", "Cloudflare"} {
			_, err := gate.Check(paddedPage("<p>"+term+"</p>", 2000))
			require.ErrorIs(t, err, ErrBlockedContent, "term %q", term)
		}
	})

	t.Run("structural re-scan catches terms split by markup", func(t *testing.T) {
		// "captcha" never appears contiguously in the raw bytes, only in
		// the stripped document text.
		body := paddedPage("<p>cap<b></b>tcha</p>", 2000)
		require.NotContains(t, strings.ToLower(string(body)), "captcha")
		_, err := gate.Check(body)
		require.ErrorIs(t, err, ErrBlockedContent)
	})

	t.Run("custom thresholds", func(t *testing.T) {
		small := NewContentGate(10, []string{"blocked"})
		doc, err := small.Check([]byte("<p>tiny page</p>"))
		require.NoError(t, err)
		require.NotNil(t, doc)

		_, err = small.Check([]byte("<p>BLOCKED page</p>"))
		require.ErrorIs(t, err, ErrBlockedContent)
	})
}

func TestContentGateErrorsDistinct(t *testing.T) {
	require.False(t, errors.Is(ErrThinContent, ErrBlockedContent))
}
