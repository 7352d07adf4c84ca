package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewProxyFetcher_RequiresAPIKey(t *testing.T) {
	_, err := NewProxyFetcher(ProxyConfig{}, zap.NewNop())
	require.ErrorIs(t, err, ErrProxyNotConfigured)
}

func TestProxyFetcher_Fetch(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		_, _ = w.Write([]byte("<html><body>rendered upstream</body></html>"))
	}))
	defer srv.Close()

	fetcher, err := NewProxyFetcher(ProxyConfig{
		APIKey:   "test-key",
		Endpoint: srv.URL,
		Timeout:  5 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, KindProxy, fetcher.Kind())

	page, err := fetcher.Fetch(context.Background(), "https://example.com/stotram", 0)
	require.NoError(t, err)
	require.Equal(t, KindProxy, page.Kind)
	require.Equal(t, "https://example.com/stotram", page.URL)
	require.Contains(t, string(page.Body), "rendered upstream")

	require.Equal(t, map[string]string{
		"api_key":       "test-key",
		"url":           "https://example.com/stotram",
		"render_js":     "true",
		"premium_proxy": "true",
		"country_code":  "us",
		"wait":          "3000",
		"timeout":       "30000",
	}, gotQuery)
}

func TestProxyFetcher_UpstreamErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	fetcher, err := NewProxyFetcher(ProxyConfig{APIKey: "k", Endpoint: srv.URL}, zap.NewNop())
	require.NoError(t, err)

	_, err = fetcher.Fetch(context.Background(), "https://example.com", 0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "402")
}
