package scraper

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL defaults the scheme to https:// when missing and validates
// the result parses as an absolute URL.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty url")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", raw, err)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("url %q has no host", raw)
	}
	return parsed.String(), nil
}

// URLDomain returns the host portion with dots replaced, for use in
// export filenames.
func URLDomain(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return "unknown"
	}
	return strings.ReplaceAll(parsed.Hostname(), ".", "_")
}
