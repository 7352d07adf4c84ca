package scraper

import "net/http"

// defaultUserAgents is the rotation pool for the HTTP adapter. Attempt k
// uses defaultUserAgents[k % len].
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/119.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36 Edg/119.0.0.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 OPR/106.0.0.0",
}

// DefaultUserAgents returns a copy of the built-in rotation pool.
func DefaultUserAgents() []string {
	return append([]string(nil), defaultUserAgents...)
}

// RotatedUserAgent picks the pool entry for the given attempt index.
func RotatedUserAgent(pool []string, attempt int) string {
	if len(pool) == 0 {
		pool = defaultUserAgents
	}
	if attempt < 0 {
		attempt = 0
	}
	return pool[attempt%len(pool)]
}

// BrowserHeaderProfile is the fixed header set layered under the rotated
// User-Agent on every plain HTTP request.
func BrowserHeaderProfile() http.Header {
	h := http.Header{}
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.7")
	h.Set("Accept-Language", "en-US,en;q=0.9,hi;q=0.8")
	// No br here, the transport cannot decode it.
	h.Set("Accept-Encoding", "gzip, deflate")
	h.Set("Referer", "https://www.google.com/")
	h.Set("DNT", "1")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("Cache-Control", "max-age=0")
	return h
}
