package matching

import (
	"net/http"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// headerExceptions lists header names whose canonical casing is not plain
// title case.
var headerExceptions = map[string]string{
	"content-md5":           "Content-MD5",
	"dnt":                   "DNT",
	"etag":                  "ETag",
	"last-event-id":         "Last-Event-ID",
	"tcn":                   "TCN",
	"te":                    "TE",
	"www-authenticate":      "WWW-Authenticate",
	"x-dnsprefetch-control": "X-DNSPrefetch-Control",
	"x-xss-protection":      "X-XSS-Protection",
	"x-ua-compatible":       "X-UA-Compatible",
}

// NormalizeHeaderName returns the canonical HTTP casing of a header name:
// "x-api-key" becomes "X-Api-Key", "etag" becomes "ETag".
func NormalizeHeaderName(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := headerExceptions[lower]; ok {
		return canonical
	}
	caser := cases.Title(language.Und)
	parts := strings.Split(lower, "-")
	for i, part := range parts {
		parts[i] = caser.String(part)
	}
	return strings.Join(parts, "-")
}

// PrepareWatchedHeaders builds the watch-list. A non-empty override replaces
// the comma-separated fallback entirely. Entries are trimmed, blanks dropped
// and duplicates (case-insensitive) removed, keeping first-seen order.
func PrepareWatchedHeaders(override []string, fallback string) []string {
	source := override
	if len(source) == 0 {
		source = strings.Split(fallback, ",")
	}

	seen := make(map[string]bool, len(source))
	var headers []string
	for _, h := range source {
		h = strings.TrimSpace(h)
		key := strings.ToLower(h)
		if h == "" || seen[key] {
			continue
		}
		seen[key] = true
		headers = append(headers, h)
	}
	return headers
}

// SelectHeaders returns a `_Header-Name=value` token for every watched header
// present on the request, in watch-list order. Repeated request values are
// joined with ", ".
func SelectHeaders(header http.Header, watched []string) []string {
	if len(header) == 0 || len(watched) == 0 {
		return nil
	}
	var tokens []string
	for _, name := range watched {
		value := strings.Join(header.Values(name), ", ")
		if value == "" {
			continue
		}
		tokens = append(tokens, HeaderToken(name, value))
	}
	return tokens
}

// HeaderToken renders one watched header as a file name token.
func HeaderToken(name, value string) string {
	return "_" + NormalizeHeaderName(name) + "=" + value
}
