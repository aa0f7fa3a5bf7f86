// Package mock defines the data model shared by the resolver, the renderer and
// the HTTP engine: the normalized request descriptor, the rendered response and
// the naming convention of mock files on disk.
package mock

import (
	"net/http"
	"path"
	"strings"
)

// Request is the normalized descriptor of one incoming HTTP request.
// It is created once per request and never mutated afterwards.
type Request struct {
	// Method is the upper-cased HTTP verb.
	Method string

	// Path is the cleaned URL path without the query string.
	Path string

	// Query is the raw query string without any '?' characters.
	Query string

	// Body is the fully drained request body.
	Body string

	// Header is the full request header mapping.
	Header http.Header

	// HeaderTokens holds the watched headers present on the request as
	// `_Header-Name=value` tokens, in watch-list order.
	HeaderTokens []string
}

// NewRequest builds a Request from an http.Request and its drained body.
// HeaderTokens is left empty; callers fill it from the watch-list.
func NewRequest(r *http.Request, body []byte) *Request {
	req := &Request{
		Method: strings.ToUpper(r.Method),
		Path:   CleanPath(r.URL.Path),
		Query:  CleanQuery(r.URL.RawQuery),
		Body:   string(body),
		Header: r.Header,
	}
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	return req
}

// HeaderValue returns the request header value for name, joining repeated
// values with ", ". Lookup is case-insensitive.
func (r *Request) HeaderValue(name string) string {
	if r == nil || r.Header == nil {
		return ""
	}
	return strings.Join(r.Header.Values(name), ", ")
}

// CleanPath normalizes a URL path so it always starts with '/' and never
// climbs above the root.
func CleanPath(p string) string {
	return path.Clean("/" + p)
}

// CleanQuery strips every '?' from a raw query string.
func CleanQuery(q string) string {
	return strings.ReplaceAll(q, "?", "")
}

// Response is a parsed mock file: status code, headers and body.
type Response struct {
	Status  int
	Headers Headers
	Body    string
}

// Headers maps a normalized header name to its values in order of appearance.
// A header that appears once has a single value; a recurring header keeps
// every value.
type Headers map[string][]string

// Add appends value to the values of name.
func (h Headers) Add(name, value string) {
	h[name] = append(h[name], value)
}

// Get returns the first value for name. The exact key is tried first, then a
// case-insensitive match.
func (h Headers) Get(name string) string {
	if vals, ok := h[name]; ok && len(vals) > 0 {
		return vals[0]
	}
	for k, vals := range h {
		if strings.EqualFold(k, name) && len(vals) > 0 {
			return vals[0]
		}
	}
	return ""
}

// Has reports whether name is present, case-insensitively.
func (h Headers) Has(name string) bool {
	if _, ok := h[name]; ok {
		return true
	}
	for k := range h {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

// Value returns a string for single-valued headers and a []string for
// recurring ones. It returns nil when the header is absent.
func (h Headers) Value(name string) any {
	vals, ok := h[name]
	if !ok {
		return nil
	}
	if len(vals) == 1 {
		return vals[0]
	}
	return vals
}
