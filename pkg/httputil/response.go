// Package httputil provides shared HTTP utilities for consistent response handling.
package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/getmockd/mockserver/pkg/mock"
)

// NotMockedBody is the body sent when no mock file answers a request.
const NotMockedBody = "Not Mocked"

// framingHeaders are computed by net/http from the body actually written.
var framingHeaders = map[string]bool{
	"Content-Length":    true,
	"Transfer-Encoding": true,
}

// WriteMock writes a rendered mock response. Header names are written exactly
// as rendered; recurring headers produce one header line per value.
func WriteMock(w http.ResponseWriter, resp *mock.Response) {
	h := w.Header()
	for name, values := range resp.Headers {
		if framingHeaders[http.CanonicalHeaderKey(name)] {
			continue
		}
		h[name] = append(h[name], values...)
	}
	w.WriteHeader(resp.Status)
	if resp.Body != "" {
		_, _ = w.Write([]byte(resp.Body))
	}
}

// WriteText writes a plain text response with the given status code.
func WriteText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

// WriteNotMocked writes the 404 "Not Mocked" response.
func WriteNotMocked(w http.ResponseWriter) {
	WriteText(w, http.StatusNotFound, NotMockedBody)
}

// WriteJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes a JSON error response with the given status code.
// The error response includes an error code and a human-readable message.
func WriteError(w http.ResponseWriter, status int, errCode, message string) {
	WriteJSON(w, status, map[string]string{
		"error":   errCode,
		"message": message,
	})
}
