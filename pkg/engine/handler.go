package engine

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/getmockd/mockserver/internal/matching"
	"github.com/getmockd/mockserver/pkg/httputil"
	"github.com/getmockd/mockserver/pkg/logging"
	"github.com/getmockd/mockserver/pkg/metrics"
	"github.com/getmockd/mockserver/pkg/mock"
	"github.com/getmockd/mockserver/pkg/mockfile"
	"github.com/getmockd/mockserver/pkg/resolver"
	"github.com/getmockd/mockserver/pkg/template"
	"github.com/getmockd/mockserver/pkg/util"
)

// MaxRequestBodySize is the maximum allowed request body size for mock matching (10MB).
const MaxRequestBodySize = 10 << 20 // 10MB

// InvalidMockBody is sent when the matched mock file cannot be rendered.
const InvalidMockBody = "Invalid Mock"

// Handler answers HTTP requests from the mock directory.
type Handler struct {
	resolver *resolver.Resolver
	renderer *mockfile.Renderer
	watched  []string
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHandlerLogger sets the operational logger.
func WithHandlerLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithWatchedHeaders sets the watch-list of header names that take part in
// file name matching.
func WithWatchedHeaders(names []string) HandlerOption {
	return func(h *Handler) {
		h.watched = names
	}
}

// WithHandlerMetrics records request metrics on m.
func WithHandlerMetrics(m *metrics.Metrics) HandlerOption {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithRenderer replaces the default mock renderer.
func WithRenderer(r *mockfile.Renderer) HandlerOption {
	return func(h *Handler) {
		if r != nil {
			h.renderer = r
		}
	}
}

// NewHandler creates a Handler resolving requests with res.
func NewHandler(res *resolver.Resolver, opts ...HandlerOption) *Handler {
	h := &Handler{
		resolver: res,
		renderer: mockfile.NewRenderer(),
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	defer h.metrics.Begin()()

	log := h.log.With("request_id", uuid.NewString())

	// MaxBytesReader returns an error when the limit is exceeded, unlike LimitReader
	// which silently truncates.
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			log.Warn("request body too large", "path", r.URL.Path, "limit", MaxRequestBodySize)
			httputil.WriteError(w, http.StatusRequestEntityTooLarge, "body_too_large", "Request body exceeds maximum allowed size")
			h.metrics.ObserveRequest(r.Method, http.StatusRequestEntityTooLarge, time.Since(startTime))
			return
		}
		log.Warn("failed to read request body", "path", r.URL.Path, "error", err)
		httputil.WriteError(w, http.StatusBadRequest, "body_read_failed", "Failed to read request body")
		h.metrics.ObserveRequest(r.Method, http.StatusBadRequest, time.Since(startTime))
		return
	}

	req := mock.NewRequest(r, bodyBytes)
	req.HeaderTokens = matching.SelectHeaders(r.Header, h.watched)

	status := h.serve(w, req, log)

	duration := time.Since(startTime)
	h.metrics.ObserveRequest(req.Method, status, duration)
	log.Debug("request handled",
		"method", req.Method,
		"path", req.Path,
		"query", req.Query,
		"status", status,
		"duration", duration,
	)
}

// serve resolves, renders and writes the response, returning its status.
func (h *Handler) serve(w http.ResponseWriter, req *mock.Request, log *slog.Logger) int {
	match, err := h.resolver.Resolve(req)
	if err != nil {
		log.Error("failed to read mock file", "path", req.Path, "error", err)
		h.metrics.RecordRenderError(metrics.KindRead)
		httputil.WriteText(w, http.StatusInternalServerError, InvalidMockBody)
		return http.StatusInternalServerError
	}
	if match == nil {
		log.Debug("not mocked",
			"method", req.Method,
			"path", req.Path,
			"body", util.TruncateBody(req.Body, 256),
		)
		h.metrics.RecordMiss()
		httputil.WriteNotMocked(w)
		return http.StatusNotFound
	}

	h.metrics.RecordMatch(string(match.Stage), match.Wildcard)
	log.Debug("request matched",
		"method", req.Method,
		"path", req.Path,
		"file", match.Path,
		"stage", match.Stage,
		"wildcard", match.Wildcard,
	)

	resp, err := h.renderer.Render(match.Content, h.resolver.Index().Dir(match.Dir), req)
	if err != nil {
		kind := metrics.KindDirective
		if errors.Is(err, mockfile.ErrMalformedStatusLine) {
			kind = metrics.KindStatusLine
		}
		var de *template.DirectiveError
		if errors.As(err, &de) {
			log.Error("failed to render mock", "file", match.Path, "directive", de.Directive, "error", de.Err)
		} else {
			log.Error("failed to render mock", "file", match.Path, "error", err)
		}
		h.metrics.RecordRenderError(kind)
		httputil.WriteText(w, http.StatusInternalServerError, InvalidMockBody)
		return http.StatusInternalServerError
	}

	if delay := ResponseDelay(resp.Headers); delay > 0 {
		time.Sleep(delay)
	}

	httputil.WriteMock(w, resp)
	return resp.Status
}
