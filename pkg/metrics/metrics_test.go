package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest("GET", 200, 10*time.Millisecond)
	m.ObserveRequest("GET", 200, 20*time.Millisecond)
	m.ObserveRequest("POST", 404, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration))
}

func TestRecordMatchAndMiss(t *testing.T) {
	m := New()

	m.RecordMatch("exact", false)
	m.RecordMatch("fallback", true)
	m.RecordMatch("fallback", true)
	m.RecordMiss()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.MatchesTotal.WithLabelValues("exact", "false")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.MatchesTotal.WithLabelValues("fallback", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MissesTotal))
}

func TestRecordRenderError(t *testing.T) {
	m := New()

	m.RecordRenderError(KindDirective)
	m.RecordRenderError(KindStatusLine)
	m.RecordRenderError(KindDirective)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RenderErrorsTotal.WithLabelValues(KindDirective)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RenderErrorsTotal.WithLabelValues(KindStatusLine)))
}

func TestRecordFileEvent(t *testing.T) {
	m := New()

	m.RecordFileEvent("write")
	m.RecordFileEvent("write")
	m.RecordFileEvent("create")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FileEventsTotal.WithLabelValues("write")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FileEventsTotal.WithLabelValues("create")))
}

func TestBegin(t *testing.T) {
	m := New()

	end1 := m.Begin()
	end2 := m.Begin()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ActiveRequests))

	end1()
	end2()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ActiveRequests))
}

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.Begin()()
		m.ObserveRequest("GET", 200, time.Second)
		m.RecordMatch("exact", false)
		m.RecordMiss()
		m.RecordRenderError(KindRead)
		m.RecordFileEvent("write")
	})
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", 200, time.Millisecond)
	m.RecordMiss()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, `mockserver_requests_total{method="GET",status="200"} 1`)
	assert.Contains(t, out, "mockserver_misses_total 1")
	assert.True(t, strings.Contains(out, "go_goroutines"))
}

func TestSeparateRegistries(t *testing.T) {
	a, b := New(), New()
	a.RecordMiss()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.MissesTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.MissesTotal))
}
