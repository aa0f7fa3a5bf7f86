package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockserver/pkg/mock"
)

func TestWriteMock(t *testing.T) {
	t.Parallel()

	t.Run("writes status, headers and body", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		resp := &mock.Response{
			Status: http.StatusCreated,
			Headers: mock.Headers{
				"Content-Type": {"application/json"},
				"ETag":         {`"v1"`},
				"Set-Cookie":   {"a=1", "b=2"},
			},
			Body: `{"id":1}`,
		}

		WriteMock(rec, resp)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Equal(t, []string{`"v1"`}, rec.Header()["ETag"])
		assert.Equal(t, []string{"a=1", "b=2"}, rec.Header().Values("Set-Cookie"))
		assert.Equal(t, `{"id":1}`, rec.Body.String())
	})

	t.Run("drops framing headers", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		resp := &mock.Response{
			Status:  http.StatusOK,
			Headers: mock.Headers{"Content-Length": {"999"}},
			Body:    "short",
		}

		WriteMock(rec, resp)

		assert.Empty(t, rec.Header().Get("Content-Length"))
		assert.Equal(t, "short", rec.Body.String())
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteMock(rec, &mock.Response{Status: http.StatusNoContent, Headers: mock.Headers{}})

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestWriteNotMocked(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	WriteNotMocked(rec)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Mocked", rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestWriteError(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	WriteError(rec, http.StatusRequestEntityTooLarge, "body_too_large", "request body exceeds limit")

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "body_too_large", result["error"])
	assert.Equal(t, "request body exceeds limit", result["message"])
}

func TestWriteJSONNilData(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	WriteJSON(rec, http.StatusOK, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
