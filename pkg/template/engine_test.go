package template

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockserver/pkg/mock"
)

func newRequest(method, path, query, body string, header http.Header) *mock.Request {
	if header == nil {
		header = http.Header{}
	}
	return &mock.Request{Method: method, Path: path, Query: query, Body: body, Header: header}
}

func TestEngineStageOrder(t *testing.T) {
	assert.Equal(t, []string{"import", "header", "eval"}, New().Stages())
}

func TestImportStage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shared"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shared", "user.json"), []byte(`{"id":1}`), 0o644))

	ctx := NewContext(dir, nil)
	engine := New()

	t.Run("relative path", func(t *testing.T) {
		out, err := engine.Process("#import shared/user.json;", ctx)
		require.NoError(t, err)
		assert.Equal(t, `{"id":1}`, out)
	})

	t.Run("quoted path", func(t *testing.T) {
		out, err := engine.Process(`#import "shared/user.json";`, ctx)
		require.NoError(t, err)
		assert.Equal(t, `{"id":1}`, out)
	})

	t.Run("every occurrence", func(t *testing.T) {
		out, err := engine.Process("#import shared/user.json;\n#import shared/user.json;", ctx)
		require.NoError(t, err)
		assert.Equal(t, "{\"id\":1}\n{\"id\":1}", out)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := engine.Process("#import nope.json;", ctx)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDirective))

		var de *DirectiveError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "import", de.Directive)
		assert.Equal(t, "nope.json", de.Arg)
	})
}

func TestHeaderStage(t *testing.T) {
	req := newRequest("GET", "/", "", "", http.Header{
		"Authorization": {"Bearer abc"},
		"X-Api-Key":     {"k1"},
	})
	ctx := NewContext("", req)
	engine := New()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"template form", "#header ${request.headers.authorization};", "Bearer abc"},
		{"bracket form", "#header ${request.headers['x-api-key']};", "k1"},
		{"bare name", "#header X-Api-Key;", "k1"},
		{"missing header", "#header ${request.headers.x-missing};", ""},
		{"not at line start", "token #header authorization;", "token #header authorization;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := engine.Process(tt.value, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	t.Run("empty name", func(t *testing.T) {
		_, err := engine.Process("#header ${};", ctx)
		assert.ErrorIs(t, err, ErrDirective)
	})
}

func TestEvalStage(t *testing.T) {
	req := newRequest("POST", "/users", "a=1&b=2",
		`{"user":{"name":"alice"},"items":[{"id":1},{"id":2}]}`,
		http.Header{"X-Token": {"t0k"}})
	ctx := NewContext("", req)
	engine := New()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"method", "#eval request.method;", "POST"},
		{"concatenation", `#eval request.method + " " + request.path;`, "POST /users"},
		{"arithmetic", "#eval 1 + 2;", "3"},
		{"boolean", "#eval request.query == \"a=1&b=2\";", "true"},
		{"header function", `#eval header("x-token");`, "t0k"},
		{"headers map", `#eval request.headers["x-token"];`, "t0k"},
		{"query function", `#eval query("b");`, "2"},
		{"params map", `#eval request.params.a;`, "1"},
		{"json path", `#eval json("user.name");`, "alice"},
		{"jsonpath", `#eval jsonpath("$.items[*].id");`, "[1,2]"},
		{"map literal", `#eval {"a": 1};`, `{"a":1}`},
		{"multiline", "a\n#eval 1 + 1;\nb", "a\n2\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := engine.Process(tt.value, ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}

	t.Run("uuid", func(t *testing.T) {
		out, err := engine.Process("#eval uuid();", ctx)
		require.NoError(t, err)
		assert.Len(t, out, 36)
	})

	t.Run("invalid expression", func(t *testing.T) {
		_, err := engine.Process("#eval request.;", ctx)
		require.Error(t, err)

		var de *DirectiveError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "eval", de.Directive)
	})
}

func TestPipelineImportFeedsLaterStages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token.txt"),
		[]byte("#header ${request.headers.x-token};"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "method.txt"),
		[]byte("#eval request.method;"), 0o644))

	req := newRequest("DELETE", "/", "", "", http.Header{"X-Token": {"secret"}})
	ctx := NewContext(dir, req)

	out, err := New().Process("#import token.txt;", ctx)
	require.NoError(t, err)
	assert.Equal(t, "secret", out)

	out, err = New().Process("#import method.txt;", ctx)
	require.NoError(t, err)
	assert.Equal(t, "DELETE", out)
}

func TestCustomStages(t *testing.T) {
	upper := Stage{Name: "upper", Apply: func(v string, _ *Context) (string, error) {
		return v + "!", nil
	}}
	engine := NewWithStages(upper, upper)

	out, err := engine.Process("hi", nil)
	require.NoError(t, err)
	assert.Equal(t, "hi!!", out)
}

func TestPlainValueUnchanged(t *testing.T) {
	out, err := New().Process("Content-Type: application/json", nil)
	require.NoError(t, err)
	assert.Equal(t, "Content-Type: application/json", out)
}
