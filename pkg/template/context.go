package template

import (
	"strings"

	"github.com/getmockd/mockserver/internal/matching"
	"github.com/getmockd/mockserver/pkg/mock"
)

// Context carries what directive stages may read.
type Context struct {
	// Dir is the directory of the mock file; #import paths resolve against it.
	Dir string
	// Request is the incoming request. May be nil.
	Request *mock.Request
}

// NewContext creates a Context for a mock file located in dir.
func NewContext(dir string, req *mock.Request) *Context {
	return &Context{Dir: dir, Request: req}
}

// header returns the request header value, or "" when absent.
func (c *Context) header(name string) string {
	if c == nil || c.Request == nil {
		return ""
	}
	return c.Request.HeaderValue(name)
}

// requestEnv builds the "request" object seen by #eval expressions.
func (c *Context) requestEnv() map[string]any {
	env := map[string]any{
		"method":  "",
		"path":    "",
		"query":   "",
		"body":    "",
		"headers": map[string]string{},
		"params":  map[string]string{},
	}
	if c == nil || c.Request == nil {
		return env
	}

	req := c.Request
	headers := make(map[string]string, len(req.Header))
	for name := range req.Header {
		headers[strings.ToLower(name)] = req.HeaderValue(name)
	}

	params := map[string]string{}
	if req.Query != "" {
		params = matching.ParseQuery(req.Query)
	}

	env["method"] = req.Method
	env["path"] = req.Path
	env["query"] = req.Query
	env["body"] = req.Body
	env["headers"] = headers
	env["params"] = params
	return env
}
