// Package mockfile parses mock files into responses.
//
// A mock file is laid out like a raw HTTP response:
//
//	HTTP/1.1 200 OK
//	Content-Type: application/json
//	Set-Cookie: a=1
//	Set-Cookie: b=2
//
//	{"id": 1}
//
// The status line, every header value and the body run through the directive
// pipeline of package template before they are returned.
package mockfile

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/getmockd/mockserver/internal/matching"
	"github.com/getmockd/mockserver/pkg/mock"
	"github.com/getmockd/mockserver/pkg/template"
)

// ErrMalformedStatusLine is returned when the first line carries no
// recognizable status code.
var ErrMalformedStatusLine = errors.New("malformed status line")

var (
	lineSplitter  = regexp.MustCompile(`\r?\n`)
	statusPattern = regexp.MustCompile(`HTTP/\d(?:\.\d)?\s+(\d{3})(?:\D|$)`)
)

// Renderer turns mock file content into a response.
type Renderer struct {
	engine *template.Engine
}

// NewRenderer creates a Renderer using the default directive pipeline.
func NewRenderer() *Renderer {
	return &Renderer{engine: template.New()}
}

// NewRendererWithEngine creates a Renderer using a custom directive engine.
func NewRendererWithEngine(engine *template.Engine) *Renderer {
	return &Renderer{engine: engine}
}

// Parse renders content with the default pipeline.
func Parse(content, dir string, req *mock.Request) (*mock.Response, error) {
	return NewRenderer().Render(content, dir, req)
}

// Render parses content read from a mock file located in dir. Directive
// failures are returned as *template.DirectiveError; a bad status line wraps
// ErrMalformedStatusLine.
func (r *Renderer) Render(content, dir string, req *mock.Request) (*mock.Response, error) {
	ctx := template.NewContext(dir, req)
	lines := lineSplitter.Split(content, -1)

	statusLine, err := r.engine.Process(lines[0], ctx)
	if err != nil {
		return nil, err
	}
	status, err := ParseStatusLine(statusLine)
	if err != nil {
		return nil, err
	}

	resp := &mock.Response{Status: status, Headers: mock.Headers{}}

	i := 1
	for ; i < len(lines); i++ {
		line := lines[i]
		if line == "" || line == "\r" {
			i++
			break
		}
		name, value := splitHeaderLine(line)
		if name == "" {
			continue
		}
		value, err = r.engine.Process(value, ctx)
		if err != nil {
			return nil, err
		}
		resp.Headers.Add(matching.NormalizeHeaderName(name), value)
	}

	if i < len(lines) {
		body, err := r.engine.Process(strings.Join(lines[i:], "\n"), ctx)
		if err != nil {
			return nil, err
		}
		resp.Body = body
	}

	return resp, nil
}

// ParseStatusLine extracts the status code from an `HTTP/x.y NNN` line.
func ParseStatusLine(line string) (int, error) {
	m := statusPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedStatusLine, line)
	}
	code, err := strconv.Atoi(m[1])
	if err != nil || code < 100 || code > 599 {
		return 0, fmt.Errorf("%w: status %s out of range", ErrMalformedStatusLine, m[1])
	}
	return code, nil
}

// splitHeaderLine splits once on the first ": ". A line without the
// separator is a header with an empty value.
func splitHeaderLine(line string) (name, value string) {
	name, value, found := strings.Cut(line, ": ")
	if !found {
		return strings.TrimSpace(strings.TrimSuffix(line, ":")), ""
	}
	return strings.TrimSpace(name), value
}
