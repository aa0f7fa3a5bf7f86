// Package resolver finds the mock file that answers a request.
//
// For every header permutation, most specific first, the resolver tries in
// order: the exact file name, a companion JSON body, an order-independent
// query match, a query match with wildcards and finally the fallback file.
// When the request directory yields nothing, one hop to a "__" wildcard
// directory is attempted.
package resolver

import (
	"log/slog"
	"path"
	"regexp"
	"strings"

	"github.com/getmockd/mockserver/internal/matching"
	"github.com/getmockd/mockserver/internal/mockfs"
	"github.com/getmockd/mockserver/pkg/logging"
	"github.com/getmockd/mockserver/pkg/mock"
	"github.com/getmockd/mockserver/pkg/util"
)

// Stage names the precedence stage that produced a match.
type Stage string

// Resolution stages, in precedence order.
const (
	StageExact         Stage = "exact"
	StageJSON          Stage = "json"
	StageQuery         Stage = "query"
	StageQueryWildcard Stage = "query_wildcard"
	StageFallback      Stage = "fallback"
)

// wildcardQueryFile selects the files eligible for query matching.
var wildcardQueryFile = regexp.MustCompile(`--[\s\S]*__`)

// Match describes the mock file chosen for a request.
type Match struct {
	// Dir is the slash-separated directory, relative to the mock root.
	Dir string
	// File is the mock file name inside Dir.
	File string
	// Path is the filesystem path of the file.
	Path string
	// Content is the file content as read during resolution.
	Content string
	// Stage is the precedence stage that matched.
	Stage Stage
	// Permutation is the header permutation that matched.
	Permutation []string
	// Wildcard is true when Dir was reached through a "__" directory.
	Wildcard bool
}

// Resolver resolves requests against one mock root.
type Resolver struct {
	index   *mockfs.Index
	log     *slog.Logger
	verbose bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for verbose match logging.
func WithLogger(log *slog.Logger) Option {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// WithVerbose logs every attempted file with its outcome.
func WithVerbose(verbose bool) Option {
	return func(r *Resolver) {
		r.verbose = verbose
	}
}

// New creates a Resolver for the mock root behind index.
func New(index *mockfs.Index, opts ...Option) *Resolver {
	r := &Resolver{
		index: index,
		log:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Index returns the directory index the resolver reads from.
func (r *Resolver) Index() *mockfs.Index {
	return r.index
}

// Resolve returns the mock file answering req, or nil when nothing is mocked.
// An error is returned only when the chosen file cannot be read.
func (r *Resolver) Resolve(req *mock.Request) (*Match, error) {
	plan := matching.Plan(req.HeaderTokens)

	m := r.resolveDir(req.Path, req, plan)
	if m == nil {
		dir, ok := r.index.WildcardPath(req.Path)
		if !ok || dir == req.Path {
			return nil, nil
		}
		if r.verbose {
			r.log.Info("trying wildcard directory", "path", req.Path, "dir", dir)
		}
		m = r.resolveDir(dir, req, plan)
		if m == nil {
			return nil, nil
		}
		m.Wildcard = true
	}

	content, err := r.index.ReadFile(m.Dir, m.File)
	if err != nil {
		return nil, err
	}
	m.Content = content
	return m, nil
}

// resolveDir runs the precedence stages for every permutation in dir.
func (r *Resolver) resolveDir(dir string, req *mock.Request, plan [][]string) *Match {
	jsonBase := r.matchingJSON(dir, req.Body)

	for _, perm := range plan {
		prefix := mock.Prefix(req.Method, perm)
		match := func(file string, stage Stage) *Match {
			return &Match{
				Dir:         dir,
				File:        file,
				Path:        r.index.Path(dir, file),
				Stage:       stage,
				Permutation: perm,
			}
		}

		if name := mock.ExactName(prefix, req.Body, req.Query); r.try(dir, name, StageExact) {
			return match(name, StageExact)
		}

		if jsonBase != "" {
			if name := mock.JSONKeyedName(prefix, jsonBase); r.try(dir, name, StageJSON) {
				return match(name, StageJSON)
			}
		}

		if req.Query != "" {
			if name := r.matchQuery(dir, prefix, req, false); name != "" {
				return match(name, StageQuery)
			}
			if name := r.matchQuery(dir, prefix, req, true); name != "" {
				return match(name, StageQueryWildcard)
			}
		}

		if name := mock.FallbackName(prefix); r.try(dir, name, StageFallback) {
			return match(name, StageFallback)
		}
	}
	return nil
}

// try reports whether name exists in dir, logging the attempt in verbose mode.
func (r *Resolver) try(dir, name string, stage Stage) bool {
	ok := util.IsPlainName(name) && r.index.Exists(dir, name)
	r.logAttempt(dir, name, stage, ok)
	return ok
}

// matchingJSON returns the first companion .json file in dir whose content
// equals body as JSON, or "" when body is not JSON or nothing matches.
func (r *Resolver) matchingJSON(dir, body string) string {
	if !matching.IsJSON(body) {
		return ""
	}
	want, err := matching.CanonicalJSON(body)
	if err != nil {
		return ""
	}

	for _, name := range r.index.List(dir) {
		if !strings.HasSuffix(name, mock.JSONExt) {
			continue
		}
		content, err := r.index.ReadFile(dir, name)
		if err != nil {
			continue
		}
		got, err := matching.CanonicalJSON(content)
		if err != nil {
			if r.verbose {
				r.log.Info("invalid json candidate", "file", r.index.Path(dir, name), "error", err)
			}
			continue
		}
		matched := got == want
		r.logAttempt(dir, name, StageJSON, matched)
		if matched {
			return name
		}
	}
	return ""
}

// matchQuery returns the first candidate in dir whose embedded query matches
// the request query.
func (r *Resolver) matchQuery(dir, prefix string, req *mock.Request, wildcards bool) string {
	stem := prefix
	if req.Body != "" {
		stem += "_" + req.Body
	}
	stage := StageQuery
	if wildcards {
		stage = StageQueryWildcard
	}

	want := matching.ParseQuery(req.Query)
	for _, name := range r.index.List(dir) {
		if !strings.HasPrefix(name, stem) || !mock.IsMockFile(name) || !wildcardQueryFile.MatchString(name) {
			continue
		}
		section, ok := mock.QuerySection(name)
		if !ok {
			continue
		}
		candidate := matching.ParseQuery(section)

		var matched bool
		if wildcards {
			matched = matching.MatchQueryWildcard(want, candidate)
		} else {
			matched = matching.MatchQuery(want, candidate)
		}
		r.logAttempt(dir, name, stage, matched)
		if matched {
			return name
		}
	}
	return ""
}

func (r *Resolver) logAttempt(dir, name string, stage Stage, matched bool) {
	if !r.verbose {
		return
	}
	result := "not matched"
	if matched {
		result = "matched"
	}
	r.log.Info("match attempt",
		"file", util.TruncateBody(path.Join(dir, name), 256),
		"stage", string(stage),
		"result", result,
	)
}
