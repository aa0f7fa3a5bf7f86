package template

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	importPattern = regexp.MustCompile(`(?m)^#import[ \t]+(.+?);`)
	headerPattern = regexp.MustCompile(`(?m)^#header[ \t]+(.+?);`)
	evalPattern   = regexp.MustCompile(`(?m)^#eval[ \t]+(.*);`)
)

// ImportStage replaces every `#import <path>;` with the content of the named
// file. Relative paths resolve against Context.Dir.
func ImportStage() Stage {
	return Stage{Name: "import", Apply: func(value string, ctx *Context) (string, error) {
		return replaceDirective(importPattern, value, func(arg string) (string, error) {
			p := strings.Trim(arg, `'"`)
			if p == "" {
				return "", &DirectiveError{Directive: "import", Arg: arg, Err: errors.New("empty path")}
			}
			if !filepath.IsAbs(p) {
				p = filepath.Join(ctx.Dir, filepath.FromSlash(p))
			}
			data, err := os.ReadFile(p)
			if err != nil {
				return "", &DirectiveError{Directive: "import", Arg: arg, Err: err}
			}
			return string(data), nil
		})
	}}
}

// HeaderStage replaces `#header ${request.headers.<name>};` with the value of
// the named request header. A missing header expands to "".
func HeaderStage() Stage {
	return Stage{Name: "header", Apply: func(value string, ctx *Context) (string, error) {
		return replaceDirective(headerPattern, value, func(arg string) (string, error) {
			name := headerName(arg)
			if name == "" {
				return "", &DirectiveError{Directive: "header", Arg: arg, Err: errors.New("missing header name")}
			}
			return ctx.header(name), nil
		})
	}}
}

// EvalStage replaces `#eval <expr>;` with the result of the expression.
func EvalStage() Stage {
	return Stage{Name: "eval", Apply: func(value string, ctx *Context) (string, error) {
		return replaceDirective(evalPattern, value, func(arg string) (string, error) {
			out, err := Evaluate(arg, ctx)
			if err != nil {
				return "", &DirectiveError{Directive: "eval", Arg: arg, Err: err}
			}
			return out, nil
		})
	}}
}

// replaceDirective substitutes every match of re with fn(argument). The first
// error stops further substitutions and is returned.
func replaceDirective(re *regexp.Regexp, value string, fn func(arg string) (string, error)) (string, error) {
	if !re.MatchString(value) {
		return value, nil
	}
	var firstErr error
	out := re.ReplaceAllStringFunc(value, func(m string) string {
		if firstErr != nil {
			return m
		}
		sub := re.FindStringSubmatch(m)
		if len(sub) < 2 {
			return m
		}
		r, err := fn(strings.TrimSpace(sub[1]))
		if err != nil {
			firstErr = err
			return m
		}
		return r
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

// headerName extracts the header name from the argument of a #header
// directive. Accepted forms:
//
//	${request.headers.authorization}
//	${request.headers['x-api-key']}
//	authorization
func headerName(arg string) string {
	s := strings.TrimSpace(arg)
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		s = strings.TrimSpace(s[2 : len(s)-1])
	}
	for _, prefix := range []string{"request.headers.", "req.headers."} {
		if strings.HasPrefix(s, prefix) {
			return s[len(prefix):]
		}
	}
	for _, prefix := range []string{"request.headers[", "req.headers["} {
		if strings.HasPrefix(s, prefix) && strings.HasSuffix(s, "]") {
			return strings.Trim(s[len(prefix):len(s)-1], `'" `)
		}
	}
	return strings.Trim(s, `'" `)
}
