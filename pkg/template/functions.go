package template

import (
	"fmt"
	"reflect"
	"time"

	"github.com/expr-lang/expr"
	"github.com/google/uuid"
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/tidwall/gjson"

	"github.com/getmockd/mockserver/internal/matching"
)

var jsonOptions = &ojg.Options{Sort: true}

// Evaluate compiles and runs an expression against the request in ctx and
// returns its string form.
func Evaluate(src string, ctx *Context) (string, error) {
	env := newEnv(ctx)
	program, err := expr.Compile(src, expr.Env(env))
	if err != nil {
		return "", fmt.Errorf("compile: %w", err)
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return "", fmt.Errorf("run: %w", err)
	}
	return stringify(out), nil
}

func newEnv(ctx *Context) map[string]any {
	var body, query string
	if ctx != nil && ctx.Request != nil {
		body = ctx.Request.Body
		query = ctx.Request.Query
	}

	return map[string]any{
		"request": ctx.requestEnv(),
		"header":  ctx.header,
		"query": func(name string) string {
			return matching.ParseQuery(query)[name]
		},
		"json": func(path string) any {
			return funcJSON(body, path)
		},
		"jsonpath": func(path string) any {
			return funcJSONPath(body, path)
		},
		"uuid": func() string {
			return uuid.NewString()
		},
		"timestamp": func() string {
			return time.Now().Format(time.RFC3339)
		},
	}
}

// funcJSON looks up a gjson path in body. Missing paths yield nil.
func funcJSON(body, path string) any {
	if body == "" {
		return nil
	}
	res := gjson.Get(body, path)
	if !res.Exists() {
		return nil
	}
	return res.Value()
}

// funcJSONPath evaluates a JSONPath expression against body. A single result
// is returned unwrapped; several results are returned as a list.
func funcJSONPath(body, path string) any {
	if body == "" {
		return nil
	}
	x, err := jp.ParseString(path)
	if err != nil {
		return nil
	}
	data, err := oj.ParseString(body)
	if err != nil {
		return nil
	}
	results := x.Get(data)
	switch len(results) {
	case 0:
		return nil
	case 1:
		return results[0]
	default:
		return results
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339)
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return oj.JSON(v, jsonOptions)
	}
	return fmt.Sprint(v)
}
