// Package template expands the directives embedded in mock files.
//
// Directives occupy a line (or the start of a value) and end with a
// semicolon:
//
//	#import shared/user.json;
//	#header ${request.headers.authorization};
//	#eval request.method + " " + request.path;
//
// Stages run in a fixed order: import, header, eval. Imported content is
// inserted verbatim, so an imported file may itself contain #header or #eval
// directives which are expanded by the later stages.
//
// # Eval Environment
//
// Expressions are evaluated with expr-lang. The environment exposes:
//   - request.method, request.path, request.query, request.body
//   - request.headers - map of lower-cased header name to value
//   - request.params - parsed query parameters
//   - header(name) - request header value, case-insensitive
//   - query(name) - query parameter value
//   - json(path) - gjson path lookup against the request body
//   - jsonpath(expr) - JSONPath lookup against the request body
//   - uuid() - random UUID v4
//   - timestamp() - current time in RFC3339 format
//
// String results are written verbatim, maps and slices are written as JSON
// and everything else is formatted with fmt.
package template
