// Package matching provides the request-side building blocks of mock
// resolution.
//
//   - Query codec: ParseQuery turns a raw query string into an unordered
//     key/value map; MatchQuery and MatchQueryWildcard compare two such maps.
//   - Header selector: PrepareWatchedHeaders builds the watch-list once at
//     startup, SelectHeaders extracts `_Header-Name=value` tokens per request.
//   - Permutation planner: Plan expands the tokens into every ordered subset,
//     most specific first.
//   - JSON equality: IsJSON and CanonicalJSON reduce a request body and a
//     stored JSON document to a form that compares with ==.
//
// Nothing in this package touches the filesystem.
package matching
