package matching

import "strings"

// Wildcard is the query value (and key) that accepts anything.
const Wildcard = "__"

// QueryMap is an unordered key/value view of a raw query string.
// Values are kept verbatim; no percent-decoding takes place because mock file
// names carry the raw query.
type QueryMap map[string]string

// ParseQuery splits a raw query on '&' and each pair on '='. A pair without
// '=' maps to the empty string; text after a second '=' is dropped. Later
// duplicates overwrite earlier ones.
func ParseQuery(query string) QueryMap {
	result := make(QueryMap)
	for _, param := range strings.Split(query, "&") {
		parts := strings.Split(param, "=")
		val := ""
		if len(parts) > 1 {
			val = parts[1]
		}
		result[parts[0]] = val
	}
	return result
}

// MatchQuery reports whether candidate holds exactly the keys of request with
// identical values. Extra candidate keys fail the match.
func MatchQuery(request, candidate QueryMap) bool {
	if len(request) != len(candidate) {
		return false
	}
	for key, val := range request {
		cval, ok := candidate[key]
		if !ok || cval != val {
			return false
		}
	}
	return true
}

// MatchQueryWildcard reports whether candidate accepts request when the
// candidate may use wildcards:
//
//   - key=__ accepts any value for key
//   - __=__ accepts any request key the candidate does not list
//
// Extra candidate keys are tolerated only when they are wildcard entries.
func MatchQueryWildcard(request, candidate QueryMap) bool {
	for key, val := range request {
		cval, listed := candidate[key]
		switch {
		case listed && cval == val:
			continue
		case listed:
			if cval != Wildcard {
				return false
			}
		case candidate[Wildcard] == Wildcard:
			continue
		default:
			return false
		}
	}
	for key, cval := range candidate {
		if _, ok := request[key]; ok {
			continue
		}
		if key != Wildcard && cval != Wildcard {
			return false
		}
	}
	return true
}
