package matching

import (
	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"
	"github.com/tidwall/gjson"
)

// canonicalOptions serializes JSON compactly with object keys sorted, so two
// documents that differ only in key order serialize identically.
var canonicalOptions = &ojg.Options{Sort: true}

// IsJSON reports whether body is a syntactically valid JSON document.
func IsJSON(body string) bool {
	if body == "" {
		return false
	}
	return gjson.Valid(body)
}

// CanonicalJSON parses doc and re-serializes it with sorted keys and no
// insignificant whitespace.
func CanonicalJSON(doc string) (string, error) {
	value, err := oj.ParseString(doc)
	if err != nil {
		return "", err
	}
	return oj.JSON(value, canonicalOptions), nil
}
