package mock

import "strings"

// File name building blocks.
const (
	// Ext is the extension of every mock file.
	Ext = ".mock"

	// JSONExt is the extension of companion JSON body files.
	JSONExt = ".json"

	// Wildcard is the literal directory name (and query value) that matches
	// anything.
	Wildcard = "__"

	// QuerySeparator introduces the body or query section of a file name.
	QuerySeparator = "--"

	// JSONSeparator introduces the companion JSON base name.
	JSONSeparator = "@"
)

// Prefix returns the file name stem for a method and a header permutation.
func Prefix(method string, permutation []string) string {
	return method + strings.Join(permutation, "")
}

// BodyOrQuerySuffix returns the section appended to a prefix for an exact
// match:
//
//	body and query  -> "_" + body + "--" + query
//	query only      -> "--" + query
//	body only       -> "--" + body
//	neither         -> ""
func BodyOrQuerySuffix(body, query string) string {
	switch {
	case body != "" && query != "":
		return "_" + body + QuerySeparator + query
	case query != "":
		return QuerySeparator + query
	case body != "":
		return QuerySeparator + body
	default:
		return ""
	}
}

// ExactName returns the exact-match file name for prefix.
func ExactName(prefix, body, query string) string {
	return prefix + BodyOrQuerySuffix(body, query) + Ext
}

// FallbackName returns the fallback file name for prefix.
func FallbackName(prefix string) string {
	return prefix + Ext
}

// JSONKeyedName returns the mock file paired with the companion JSON file
// jsonFile (given with or without its .json extension).
func JSONKeyedName(prefix, jsonFile string) string {
	return prefix + JSONSeparator + strings.TrimSuffix(jsonFile, JSONExt) + Ext
}

// QuerySection extracts the embedded query from a mock file name: the text
// between the first "--" and the ".mock" extension. ok is false when the name
// has no "--" section.
func QuerySection(name string) (section string, ok bool) {
	stem := strings.Replace(name, Ext, "", 1)
	parts := strings.Split(stem, QuerySeparator)
	if len(parts) < 2 {
		return "", false
	}
	return parts[1], true
}

// IsMockFile reports whether name carries the mock extension.
func IsMockFile(name string) bool {
	return strings.HasSuffix(name, Ext)
}
