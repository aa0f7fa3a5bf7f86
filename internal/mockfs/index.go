package mockfs

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// WildcardSegment is the directory name that matches any single path segment.
const WildcardSegment = "__"

// Index answers directory and file questions about one mock root.
type Index struct {
	root string
	fsys fs.FS
}

// New returns an Index rooted at root.
func New(root string) *Index {
	return &Index{root: root, fsys: os.DirFS(root)}
}

// Root returns the mock root directory.
func (ix *Index) Root() string {
	return ix.root
}

// Path returns the filesystem path of name inside dir.
func (ix *Index) Path(dir, name string) string {
	return filepath.Join(ix.root, filepath.FromSlash(dir), name)
}

// Dir returns the filesystem path of dir.
func (ix *Index) Dir(dir string) string {
	return filepath.Join(ix.root, filepath.FromSlash(dir))
}

// Exists reports whether name is a regular file inside dir.
func (ix *Index) Exists(dir, name string) bool {
	info, err := os.Stat(ix.Path(dir, name))
	return err == nil && !info.IsDir()
}

// IsDir reports whether dir exists and is a directory.
func (ix *Index) IsDir(dir string) bool {
	info, err := os.Stat(ix.Dir(dir))
	return err == nil && info.IsDir()
}

// List returns the names of the regular files in dir, sorted. A missing
// directory yields nil.
func (ix *Index) List(dir string) []string {
	entries, err := os.ReadDir(ix.Dir(dir))
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names
}

// ReadFile returns the content of name inside dir.
func (ix *Index) ReadFile(dir, name string) (string, error) {
	data, err := os.ReadFile(ix.Path(dir, name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Directories returns every directory below the root as a slash-separated
// path relative to the root, sorted. The root itself is not included.
func (ix *Index) Directories() ([]string, error) {
	var dirs []string
	err := doublestar.GlobWalk(ix.fsys, "**", func(p string, d fs.DirEntry) error {
		if d.IsDir() && p != "." && p != "" {
			dirs = append(dirs, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(dirs)
	return dirs, nil
}

// WildcardDirectories returns the directories that have at least one
// wildcard segment.
func (ix *Index) WildcardDirectories() ([]string, error) {
	dirs, err := ix.Directories()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var out []string
	for _, d := range dirs {
		for _, seg := range strings.Split(d, "/") {
			if seg == WildcardSegment {
				out = append(out, d)
				break
			}
		}
	}
	return out, nil
}

// WildcardPath finds the wildcard directory that should serve reqPath when
// reqPath itself has no match.
//
// Directories with the same number of segments as reqPath, whose segments
// equal reqPath's except where they are "__", are preferred. Among those the
// greatest path in descending string order wins, so "foo/__/bar" beats
// "foo/123/__" ('_' sorts after digits). Only when none qualifies is a "__"
// sibling of one of reqPath's ancestors used, and then the shallowest one.
// ok is false when neither exists.
func (ix *Index) WildcardPath(reqPath string) (dir string, ok bool) {
	steps := Segments(reqPath)
	if len(steps) == 0 {
		return "", false
	}

	dirs, err := ix.WildcardDirectories()
	if err == nil {
		var best []string
		for _, d := range dirs {
			dirSteps := strings.Split(d, "/")
			if len(dirSteps) != len(steps) || !matchSegments(steps, dirSteps) {
				continue
			}
			if best == nil || sortKey(dirSteps) > sortKey(best) {
				best = dirSteps
			}
		}
		if best != nil {
			return "/" + strings.Join(best, "/"), true
		}
	}

	for i := 0; i < len(steps); i++ {
		test := "/" + path.Join(append(append([]string(nil), steps[:i]...), WildcardSegment)...)
		if ix.IsDir(test) {
			return test, true
		}
	}
	return "", false
}

// Segments splits a URL path into its non-empty segments.
func Segments(p string) []string {
	var out []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// matchSegments reports whether every dirSteps segment equals the matching
// steps segment or is a wildcard. Both slices have the same length.
func matchSegments(steps, dirSteps []string) bool {
	for i := range steps {
		if dirSteps[i] != steps[i] && dirSteps[i] != WildcardSegment {
			return false
		}
	}
	return true
}

// sortKey joins segments with ',' so candidates compare segment by segment
// the same way on every platform.
func sortKey(steps []string) string {
	return strings.Join(steps, ",")
}
