// Package mockfs is a read-only view of the mock root directory.
//
// Every call goes to the filesystem: nothing is cached, so edits to the mock
// tree are visible to the next request without a restart. A missing file or
// directory is an ordinary negative answer, never an error.
//
// Directory arguments are slash-separated URL-style paths relative to the
// root ("/users/42"); they are joined onto the root with filepath.Join.
package mockfs
