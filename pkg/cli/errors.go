package cli

import "errors"

// Common CLI errors
var (
	ErrNotMocked      = errors.New("not mocked")
	ErrMockDirMissing = errors.New("mock directory is required: pass --dir or set MOCKSERVER_DIR")
)
