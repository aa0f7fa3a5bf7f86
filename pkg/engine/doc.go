// Package engine serves mock files over HTTP.
//
// A request flows through a linear pipeline:
//
//	read body -> resolve mock file -> render -> Response-Delay -> write
//
// Handler implements that pipeline as an http.Handler. Server owns the HTTP
// listener (and an optional metrics listener) and its lifecycle. Watcher
// reports edits made to the mock directory while the server runs; it never
// feeds a cache, every request reads the mock files from disk.
package engine
