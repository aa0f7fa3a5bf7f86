// Package cli provides the command-line interface for mockserver.
//
// Commands:
//   - serve: Serve the mock directory over HTTP (default command)
//   - resolve: Resolve one request offline and print the rendered mock
//   - config: Display effective configuration and where each value came from
//   - version: Show mockserver version
//
// Running mockserver with no command, or with flags only, runs serve.
package cli
