// Package metrics exposes Prometheus metrics for the mock server.
//
// Every Metrics value owns its own registry so that several servers (or
// tests) in one process never collide on metric registration.
//
//   - mockserver_requests_total: requests served (labels: method, status)
//   - mockserver_request_duration_seconds: time to answer, including any
//     Response-Delay (labels: method, status)
//   - mockserver_matches_total: resolved mocks (labels: stage, wildcard)
//   - mockserver_misses_total: requests answered with "Not Mocked"
//   - mockserver_render_errors_total: mock files that failed to render
//     (labels: kind)
//   - mockserver_active_requests: requests currently being handled
//   - mockserver_file_events_total: mock directory changes seen in watch
//     mode (labels: op)
//
// Usage:
//
//	m := metrics.New()
//	http.Handle("/metrics", m.Handler())
package metrics
