// Package util provides shared helpers for mock file name validation and
// log-body truncation used across mockserver packages.
//
//   - IsPlainName - reject candidate file names that would escape a directory
//   - TruncateBody - cap request/response bodies for safe logging
package util
