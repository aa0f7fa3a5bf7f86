package engine

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/getmockd/mockserver/pkg/mock"
)

// ResponseDelayHeader holds the artificial delay of a mock in milliseconds.
const ResponseDelayHeader = "Response-Delay"

// ResponseDelay returns the delay requested by the Response-Delay header.
// The leading integer of the value is used; negative, missing or unparsable
// values yield zero.
func ResponseDelay(h mock.Headers) time.Duration {
	ms := leadingInt(h.Get(ResponseDelayHeader))
	if ms <= 0 {
		return 0
	}
	if ms > math.MaxInt64/int64(time.Millisecond) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ms) * time.Millisecond
}

// leadingInt parses an optionally signed run of digits at the start of s,
// ignoring leading whitespace and anything after the digits: "250ms" is 250,
// "abc" is 0.
func leadingInt(s string) int64 {
	s = strings.TrimLeft(s, " \t\r\n")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		n = math.MaxInt64
	}
	if neg {
		return -n
	}
	return n
}
