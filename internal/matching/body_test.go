package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsJSON(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{`{"a":1}`, true},
		{`[1,2,3]`, true},
		{`"text"`, true},
		{`42`, true},
		{``, false},
		{`{"a":`, false},
		{`hello`, false},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			assert.Equal(t, tt.want, IsJSON(tt.body))
		})
	}
}

func TestCanonicalJSON(t *testing.T) {
	got, err := CanonicalJSON("{ \"b\": 2,\n \"a\": [1, {\"d\": true, \"c\": null}] }")
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,{"c":null,"d":true}],"b":2}`, got)

	_, err = CanonicalJSON(`{"a":`)
	assert.Error(t, err)
}

func TestCanonicalJSONEquality(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{"key order ignored", `{"a":1,"b":2}`, `{"b":2,"a":1}`, true},
		{"whitespace ignored", `{"a": 1}`, "{\n  \"a\":1\n}", true},
		{"nested key order", `{"o":{"x":1,"y":2}}`, `{"o":{"y":2,"x":1}}`, true},
		{"array order matters", `[1,2]`, `[2,1]`, false},
		{"value differs", `{"a":1}`, `{"a":2}`, false},
		{"extra key", `{"a":1}`, `{"a":1,"b":2}`, false},
		{"invalid left", `{`, `{}`, false},
		{"invalid right", `{}`, `nope`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ca, errA := CanonicalJSON(tt.a)
			cb, errB := CanonicalJSON(tt.b)
			equal := errA == nil && errB == nil && ca == cb
			assert.Equal(t, tt.want, equal)
		})
	}
}
