package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_Empty(t *testing.T) {
	assert.Equal(t, [][]string{{}}, Plan(nil))
	assert.Equal(t, [][]string{{}}, Plan([]string{}))
}

func TestPlan_Single(t *testing.T) {
	assert.Equal(t, [][]string{{"a"}, {}}, Plan([]string{"a"}))
}

func TestPlan_Two(t *testing.T) {
	want := [][]string{
		{"a", "b"},
		{"b", "a"},
		{"a"},
		{"b"},
		{},
	}
	assert.Equal(t, want, Plan([]string{"a", "b"}))
}

func TestPlan_Three(t *testing.T) {
	plan := Plan([]string{"a", "b", "c"})

	// 3! + 3*2! + 3*1! + the empty permutation
	require.Len(t, plan, 6+6+3+1)

	assert.Equal(t, []string{"a", "b", "c"}, plan[0])
	assert.Equal(t, []string{"c", "b", "a"}, plan[5])
	assert.Equal(t, []string{"a", "b"}, plan[6])
	assert.Equal(t, []string{"b", "a"}, plan[7])
	assert.Equal(t, []string{"a", "c"}, plan[8])
	assert.Equal(t, []string{"a"}, plan[12])
	assert.Equal(t, []string{"c"}, plan[14])
	assert.Empty(t, plan[15])

	for i := 1; i < len(plan); i++ {
		assert.LessOrEqual(t, len(plan[i]), len(plan[i-1]), "plan must be sorted by descending size")
	}
}

func TestPlan_NoDuplicates(t *testing.T) {
	plan := Plan([]string{"a", "b", "c"})
	seen := make(map[string]bool)
	for _, perm := range plan {
		key := ""
		for _, p := range perm {
			key += p + "|"
		}
		assert.False(t, seen[key], "duplicate permutation %v", perm)
		seen[key] = true
	}
}
