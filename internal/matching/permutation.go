package matching

import "sort"

// Plan expands header tokens into the ordered list of permutations the
// resolver tries as file name suffixes.
//
// Every non-empty subset of tokens is generated in combination order (subsets
// of the same size ordered lexicographically by token index), and each subset
// in every ordering (lexicographic permutation order, identity first). The
// result is stably sorted by descending subset size, so ties keep generator
// order, and one empty permutation is appended. An empty input yields [[]].
func Plan(tokens []string) [][]string {
	var plan [][]string
	for _, subset := range combinations(len(tokens)) {
		for _, order := range permutations(subset) {
			perm := make([]string, len(order))
			for i, idx := range order {
				perm[i] = tokens[idx]
			}
			plan = append(plan, perm)
		}
	}
	sort.SliceStable(plan, func(i, j int) bool {
		return len(plan[i]) > len(plan[j])
	})
	return append(plan, []string{})
}

// combinations returns every non-empty subset of {0..n-1} as ascending index
// lists, grouped by size and lexicographic within a size.
func combinations(n int) [][]int {
	var out [][]int
	for k := 1; k <= n; k++ {
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		for {
			out = append(out, append([]int(nil), idx...))
			i := k - 1
			for i >= 0 && idx[i] == n-k+i {
				i--
			}
			if i < 0 {
				break
			}
			idx[i]++
			for j := i + 1; j < k; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
	return out
}

// permutations returns every ordering of items in lexicographic order,
// assuming items is sorted ascending.
func permutations(items []int) [][]int {
	cur := append([]int(nil), items...)
	out := [][]int{append([]int(nil), cur...)}
	for nextPermutation(cur) {
		out = append(out, append([]int(nil), cur...))
	}
	return out
}

func nextPermutation(a []int) bool {
	i := len(a) - 2
	for i >= 0 && a[i] >= a[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(a) - 1
	for a[j] <= a[i] {
		j--
	}
	a[i], a[j] = a[j], a[i]
	for l, r := i+1, len(a)-1; l < r; l, r = l+1, r-1 {
		a[l], a[r] = a[r], a[l]
	}
	return true
}
