// Package ordered provides small generic set/sort helpers shared by the
// selection and planner packages, in the style of sqldef-sqldef's use
// of generics (cmp, slices) for its own concurrent-map and topological
// sort helpers.
package ordered

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// UniqueSorted returns the distinct elements of a set (represented as a
// map with unused bool values, the idiom used throughout this module
// for level/code dedup) in ascending order.
func UniqueSorted[T constraints.Ordered](set map[T]bool) []T {
	out := make([]T, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
