package coverage

import (
	"github.com/arya-analytics/sweepline/telem"
	"golang.org/x/exp/slices"
)

// sortedIndices returns the indices of ranges ordered by the given key. Ties
// keep their original order.
func sortedIndices[P telem.Point](ranges []telem.Range[P], key func(telem.Range[P]) P) []int {
	idx := make([]int, len(ranges))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) bool { return key(ranges[a]) < key(ranges[b]) })
	return idx
}
