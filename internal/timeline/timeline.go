// Package timeline collects the boundary points of a set of ranges into a
// timeline: the strictly ascending, duplicate free sequence of every start and
// end point.
package timeline

import (
	"github.com/arya-analytics/sweepline/telem"
	"golang.org/x/exp/slices"
)

// Collect returns the timeline for the given ranges. The ranges are not
// modified. An empty set of ranges yields an empty, non-nil timeline.
func Collect[P telem.Point](ranges []telem.Range[P]) []P {
	points := make([]P, 0, 2*len(ranges))
	for _, r := range ranges {
		points = append(points, r.Start, r.End)
	}
	slices.Sort(points)
	// Compact keeps the first of each run of equal values, which on a sorted
	// slice is the same as keeping the first occurrence overall.
	return slices.Compact(points)
}
