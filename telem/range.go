package telem

import "fmt"

// Range is a closed interval [Start, End] on an axis of points.
type Range[P Point] struct {
	Start P `json:"start"`
	End   P `json:"end"`
}

func NewRange[P Point](start, end P) Range[P] {
	return Range[P]{Start: start, End: end}
}

// Valid returns true if the range does not end before it starts.
func (r Range[P]) Valid() bool { return r.Start <= r.End }

// IsZero returns true if the range starts and ends on the same point.
func (r Range[P]) IsZero() bool { return r.Start == r.End }

// Span returns the distance between the start and end of the range.
func (r Range[P]) Span() P { return r.End - r.Start }

// Contains returns true if p lies within the closed range.
func (r Range[P]) Contains(p P) bool { return p >= r.Start && p <= r.End }

// Covers returns true if r fully covers o i.e. o begins no earlier and ends no
// later than r.
func (r Range[P]) Covers(o Range[P]) bool { return r.Start <= o.Start && r.End >= o.End }

// CoveredBy is the inverse of Covers.
func (r Range[P]) CoveredBy(o Range[P]) bool { return o.Covers(r) }

// Overlaps returns true if the two closed ranges share at least one point.
func (r Range[P]) Overlaps(o Range[P]) bool { return r.Start <= o.End && o.Start <= r.End }

// BoundBy clips r so that it lies within the bound.
func (r Range[P]) BoundBy(bound Range[P]) Range[P] {
	if r.Start < bound.Start {
		r.Start = bound.Start
	}
	if r.End > bound.End {
		r.End = bound.End
	}
	return r
}

func (r Range[P]) String() string { return fmt.Sprintf("[%v, %v]", r.Start, r.End) }
