// Package block converts a timeline into the ordered sequence of blocks that
// partition it. A block starts on a timeline point and never contains another
// timeline point past its start.
package block

import "github.com/arya-analytics/sweepline/telem"

// Mode selects how a block's end is derived from the next timeline point.
type Mode uint8

const (
	// Closed blocks run from a point up to the predecessor of the next point,
	// and the last point gets a single point block of its own.
	Closed Mode = iota
	// HalfOpen blocks run from a point up to, but excluding, the next point. The
	// End of a half open block is the next point itself, and no block follows
	// the last point.
	HalfOpen
)

func (m Mode) String() string {
	if m == HalfOpen {
		return "half-open"
	}
	return "closed"
}

type Config[P telem.Point] struct {
	Mode Mode
	// Predecessor is used in Closed mode. Defaults to telem.Decrement.
	Predecessor telem.Predecessor[P]
}

func (c Config[P]) predecessor() telem.Predecessor[P] {
	if c.Predecessor == nil {
		return telem.Decrement[P]
	}
	return c.Predecessor
}

// Adjacent reports whether next starts directly after prev ends, leaving no
// point of the axis between the two blocks.
func (c Config[P]) Adjacent(prev, next telem.Range[P]) bool {
	if c.Mode == HalfOpen {
		return prev.End == next.Start
	}
	// A clamped block may end past the predecessor of the next point.
	return prev.End < next.Start && prev.End >= c.predecessor()(next.Start)
}

// Build returns the blocks for the given timeline, which must be strictly
// ascending. Blocks are returned in timeline order.
func Build[P telem.Point](tl []P, cfg Config[P]) []telem.Range[P] {
	if cfg.Mode == HalfOpen {
		return buildHalfOpen(tl)
	}
	pred := cfg.predecessor()
	blocks := make([]telem.Range[P], len(tl))
	for i, p := range tl {
		end := p
		if i+1 < len(tl) {
			// Points closer than one unit apart would give an inverted block,
			// so those collapse to a single point.
			if q := pred(tl[i+1]); q >= p {
				end = q
			}
		}
		blocks[i] = telem.Range[P]{Start: p, End: end}
	}
	return blocks
}

func buildHalfOpen[P telem.Point](tl []P) []telem.Range[P] {
	if len(tl) < 2 {
		return []telem.Range[P]{}
	}
	blocks := make([]telem.Range[P], len(tl)-1)
	for i := range blocks {
		blocks[i] = telem.Range[P]{Start: tl[i], End: tl[i+1]}
	}
	return blocks
}
