// Package coverage assigns ranges to the blocks they fully cover. A range r
// covers a block b iff r.Start <= b.Start and r.End >= b.End.
//
// Assignments are returned as one bitset per block holding the indices of the
// covering ranges. Iterating a bitset yields indices in ascending order, so
// callers that map indices back to their inputs keep the input order.
package coverage

import (
	"context"

	"github.com/arya-analytics/sweepline/telem"
	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sync/errgroup"
)

// Strategy selects the algorithm used to compute coverage. Every strategy
// produces identical assignments.
type Strategy uint8

const (
	// Naive compares every block against every range.
	Naive Strategy = iota
	// Sweep walks the blocks in order, maintaining the set of active ranges.
	// It requires blocks to be ascending and non-overlapping, which is always
	// true of the blocks built from a timeline.
	Sweep
)

func (s Strategy) String() string {
	switch s {
	case Naive:
		return "naive"
	case Sweep:
		return "sweep"
	default:
		return "unknown"
	}
}

type Config struct {
	Strategy Strategy
	// Concurrency is the maximum number of goroutines used by the Naive
	// strategy. Values below two run the scan on the calling goroutine.
	Concurrency int
}

// checkEvery is the number of blocks scanned between context checks.
const checkEvery = 256

// Assign computes the set of ranges covering each block.
func Assign[P telem.Point](
	ctx context.Context,
	blocks []telem.Range[P],
	ranges []telem.Range[P],
	cfg Config,
) ([]*bitset.BitSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cfg.Strategy == Sweep {
		return sweep(ctx, blocks, ranges)
	}
	return naive(ctx, blocks, ranges, cfg.Concurrency)
}

// |||||| NAIVE ||||||

func naive[P telem.Point](
	ctx context.Context,
	blocks []telem.Range[P],
	ranges []telem.Range[P],
	concurrency int,
) ([]*bitset.BitSet, error) {
	sets := make([]*bitset.BitSet, len(blocks))
	if concurrency < 2 || len(blocks) < 2 {
		return sets, scan(ctx, blocks, ranges, sets, 0, len(blocks))
	}
	if concurrency > len(blocks) {
		concurrency = len(blocks)
	}
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	chunk := (len(blocks) + concurrency - 1) / concurrency
	for lo := 0; lo < len(blocks); lo += chunk {
		lo, hi := lo, lo+chunk
		if hi > len(blocks) {
			hi = len(blocks)
		}
		g.Go(func() error { return scan(gCtx, blocks, ranges, sets, lo, hi) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}

// scan fills sets[lo:hi]. Each slot is written by exactly one goroutine.
func scan[P telem.Point](
	ctx context.Context,
	blocks []telem.Range[P],
	ranges []telem.Range[P],
	sets []*bitset.BitSet,
	lo, hi int,
) error {
	for i := lo; i < hi; i++ {
		if (i-lo)%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		set := bitset.New(uint(len(ranges)))
		for j, r := range ranges {
			if r.Covers(blocks[i]) {
				set.Set(uint(j))
			}
		}
		sets[i] = set
	}
	return nil
}

// |||||| SWEEP ||||||

func sweep[P telem.Point](
	ctx context.Context,
	blocks []telem.Range[P],
	ranges []telem.Range[P],
) ([]*bitset.BitSet, error) {
	var (
		n       = uint(len(ranges))
		byStart = sortedIndices(ranges, func(r telem.Range[P]) P { return r.Start })
		byEnd   = sortedIndices(ranges, func(r telem.Range[P]) P { return r.End })
		started = bitset.New(n)
		ended   = bitset.New(n)
		s, e    int
		sets    = make([]*bitset.BitSet, len(blocks))
	)
	for i, b := range blocks {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		for ; s < len(byStart) && ranges[byStart[s]].Start <= b.Start; s++ {
			started.Set(uint(byStart[s]))
		}
		// Block ends never decrease, so a range ending before this block can
		// never cover a later one.
		for ; e < len(byEnd) && ranges[byEnd[e]].End < b.End; e++ {
			ended.Set(uint(byEnd[e]))
		}
		sets[i] = started.Difference(ended)
	}
	return sets, nil
}
