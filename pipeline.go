package sweepline

import (
	"context"

	"github.com/arya-analytics/sweepline/internal/block"
	"github.com/arya-analytics/sweepline/internal/coverage"
	"github.com/arya-analytics/sweepline/internal/errutil"
	"github.com/arya-analytics/sweepline/internal/timeline"
	"github.com/arya-analytics/sweepline/telem"
	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"
)

// pipeline runs the three sweep stages over the ranges of a set of records:
// collecting the timeline, building blocks from it, and assigning ranges to
// the blocks they cover.
type pipeline[P telem.Point] struct {
	*options
	pred    telem.Predecessor[P]
	succ    telem.Successor[P]
	metrics metrics
}

func newPipeline[P telem.Point](o *options) (*pipeline[P], error) {
	p := &pipeline[P]{
		options: o,
		pred:    telem.Decrement[P],
		succ:    telem.Increment[P],
		metrics: newMetrics(o.exp),
	}
	if o.predecessor != nil {
		pred, ok := o.predecessor.(telem.Predecessor[P])
		if !ok {
			return nil, newSimpleError(ErrInvalidOption, "predecessor %T does not match the swept axis", o.predecessor)
		}
		p.pred = pred
	}
	if o.successor != nil {
		succ, ok := o.successor.(telem.Successor[P])
		if !ok {
			return nil, newSimpleError(ErrInvalidOption, "successor %T does not match the swept axis", o.successor)
		}
		p.succ = succ
	}
	return p, nil
}

func (p *pipeline[P]) exec(
	ctx context.Context,
	ranges []telem.Range[P],
) ([]telem.Range[P], []*bitset.BitSet, error) {
	if p.strict {
		if err := validate(ranges); err != nil {
			return nil, nil, err
		}
	}
	var saturated *bitset.BitSet
	if p.mode == ModeInclusive {
		ranges, saturated = p.widen(ranges)
	}

	var tl []P
	p.metrics.collect.Time(func() { tl = timeline.Collect(ranges) })
	if saturated != nil && saturated.Any() {
		if err := checkSaturated(ranges, saturated, tl); err != nil {
			return nil, nil, err
		}
	}
	p.logger.Debug("collected timeline",
		zap.Int("records", len(ranges)),
		zap.Int("points", len(tl)),
	)

	var blocks []telem.Range[P]
	p.metrics.build.Time(func() {
		blocks = block.Build(tl, block.Config[P]{Mode: p.blockMode(), Predecessor: p.pred})
	})
	p.logger.Debug("built blocks",
		zap.Stringer("mode", p.mode),
		zap.Int("blocks", len(blocks)),
	)

	var (
		sets []*bitset.BitSet
		err  error
	)
	p.metrics.assign.Time(func() { sets, err = coverage.Assign(ctx, blocks, ranges, p.coverage) })
	if err != nil {
		return nil, nil, newDerivedError(ErrCanceled, err)
	}
	p.logger.Debug("assigned coverage",
		zap.Stringer("strategy", p.coverage.Strategy),
		zap.Int("concurrency", p.coverage.Concurrency),
	)

	if p.mode == ModeInclusive {
		blocks, sets = p.narrow(blocks, sets, ranges, saturated)
	}
	if p.coalesce {
		before := len(blocks)
		blocks, sets = coverage.Coalesce(blocks, sets, p.adjacency().Adjacent)
		p.logger.Debug("coalesced blocks", zap.Int("before", before), zap.Int("after", len(blocks)))
	}

	p.metrics.points.Record(len(tl))
	p.metrics.blocks.Record(len(blocks))
	items := 0
	for _, s := range sets {
		items += int(s.Count())
	}
	p.metrics.items.Record(items)
	return blocks, sets, nil
}

func (p *pipeline[P]) blockMode() block.Mode {
	if p.mode == ModeClosed {
		return block.Closed
	}
	return block.HalfOpen
}

// adjacency describes the blocks returned by narrow, which are closed unless
// the sweep is half open.
func (p *pipeline[P]) adjacency() block.Config[P] {
	if p.mode == ModeHalfOpen {
		return block.Config[P]{Mode: block.HalfOpen}
	}
	return block.Config[P]{Mode: block.Closed, Predecessor: p.pred}
}

// widen moves the end of every range to its successor, turning closed ranges
// into half open ones. Ranges ending on a point without a successor, such as
// the maximum of an integer axis, keep their end and are marked in the
// returned set.
func (p *pipeline[P]) widen(ranges []telem.Range[P]) ([]telem.Range[P], *bitset.BitSet) {
	var (
		w         = make([]telem.Range[P], len(ranges))
		saturated = bitset.New(uint(len(ranges)))
	)
	for i, r := range ranges {
		end := p.succ(r.End)
		if end <= r.End {
			end = r.End
			saturated.Set(uint(i))
		}
		w[i] = telem.Range[P]{Start: r.Start, End: end}
	}
	return w, saturated
}

// checkSaturated ensures that every range without a successor ends on the last
// timeline point, so that the trailing block built by narrow covers it.
func checkSaturated[P telem.Point](ranges []telem.Range[P], saturated *bitset.BitSet, tl []P) error {
	last := tl[len(tl)-1]
	for i, ok := saturated.NextSet(0); ok; i, ok = saturated.NextSet(i + 1) {
		if ranges[i].End != last {
			return newSimpleError(ErrInvalidRange, "record %d: end %v has no successor", i, ranges[i].End)
		}
	}
	return nil
}

// narrow converts half open blocks back into closed ones. Ranges in saturated
// end on the last timeline point, which has no successor to close a half open
// block on. When no other range starts or ends on that point, the final block
// is extended to include it. Otherwise the point gets a single point block
// covered by exactly the saturated ranges.
func (p *pipeline[P]) narrow(
	blocks []telem.Range[P],
	sets []*bitset.BitSet,
	ranges []telem.Range[P],
	saturated *bitset.BitSet,
) ([]telem.Range[P], []*bitset.BitSet) {
	for i := range blocks {
		blocks[i].End = p.pred(blocks[i].End)
	}
	first, ok := saturated.NextSet(0)
	if !ok {
		return blocks, sets
	}
	last := ranges[first].End
	if len(blocks) > 0 && !isBoundary(ranges, saturated, last) {
		blocks[len(blocks)-1].End = last
		return blocks, sets
	}
	return append(blocks, telem.Range[P]{Start: last, End: last}), append(sets, saturated)
}

// isBoundary reports whether p starts a range or ends a range that was widened.
func isBoundary[P telem.Point](ranges []telem.Range[P], saturated *bitset.BitSet, p P) bool {
	for i, r := range ranges {
		if r.Start == p || (!saturated.Test(uint(i)) && r.End == p) {
			return true
		}
	}
	return false
}

func validate[P telem.Point](ranges []telem.Range[P]) error {
	c := errutil.NewCatchSimple(errutil.WithAggregation())
	for i, r := range ranges {
		i, r := i, r
		c.Exec(func() error {
			if r.Valid() {
				return nil
			}
			return newSimpleError(ErrInvalidRange, "record %d: end %v is before start %v", i, r.End, r.Start)
		})
	}
	return c.Error()
}
