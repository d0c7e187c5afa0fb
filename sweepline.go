// Package sweepline partitions a collection of interval tagged records into
// the ordered sequence of non-overlapping blocks over which the set of
// covering records is constant. Each block carries the records covering it.
//
// A sweep runs in three stages. The timeline stage collects and sorts every
// start and end point. The block stage cuts the axis at those points. The
// coverage stage lists, for each block, the records r with
// r.Start <= block.Start and r.End >= block.End, in input order. A record may
// appear in any number of blocks.
//
// Sweeps are pure: records are never modified and every call returns freshly
// allocated blocks.
package sweepline

import (
	"context"

	"github.com/arya-analytics/sweepline/telem"
)

// Bounds extracts the interval of a record.
type Bounds[R any, P telem.Point] func(r R) telem.Range[P]

// Block is a sub interval of the swept axis together with the records that
// fully cover it.
type Block[R any, P telem.Point] struct {
	telem.Range[P]
	Items []R `json:"items"`
}

// Sweep partitions records into blocks, reading the interval of each record
// with bounds. Records that end before they start produce deterministic but
// meaningless output unless WithValidation is set.
func Sweep[R any, P telem.Point](
	ctx context.Context,
	records []R,
	bounds Bounds[R, P],
	opts ...Option,
) ([]Block[R, P], error) {
	o := newOptions(opts...)
	ranges := make([]telem.Range[P], len(records))
	for i, r := range records {
		ranges[i] = bounds(r)
	}
	return sweep(ctx, o, records, ranges)
}

func sweep[R any, P telem.Point](
	ctx context.Context,
	o *options,
	records []R,
	ranges []telem.Range[P],
) ([]Block[R, P], error) {
	p, err := newPipeline[P](o)
	if err != nil {
		return nil, err
	}
	spans, sets, err := p.exec(ctx, ranges)
	if err != nil {
		return nil, err
	}
	blocks := make([]Block[R, P], len(spans))
	for i, span := range spans {
		set := sets[i]
		items := make([]R, 0, set.Count())
		for j, ok := set.NextSet(0); ok; j, ok = set.NextSet(j + 1) {
			items = append(items, records[j])
		}
		blocks[i] = Block[R, P]{Range: span, Items: items}
	}
	return blocks, nil
}
