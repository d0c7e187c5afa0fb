package sweepline

import "github.com/arya-analytics/sweepline/alamos"

type metrics struct {
	// collect tracks the time taken to collect the timeline.
	collect alamos.Duration
	// build tracks the time taken to build blocks from the timeline.
	build alamos.Duration
	// assign tracks the time taken to assign records to blocks.
	assign alamos.Duration
	points alamos.Metric[int]
	blocks alamos.Metric[int]
	items  alamos.Metric[int]
}

func newMetrics(exp alamos.Experiment) metrics {
	return metrics{
		collect: alamos.NewSeriesDuration(exp, "collect"),
		build:   alamos.NewSeriesDuration(exp, "build"),
		assign:  alamos.NewSeriesDuration(exp, "assign"),
		points:  alamos.NewSeries[int](exp, "points"),
		blocks:  alamos.NewSeries[int](exp, "blocks"),
		items:   alamos.NewSeries[int](exp, "items"),
	}
}
