package sweepline

import (
	"github.com/arya-analytics/sweepline/alamos"
	"github.com/arya-analytics/sweepline/internal/coverage"
	"github.com/arya-analytics/sweepline/telem"
	"go.uber.org/zap"
)

const (
	DefaultStartKey = "start"
	DefaultEndKey   = "end"
)

// Mode controls how record boundaries are interpreted.
type Mode uint8

const (
	// ModeClosed treats records as closed intervals and builds each block from
	// a boundary up to the predecessor of the next boundary. This is the
	// default. A record's end point is a boundary of its own, so the block
	// that starts on it is not covered by the record.
	ModeClosed Mode = iota
	// ModeHalfOpen treats records and blocks as [start, end). It suits axes
	// without a meaningful predecessor, such as floats.
	ModeHalfOpen
	// ModeInclusive treats records as closed intervals and places the trailing
	// boundary of each record on the successor of its end, so every point of a
	// record lies in a block that lists it.
	ModeInclusive
)

func (m Mode) String() string {
	switch m {
	case ModeHalfOpen:
		return "half-open"
	case ModeInclusive:
		return "inclusive"
	default:
		return "closed"
	}
}

// Strategy selects the coverage algorithm. Both strategies produce identical
// output.
type Strategy = coverage.Strategy

const (
	// StrategyNaive compares every block against every record. It is the
	// default.
	StrategyNaive = coverage.Naive
	// StrategySweep maintains the set of records active at each block.
	StrategySweep = coverage.Sweep
)

type Option func(*options)

type options struct {
	startKey    string
	endKey      string
	mode        Mode
	predecessor interface{}
	successor   interface{}
	coverage    coverage.Config
	coalesce    bool
	strict      bool
	logger      *zap.Logger
	exp         alamos.Experiment
}

func newOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	mergeDefaultOptions(o)
	return o
}

func mergeDefaultOptions(o *options) {
	if o.startKey == "" {
		o.startKey = DefaultStartKey
	}
	if o.endKey == "" {
		o.endKey = DefaultEndKey
	}
	if o.coverage.Concurrency < 1 {
		o.coverage.Concurrency = 1
	}

	// || LOGGER ||

	if o.logger == nil {
		o.logger = zap.NewNop()
	}
}

// WithKeys sets the names of the record fields holding the start and end of
// each interval. Only used by SweepRecords. Empty names keep the defaults.
func WithKeys(startKey, endKey string) Option {
	return func(o *options) {
		o.startKey = startKey
		o.endKey = endKey
	}
}

// WithMode sets how record boundaries are interpreted. See Mode.
func WithMode(mode Mode) Option {
	return func(o *options) { o.mode = mode }
}

// WithPredecessor sets the function used to end a closed block one step before
// the next boundary. P must match the axis being swept. Defaults to p - 1.
func WithPredecessor[P telem.Point](pred telem.Predecessor[P]) Option {
	return func(o *options) { o.predecessor = pred }
}

// WithSuccessor sets the function used by ModeInclusive to place the trailing
// boundary of a record. P must match the axis being swept. Defaults to p + 1.
func WithSuccessor[P telem.Point](succ telem.Successor[P]) Option {
	return func(o *options) { o.successor = succ }
}

// WithStrategy sets the coverage algorithm.
func WithStrategy(s Strategy) Option {
	return func(o *options) { o.coverage.Strategy = s }
}

// WithConcurrency sets the maximum number of goroutines used to compute
// coverage with StrategyNaive. Defaults to 1.
func WithConcurrency(n int) Option {
	return func(o *options) { o.coverage.Concurrency = n }
}

// WithCoalesce merges adjacent blocks covered by the same records, so that
// every returned block is maximal.
func WithCoalesce() Option {
	return func(o *options) { o.coalesce = true }
}

// WithValidation rejects records that end before they start with an
// ErrInvalidRange error instead of sweeping them.
func WithValidation() Option {
	return func(o *options) { o.strict = true }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithExperiment(exp alamos.Experiment) Option {
	return func(o *options) { o.exp = alamos.Sub(exp, "sweepline") }
}
