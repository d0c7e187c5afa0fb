package alamos

import "sync"

type baseMetric interface {
	Key() string
	Value() interface{}
}

// Metric is a named measurement of values of type T.
type Metric[T any] interface {
	baseMetric
	Record(T)
	Values() []T
}

// lookup returns the metric already registered under key, if it has the
// requested type.
func lookup[T any](exp Experiment, key string) (Metric[T], bool) {
	m, ok := exp.metric(key)
	if !ok {
		return nil, false
	}
	tm, ok := m.(Metric[T])
	return tm, ok
}

// |||||| GAUGE ||||||

type gauge[T any] struct {
	key   string
	mu    sync.Mutex
	value T
}

// NewGauge registers a metric that only keeps the last recorded value. If exp
// already has a metric of the same type under key, that metric is returned.
func NewGauge[T any](exp Experiment, key string) Metric[T] {
	if exp == nil {
		return empty[T]{key: key}
	}
	if m, ok := lookup[T](exp, key); ok {
		return m
	}
	g := &gauge[T]{key: key}
	exp.addMetric(g)
	return g
}

func (g *gauge[T]) Key() string { return g.key }

func (g *gauge[T]) Value() interface{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value
}

func (g *gauge[T]) Values() []T {
	g.mu.Lock()
	defer g.mu.Unlock()
	return []T{g.value}
}

func (g *gauge[T]) Record(v T) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.value = v
}

// |||||| SERIES ||||||

type series[T any] struct {
	key    string
	mu     sync.Mutex
	values []T
}

// NewSeries registers a metric that keeps every recorded value. If exp already
// has a metric of the same type under key, that metric is returned.
func NewSeries[T any](exp Experiment, key string) Metric[T] {
	if exp == nil {
		return empty[T]{key: key}
	}
	if m, ok := lookup[T](exp, key); ok {
		return m
	}
	s := &series[T]{key: key, values: []T{}}
	exp.addMetric(s)
	return s
}

func (s *series[T]) Key() string { return s.key }

func (s *series[T]) Value() interface{} { return s.Values() }

func (s *series[T]) Values() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]T, len(s.values))
	copy(v, s.values)
	return v
}

func (s *series[T]) Record(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = append(s.values, v)
}

// |||||| EMPTY ||||||

type empty[T any] struct{ key string }

func (e empty[T]) Key() string { return e.key }

func (e empty[T]) Value() interface{} { return nil }

func (e empty[T]) Values() []T { return nil }

func (e empty[T]) Record(T) {}
