// Package alamos is a small instrumentation library. An Experiment is a named,
// hierarchical collection of metrics that can be reported as a nested map.
// A nil Experiment is valid everywhere and disables instrumentation.
package alamos

import "sync"

type Experiment interface {
	// Key returns the key of the experiment.
	Key() string
	// Sub returns the child experiment with the given key, creating it if it
	// does not exist.
	Sub(key string) Experiment
	// Metrics returns a snapshot of the metrics in the experiment.
	Metrics() map[string]baseMetric
	// Report returns the values of every metric in the experiment and its
	// children.
	Report() Report
	metric(key string) (baseMetric, bool)
	addMetric(m baseMetric)
}

type experiment struct {
	key      string
	mu       sync.RWMutex
	children map[string]Experiment
	metrics  map[string]baseMetric
}

func New(key string) Experiment {
	return &experiment{
		key:      key,
		children: make(map[string]Experiment),
		metrics:  make(map[string]baseMetric),
	}
}

// Sub is a nil safe version of Experiment.Sub.
func Sub(exp Experiment, key string) Experiment {
	if exp == nil {
		return nil
	}
	return exp.Sub(key)
}

func (e *experiment) Key() string { return e.key }

func (e *experiment) Sub(key string) Experiment {
	e.mu.Lock()
	defer e.mu.Unlock()
	if sub, ok := e.children[key]; ok {
		return sub
	}
	sub := New(key)
	e.children[key] = sub
	return sub
}

func (e *experiment) Metrics() map[string]baseMetric {
	e.mu.RLock()
	defer e.mu.RUnlock()
	m := make(map[string]baseMetric, len(e.metrics))
	for k, v := range e.metrics {
		m[k] = v
	}
	return m
}

func (e *experiment) metric(key string) (baseMetric, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	m, ok := e.metrics[key]
	return m, ok
}

func (e *experiment) addMetric(m baseMetric) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.metrics[m.Key()] = m
}
