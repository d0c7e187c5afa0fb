package alamos

// Report is a nested map of metric values keyed by metric and experiment key.
// It marshals cleanly to JSON.
type Report map[string]interface{}

func (e *experiment) Report() Report {
	e.mu.RLock()
	defer e.mu.RUnlock()
	r := make(Report, len(e.metrics)+len(e.children))
	for k, m := range e.metrics {
		r[k] = m.Value()
	}
	for k, c := range e.children {
		r[k] = c.Report()
	}
	return r
}
