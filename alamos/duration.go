package alamos

import "time"

// Duration is a metric that records elapsed time.
type Duration interface {
	Metric[time.Duration]
	// Time records the time taken to execute f.
	Time(f func())
}

type duration struct {
	Metric[time.Duration]
}

func (d duration) Time(f func()) {
	t0 := time.Now()
	f()
	d.Record(time.Since(t0))
}

func NewSeriesDuration(exp Experiment, key string) Duration {
	return duration{Metric: NewSeries[time.Duration](exp, key)}
}

func NewGaugeDuration(exp Experiment, key string) Duration {
	return duration{Metric: NewGauge[time.Duration](exp, key)}
}
