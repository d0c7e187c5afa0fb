package testutil

import (
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega/gmeasure"
)

// RunDurationExp samples the duration of f n times and attaches the resulting
// experiment to the report of the running test.
func RunDurationExp(name string, n int, f func()) *gmeasure.Experiment {
	exp := gmeasure.NewExperiment(name)
	ginkgo.AddReportEntry(exp.Name, exp)
	exp.Sample(func(idx int) {
		exp.MeasureDuration(name, f, gmeasure.Precision(time.Microsecond))
	}, gmeasure.SamplingConfig{N: n})
	return exp
}
