package sweepline_test

import (
	"math/rand"
	"time"

	"github.com/arya-analytics/sweepline"
	"github.com/arya-analytics/sweepline/internal/testutil"
	"github.com/arya-analytics/sweepline/internal/testutil/rec"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gmeasure"
)

type summary struct {
	Start, End int64
	Keys       []string
}

func summarize(blocks []sweepline.RecordBlock) []summary {
	s := make([]summary, len(blocks))
	for i, b := range blocks {
		s[i] = summary{Start: b.Start, End: b.End, Keys: rec.Keys(b.Items)}
	}
	return s
}

func sweepSummary(records []sweepline.Record, opts ...sweepline.Option) []summary {
	blocks, err := sweepline.SweepRecords(ctx, records, opts...)
	ExpectWithOffset(1, err).ToNot(HaveOccurred())
	return summarize(blocks)
}

func expectPartition(blocks []sweepline.RecordBlock) {
	for i, b := range blocks {
		ExpectWithOffset(1, b.Start).To(BeNumerically("<=", b.End))
		if i > 0 {
			ExpectWithOffset(1, b.Start).To(BeNumerically(">", blocks[i-1].End))
		}
	}
}

var _ = Describe("Properties", func() {
	Describe("Sample dataset", func() {
		It("Should partition the sample into blocks of constant coverage", func() {
			Expect(sweepSummary(rec.Sample())).To(Equal([]summary{
				{1, 3, []string{"a"}},
				{4, 7, []string{"a", "b", "f"}},
				{8, 9, []string{"a", "b", "c", "f"}},
				{10, 11, []string{"b", "c", "f"}},
				{12, 13, []string{"b", "c", "d", "f"}},
				{14, 15, []string{"c", "d"}},
				{16, 17, []string{"c", "d", "e"}},
				{18, 21, []string{"d", "e"}},
				{22, 25, []string{"e"}},
				{26, 31, []string{}},
				{32, 41, []string{"g"}},
				{42, 42, []string{"g"}},
			}))
		})
		It("Should place every sample end point in a block that lists the record in inclusive mode", func() {
			Expect(sweepSummary(rec.Sample(), sweepline.WithMode(sweepline.ModeInclusive))).To(Equal([]summary{
				{1, 3, []string{"a"}},
				{4, 7, []string{"a", "b", "f"}},
				{8, 10, []string{"a", "b", "c", "f"}},
				{11, 11, []string{"b", "c", "f"}},
				{12, 14, []string{"b", "c", "d", "f"}},
				{15, 15, []string{"c", "d"}},
				{16, 18, []string{"c", "d", "e"}},
				{19, 22, []string{"d", "e"}},
				{23, 26, []string{"e"}},
				{27, 31, []string{}},
				{32, 42, []string{"g"}},
			}))
		})
	})
	Describe("Empty input", func() {
		It("Should return an empty sequence", func() {
			Expect(sweepSummary(nil)).To(BeEmpty())
			Expect(sweepSummary([]sweepline.Record{})).To(BeEmpty())
		})
	})
	Describe("Single record", func() {
		It("Should split the record's end point into its own block by default", func() {
			Expect(sweepSummary([]sweepline.Record{rec.Keyed("a", 1, 5)})).To(Equal([]summary{
				{1, 4, []string{"a"}},
				{5, 5, []string{"a"}},
			}))
		})
		It("Should return exactly one block when coalescing", func() {
			Expect(sweepSummary([]sweepline.Record{rec.Keyed("a", 1, 5)}, sweepline.WithCoalesce())).To(Equal([]summary{
				{1, 5, []string{"a"}},
			}))
		})
		It("Should return exactly one block in inclusive mode", func() {
			Expect(sweepSummary([]sweepline.Record{rec.Keyed("a", 1, 5)}, sweepline.WithMode(sweepline.ModeInclusive))).To(Equal([]summary{
				{1, 5, []string{"a"}},
			}))
		})
		It("Should return a single point block for a zero length record", func() {
			Expect(sweepSummary([]sweepline.Record{rec.Keyed("a", 3, 3)})).To(Equal([]summary{
				{3, 3, []string{"a"}},
			}))
		})
	})
	Describe("Overlapping records", func() {
		var records []sweepline.Record
		BeforeEach(func() {
			records = []sweepline.Record{rec.Keyed("a", 1, 10), rec.Keyed("b", 4, 14), rec.Keyed("f", 4, 14)}
		})
		It("Should list every record covering the shared block", func() {
			Expect(sweepSummary(records)).To(ContainElement(summary{4, 9, []string{"a", "b", "f"}}))
		})
		It("Should drop a record from the block starting on its end point", func() {
			Expect(sweepSummary(records)).To(ContainElement(summary{10, 13, []string{"b", "f"}}))
		})
	})
	Describe("Adjacent points", func() {
		It("Should give each adjacent point a single point block", func() {
			Expect(sweepSummary([]sweepline.Record{rec.Keyed("a", 1, 2)})).To(Equal([]summary{
				{1, 1, []string{"a"}},
				{2, 2, []string{"a"}},
			}))
		})
	})
	Describe("Randomized", func() {
		var (
			r       *rand.Rand
			records []sweepline.Record
		)
		BeforeEach(func() {
			r = rand.New(rand.NewSource(GinkgoRandomSeed()))
			records = rec.Random(r, 60, 200, 40)
		})
		It("Should start exactly one block on every boundary point", func() {
			blocks, err := sweepline.SweepRecords(ctx, records)
			Expect(err).ToNot(HaveOccurred())
			expectPartition(blocks)
			starts := make(map[int64]int)
			for _, b := range blocks {
				starts[b.Start]++
			}
			for _, rc := range records {
				rng, err := rc.Range("start", "end")
				Expect(err).ToNot(HaveOccurred())
				Expect(starts[rng.Start]).To(Equal(1))
				Expect(starts[rng.End]).To(Equal(1))
			}
			Expect(starts).To(HaveLen(len(blocks)))
		})
		It("Should place every point of every record in exactly one listing block in inclusive mode", func() {
			blocks, err := sweepline.SweepRecords(ctx, records, sweepline.WithMode(sweepline.ModeInclusive))
			Expect(err).ToNot(HaveOccurred())
			expectPartition(blocks)
			for i, rc := range records {
				rng, _ := rc.Range("start", "end")
				for x := rng.Start; x <= rng.End; x++ {
					containing := 0
					for _, b := range blocks {
						if b.Range.Contains(x) {
							containing++
							Expect(b.Items).To(ContainElement(records[i]))
						}
					}
					Expect(containing).To(Equal(1))
				}
			}
		})
		It("Should only list records that cover the block", func() {
			blocks, err := sweepline.SweepRecords(ctx, records)
			Expect(err).ToNot(HaveOccurred())
			for _, b := range blocks {
				for _, item := range b.Items {
					rng, _ := item.Range("start", "end")
					Expect(rng.Covers(b.Range)).To(BeTrue())
				}
			}
		})
		It("Should produce identical results up to field renaming", func() {
			renamed := rec.Rename(records, "begin", "finish")
			Expect(sweepSummary(renamed, sweepline.WithKeys("begin", "finish"))).To(Equal(sweepSummary(records)))
		})
		It("Should produce identical results for every strategy and concurrency", func() {
			expected := sweepSummary(records)
			Expect(sweepSummary(records, sweepline.WithStrategy(sweepline.StrategySweep))).To(Equal(expected))
			Expect(sweepSummary(records, sweepline.WithConcurrency(4))).To(Equal(expected))
		})
		It("Should never change coverage when coalescing", func() {
			blocks, err := sweepline.SweepRecords(ctx, records)
			Expect(err).ToNot(HaveOccurred())
			merged, err := sweepline.SweepRecords(ctx, records, sweepline.WithCoalesce())
			Expect(err).ToNot(HaveOccurred())
			Expect(len(merged)).To(BeNumerically("<=", len(blocks)))
			expectPartition(merged)
			for _, b := range blocks {
				for _, m := range merged {
					if m.Range.Covers(b.Range) {
						Expect(rec.Keys(m.Items)).To(Equal(rec.Keys(b.Items)))
					}
				}
			}
			for i := 1; i < len(merged); i++ {
				Expect(rec.Keys(merged[i].Items)).ToNot(Equal(rec.Keys(merged[i-1].Items)))
			}
		})
		It("Should tile the axis between the first and last boundary in half open mode", func() {
			blocks, err := sweepline.SweepRecords(ctx, records, sweepline.WithMode(sweepline.ModeHalfOpen))
			Expect(err).ToNot(HaveOccurred())
			for i := 1; i < len(blocks); i++ {
				Expect(blocks[i].Start).To(Equal(blocks[i-1].End))
			}
		})
	})
	Describe("Performance", func() {
		It("Should sweep a thousand records", func() {
			records := rec.Random(rand.New(rand.NewSource(1)), 1000, 100000, 500)
			for _, s := range []sweepline.Strategy{sweepline.StrategyNaive, sweepline.StrategySweep} {
				s := s
				name := "sweep." + s.String()
				exp := testutil.RunDurationExp(name, 5, func() {
					_, err := sweepline.SweepRecords(ctx, records, sweepline.WithStrategy(s))
					Expect(err).ToNot(HaveOccurred())
				})
				stats := exp.GetStats(name)
				Expect(stats.N).To(Equal(5))
				Expect(stats.DurationFor(gmeasure.StatMedian)).To(BeNumerically("<", 5*time.Second))
			}
		})
	})
})
