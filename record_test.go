package sweepline_test

import (
	"encoding/json"

	"github.com/arya-analytics/sweepline"
	"github.com/arya-analytics/sweepline/internal/testutil/rec"
	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Record", func() {
	Describe("Point", func() {
		DescribeTable("Should read integer points from numeric values",
			func(v interface{}, expected int64) {
				p, err := sweepline.Record{"start": v}.Point("start")
				Expect(err).ToNot(HaveOccurred())
				Expect(p).To(Equal(expected))
			},
			Entry("int", 4, int64(4)),
			Entry("int32", int32(-4), int64(-4)),
			Entry("uint8", uint8(200), int64(200)),
			Entry("uint64", uint64(12), int64(12)),
			Entry("integral float64", 14.0, int64(14)),
			Entry("integral float32", float32(2), int64(2)),
			Entry("json number", json.Number("22"), int64(22)),
			Entry("json number in exponent form", json.Number("1e3"), int64(1000)),
		)
		DescribeTable("Should reject values that are not integer points",
			func(r sweepline.Record) {
				_, err := r.Point("start")
				Expect(errors.Is(err, sweepline.ErrInvalidRecord)).To(BeTrue())
			},
			Entry("missing", sweepline.Record{"end": 1}),
			Entry("string", sweepline.Record{"start": "1"}),
			Entry("fractional float", sweepline.Record{"start": 1.5}),
			Entry("overflowing uint", sweepline.Record{"start": ^uint64(0)}),
			Entry("malformed json number", sweepline.Record{"start": json.Number("x")}),
			Entry("nil", sweepline.Record{"start": nil}),
		)
	})
})

var _ = Describe("SweepRecords", func() {
	It("Should return no blocks for no records", func() {
		blocks, err := sweepline.SweepRecords(ctx, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(blocks).To(BeEmpty())
	})
	It("Should preserve record payloads", func() {
		blocks, err := sweepline.SweepRecords(ctx, rec.Sample())
		Expect(err).ToNot(HaveOccurred())
		Expect(blocks[0].Items[0]).To(HaveKeyWithValue("taste", "citrus"))
		Expect(blocks[0].Items[0]).To(HaveKeyWithValue("val", 1))
	})
	It("Should read boundaries from the configured keys", func() {
		records := []sweepline.Record{
			{"key": "a", "from": 1, "to": 10},
			{"key": "b", "from": 4, "to": 14},
		}
		blocks, err := sweepline.SweepRecords(ctx, records, sweepline.WithKeys("from", "to"))
		Expect(err).ToNot(HaveOccurred())
		Expect(blocks).To(HaveLen(4))
		Expect(blocks[1].Start).To(Equal(int64(4)))
		Expect(blocks[1].End).To(Equal(int64(9)))
		Expect(rec.Keys(blocks[1].Items)).To(Equal([]string{"a", "b"}))
	})
	It("Should marshal blocks with the configured keys", func() {
		records := []sweepline.Record{{"key": "a", "from": 1, "to": 1}}
		blocks, err := sweepline.SweepRecords(ctx, records, sweepline.WithKeys("from", "to"))
		Expect(err).ToNot(HaveOccurred())
		b, err := json.Marshal(blocks)
		Expect(err).ToNot(HaveOccurred())
		Expect(b).To(MatchJSON(`[{"from": 1, "to": 1, "items": [{"key": "a", "from": 1, "to": 1}]}]`))
	})
	It("Should marshal the start key before the end key", func() {
		blocks, err := sweepline.SweepRecords(ctx, []sweepline.Record{rec.Keyed("a", 3, 3)})
		Expect(err).ToNot(HaveOccurred())
		b, err := json.Marshal(blocks[0])
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(HavePrefix(`{"start":3,"end":3,"items":`))
	})
	It("Should report every record with an unreadable boundary", func() {
		records := []sweepline.Record{
			{"start": 1},
			rec.New(1, 2),
			{"start": "x", "end": 4},
		}
		_, err := sweepline.SweepRecords(ctx, records)
		Expect(errors.Is(err, sweepline.ErrInvalidRecord)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring(`record 0: field "end" is missing`))
		Expect(fmtVerbose(err)).To(ContainSubstring("record 2"))
	})
	It("Should reject identical start and end keys", func() {
		_, err := sweepline.SweepRecords(ctx, nil, sweepline.WithKeys("at", "at"))
		Expect(errors.Is(err, sweepline.ErrInvalidOption)).To(BeTrue())
	})
})
