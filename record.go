package sweepline

import (
	"bytes"
	"context"
	"encoding/json"
	"math"

	"github.com/arya-analytics/sweepline/internal/errutil"
	"github.com/arya-analytics/sweepline/telem"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Record is a dynamically typed record whose interval lives in two named
// fields (see WithKeys). Every other field is payload and is carried through a
// sweep untouched.
type Record map[string]interface{}

// Point reads the field at key as an integer point. Any integer kind, integral
// floats, and json.Number are accepted.
func (r Record) Point(key string) (int64, error) {
	v, ok := r[key]
	if !ok {
		return 0, newSimpleError(ErrInvalidRecord, "field %q is missing", key)
	}
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return fromUint(key, uint64(x))
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return fromUint(key, x)
	case float32:
		return fromFloat(key, float64(x))
	case float64:
		return fromFloat(key, x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return 0, newSimpleError(ErrInvalidRecord, "field %q holds malformed number %s", key, x)
		}
		return fromFloat(key, f)
	default:
		return 0, newSimpleError(ErrInvalidRecord, "field %q holds non-numeric value %v (%T)", key, v, v)
	}
}

func fromUint(key string, v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, newSimpleError(ErrInvalidRecord, "field %q value %d overflows int64", key, v)
	}
	return int64(v), nil
}

func fromFloat(key string, f float64) (int64, error) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, newSimpleError(ErrInvalidRecord, "field %q value %v is not an integer", key, f)
	}
	return int64(f), nil
}

// Range reads the interval of the record from the given fields.
func (r Record) Range(startKey, endKey string) (telem.Range[int64], error) {
	start, err := r.Point(startKey)
	if err != nil {
		return telem.Range[int64]{}, err
	}
	end, err := r.Point(endKey)
	return telem.Range[int64]{Start: start, End: end}, err
}

// RecordBlock is a Block of Records. It marshals to JSON using the configured
// field names, e.g. {"start": 4, "end": 9, "items": [...]}.
type RecordBlock struct {
	Block[Record, int64]
	startKey string
	endKey   string
}

func (b RecordBlock) MarshalJSON() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	fields := []struct {
		key   string
		value interface{}
	}{
		{b.startKey, b.Start},
		{b.endKey, b.End},
		{"items", b.Items},
	}
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SweepRecords partitions dynamically typed records into blocks, reading each
// interval from the fields named by WithKeys ("start" and "end" by default).
// A record with a missing or non-integer boundary fails the sweep with an
// ErrInvalidRecord error naming every offending record.
func SweepRecords(ctx context.Context, records []Record, opts ...Option) ([]RecordBlock, error) {
	o := newOptions(opts...)
	if o.startKey == o.endKey {
		return nil, newSimpleError(ErrInvalidOption, "start and end keys are both %q", o.startKey)
	}
	ranges := make([]telem.Range[int64], len(records))
	c := errutil.NewCatchSimple(errutil.WithAggregation())
	for i, r := range records {
		i, r := i, r
		c.Exec(func() (err error) {
			ranges[i], err = r.Range(o.startKey, o.endKey)
			return errors.Wrapf(err, "record %d", i)
		})
	}
	if err := c.Error(); err != nil {
		return nil, err
	}
	o.logger.Debug("read records",
		zap.Int("count", len(records)),
		zap.String("startKey", o.startKey),
		zap.String("endKey", o.endKey),
	)
	blocks, err := sweep(ctx, o, records, ranges)
	if err != nil {
		return nil, err
	}
	rBlocks := make([]RecordBlock, len(blocks))
	for i, b := range blocks {
		rBlocks[i] = RecordBlock{Block: b, startKey: o.startKey, endKey: o.endKey}
	}
	return rBlocks, nil
}
