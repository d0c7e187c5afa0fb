package telem

import (
	"time"
)

// |||||| TIME STAMP ||||||

// TimeStamp is a point in time expressed in microseconds since the unix epoch.
// It satisfies Point, so time axes can be swept directly.
type TimeStamp int64

func NewTimeStamp(t time.Time) TimeStamp { return TimeStamp(t.UnixMicro()) }

var (
	TimeStampMin = TimeStamp(0)
	TimeStampMax = TimeStamp(^uint64(0) >> 1)
)

func (ts TimeStamp) Time() time.Time { return time.UnixMicro(int64(ts)) }

func (ts TimeStamp) String() string { return ts.Time().UTC().String() }

func (ts TimeStamp) Add(tspan TimeSpan) TimeStamp { return TimeStamp(int64(ts) + int64(tspan)) }

// SpanRange returns the range starting at ts and lasting for span.
func (ts TimeStamp) SpanRange(span TimeSpan) TimeRange { return NewRange(ts, ts.Add(span)) }

// |||||| TIME RANGE ||||||

type TimeRange = Range[TimeStamp]

var TimeRangeMax = TimeRange{Start: TimeStampMin, End: TimeStampMax}

// |||||| TIME SPAN ||||||

type TimeSpan int64

const (
	Microsecond = TimeSpan(1)
	Millisecond = 1000 * Microsecond
	Second      = 1000 * Millisecond
	Minute      = 60 * Second
	Hour        = 60 * Minute
)
