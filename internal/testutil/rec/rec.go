// Package rec contains record factories for tests.
package rec

import (
	"math/rand"

	"github.com/arya-analytics/sweepline"
	"github.com/google/uuid"
)

// New returns a record spanning [start, end] with a random key.
func New(start, end int64) sweepline.Record {
	return sweepline.Record{"key": uuid.NewString(), "start": start, "end": end}
}

// Keyed returns a record spanning [start, end] with the given key.
func Keyed(key string, start, end int64) sweepline.Record {
	return sweepline.Record{"key": key, "start": start, "end": end}
}

// Sample returns the sample dataset: seven overlapping records a through g,
// some carrying extra payload.
func Sample() []sweepline.Record {
	return []sweepline.Record{
		{"key": "a", "taste": "citrus", "start": 1, "end": 10, "val": 1},
		{"key": "b", "feel": "crunchy", "start": 4, "end": 14, "val": 2},
		{"key": "c", "color": "cyan", "start": 8, "end": 18, "val": 1},
		{"key": "d", "start": 12, "end": 22, "val": 1},
		{"key": "e", "start": 16, "end": 26, "val": 3},
		{"key": "f", "start": 4, "end": 14, "val": 3},
		{"key": "g", "start": 32, "end": 42, "val": 1},
	}
}

// Random returns n well formed records starting within [0, axis) and lasting
// at most maxSpan points.
func Random(r *rand.Rand, n int, axis, maxSpan int64) []sweepline.Record {
	records := make([]sweepline.Record, n)
	for i := range records {
		start := r.Int63n(axis)
		records[i] = New(start, start+r.Int63n(maxSpan+1))
	}
	return records
}

// Keys returns the "key" field of every record.
func Keys(records []sweepline.Record) []string {
	keys := make([]string, len(records))
	for i, r := range records {
		keys[i], _ = r["key"].(string)
	}
	return keys
}

// Rename returns copies of records with the start and end fields moved to the
// given keys.
func Rename(records []sweepline.Record, startKey, endKey string) []sweepline.Record {
	renamed := make([]sweepline.Record, len(records))
	for i, r := range records {
		c := make(sweepline.Record, len(r))
		for k, v := range r {
			switch k {
			case "start":
				c[startKey] = v
			case "end":
				c[endKey] = v
			default:
				c[k] = v
			}
		}
		renamed[i] = c
	}
	return renamed
}
