package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arya-analytics/sweepline"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v2"
)

const (
	formatAuto = "auto"
	formatJSON = "json"
	formatYAML = "yaml"
)

// detectFormat resolves the auto format from the input's file extension.
// Standard input is read as JSON.
func detectFormat(format, path string) string {
	if format != formatAuto {
		return format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

func decodeRecords(r io.Reader, format string) ([]sweepline.Record, error) {
	switch format {
	case formatJSON:
		return decodeJSON(r)
	case formatYAML:
		return decodeYAML(r)
	default:
		return nil, errors.Newf("unknown format %q: expected auto, json or yaml", format)
	}
}

func decodeJSON(r io.Reader) ([]sweepline.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var records []sweepline.Record
	if err := dec.Decode(&records); err != nil {
		return nil, errors.Wrap(err, "decoding json records")
	}
	return records, nil
}

func decodeYAML(r io.Reader) ([]sweepline.Record, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}
	var raw []map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &raw); err != nil {
		return nil, errors.Wrap(err, "decoding yaml records")
	}
	records := make([]sweepline.Record, len(raw))
	for i, m := range raw {
		rec := make(sweepline.Record, len(m))
		for k, v := range m {
			rec[k] = normalize(v)
		}
		records[i] = rec
	}
	return records, nil
}

// normalize converts the map[interface{}]interface{} values produced by yaml
// into maps that encoding/json can marshal.
func normalize(v interface{}) interface{} {
	switch x := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(x))
		for k, v := range x {
			m[fmt.Sprint(k)] = normalize(v)
		}
		return m
	case []interface{}:
		for i := range x {
			x[i] = normalize(x[i])
		}
		return x
	default:
		return v
	}
}
