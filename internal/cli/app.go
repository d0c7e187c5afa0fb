// Package cli implements the sweepline command: it reads records from a JSON
// or YAML file, sweeps them, and prints the resulting blocks as JSON.
package cli

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/arya-analytics/sweepline"
	"github.com/arya-analytics/sweepline/alamos"
	"github.com/arya-analytics/sweepline/internal/cfg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//go:embed sample.json
var sample []byte

const (
	exitOK    = 0
	exitErr   = 1
	exitUsage = 2
)

// Run executes the command with the given arguments and returns its exit code.
func Run(ctx context.Context, argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c, err := cfg.Parse()
	if err != nil {
		fmt.Fprintln(stderr, "sweepline:", err)
		return exitUsage
	}

	fs := flag.NewFlagSet("sweepline", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: sweepline [flags] [file | -]")
		fmt.Fprintln(fs.Output(), "Sweeps the records in file (or stdin for -) and prints the blocks as JSON.")
		fmt.Fprintln(fs.Output(), "Without a file the built-in sample dataset is swept.")
		fs.PrintDefaults()
	}
	fs.StringVar(&c.StartKey, "start-key", c.StartKey, "record field holding the interval start")
	fs.StringVar(&c.EndKey, "end-key", c.EndKey, "record field holding the interval end")
	fs.StringVar(&c.Mode, "mode", c.Mode, "boundary mode: closed, half-open or inclusive")
	fs.StringVar(&c.Strategy, "strategy", c.Strategy, "coverage strategy: naive or sweep")
	fs.IntVar(&c.Concurrency, "concurrency", c.Concurrency, "goroutines used by the naive strategy")
	fs.BoolVar(&c.Coalesce, "coalesce", c.Coalesce, "merge adjacent blocks covered by the same records")
	fs.BoolVar(&c.Strict, "strict", c.Strict, "reject records that end before they start")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "log each sweep stage")
	fs.BoolVar(&c.Report, "report", c.Report, "print sweep metrics to stderr")
	format := fs.String("format", formatAuto, "input format: auto, json or yaml")
	if err := fs.Parse(argv); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return exitUsage
	}

	opts, err := c.Options()
	if err != nil {
		fmt.Fprintln(stderr, "sweepline:", err)
		return exitUsage
	}
	logger := newLogger(stderr, c.Debug)
	defer func() { _ = logger.Sync() }()
	opts = append(opts, sweepline.WithLogger(logger))
	var exp alamos.Experiment
	if c.Report {
		exp = alamos.New("cli")
		opts = append(opts, sweepline.WithExperiment(exp))
	}

	records, err := readRecords(fs.Arg(0), *format, stdin)
	if err != nil {
		logger.Error("failed to read records", zap.Error(err))
		return exitErr
	}
	blocks, err := sweepline.SweepRecords(ctx, records, opts...)
	if err != nil {
		logger.Error("sweep failed", zap.Error(err))
		return exitErr
	}
	if err := encodePretty(stdout, blocks); err != nil {
		logger.Error("failed to write blocks", zap.Error(err))
		return exitErr
	}
	if exp != nil {
		if err := encodePretty(stderr, exp.Report()); err != nil {
			logger.Error("failed to write report", zap.Error(err))
			return exitErr
		}
	}
	return exitOK
}

func readRecords(path, format string, stdin io.Reader) ([]sweepline.Record, error) {
	switch path {
	case "":
		return decodeRecords(bytes.NewReader(sample), formatJSON)
	case "-":
		return decodeRecords(stdin, detectFormat(format, ""))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return decodeRecords(f, detectFormat(format, path))
}

func newLogger(w io.Writer, debug bool) *zap.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}

func encodePretty(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
