package cfg

import (
	"strings"

	"github.com/arya-analytics/sweepline"
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
)

// Config holds the defaults of the sweepline command. Every field can be set
// from the environment and overridden by a flag.
type Config struct {
	StartKey    string `env:"SWEEPLINE_START_KEY"   envDefault:"start"`
	EndKey      string `env:"SWEEPLINE_END_KEY"     envDefault:"end"`
	Mode        string `env:"SWEEPLINE_MODE"        envDefault:"closed"`
	Strategy    string `env:"SWEEPLINE_STRATEGY"    envDefault:"naive"`
	Concurrency int    `env:"SWEEPLINE_CONCURRENCY" envDefault:"1"`
	Coalesce    bool   `env:"SWEEPLINE_COALESCE"`
	Strict      bool   `env:"SWEEPLINE_STRICT"`
	Debug       bool   `env:"SWEEPLINE_DEBUG"`
	Report      bool   `env:"SWEEPLINE_REPORT"`
}

func Parse() (Config, error) {
	return env.ParseAsWithOptions[Config](env.Options{})
}

// Options converts the configuration into sweep options.
func (c Config) Options() ([]sweepline.Option, error) {
	mode, err := ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	strategy, err := ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	opts := []sweepline.Option{
		sweepline.WithKeys(c.StartKey, c.EndKey),
		sweepline.WithMode(mode),
		sweepline.WithStrategy(strategy),
		sweepline.WithConcurrency(c.Concurrency),
	}
	if c.Coalesce {
		opts = append(opts, sweepline.WithCoalesce())
	}
	if c.Strict {
		opts = append(opts, sweepline.WithValidation())
	}
	return opts, nil
}

func ParseMode(s string) (sweepline.Mode, error) {
	for _, m := range []sweepline.Mode{sweepline.ModeClosed, sweepline.ModeHalfOpen, sweepline.ModeInclusive} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, errors.Newf("unknown mode %q: expected closed, half-open or inclusive", s)
}

func ParseStrategy(s string) (sweepline.Strategy, error) {
	for _, st := range []sweepline.Strategy{sweepline.StrategyNaive, sweepline.StrategySweep} {
		if strings.EqualFold(s, st.String()) {
			return st, nil
		}
	}
	return 0, errors.Newf("unknown strategy %q: expected naive or sweep", s)
}
