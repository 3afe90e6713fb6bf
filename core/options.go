package core

import "math"

// DefaultTimeIndexPrecision is the number of decimals timestamps are
// rounded to. Nine decimals keeps nanosecond resolution.
const DefaultTimeIndexPrecision = 9

// Config defines library-wide numeric settings.
type Config struct {
	TimeIndexPrecision int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the settings used when no option is given.
func DefaultConfig() Config {
	return Config{
		TimeIndexPrecision: DefaultTimeIndexPrecision,
	}
}

// WithTimeIndexPrecision sets the timestamp rounding precision in decimals.
func WithTimeIndexPrecision(decimals int) Option {
	return func(cfg *Config) {
		if decimals >= 0 && decimals <= 15 {
			cfg.TimeIndexPrecision = decimals
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Round rounds t to the configured precision.
func (c Config) Round(t float64) float64 {
	return RoundTo(t, c.TimeIndexPrecision)
}

// Resolution returns the smallest positive time step representable at the
// configured precision.
func (c Config) Resolution() float64 {
	return math.Pow(10, -float64(c.TimeIndexPrecision))
}

// RoundAll rounds every timestamp of ts in place and returns ts.
func (c Config) RoundAll(ts []float64) []float64 {
	for i, t := range ts {
		ts[i] = RoundTo(t, c.TimeIndexPrecision)
	}
	return ts
}

// RoundTo rounds v to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
