package series

import (
	"github.com/cwbudde/algo-neuro/core"
	"github.com/cwbudde/algo-neuro/interval"
)

// Option configures series construction.
type Option func(*config)

type config struct {
	unit       core.TimeUnit
	core       core.Config
	support    interval.Set
	hasSupport bool
}

func defaultConfig() config {
	return config{unit: core.Seconds, core: core.DefaultConfig()}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithTimeUnit declares the unit of the timestamps passed to a constructor.
func WithTimeUnit(u core.TimeUnit) Option {
	return func(c *config) {
		if u.Valid() {
			c.unit = u
		}
	}
}

// WithTimeSupport sets the epochs over which the series is defined.
// Timestamps outside the support are dropped.
func WithTimeSupport(ep interval.Set) Option {
	return func(c *config) {
		c.support = ep
		c.hasSupport = true
	}
}

// WithCoreOptions forwards precision settings.
func WithCoreOptions(opts ...core.Option) Option {
	return func(c *config) {
		c.core = core.ApplyOptions(opts...)
	}
}
