// Package config loads napctl settings from a config file, the environment
// and defaults, in that order of precedence after explicit flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-neuro/core"
)

// EnvPrefix prefixes every environment override, e.g. ALGONEURO_STORE_DSN.
const EnvPrefix = "ALGONEURO"

// Config is the resolved napctl configuration.
type Config struct {
	TimeIndexPrecision int    `mapstructure:"time_index_precision"`
	TimeUnit           string `mapstructure:"time_unit"`

	Store  StoreConfig  `mapstructure:"store"`
	Log    LogConfig    `mapstructure:"log"`
	Output OutputConfig `mapstructure:"output"`
}

// StoreConfig selects the session database.
type StoreConfig struct {
	DSN string `mapstructure:"dsn"`
}

// LogConfig configures internal/logging.
type LogConfig struct {
	Debug  bool   `mapstructure:"debug"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// OutputConfig controls where analysis results are written.
type OutputConfig struct {
	Format string `mapstructure:"format"`
	Dir    string `mapstructure:"dir"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("time_index_precision", core.DefaultTimeIndexPrecision)
	v.SetDefault("time_unit", string(core.Seconds))
	v.SetDefault("store.dsn", "file:napctl.db?_fk=1")
	v.SetDefault("log.debug", false)
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("output.format", "json")
	v.SetDefault("output.dir", "results")
}

// New returns a viper instance with defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load reads the config file at path into v and returns the validated
// configuration. An empty path searches for napctl.{yaml,json,toml} in the
// working directory and ./configs; a missing file is not an error then.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		v.SetConfigName("napctl")
		v.AddConfigPath(".")
		v.AddConfigPath("configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: %w", err)
			}
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// Validate checks the enumerated and ranged settings.
func (c *Config) Validate() error {
	return validation.Errors{
		"time_index_precision": validation.Validate(c.TimeIndexPrecision, validation.Min(0), validation.Max(12)),
		"time_unit":            validation.Validate(c.TimeUnit, validation.Required, validation.In("s", "ms", "us")),
		"store.dsn":            validation.Validate(c.Store.DSN, validation.Required),
		"log.format":           validation.Validate(c.Log.Format, validation.In("text", "json")),
		"output.format":        validation.Validate(c.Output.Format, validation.Required, validation.In("json", "msgpack")),
	}.Filter()
}

// Unit returns the configured default time unit.
func (c *Config) Unit() core.TimeUnit {
	u, err := core.ParseTimeUnit(c.TimeUnit)
	if err != nil {
		return core.Seconds
	}
	return u
}
