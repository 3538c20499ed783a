// Package config holds the immutable configuration shared by the sigframe
// decoders and accumulators.
//
// A Config is built once, either programmatically with New and functional
// options or from a TOML/YAML file with Load, and validated at construction.
// Decoders never re-validate it while processing events.
//
//	cfg, err := config.New(
//	    config.WithDelimiter(config.DelimiterSemicolon),
//	    config.WithTimeout(0.01),
//	    config.WithPrefix("uart0: "),
//	    config.WithMeasurements(measure.FrequencyAvg, measure.VoltageRMS),
//	)
package config

import (
	"fmt"
	"math"

	"github.com/arloliu/sigframe/errs"
	"github.com/arloliu/sigframe/internal/options"
	"github.com/arloliu/sigframe/measure"
)

const (
	// MinTimeout is the smallest accepted packet timeout, in seconds.
	MinTimeout = 1e-6
	// MaxTimeout is the largest accepted packet timeout, in seconds.
	MaxTimeout = 1e4
	// DefaultTimeout is the packet timeout used when none is configured, in seconds.
	DefaultTimeout = 0.5e-3
)

// Config is a validated, read-only configuration.
type Config struct {
	delimiter    Delimiter
	timeout      float64
	prefix       string
	measurements measure.Set
}

// Option configures a Config under construction.
type Option = options.Option[*Config]

// New builds a Config from the defaults (newline delimiter, 0.5ms timeout,
// no prefix, no measurements) and opts.
//
// Returns an error wrapping errs.ErrInvalidDelimiter, errs.ErrInvalidTimeout
// or errs.ErrUnknownMeasurement if an option is out of range.
func New(opts ...Option) (*Config, error) {
	cfg := Default()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the default Config.
func Default() *Config {
	return &Config{
		delimiter: DelimiterNewline,
		timeout:   DefaultTimeout,
	}
}

// WithDelimiter sets the message delimiter.
func WithDelimiter(d Delimiter) Option {
	return options.New(func(c *Config) error {
		if !d.valid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidDelimiter, d)
		}
		c.delimiter = d

		return nil
	})
}

// WithDelimiterName sets the message delimiter by name, see ParseDelimiter.
func WithDelimiterName(name string) Option {
	return options.New(func(c *Config) error {
		d, err := ParseDelimiter(name)
		if err != nil {
			return err
		}
		c.delimiter = d

		return nil
	})
}

// WithTimeout sets the inter-event packet timeout in seconds.
func WithTimeout(seconds float64) Option {
	return options.NoError(func(c *Config) {
		c.timeout = seconds
	})
}

// WithPrefix sets the text prepended to the display form of every message.
func WithPrefix(prefix string) Option {
	return options.NoError(func(c *Config) {
		c.prefix = prefix
	})
}

// WithMeasurements adds ms to the requested measurements.
func WithMeasurements(ms ...measure.Measurement) Option {
	return options.New(func(c *Config) error {
		for _, m := range ms {
			if !m.Valid() {
				return fmt.Errorf("%w: %d", errs.ErrUnknownMeasurement, m)
			}
		}
		c.measurements = c.measurements.With(ms...)

		return nil
	})
}

// WithMeasurementNames adds measurements by name, see measure.ParseMeasurement.
func WithMeasurementNames(names ...string) Option {
	return options.New(func(c *Config) error {
		for _, name := range names {
			m, err := measure.ParseMeasurement(name)
			if err != nil {
				return err
			}
			c.measurements = c.measurements.With(m)
		}

		return nil
	})
}

func (c *Config) validate() error {
	if !c.delimiter.valid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidDelimiter, c.delimiter)
	}
	if math.IsNaN(c.timeout) || c.timeout < MinTimeout || c.timeout > MaxTimeout {
		return fmt.Errorf("%w: %g not in [%g, %g]", errs.ErrInvalidTimeout, c.timeout, MinTimeout, MaxTimeout)
	}

	return nil
}

// Delimiter returns the configured delimiter.
func (c *Config) Delimiter() Delimiter {
	return c.delimiter
}

// Timeout returns the packet timeout in seconds.
func (c *Config) Timeout() float64 {
	return c.timeout
}

// Prefix returns the message prefix.
func (c *Config) Prefix() string {
	return c.prefix
}

// Measurements returns the requested measurements.
func (c *Config) Measurements() measure.Set {
	return c.measurements
}

// String returns a one-line summary suitable for logs.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Delimiter: %s, Timeout: %gs, Prefix: %q, Measurements: [%s]}",
		c.delimiter, c.timeout, c.prefix, c.measurements)
}
