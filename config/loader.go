package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/sigframe/errs"
)

// fileConfig is the on-disk schema shared by the TOML and YAML loaders.
//
//	delimiter = "semicolon"
//	timeout = 0.01
//	prefix = "uart0: "
//	measurements = ["frequency_avg", "period_std_dev"]
type fileConfig struct {
	Delimiter    string   `toml:"delimiter" yaml:"delimiter"`
	Timeout      *float64 `toml:"timeout" yaml:"timeout"`
	Prefix       string   `toml:"prefix" yaml:"prefix"`
	Measurements []string `toml:"measurements" yaml:"measurements"`
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file and builds a Config
// from it. Fields absent from the file keep their defaults; extra options are
// applied after the file values.
func Load(path string, extra ...Option) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var fc fileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &fc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrUnsupportedConfigFormat, ext)
	}

	cfg, err := New(append(fc.options(), extra...)...)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

func (fc fileConfig) options() []Option {
	var opts []Option
	if fc.Delimiter != "" {
		opts = append(opts, WithDelimiterName(fc.Delimiter))
	}
	if fc.Timeout != nil {
		opts = append(opts, WithTimeout(*fc.Timeout))
	}
	if fc.Prefix != "" {
		opts = append(opts, WithPrefix(fc.Prefix))
	}
	if len(fc.Measurements) > 0 {
		opts = append(opts, WithMeasurementNames(fc.Measurements...))
	}

	return opts
}
