package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/sigframe/errs"
	"github.com/arloliu/sigframe/measure"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)
	require.Equal(t, DelimiterNewline, cfg.Delimiter())
	require.Equal(t, '\n', cfg.Delimiter().Rune())
	require.Equal(t, DefaultTimeout, cfg.Timeout())
	require.Empty(t, cfg.Prefix())
	require.Equal(t, 0, cfg.Measurements().Len())
}

func TestNew_Options(t *testing.T) {
	cfg, err := New(
		WithDelimiter(DelimiterTab),
		WithTimeout(2.5),
		WithPrefix("spi: "),
		WithMeasurements(measure.FrequencyAvg),
		WithMeasurementNames("voltageRms"),
	)
	require.NoError(t, err)
	require.Equal(t, '\t', cfg.Delimiter().Rune())
	require.Equal(t, 2.5, cfg.Timeout())
	require.Equal(t, "spi: ", cfg.Prefix())
	require.True(t, cfg.Measurements().Has(measure.FrequencyAvg))
	require.True(t, cfg.Measurements().Has(measure.VoltageRMS))
	require.Contains(t, cfg.String(), "Delimiter: tab")
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		err  error
	}{
		{"timeout too small", WithTimeout(1e-7), errs.ErrInvalidTimeout},
		{"timeout too large", WithTimeout(1e4 + 1), errs.ErrInvalidTimeout},
		{"negative timeout", WithTimeout(-1), errs.ErrInvalidTimeout},
		{"bad delimiter", WithDelimiter(Delimiter(42)), errs.ErrInvalidDelimiter},
		{"bad delimiter name", WithDelimiterName("comma"), errs.ErrInvalidDelimiter},
		{"bad measurement", WithMeasurements(measure.Measurement(99)), errs.ErrUnknownMeasurement},
		{"bad measurement name", WithMeasurementNames("duty"), errs.ErrUnknownMeasurement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := New(tt.opt)
			require.ErrorIs(t, err, tt.err)
			require.Nil(t, cfg)
		})
	}

	t.Run("timeout bounds are inclusive", func(t *testing.T) {
		_, err := New(WithTimeout(MinTimeout))
		require.NoError(t, err)
		_, err = New(WithTimeout(MaxTimeout))
		require.NoError(t, err)
	})
}

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		in   string
		want rune
	}{
		{"newline", '\n'},
		{`\n`, '\n'},
		{"\n", '\n'},
		{"null", 0},
		{`\0`, 0},
		{"space", ' '},
		{" ", ' '},
		{"Semicolon", ';'},
		{";", ';'},
		{"tab", '\t'},
		{"\t", '\t'},
	}
	for _, tt := range tests {
		d, err := ParseDelimiter(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, d.Rune(), tt.in)
	}

	d, err := DelimiterFromRune(';')
	require.NoError(t, err)
	require.Equal(t, DelimiterSemicolon, d)

	_, err = DelimiterFromRune(',')
	require.ErrorIs(t, err, errs.ErrInvalidDelimiter)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("toml", func(t *testing.T) {
		path := writeFile(t, "decode.toml", `
delimiter = "semicolon"
timeout = 0.25
prefix = "i2c: "
measurements = ["edges_rising", "frequencyAvg"]
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, DelimiterSemicolon, cfg.Delimiter())
		require.Equal(t, 0.25, cfg.Timeout())
		require.Equal(t, "i2c: ", cfg.Prefix())
		require.Equal(t, []measure.Measurement{measure.EdgesRising, measure.FrequencyAvg}, cfg.Measurements().Measurements())
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "decode.yaml", "delimiter: tab\ntimeout: 1.0\nmeasurements:\n  - voltage_rms\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, DelimiterTab, cfg.Delimiter())
		require.Equal(t, 1.0, cfg.Timeout())
		require.True(t, cfg.Measurements().Has(measure.VoltageRMS))
	})

	t.Run("missing fields keep defaults", func(t *testing.T) {
		path := writeFile(t, "empty.yml", "prefix: x\n")
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, DefaultTimeout, cfg.Timeout())
		require.Equal(t, DelimiterNewline, cfg.Delimiter())
	})

	t.Run("extra options override file", func(t *testing.T) {
		path := writeFile(t, "decode.toml", "timeout = 0.25\n")
		cfg, err := Load(path, WithTimeout(3))
		require.NoError(t, err)
		require.Equal(t, 3.0, cfg.Timeout())
	})

	t.Run("out of range timeout", func(t *testing.T) {
		path := writeFile(t, "bad.toml", "timeout = 20000.0\n")
		_, err := Load(path)
		require.ErrorIs(t, err, errs.ErrInvalidTimeout)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, "decode.json", "{}")
		_, err := Load(path)
		require.ErrorIs(t, err, errs.ErrUnsupportedConfigFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "timeout: [1, 2\n")
		_, err := Load(path)
		require.Error(t, err)
	})
}
