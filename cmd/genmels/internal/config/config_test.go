package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurevreca12/mel-engine/dsp/filter/mel"
	"github.com/jurevreca12/mel-engine/dsp/fixed"
	"github.com/jurevreca12/mel-engine/dsp/meltable"
	"github.com/jurevreca12/mel-engine/dsp/window"
	"github.com/jurevreca12/mel-engine/measure/melcheck"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "genmels.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestDefaultValidates(t *testing.T) {
	cfg := Default()

	res, err := cfg.Validate()
	require.NoError(t, err)

	assert.Equal(t, 257, cfg.NumBins())
	assert.Equal(t, mel.ScaleSlaney, res.Scale)
	assert.Equal(t, mel.NormNone, res.Norm)
	assert.Equal(t, fixed.UQ0_16, res.Format)
	assert.Equal(t, fixed.RoundDefault, res.Rounding)
	assert.Equal(t, meltable.StrategyTwoPerBin, res.Strategy)
	assert.Equal(t, meltable.HexPacked, res.HexLayout)
	assert.Equal(t, window.TypeHamming, res.Window)
	assert.Equal(t, melcheck.PowerReal, res.Power)
	assert.Equal(t, DefaultCSVFile, cfg.Output.CSVFile)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
n_mels: 40
fmax: 7600
strategy: index-tracked
fixed_point_format:
  signed: true
  integer_bits: 1
  fractional_bits: 15
rounding: convergent
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.NumMels)
	assert.Equal(t, 7600.0, cfg.FMax)
	assert.Equal(t, 512, cfg.FFTSize, "missing keys keep defaults")
	assert.Equal(t, 16000.0, cfg.SampleRate)
	assert.Equal(t, meltable.DefaultThreshold, cfg.Threshold)

	res, err := cfg.Validate()
	require.NoError(t, err)
	assert.Equal(t, meltable.StrategyIndexTracked, res.Strategy)
	assert.Equal(t, "Q1.15", res.Format.String())
	assert.Equal(t, fixed.RoundConvergent, res.Rounding)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "fft_size: [1, 2\n"))
	assert.Error(t, err)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.FFTSize = 500
	cfg.NumMels = 0
	cfg.Scale = "bark"
	cfg.Strategy = "column-major"

	_, err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "fft_size")
	assert.Contains(t, msg, "n_mels")
	assert.Contains(t, msg, "bark")
	assert.Contains(t, msg, "column-major")
}

func TestValidateIndexFileNeedsStops(t *testing.T) {
	cfg := Default()
	cfg.Output.IndexFile = "mel.idx"

	_, err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index_file")

	cfg.Strategy = meltable.StrategyIndexTracked.String()
	_, err = cfg.Validate()
	assert.NoError(t, err)
}

func TestValidateRanges(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"sample rate", func(c *Config) { c.SampleRate = 0 }},
		{"inverted range", func(c *Config) { c.FMin, c.FMax = 4000, 100 }},
		{"negative threshold", func(c *Config) { c.Threshold = -1 }},
		{"negative table length", func(c *Config) { c.TableLength = -2 }},
		{"format width", func(c *Config) { c.FixedPoint.FractionalBits = 40 }},
		{"rounding", func(c *Config) { c.Rounding = "stochastic" }},
		{"hex layout", func(c *Config) { c.HexLayout = "wide" }},
		{"window", func(c *Config) { c.Verify.Window = "kaiser" }},
		{"power", func(c *Config) { c.Verify.Power = "log" }},
		{"frames", func(c *Config) { c.Verify.Frames = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			_, err := cfg.Validate()
			assert.Error(t, err)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Strategy = meltable.StrategyIndexTracked.String()

	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "fixed_point_format:")

	loaded, err := Load(writeFile(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
