// Package config loads and validates the genmels YAML configuration.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/jurevreca12/mel-engine/dsp/filter/mel"
	"github.com/jurevreca12/mel-engine/dsp/fixed"
	"github.com/jurevreca12/mel-engine/dsp/meltable"
	"github.com/jurevreca12/mel-engine/dsp/window"
	"github.com/jurevreca12/mel-engine/measure/melcheck"
)

// DefaultCSVFile is the audit dump written next to every table.
const DefaultCSVFile = "mel_filters.csv"

// Config is the complete generator configuration. The zero value is not
// usable; start from [Default].
type Config struct {
	FFTSize       int         `yaml:"fft_size"`
	SampleRate    float64     `yaml:"sample_rate"`
	NumMels       int         `yaml:"n_mels"`
	FMin          float64     `yaml:"fmin"`
	FMax          float64     `yaml:"fmax"`
	Normalization string      `yaml:"normalization"`
	Scale         string      `yaml:"scale"`
	Threshold     float64     `yaml:"threshold"`
	FixedPoint    FixedPoint  `yaml:"fixed_point_format"`
	Rounding      string      `yaml:"rounding"`
	Strategy      string      `yaml:"strategy"`
	TableLength   int         `yaml:"table_length,omitempty"`
	HexLayout     string      `yaml:"hex_layout"`
	Output        Output      `yaml:"output"`
	Verify        VerifyParam `yaml:"verify"`
}

// FixedPoint describes the weight word layout.
type FixedPoint struct {
	Signed         bool `yaml:"signed"`
	IntegerBits    int  `yaml:"integer_bits"`
	FractionalBits int  `yaml:"fractional_bits"`
}

// Output names the generated files. An empty IndexFile skips the stop
// index file; an empty CSVFile skips the audit dump.
type Output struct {
	HexFile   string `yaml:"hex_file,omitempty"`
	IndexFile string `yaml:"index_file,omitempty"`
	CSVFile   string `yaml:"csv_file,omitempty"`
}

// VerifyParam configures the verification harness.
type VerifyParam struct {
	ToneHz     float64 `yaml:"tone_hz"`
	Frames     int     `yaml:"frames"`
	Window     string  `yaml:"window"`
	Power      string  `yaml:"power"`
	InputScale float64 `yaml:"input_scale"`
	Tolerance  float64 `yaml:"tolerance"`
}

// Default returns the configuration of the legacy generator: a 512 point
// FFT at 16 kHz, 20 Slaney mel filters from 0 to 8001 Hz without
// normalization, quantized to unsigned Q0.16.
func Default() *Config {
	return &Config{
		FFTSize:       512,
		SampleRate:    16000,
		NumMels:       20,
		FMin:          0,
		FMax:          8001,
		Normalization: mel.NormNone.String(),
		Scale:         mel.ScaleSlaney.String(),
		Threshold:     meltable.DefaultThreshold,
		FixedPoint:    FixedPoint{Signed: false, IntegerBits: 0, FractionalBits: 16},
		Rounding:      fixed.RoundDefault.String(),
		Strategy:      meltable.StrategyTwoPerBin.String(),
		HexLayout:     meltable.HexPacked.String(),
		Output:        Output{CSVFile: DefaultCSVFile},
		Verify: VerifyParam{
			ToneHz:     200,
			Frames:     32,
			Window:     window.TypeHamming.String(),
			Power:      melcheck.PowerReal.String(),
			InputScale: melcheck.ToneScale,
			Tolerance:  0,
		},
	}
}

// Load reads path on top of [Default]. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Resolved holds the typed values of a validated configuration.
type Resolved struct {
	Scale     mel.Scale
	Norm      mel.Norm
	Format    fixed.Format
	Rounding  fixed.Rounding
	Strategy  meltable.Strategy
	HexLayout meltable.HexLayout
	Window    window.Type
	Power     melcheck.PowerMode
}

// Validate checks every field and returns the parsed enums. All problems
// are reported together.
func (c *Config) Validate() (*Resolved, error) {
	var (
		r    Resolved
		errs []error
		err  error
	)

	if c.FFTSize < 2 || c.FFTSize&(c.FFTSize-1) != 0 {
		errs = append(errs, fmt.Errorf("fft_size must be a power of two >= 2: %d", c.FFTSize))
	}

	if !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 0) {
		errs = append(errs, fmt.Errorf("sample_rate must be > 0: %g", c.SampleRate))
	}

	if c.NumMels < 1 {
		errs = append(errs, fmt.Errorf("n_mels must be >= 1: %d", c.NumMels))
	}

	if c.FMin < 0 || c.FMax <= c.FMin {
		errs = append(errs, fmt.Errorf("frequency range must satisfy 0 <= fmin < fmax: %g..%g", c.FMin, c.FMax))
	}

	if c.Threshold < 0 {
		errs = append(errs, fmt.Errorf("threshold must be >= 0: %g", c.Threshold))
	}

	if c.TableLength < 0 {
		errs = append(errs, fmt.Errorf("table_length must be >= 0: %d", c.TableLength))
	}

	if r.Scale, err = mel.ParseScale(c.Scale); err != nil {
		errs = append(errs, err)
	}

	if r.Norm, err = mel.ParseNorm(c.Normalization); err != nil {
		errs = append(errs, err)
	}

	r.Format = fixed.Format{
		Signed:   c.FixedPoint.Signed,
		IntBits:  c.FixedPoint.IntegerBits,
		FracBits: c.FixedPoint.FractionalBits,
	}
	if err = r.Format.Validate(); err != nil {
		errs = append(errs, err)
	}

	if r.Rounding, err = fixed.ParseRounding(c.Rounding); err != nil {
		errs = append(errs, err)
	}

	if r.Strategy, err = meltable.ParseStrategy(c.Strategy); err != nil {
		errs = append(errs, err)
	} else if c.Output.IndexFile != "" && !r.Strategy.HasStops() {
		errs = append(errs, fmt.Errorf("index_file requires strategy %q, got %q", meltable.StrategyIndexTracked, r.Strategy))
	}

	if r.HexLayout, err = meltable.ParseHexLayout(c.HexLayout); err != nil {
		errs = append(errs, err)
	}

	if r.Window, err = window.ParseType(c.Verify.Window); err != nil {
		errs = append(errs, err)
	}

	if r.Power, err = melcheck.ParsePowerMode(c.Verify.Power); err != nil {
		errs = append(errs, err)
	}

	if c.Verify.Frames < 1 {
		errs = append(errs, fmt.Errorf("verify.frames must be >= 1: %d", c.Verify.Frames))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("config: %w", errors.Join(errs...))
	}

	return &r, nil
}

// NumBins returns the number of FFT bins, fft_size/2 + 1.
func (c *Config) NumBins() int { return c.FFTSize/2 + 1 }
