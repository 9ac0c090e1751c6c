package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jurevreca12/mel-engine/cmd/genmels/internal/config"
	"github.com/jurevreca12/mel-engine/dsp/fixed"
)

// tableFlags are the filterbank and encoding flags shared by every command
// that builds a table. Only flags the user set override the configuration.
type tableFlags struct {
	fftSize     int
	sampleRate  float64
	numMels     int
	fmin        float64
	fmax        float64
	norm        string
	scale       string
	threshold   float64
	format      string
	rounding    string
	strategy    string
	tableLength int
	hexLayout   string
}

func (f *tableFlags) register(fs *pflag.FlagSet) {
	def := config.Default()

	fs.IntVar(&f.fftSize, "fft-size", def.FFTSize, "FFT length")
	fs.Float64Var(&f.sampleRate, "sample-rate", def.SampleRate, "sample rate in Hz")
	fs.IntVar(&f.numMels, "n-mels", def.NumMels, "number of mel filters")
	fs.Float64Var(&f.fmin, "fmin", def.FMin, "lowest filterbank edge in Hz")
	fs.Float64Var(&f.fmax, "fmax", def.FMax, "highest filterbank edge in Hz")
	fs.StringVar(&f.norm, "norm", def.Normalization, "filter normalization (none, slaney)")
	fs.StringVar(&f.scale, "scale", def.Scale, "mel scale (slaney, htk)")
	fs.Float64Var(&f.threshold, "threshold", def.Threshold, "weight above which a filter is active in a bin")
	fs.StringVar(&f.format, "format", "uq0.16", "fixed-point format in Q notation")
	fs.StringVar(&f.rounding, "rounding", def.Rounding, "rounding mode (default, nearest, convergent, down, up)")
	fs.StringVar(&f.strategy, "strategy", def.Strategy, "packing strategy (two-per-bin, index-tracked)")
	fs.IntVar(&f.tableLength, "table-length", def.TableLength, "padded table length, 0 for one entry per bin")
	fs.StringVar(&f.hexLayout, "hex-layout", def.HexLayout, "hex line layout (packed, spaced)")
}

func (f *tableFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	fs := cmd.Flags()

	if fs.Changed("fft-size") {
		cfg.FFTSize = f.fftSize
	}
	if fs.Changed("sample-rate") {
		cfg.SampleRate = f.sampleRate
	}
	if fs.Changed("n-mels") {
		cfg.NumMels = f.numMels
	}
	if fs.Changed("fmin") {
		cfg.FMin = f.fmin
	}
	if fs.Changed("fmax") {
		cfg.FMax = f.fmax
	}
	if fs.Changed("norm") {
		cfg.Normalization = f.norm
	}
	if fs.Changed("scale") {
		cfg.Scale = f.scale
	}
	if fs.Changed("threshold") {
		cfg.Threshold = f.threshold
	}
	if fs.Changed("format") {
		format, err := fixed.ParseFormat(f.format)
		if err != nil {
			return err
		}
		cfg.FixedPoint = config.FixedPoint{
			Signed:         format.Signed,
			IntegerBits:    format.IntBits,
			FractionalBits: format.FracBits,
		}
	}
	if fs.Changed("rounding") {
		cfg.Rounding = f.rounding
	}
	if fs.Changed("strategy") {
		cfg.Strategy = f.strategy
	}
	if fs.Changed("table-length") {
		cfg.TableLength = f.tableLength
	}
	if fs.Changed("hex-layout") {
		cfg.HexLayout = f.hexLayout
	}

	return nil
}
