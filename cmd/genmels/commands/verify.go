package commands

import (
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jurevreca12/mel-engine/cmd/genmels/internal/config"
	"github.com/jurevreca12/mel-engine/internal/audio"
	"github.com/jurevreca12/mel-engine/measure/melcheck"
)

type verifyOptions struct {
	table      tableFlags
	input      string
	toneHz     float64
	frames     int
	window     string
	power      string
	inputScale float64
	tolerance  float64
}

func newVerifyCmd(g *globalOptions) *cobra.Command {
	o := &verifyOptions{}
	def := config.Default().Verify

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Compare float and table features on a test tone or recording",
		Long: `Run a signal through the float filterbank and through the matrix the
engine rebuilds from the encoded table, then compare the mel energies and the
floor(8*log2(energy)) features frame by frame.

Without --input the signal is the legacy test tone: 200 Hz,
(sin+1)*2047*0.8, one frame long. Recordings (WAV or FLAC) are mapped from
[-1, 1] onto [0, 2*input-scale].

The command fails when a feature differs by more than --tolerance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, g, o)
		},
	}

	o.table.register(cmd.Flags())
	cmd.Flags().StringVarP(&o.input, "input", "i", "", "WAV or FLAC recording instead of the test tone")
	cmd.Flags().Float64Var(&o.toneHz, "tone", def.ToneHz, "test tone frequency in Hz")
	cmd.Flags().IntVar(&o.frames, "frames", def.Frames, "number of analysed frames")
	cmd.Flags().StringVar(&o.window, "window", def.Window, "analysis window (rectangular, hann, hamming, blackman)")
	cmd.Flags().StringVar(&o.power, "power", def.Power, "power spectrum (real, magnitude)")
	cmd.Flags().Float64Var(&o.inputScale, "input-scale", def.InputScale, "scale applied to recordings")
	cmd.Flags().Float64Var(&o.tolerance, "tolerance", def.Tolerance, "largest accepted feature difference")

	return cmd
}

func runVerify(cmd *cobra.Command, g *globalOptions, o *verifyOptions) error {
	cfg, res, err := g.loadConfig(cmd, &o.table, func(cfg *config.Config) {
		fs := cmd.Flags()
		if fs.Changed("tone") {
			cfg.Verify.ToneHz = o.toneHz
		}
		if fs.Changed("frames") {
			cfg.Verify.Frames = o.frames
		}
		if fs.Changed("window") {
			cfg.Verify.Window = o.window
		}
		if fs.Changed("power") {
			cfg.Verify.Power = o.power
		}
		if fs.Changed("input-scale") {
			cfg.Verify.InputScale = o.inputScale
		}
		if fs.Changed("tolerance") {
			cfg.Verify.Tolerance = o.tolerance
		}
	})
	if err != nil {
		return err
	}

	built, err := buildTable(cfg, res)
	if err != nil {
		return err
	}

	engine, err := built.table.EngineMatrix(built.matrix)
	if err != nil {
		return err
	}

	an, err := melcheck.NewAnalyzer(
		melcheck.WithFrameLength(cfg.FFTSize),
		melcheck.WithNumFrames(cfg.Verify.Frames),
		melcheck.WithWindow(res.Window),
		melcheck.WithPowerMode(res.Power),
	)
	if err != nil {
		return err
	}

	signal, err := loadSignal(cfg, o.input)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	bins, err := an.Spectrum(melcheck.Frames(signal, an.FrameLength(), 1)[0])
	if err != nil {
		return err
	}

	parts := make([]string, 0, 10)
	for _, c := range bins[:min(10, len(bins))] {
		parts = append(parts, fmt.Sprintf("%.3f", real(c)))
	}

	fmt.Fprintf(out, "First %d elements of fft: %s\n", len(parts), strings.Join(parts, ", "))

	report, err := an.Compare(signal, built.matrix, engine)
	if err != nil {
		return err
	}

	frame := loudestFrame(report.FloatEnergies)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Filter\tFloat energy\tTable energy\tFloat feature\tTable feature\n")

	for i, fe := range report.FloatEnergies[frame] {
		fmt.Fprintf(tw, "%d\t%.6g\t%.6g\t%.0f\t%.0f\n",
			i, fe, report.EngineEnergies[frame][i],
			report.FloatFeatures[frame][i], report.EngineFeatures[frame][i])
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nframe %d of %d, strategy %s\n", frame, len(report.FloatEnergies), built.table.Strategy)
	fmt.Fprintf(out, "max energy diff: %.6g (relative %.3g)\n", report.MaxAbsDiff, report.MaxRelDiff)
	fmt.Fprintf(out, "feature mismatches: %d (max diff %g)\n", report.FeatureMismatches, report.MaxFeatureDiff)

	slog.Debug("verification done",
		"frames", len(report.FloatEnergies),
		"mismatches", report.FeatureMismatches,
		"max_rel_diff", report.MaxRelDiff,
	)

	if !report.Within(cfg.Verify.Tolerance) {
		return fmt.Errorf("table features differ from float features by up to %g (tolerance %g)",
			report.MaxFeatureDiff, cfg.Verify.Tolerance)
	}

	return nil
}

// loadSignal returns the test tone, or the scaled recording at path.
func loadSignal(cfg *config.Config, path string) ([]float64, error) {
	if path == "" {
		return melcheck.Tone(cfg.Verify.ToneHz, cfg.SampleRate, cfg.FFTSize), nil
	}

	clip, err := audio.Load(path)
	if err != nil {
		return nil, err
	}

	if float64(clip.SampleRate) != cfg.SampleRate {
		slog.Warn("sample rate differs from the filterbank",
			"path", path, "file_rate", clip.SampleRate, "sample_rate", cfg.SampleRate)
	}

	slog.Debug("recording loaded", "path", path, "samples", len(clip.Samples))

	return clip.Scaled(cfg.Verify.InputScale), nil
}

// loudestFrame returns the frame with the largest total energy.
func loudestFrame(energies [][]float64) int {
	best, bestSum := 0, -1.0

	for f, row := range energies {
		sum := 0.0
		for _, e := range row {
			sum += e
		}

		if sum > bestSum {
			best, bestSum = f, sum
		}
	}

	return best
}
