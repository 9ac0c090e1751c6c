package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jurevreca12/mel-engine/cmd/genmels/internal/config"
)

// globalOptions holds the persistent flags of one command tree.
type globalOptions struct {
	verbose   bool
	cfgFile   string
	logOutput io.Writer
}

const rootLong = `genmels - builds the fixed-point mel filterbank table read by the mel
feature engine.

The filterbank is computed like librosa.filters.mel, every weight above the
activity threshold is quantized (unsigned Q0.16 by default) and packed two
weights per FFT bin. Settings come from defaults, an optional YAML file
(--config) and command flags, in that order.

Examples:
  # Legacy layout with stop indices
  genmels generate --strategy index-tracked --hex-file mel.hex --index-file mel.idx

  # Check the table against the float filterbank on a 200 Hz tone
  genmels verify

  # Check it on a recording
  genmels verify --input speech.wav`

// newRootCmd builds the complete command tree. Logs go to logOutput.
func newRootCmd(logOutput io.Writer) *cobra.Command {
	g := &globalOptions{logOutput: logOutput}

	root := &cobra.Command{
		Use:           "genmels",
		Short:         "Mel filterbank coefficient table generator",
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			g.initLogging()
		},
	}

	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().StringVarP(&g.cfgFile, "config", "c", "", "YAML configuration file")

	root.AddCommand(
		newGenerateCmd(g),
		newVerifyCmd(g),
		newInspectCmd(g),
		newVersionCmd(g),
	)

	return root
}

// Execute runs the command line.
func Execute() error {
	err := newRootCmd(os.Stderr).Execute()
	if err != nil {
		slog.Error("command failed", "error", err)
	}

	return err
}

func (g *globalOptions) initLogging() {
	logLevel := slog.LevelInfo
	if g.verbose {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(g.logOutput, &slog.HandlerOptions{
		Level: logLevel,
	})))
}

// loadConfig returns the defaults, overlaid with --config, then with the
// table flags set on cmd and finally with the command specific overrides.
func (g *globalOptions) loadConfig(cmd *cobra.Command, tf *tableFlags, overrides ...func(*config.Config)) (*config.Config, *config.Resolved, error) {
	cfg := config.Default()

	if g.cfgFile != "" {
		var err error

		cfg, err = config.Load(g.cfgFile)
		if err != nil {
			return nil, nil, err
		}

		slog.Debug("config loaded", "path", g.cfgFile)
	}

	if tf != nil {
		if err := tf.apply(cmd, cfg); err != nil {
			return nil, nil, err
		}
	}

	for _, o := range overrides {
		o(cfg)
	}

	res, err := cfg.Validate()
	if err != nil {
		return nil, nil, err
	}

	return cfg, res, nil
}
