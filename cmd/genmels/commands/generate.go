package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jurevreca12/mel-engine/cmd/genmels/internal/config"
	"github.com/jurevreca12/mel-engine/dsp/meltable"
	"github.com/jurevreca12/mel-engine/internal/atomicfile"
)

type generateOptions struct {
	table     tableFlags
	hexFile   string
	indexFile string
	csvFile   string
}

func newGenerateCmd(g *globalOptions) *cobra.Command {
	o := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the hex table, stop index file and CSV audit dump",
		Long: `Compute the mel filterbank, validate the two-filters-per-bin invariant,
quantize and pack it, then write:

  --hex-file    one line per FFT bin: "{B}{A} //{B},{A}"
  --index-file  one stop index per filter (index-tracked strategy only)
  --csv-file    the float filterbank, one filter per row (default mel_filters.csv)

Every file is rendered in memory first and replaced atomically.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, g, o)
		},
	}

	o.table.register(cmd.Flags())
	cmd.Flags().StringVar(&o.hexFile, "hex-file", "", "generated hex file path")
	cmd.Flags().StringVar(&o.indexFile, "index-file", "", "generated stop index file path")
	cmd.Flags().StringVar(&o.csvFile, "csv-file", config.DefaultCSVFile, "CSV audit dump path, empty to skip")

	return cmd
}

func runGenerate(cmd *cobra.Command, g *globalOptions, o *generateOptions) error {
	// Output flags are applied before validation, which rejects an index
	// file for strategies without stop indices.
	cfg, res, err := g.loadConfig(cmd, &o.table, func(cfg *config.Config) {
		fs := cmd.Flags()
		if fs.Changed("hex-file") {
			cfg.Output.HexFile = o.hexFile
		}
		if fs.Changed("index-file") {
			cfg.Output.IndexFile = o.indexFile
		}
		if fs.Changed("csv-file") {
			cfg.Output.CSVFile = o.csvFile
		}
	})
	if err != nil {
		return err
	}

	if cfg.Output.HexFile == "" {
		return errors.New("no hex file: set --hex-file or output.hex_file")
	}

	built, err := buildTable(cfg, res)
	if err != nil {
		return err
	}

	art, err := meltable.Render(built.table, built.matrix, res.HexLayout)
	if err != nil {
		return err
	}

	files := []atomicfile.File{{Path: cfg.Output.HexFile, Data: art.Hex}}
	if cfg.Output.IndexFile != "" {
		files = append(files, atomicfile.File{Path: cfg.Output.IndexFile, Data: art.Stops})
	}
	files = append(files, atomicfile.File{Path: cfg.Output.CSVFile, Data: art.CSV})

	if err := atomicfile.WriteAll(files...); err != nil {
		return err
	}

	for _, f := range files {
		if f.Path != "" {
			slog.Info("wrote", "path", f.Path, "bytes", len(f.Data))
		}
	}

	slog.Info("table generated",
		"entries", built.table.Len(),
		"strategy", built.table.Strategy.String(),
		"format", built.table.Format.String(),
	)

	fmt.Fprintln(cmd.OutOrStdout(), cfg.Output.HexFile)

	return nil
}
