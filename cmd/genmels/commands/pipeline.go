package commands

import (
	"fmt"
	"log/slog"

	"github.com/jurevreca12/mel-engine/cmd/genmels/internal/config"
	"github.com/jurevreca12/mel-engine/dsp/filter/mel"
	"github.com/jurevreca12/mel-engine/dsp/fixed"
	"github.com/jurevreca12/mel-engine/dsp/meltable"
)

// buildResult is one filterbank together with its encoded table.
type buildResult struct {
	matrix meltable.Matrix
	table  *meltable.Table
}

// buildTable computes the filterbank described by cfg and encodes it.
func buildTable(cfg *config.Config, res *config.Resolved) (*buildResult, error) {
	weights, err := mel.Filterbank(cfg.FFTSize, cfg.SampleRate, cfg.NumMels,
		mel.WithFrequencyRange(cfg.FMin, cfg.FMax),
		mel.WithScale(res.Scale),
		mel.WithNorm(res.Norm),
	)
	if err != nil {
		return nil, err
	}

	m, err := meltable.NewMatrix(weights)
	if err != nil {
		return nil, err
	}

	quant, err := fixed.NewQuantizer(fixed.WithFormat(res.Format), fixed.WithRounding(res.Rounding))
	if err != nil {
		return nil, err
	}

	enc, err := meltable.NewEncoder(
		meltable.WithStrategy(res.Strategy),
		meltable.WithThreshold(cfg.Threshold),
		meltable.WithTableLength(cfg.TableLength),
		meltable.WithQuantizer(quant),
	)
	if err != nil {
		return nil, err
	}

	slog.Debug("encoding filterbank",
		"filters", m.NumFilters(),
		"bins", m.NumBins(),
		"encoder", enc.String(),
		"rounding", quant.Rounding().String(),
	)

	t, err := enc.Encode(m)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	return &buildResult{matrix: m, table: t}, nil
}
