package meltable

import (
	"fmt"

	"github.com/jurevreca12/mel-engine/dsp/fixed"
)

// Encoder turns a dense filterbank into a sparse coefficient table.
// An Encoder is immutable and safe for concurrent use.
type Encoder struct {
	strategy  Strategy
	threshold float64
	length    int
	quant     *fixed.Quantizer
}

// NewEncoder creates an Encoder. The default configuration packs two
// weights per bin in unsigned Q0.16 with threshold 0.0001 and one entry per
// FFT bin.
func NewEncoder(opts ...Option) (*Encoder, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.quant == nil {
		q, err := fixed.NewQuantizer()
		if err != nil {
			return nil, err
		}

		cfg.quant = q
	}

	return &Encoder{
		strategy:  cfg.strategy,
		threshold: cfg.threshold,
		length:    cfg.length,
		quant:     cfg.quant,
	}, nil
}

// Encode validates m and packs it into a table. Overlap violations and
// unrepresentable weights abort the run; no partial table is returned.
func (e *Encoder) Encode(m Matrix) (*Table, error) {
	if err := Validate(m, e.threshold); err != nil {
		return nil, err
	}

	words, err := e.quantize(m)
	if err != nil {
		return nil, err
	}

	length := e.TableLength(m)

	t := &Table{
		NumBins:   m.NumBins(),
		Strategy:  e.strategy,
		Format:    e.quant.Format(),
		Threshold: e.threshold,
	}

	switch e.strategy {
	case StrategyIndexTracked:
		t.Entries, t.Stops, err = packIndexTracked(m, words, e.threshold, length, e.quant.Zero())
	default:
		t.Entries, err = packTwoPerBin(m, words, e.threshold, length, e.quant.Zero())
	}

	if err != nil {
		return nil, err
	}

	return t, nil
}

// quantize converts every cell, so that out-of-range weights are reported
// even where they would not be packed.
func (e *Encoder) quantize(m Matrix) ([][]fixed.Value, error) {
	words := make([][]fixed.Value, m.NumFilters())
	for i, row := range m.rows {
		words[i] = make([]fixed.Value, len(row))
		for j, w := range row {
			v, err := e.quant.Quantize(w)
			if err != nil {
				return nil, &WeightError{Filter: i, Bin: j, Weight: w, Err: err}
			}

			words[i][j] = v
		}
	}

	return words, nil
}

// TableLength returns the number of entries a table for m will have.
func (e *Encoder) TableLength(m Matrix) int {
	if e.length > 0 {
		return e.length
	}

	return m.NumBins()
}

// Strategy returns the packing strategy.
func (e *Encoder) Strategy() Strategy { return e.strategy }

// Threshold returns the activity threshold.
func (e *Encoder) Threshold() float64 { return e.threshold }

// Quantizer returns the weight quantizer.
func (e *Encoder) Quantizer() *fixed.Quantizer { return e.quant }

func (e *Encoder) String() string {
	return fmt.Sprintf("meltable.Encoder{%s, %s, eps=%g}", e.strategy, e.quant.Format(), e.threshold)
}
