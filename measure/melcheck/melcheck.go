package melcheck

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/jurevreca12/mel-engine/dsp/meltable"
	"github.com/jurevreca12/mel-engine/dsp/window"
)

type forwardPlan interface {
	Forward(dst, src []complex128) error
}

// Analyzer frames, windows and transforms signals. An Analyzer reuses its
// scratch buffers and is not safe for concurrent use.
type Analyzer struct {
	frameLength int
	numFrames   int
	power       PowerMode
	coeffs      []float64
	plan        forwardPlan

	in  []complex128
	out []complex128
	re  []float64
	im  []float64
}

// NewAnalyzer creates an Analyzer. The default configuration analyses 32
// frames of 512 samples with a symmetric Hamming window and real-part power.
func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	plan, err := algofft.NewPlan64(cfg.frameLength)
	if err != nil {
		return nil, fmt.Errorf("melcheck: fft plan: %w", err)
	}

	bins := cfg.frameLength/2 + 1

	return &Analyzer{
		frameLength: cfg.frameLength,
		numFrames:   cfg.numFrames,
		power:       cfg.power,
		coeffs:      window.Generate(cfg.window, cfg.frameLength),
		plan:        plan,
		in:          make([]complex128, cfg.frameLength),
		out:         make([]complex128, cfg.frameLength),
		re:          make([]float64, bins),
		im:          make([]float64, bins),
	}, nil
}

// FrameLength returns the frame and FFT length.
func (a *Analyzer) FrameLength() int { return a.frameLength }

// NumBins returns the number of non-negative frequency bins.
func (a *Analyzer) NumBins() int { return a.frameLength/2 + 1 }

// NumFrames returns the number of analysed frames.
func (a *Analyzer) NumFrames() int { return a.numFrames }

// Spectrum windows frame and returns its non-negative frequency bins,
// divided by the frame length.
func (a *Analyzer) Spectrum(frame []float64) ([]complex128, error) {
	if len(frame) != a.frameLength {
		return nil, fmt.Errorf("melcheck: frame has %d samples, want %d", len(frame), a.frameLength)
	}

	for i, x := range frame {
		a.in[i] = complex(x*a.coeffs[i], 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		return nil, fmt.Errorf("melcheck: fft: %w", err)
	}

	scale := 1 / float64(a.frameLength)
	bins := make([]complex128, a.NumBins())

	for k := range bins {
		bins[k] = a.out[k] * complex(scale, 0)
	}

	return bins, nil
}

// PowerSpectrum returns the power of every non-negative frequency bin.
func (a *Analyzer) PowerSpectrum(frame []float64) ([]float64, error) {
	bins, err := a.Spectrum(frame)
	if err != nil {
		return nil, err
	}

	for k, c := range bins {
		a.re[k] = real(c)
		a.im[k] = imag(c)
	}

	out := make([]float64, len(bins))
	if a.power == PowerMagnitude {
		vecmath.Power(out, a.re, a.im)
	} else {
		vecmath.MulBlock(out, a.re, a.re)
	}

	return out, nil
}

// Features returns the log features of every frame of signal under the
// filterbank m, together with the raw energies.
func (a *Analyzer) Features(signal []float64, m meltable.Matrix) (energies, features [][]float64, err error) {
	if m.NumBins() != a.NumBins() {
		return nil, nil, fmt.Errorf("melcheck: filterbank has %d bins, analyzer produces %d", m.NumBins(), a.NumBins())
	}

	for _, frame := range Frames(signal, a.frameLength, a.numFrames) {
		p, err := a.PowerSpectrum(frame)
		if err != nil {
			return nil, nil, err
		}

		e, err := Energies(m, p)
		if err != nil {
			return nil, nil, err
		}

		energies = append(energies, e)
		features = append(features, LogFeatures(e))
	}

	return energies, features, nil
}

// Report compares the float filterbank against the matrix a consumer engine
// applies from the encoded table.
type Report struct {
	FloatEnergies  [][]float64 // [frame][filter]
	EngineEnergies [][]float64
	FloatFeatures  [][]float64
	EngineFeatures [][]float64

	MaxAbsDiff        float64 // largest energy difference
	MaxRelDiff        float64 // largest energy difference relative to the float energy
	MaxFeatureDiff    float64
	FeatureMismatches int
}

// Within reports whether no feature differs by more than tolerance.
func (r *Report) Within(tolerance float64) bool {
	return r.MaxFeatureDiff <= tolerance
}

// Compare runs signal through both filterbanks and reports the differences.
func (a *Analyzer) Compare(signal []float64, ref, engine meltable.Matrix) (*Report, error) {
	if ref.NumFilters() != engine.NumFilters() || ref.NumBins() != engine.NumBins() {
		return nil, fmt.Errorf("melcheck: filterbank shapes differ: %dx%d vs %dx%d",
			ref.NumFilters(), ref.NumBins(), engine.NumFilters(), engine.NumBins())
	}

	r := &Report{}

	var err error

	r.FloatEnergies, r.FloatFeatures, err = a.Features(signal, ref)
	if err != nil {
		return nil, err
	}

	r.EngineEnergies, r.EngineFeatures, err = a.Features(signal, engine)
	if err != nil {
		return nil, err
	}

	for f := range r.FloatEnergies {
		for i, fe := range r.FloatEnergies[f] {
			d := math.Abs(fe - r.EngineEnergies[f][i])
			r.MaxAbsDiff = max(r.MaxAbsDiff, d)

			if fe != 0 {
				r.MaxRelDiff = max(r.MaxRelDiff, d/math.Abs(fe))
			}

			fd := math.Abs(r.FloatFeatures[f][i] - r.EngineFeatures[f][i])
			if fd != 0 {
				r.FeatureMismatches++
				r.MaxFeatureDiff = max(r.MaxFeatureDiff, fd)
			}
		}
	}

	return r, nil
}
