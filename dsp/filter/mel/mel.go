package mel

import (
	"fmt"
	"math"
)

// Filterbank returns a numMels x (fftSize/2+1) matrix of triangular filter
// weights. Row i is the response of filter i over the FFT bins.
func Filterbank(fftSize int, sampleRate float64, numMels int, opts ...Option) ([][]float64, error) {
	if fftSize < 2 {
		return nil, fmt.Errorf("mel: fft size must be >= 2: %d", fftSize)
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("mel: sample rate must be > 0 and finite: %f", sampleRate)
	}

	if numMels < 1 {
		return nil, fmt.Errorf("mel: number of filters must be >= 1: %d", numMels)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if cfg.fmax < 0 {
		cfg.fmax = sampleRate / 2
		if cfg.fmin >= cfg.fmax {
			return nil, fmt.Errorf("mel: fmin %g must be below the Nyquist frequency %g", cfg.fmin, cfg.fmax)
		}
	}

	fftFreqs := FFTFrequencies(fftSize, sampleRate)
	edges := MelFrequencies(numMels+2, cfg.fmin, cfg.fmax, cfg.scale)

	weights := make([][]float64, numMels)
	for i := range weights {
		row := make([]float64, len(fftFreqs))

		lowerWidth := edges[i+1] - edges[i]
		upperWidth := edges[i+2] - edges[i+1]

		enorm := 1.0
		if cfg.norm == NormSlaney {
			enorm = 2.0 / (edges[i+2] - edges[i])
		}

		for j, f := range fftFreqs {
			lower := -(edges[i] - f) / lowerWidth
			upper := (edges[i+2] - f) / upperWidth
			w := math.Max(0, math.Min(lower, upper))

			if !cfg.float64Out {
				w = float64(float32(w))
			}

			if cfg.norm == NormSlaney {
				w *= enorm
				if !cfg.float64Out {
					w = float64(float32(w))
				}
			}

			row[j] = w
		}

		weights[i] = row
	}

	return weights, nil
}

// Stats summarizes the support of one filter.
type Stats struct {
	First int     // first bin with non-zero weight, -1 if the filter is empty
	Last  int     // last bin with non-zero weight, -1 if the filter is empty
	Peak  float64 // largest weight
}

// Support returns per-filter support statistics for weights above threshold.
func Support(weights [][]float64, threshold float64) []Stats {
	out := make([]Stats, len(weights))
	for i, row := range weights {
		st := Stats{First: -1, Last: -1}
		for j, w := range row {
			if w > st.Peak {
				st.Peak = w
			}

			if w > threshold {
				if st.First < 0 {
					st.First = j
				}

				st.Last = j
			}
		}

		out[i] = st
	}

	return out
}
