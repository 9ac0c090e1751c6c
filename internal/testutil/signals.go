package testutil

import (
	"math/rand"
)

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// Triangles returns n triangular filters over bins bins with 50% overlap:
// filter i rises over [i*width, (i+1)*width] and falls over
// [(i+1)*width, (i+2)*width]. Peaks stay below 1.
func Triangles(n, width, bins int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		row := make([]float64, bins)
		start := i * width
		for k := 1; k < 2*width; k++ {
			j := start + k
			if j >= bins {
				break
			}
			d := k
			if k > width {
				d = 2*width - k
			}
			row[j] = 0.99 * float64(d) / float64(width)
		}
		out[i] = row
	}
	return out
}
