package melcheck

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/jurevreca12/mel-engine/dsp/meltable"
)

// Epsilon replaces zero energies before the logarithm. It equals
// numpy.finfo(float).eps.
const Epsilon = 0x1p-52

// Energies returns the mel energies of one power spectrum.
func Energies(m meltable.Matrix, power []float64) ([]float64, error) {
	if len(power) != m.NumBins() {
		return nil, fmt.Errorf("melcheck: power spectrum has %d bins, filterbank has %d", len(power), m.NumBins())
	}

	out := make([]float64, m.NumFilters())
	for i := range out {
		out[i] = vecmath.DotProduct(m.RowView(i), power)
	}

	return out, nil
}

// LogFeatures returns floor(8 * log2(e)) for every energy, computed in
// float32. Exactly zero energies are replaced by [Epsilon].
func LogFeatures(energies []float64) []float64 {
	out := make([]float64, len(energies))
	for i, e := range energies {
		if e == 0 {
			e = Epsilon
		}

		l := float32(math.Log2(float64(float32(e))))
		out[i] = math.Floor(float64(l * 8))
	}

	return out
}
