package meltable

import "fmt"

// Matrix is an immutable dense filterbank: one row per filter, one column per
// FFT bin.
type Matrix struct {
	rows [][]float64
	bins int
}

// NewMatrix copies rows into a Matrix. Every row must have the same
// non-zero length.
func NewMatrix(rows [][]float64) (Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Matrix{}, ErrShape
	}

	bins := len(rows[0])
	data := make([][]float64, len(rows))

	for i, row := range rows {
		if len(row) != bins {
			return Matrix{}, fmt.Errorf("%w: row %d has %d bins, want %d", ErrShape, i, len(row), bins)
		}

		data[i] = append([]float64(nil), row...)
	}

	return Matrix{rows: data, bins: bins}, nil
}

// NumFilters returns the number of rows.
func (m Matrix) NumFilters() int { return len(m.rows) }

// NumBins returns the number of columns.
func (m Matrix) NumBins() int { return m.bins }

// At returns the weight of filter i at bin j.
func (m Matrix) At(i, j int) float64 { return m.rows[i][j] }

// Row returns a copy of filter i.
func (m Matrix) Row(i int) []float64 {
	return append([]float64(nil), m.rows[i]...)
}

// RowView returns row i without copying. The caller must not modify it.
func (m Matrix) RowView(i int) []float64 { return m.rows[i] }

// Rows returns a copy of all rows.
func (m Matrix) Rows() [][]float64 {
	out := make([][]float64, len(m.rows))
	for i := range m.rows {
		out[i] = m.Row(i)
	}

	return out
}

// active appends the filters whose weight at bin j exceeds threshold.
func (m Matrix) active(dst []int, j int, threshold float64) []int {
	for i, row := range m.rows {
		if row[j] > threshold {
			dst = append(dst, i)
		}
	}

	return dst
}

// Validate checks that no bin of m has more than two filters above
// threshold. The first offending bin is reported as an [*OverlapError].
func Validate(m Matrix, threshold float64) error {
	if m.NumFilters() == 0 {
		return ErrShape
	}

	var buf []int
	for j := range m.bins {
		buf = m.active(buf[:0], j, threshold)
		if len(buf) > 2 {
			return &OverlapError{
				Bin:       j,
				Filters:   append([]int(nil), buf...),
				Threshold: threshold,
			}
		}
	}

	return nil
}
