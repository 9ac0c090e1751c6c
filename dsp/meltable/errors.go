package meltable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrShape is returned for empty or ragged matrices.
	ErrShape = errors.New("meltable: matrix must be non-empty and rectangular")
	// ErrOverlap matches every [*OverlapError].
	ErrOverlap = errors.New("meltable: more than two filters overlap a bin")
	// ErrTableOverflow is returned when packed weights do not fit the
	// configured table length.
	ErrTableOverflow = errors.New("meltable: packed weights exceed table length")
	// ErrNoStops is returned when stop indices are requested from a table
	// packed without them.
	ErrNoStops = errors.New("meltable: table has no stop indices")
)

// OverlapError reports a bin covered by more than two filters.
type OverlapError struct {
	Bin       int
	Filters   []int
	Threshold float64
}

func (e *OverlapError) Error() string {
	ids := make([]string, len(e.Filters))
	for i, f := range e.Filters {
		ids[i] = strconv.Itoa(f)
	}

	return fmt.Sprintf("meltable: bin %d has %d filters above %g (filters %s), at most 2 allowed",
		e.Bin, len(e.Filters), e.Threshold, strings.Join(ids, ", "))
}

// Is reports whether target is [ErrOverlap].
func (e *OverlapError) Is(target error) bool {
	return target == ErrOverlap
}

// WeightError wraps a quantization failure with the offending cell.
type WeightError struct {
	Filter int
	Bin    int
	Weight float64
	Err    error
}

func (e *WeightError) Error() string {
	return fmt.Sprintf("meltable: filter %d bin %d weight %v: %v", e.Filter, e.Bin, e.Weight, e.Err)
}

func (e *WeightError) Unwrap() error { return e.Err }
