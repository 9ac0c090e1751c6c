// Package melcheck emulates a mel feature engine on test signals so that a
// quantized coefficient table can be compared against the float filterbank
// it was built from.
//
// A signal is padded or truncated to a fixed number of frames, every frame
// is windowed (Hamming by default), transformed with a forward-normalized
// FFT and reduced to a power spectrum. Mel energies are the dot product of a
// filterbank with that spectrum, and the feature is
//
//	floor(8 * log2(energy))
//
// evaluated in float32, with zero energies replaced by the float64 machine
// epsilon.
//
// The default power spectrum keeps only the real part of each bin (re²), the
// behaviour of the engine the legacy tables target. [PowerMagnitude] uses
// |X|² instead.
package melcheck
