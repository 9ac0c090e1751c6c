// Package meltable encodes a dense mel filterbank into the sparse,
// fixed-point coefficient table read by the mel feature engine.
//
// Triangular filters with 50% overlap never cover one FFT bin with more than
// two filters, so the table stores exactly two quantized weights per bin:
//
//	bin j -> Entry{A, B}
//
// Two packing strategies are available:
//
//   - [StrategyTwoPerBin] (default) walks the matrix column by column and
//     stores the above-threshold weights of each bin in filter order.
//   - [StrategyIndexTracked] walks the matrix filter by filter, alternating
//     filters between stream A (filters 0, 2, 4, ...) and stream B
//     (filters 1, 3, 5, ...), and records a stop index per filter. This is
//     the layout expected by engines that terminate accumulation early. It
//     keeps the legacy stream cursor, including the zero fill that only
//     happens before a filter's first above-threshold weight. Lead-in cells
//     are always the exact zero word, even where a small positive weight
//     below the threshold sits; the legacy generator quantized those.
//
// A matrix with three or more filters above threshold in one bin is
// rejected with an [*OverlapError] before anything is encoded. Weights
// outside the fixed-point range are rejected as well; nothing is clamped.
//
// The table renders as a hex memory file, a stop index file and a CSV audit
// dump of the source matrix:
//
//	1678e988 //0.0878,0.9122
//	4e2ab1d6 //0.3053,0.6947
//
// Each hex line holds stream B first, then stream A, followed by the decoded
// weights as a comment.
package meltable
