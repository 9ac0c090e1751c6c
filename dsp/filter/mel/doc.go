// Package mel builds triangular mel filterbanks over FFT magnitude bins.
//
// The construction matches the widely used librosa filters.mel routine so
// that tables generated here agree with tables generated from Python:
//
//	fftfreqs[j] = j * sr / nfft                       for j in [0, nfft/2]
//	f[k]        = mel_to_hz(linspace(mel(fmin), mel(fmax), nmels+2))[k]
//	lower       = (fftfreqs - f[i])   / (f[i+1] - f[i])
//	upper       = (f[i+2] - fftfreqs) / (f[i+2] - f[i+1])
//	w[i]        = max(0, min(lower, upper))
//
// Two mel scales are supported: [ScaleSlaney] (linear below 1 kHz,
// logarithmic above, the librosa default) and [ScaleHTK]
// (2595*log10(1+f/700)). [NormSlaney] scales every filter to unit area in
// Hz; [NormNone] leaves peaks at 1.
//
// By default weights are rounded through float32, like the float32 matrix
// librosa returns, so that downstream quantization sees the same inputs.
//
// Basic usage:
//
//	fb, err := mel.Filterbank(512, 16000, 20,
//	    mel.WithFrequencyRange(0, 8001),
//	    mel.WithNorm(mel.NormNone))
//	// fb has 20 rows of 257 weights
package mel
