// Package audio loads test recordings for the verification harness.
package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep/wav"
	"github.com/mewkiz/flac"
)

// ErrUnsupported is returned for file types other than WAV and FLAC.
var ErrUnsupported = errors.New("audio: unsupported file type")

// Clip is a decoded mono recording with samples in [-1, 1].
type Clip struct {
	Samples    []float64
	SampleRate int
}

// Scaled returns the samples mapped from [-1, 1] onto [0, 2*scale], the
// unsigned range of the legacy test bench.
func (c *Clip) Scaled(scale float64) []float64 {
	out := make([]float64, len(c.Samples))
	for i, s := range c.Samples {
		out[i] = (s + 1) * scale
	}

	return out
}

// Load decodes a WAV or FLAC file, selected by extension. Multi-channel
// recordings are averaged down to mono.
func Load(path string) (*Clip, error) {
	var decode func(io.Reader) (*Clip, error)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		decode = DecodeWAV
	case ".flac":
		decode = DecodeFLAC
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	clip, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("audio: %s: %w", path, err)
	}

	return clip, nil
}

// DecodeWAV decodes a RIFF WAVE stream.
func DecodeWAV(r io.Reader) (*Clip, error) {
	stream, format, err := wav.Decode(r)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	clip := &Clip{SampleRate: int(format.SampleRate)}
	gain := wavGain(format.Precision)
	buf := make([][2]float64, 512)

	for {
		n, ok := stream.Stream(buf)
		for _, s := range buf[:n] {
			if format.NumChannels == 1 {
				clip.Samples = append(clip.Samples, s[0]*gain)
			} else {
				clip.Samples = append(clip.Samples, (s[0]+s[1])/2*gain)
			}
		}

		if !ok {
			break
		}
	}

	if err := stream.Err(); err != nil {
		return nil, err
	}

	return clip, nil
}

// wavGain corrects the beep decoder, which divides signed 16 and 24 bit
// samples by 2^bits-1 instead of 2^(bits-1).
func wavGain(precision int) float64 {
	switch precision {
	case 2:
		return float64(1<<16-1) / (1 << 15)
	case 3:
		return float64(1<<24-1) / (1 << 23)
	default:
		return 1
	}
}

// DecodeFLAC decodes a FLAC stream.
func DecodeFLAC(r io.Reader) (*Clip, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if stream.Info.BitsPerSample == 0 || stream.Info.NChannels == 0 {
		return nil, fmt.Errorf("invalid stream info: %d bits, %d channels", stream.Info.BitsPerSample, stream.Info.NChannels)
	}

	clip := &Clip{SampleRate: int(stream.Info.SampleRate)}
	full := float64(int64(1) << (stream.Info.BitsPerSample - 1))

	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		channels := len(frame.Subframes)
		for i := range frame.Subframes[0].Samples {
			sum := 0.0
			for _, sub := range frame.Subframes {
				sum += float64(sub.Samples[i])
			}

			clip.Samples = append(clip.Samples, sum/float64(channels)/full)
		}
	}

	return clip, nil
}
