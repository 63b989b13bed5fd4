package adc

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/youpy/go-wav"
)

// ErrUnsupportedFormat is returned for WAV files the decoder cannot sample.
var ErrUnsupportedFormat = errors.New("adc: unsupported wav format")

// ErrChannelOutOfRange is returned when a channel beyond the input's channel count is selected.
var ErrChannelOutOfRange = errors.New("adc: channel out of range")

// WavSource is what go-wav needs to parse the RIFF chunks.
type WavSource interface {
	io.Reader
	io.ReaderAt
}

// SampleStream is a fully materialized PCM capture.
// Samples are interleaved and normalized to [-1, 1).
type SampleStream struct {
	Samples       []float64
	Channels      int
	SampleRate    int
	BitsPerSample int
	Duration      time.Duration
}

// Frames returns the number of audio frames (samples per channel).
func (s *SampleStream) Frames() int {
	if s.Channels <= 0 {
		return 0
	}
	return len(s.Samples) / s.Channels
}

// View is a strided window over the interleaved samples.
type View struct {
	samples []float64
	offset  int
	stride  int
}

// All returns a view over every interleaved value.
func (s *SampleStream) All() View {
	return View{samples: s.Samples, offset: 0, stride: 1}
}

// Channel returns a view over one channel, 1-based.
func (s *SampleStream) Channel(ch int) (View, error) {
	if ch < 1 || ch > s.Channels {
		return View{}, fmt.Errorf("%w: channel %d of %d", ErrChannelOutOfRange, ch, s.Channels)
	}
	return View{samples: s.Samples, offset: ch - 1, stride: s.Channels}, nil
}

// Len returns the number of samples visible through the view.
func (v View) Len() int {
	if v.stride <= 0 || len(v.samples) <= v.offset {
		return 0
	}
	return (len(v.samples)-v.offset-1)/v.stride + 1
}

// At returns the i-th visible sample.
func (v View) At(i int) float64 {
	return v.samples[v.offset+i*v.stride]
}

// ReadWAV reads a whole PCM WAV file into memory.
func ReadWAV(f WavSource, log zerolog.Logger) (*SampleStream, error) {
	reader := wav.NewReader(f)

	// input parameters
	duration, err := reader.Duration()
	if err != nil {
		return nil, fmt.Errorf("wav duration: %w", err)
	}
	format, err := reader.Format()
	if err != nil {
		return nil, fmt.Errorf("wav format: %w", err)
	}
	log.Debug().
		Dur("duration", duration).
		Uint16("format", format.AudioFormat).
		Uint16("bits_per_sample", format.BitsPerSample).
		Uint16("block_align", format.BlockAlign).
		Uint32("byte_rate", format.ByteRate).
		Uint16("channels", format.NumChannels).
		Uint32("sample_rate", format.SampleRate).
		Msg("wav input")
	if format.AudioFormat != wav.AudioFormatPCM {
		return nil, fmt.Errorf("%w: audio format %d", ErrUnsupportedFormat, format.AudioFormat)
	}
	if format.BitsPerSample != 8 && format.BitsPerSample != 16 {
		return nil, fmt.Errorf("%w: %d bits/sample", ErrUnsupportedFormat, format.BitsPerSample)
	}
	// wav.Sample holds two values only
	if format.NumChannels < 1 || format.NumChannels > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, format.NumChannels)
	}

	stream := &SampleStream{
		Channels:      int(format.NumChannels),
		SampleRate:    int(format.SampleRate),
		BitsPerSample: int(format.BitsPerSample),
		Duration:      duration,
	}
	for {
		samples, err := reader.ReadSamples(2048)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("wav samples: %w", err)
		}

		for _, sample := range samples {
			for ch := 0; ch < stream.Channels; ch++ {
				value := reader.IntValue(sample, uint(ch))
				stream.Samples = append(stream.Samples, normalize(value, stream.BitsPerSample))
			}
		}
	}

	return stream, nil
}

// 8-bit PCM is unsigned, 16-bit is signed.
func normalize(value, bitsPerSample int) float64 {
	if bitsPerSample == 8 {
		return float64(value-128) / 128
	}
	return float64(value) / 32768
}
