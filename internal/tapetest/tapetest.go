// Package tapetest synthesizes Galaksija tape signals for tests.
package tapetest

import (
	"os"

	"github.com/youpy/go-wav"

	"github.com/ysh86/GTPtools/galaksija"
)

// Encoder lays out gaps (Space samples) separated by pulses (Mark samples).
// Gap lengths are in samples, chosen inside the decoder bands.
type Encoder struct {
	Short  int
	Medium int
	Long   int
	Pulse  int
	Mark   float64
	Space  float64

	samples []float64
}

// Ternary returns an encoder for the ternary decoder: positive pulses, silent gaps.
func Ternary() *Encoder {
	return &Encoder{Short: 20, Medium: 100, Long: 300, Pulse: 10, Mark: 0.8, Space: 0}
}

// Threshold returns an encoder for the threshold decoder: negative pulses.
func Threshold() *Encoder {
	return &Encoder{Short: 50, Medium: 160, Long: 300, Pulse: 10, Mark: -0.8, Space: 0}
}

// Gap appends n space samples and one pulse.
func (e *Encoder) Gap(n int) {
	for i := 0; i < n; i++ {
		e.samples = append(e.samples, e.Space)
	}
	for i := 0; i < e.Pulse; i++ {
		e.samples = append(e.samples, e.Mark)
	}
}

// Leader appends n zero bits.
func (e *Encoder) Leader(n int) {
	for i := 0; i < n; i++ {
		e.Gap(e.Medium)
	}
}

// Byte appends one byte, LSB first. The last bit rides on the long gap.
func (e *Encoder) Byte(b byte) {
	for i := 0; i < 7; i++ {
		if b>>i&1 == 1 {
			e.Gap(e.Short)
			e.Gap(e.Short)
		} else {
			e.Gap(e.Medium)
		}
	}
	if b>>7&1 == 1 {
		e.Gap(e.Short)
	}
	e.Gap(e.Long)
}

// Bytes appends a sequence of bytes.
func (e *Encoder) Bytes(bs []byte) {
	for _, b := range bs {
		e.Byte(b)
	}
}

// Samples returns the samples so far.
func (e *Encoder) Samples() []float64 {
	return e.samples
}

// Encode returns a leader followed by data.
func Encode(e *Encoder, data []byte) []float64 {
	e.Leader(16)
	e.Bytes(data)
	return e.Samples()
}

// Block lays out a tape block for program at start: sync byte, start and
// end address, program and checksum byte.
func Block(start uint16, program []byte) []byte {
	end := start + uint16(len(program))
	data := []byte{galaksija.SyncMarker, byte(start), byte(start >> 8), byte(end), byte(end >> 8)}
	data = append(data, program...)
	var sum byte
	for _, b := range data {
		sum += b
	}
	return append(data, 0xff-sum)
}

// Interleave merges channels frame by frame, padding short channels with 0.
func Interleave(channels ...[]float64) []float64 {
	frames := 0
	for _, ch := range channels {
		if len(ch) > frames {
			frames = len(ch)
		}
	}
	out := make([]float64, 0, frames*len(channels))
	for i := 0; i < frames; i++ {
		for _, ch := range channels {
			v := 0.0
			if i < len(ch) {
				v = ch[i]
			}
			out = append(out, v)
		}
	}
	return out
}

// WriteWAV writes interleaved samples as 16-bit 44.1kHz PCM.
func WriteWAV(path string, channels int, samples []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	frames := len(samples) / channels
	ws := make([]wav.Sample, frames)
	for i := range ws {
		for ch := 0; ch < channels; ch++ {
			ws[i].Values[ch] = int(samples[i*channels+ch] * 32767)
		}
	}

	writer := wav.NewWriter(f, uint32(frames), uint16(channels), 44100, 16)
	if err := writer.WriteSamples(ws); err != nil {
		return err
	}
	return f.Close()
}
