// Package galaksija decodes Galaksija cassette recordings into tape blocks.
//
// The recording is a chain of short pulses separated by gaps. The length of
// each gap carries the data: two short gaps are a one bit, a medium gap is a
// zero bit and a long gap closes the byte. Bits arrive LSB first. Everything
// before the 0xA5 sync byte is leader and noise.
package galaksija

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ysh86/GTPtools/adc"
)

// Variant selects how samples are fixed into levels.
type Variant int

const (
	// Ternary times the silent gaps between pulses of either polarity.
	Ternary Variant = iota
	// Threshold times the gaps between negative edges on one channel.
	Threshold
)

func (v Variant) String() string {
	switch v {
	case Ternary:
		return "ternary"
	case Threshold:
		return "threshold"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// ParseVariant parses "ternary" or "threshold".
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ternary":
		return Ternary, nil
	case "threshold":
		return Threshold, nil
	}
	return 0, fmt.Errorf("galaksija: unknown variant %q", s)
}

// Config selects the decode variant.
// EdgeLevel and Channel are used by Threshold only; Channel is 1-based.
type Config struct {
	Variant   Variant
	EdgeLevel float64
	Channel   int
}

// DefaultConfig returns the ternary decoder.
func DefaultConfig() Config {
	return Config{
		Variant:   Ternary,
		EdgeLevel: adc.DefaultEdgeLevel,
		Channel:   1,
	}
}

func (c Config) classifier() adc.Classifier {
	if c.Variant == Threshold {
		return adc.Threshold{EdgeLevel: c.EdgeLevel}
	}
	return adc.Ternary{}
}

func (c Config) bands() Bands {
	if c.Variant == Threshold {
		return ThresholdBands
	}
	return TernaryBands
}

// State is everything one decode carries from sample to sample.
// It belongs to a single decode and is never shared.
type State struct {
	Runs   *adc.RunLengthTracker
	Pulses PulseDecoder
	Frame  *FrameAssembler
}

// NewState returns a fresh state for levels timed at reference.
func NewState(reference adc.Level) *State {
	return &State{
		Runs:  adc.NewRunLengthTracker(reference),
		Frame: NewFrameAssembler(),
	}
}

// Step feeds one classified sample.
func (s *State) Step(level adc.Level, last bool, bands Bands) {
	run, ok := s.Runs.Next(level, last)
	if !ok {
		return
	}
	register, complete := s.Pulses.Feed(bands.Classify(run.Length))
	s.Frame.Observe(register, complete)
}

// Decoder turns sample streams into blocks. It holds configuration only,
// so one Decoder may serve concurrent decodes.
type Decoder struct {
	cfg Config
	log zerolog.Logger
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger sets the logger for decode diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(d *Decoder) {
		d.log = log
	}
}

// NewDecoder creates a decoder.
func NewDecoder(cfg Config, opts ...Option) *Decoder {
	d := &Decoder{cfg: cfg, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Assemble runs the pulse decoder over the stream and returns the bytes from
// the sync byte on, tail byte included.
func (d *Decoder) Assemble(stream *adc.SampleStream) ([]byte, error) {
	view := stream.All()
	if d.cfg.Variant == Threshold {
		v, err := stream.Channel(d.cfg.Channel)
		if err != nil {
			return nil, err
		}
		view = v
	}

	classifier := d.cfg.classifier()
	bands := d.cfg.bands()
	state := NewState(classifier.Reference())

	n := view.Len()
	d.log.Info().Int("samples", n).Str("variant", d.cfg.Variant.String()).Msg("number of samples")
	for i := 0; i < n; i++ {
		state.Step(classifier.Classify(view.At(i)), i == n-1, bands)
	}

	buf, err := state.Frame.Finish(state.Pulses.Shift)
	if err != nil {
		return nil, err
	}
	d.log.Info().Int("bytes", len(buf)).Msg("number of data bytes found")
	return buf, nil
}

// Decode assembles and validates one block. A wrong checksum is logged and
// left to the caller (Block.Verify); a missing BASIC marker is logged only.
func (d *Decoder) Decode(stream *adc.SampleStream) (*Block, error) {
	buf, err := d.Assemble(stream)
	if err != nil {
		return nil, err
	}

	blk, err := Validate(buf)
	if err != nil {
		return nil, err
	}

	if !blk.BasicMarker {
		d.log.Warn().Err(ErrMarkerMissing).Uint16("start", blk.StartAddress).Msg("BASIC START not found")
	}
	d.log.Info().
		Str("start", fmt.Sprintf("%04x", blk.StartAddress)).
		Str("end", fmt.Sprintf("%04x", blk.EndAddress)).
		Str("size", fmt.Sprintf("%04x", blk.Size)).
		Msg("block found")
	if blk.ChecksumOK {
		d.log.Info().Msg("checksum is OK")
	} else {
		d.log.Warn().Str("sum", fmt.Sprintf("%02x", blk.Checksum)).Msg("checksum is WRONG")
	}

	return blk, nil
}
