package galaksija

import (
	"testing"

	"github.com/ysh86/GTPtools/adc"
)

func TestBandsClassify(t *testing.T) {
	tests := []struct {
		name  string
		bands Bands
		count int
		want  Pulse
	}{
		{"ternary 0", TernaryBands, 0, PulseShort},
		{"ternary 49", TernaryBands, 49, PulseShort},
		{"ternary 50", TernaryBands, 50, PulseMedium},
		{"ternary 199", TernaryBands, 199, PulseMedium},
		{"ternary 200", TernaryBands, 200, PulseLong},
		{"ternary huge", TernaryBands, 1 << 20, PulseLong},
		{"threshold 99", ThresholdBands, 99, PulseShort},
		{"threshold 100", ThresholdBands, 100, PulseMedium},
		{"threshold 229", ThresholdBands, 229, PulseMedium},
		{"threshold 230", ThresholdBands, 230, PulseLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.bands.Classify(tt.count); got != tt.want {
				t.Errorf("Classify(%d) = %v, want %v", tt.count, got, tt.want)
			}
		})
	}
}

// A gap of n reference samples between two pulses is timed as n-1.
func TestGapClassify(t *testing.T) {
	tests := []struct {
		name  string
		ref   adc.Level
		bands Bands
		gap   int
		want  Pulse
	}{
		{"ternary 50", adc.Zero, TernaryBands, 50, PulseShort},
		{"ternary 51", adc.Zero, TernaryBands, 51, PulseMedium},
		{"ternary 200", adc.Zero, TernaryBands, 200, PulseMedium},
		{"ternary 201", adc.Zero, TernaryBands, 201, PulseLong},
		{"threshold 100", adc.Low, ThresholdBands, 100, PulseShort},
		{"threshold 101", adc.Low, ThresholdBands, 101, PulseMedium},
		{"threshold 230", adc.Low, ThresholdBands, 230, PulseMedium},
		{"threshold 231", adc.Low, ThresholdBands, 231, PulseLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levels := []adc.Level{adc.High}
			for i := 0; i < tt.gap; i++ {
				levels = append(levels, tt.ref)
			}
			levels = append(levels, adc.High)

			tracker := adc.NewRunLengthTracker(tt.ref)
			var pulses []Pulse
			for i, l := range levels {
				if run, ok := tracker.Next(l, i == len(levels)-1); ok {
					pulses = append(pulses, tt.bands.Classify(run.Length))
				}
			}
			if len(pulses) == 0 {
				t.Fatal("no pulse timed")
			}
			if got := pulses[len(pulses)-1]; got != tt.want {
				t.Errorf("gap of %d = %v, want %v", tt.gap, got, tt.want)
			}
		})
	}
}

func TestPulseDecoderFeed(t *testing.T) {
	const (
		S = PulseShort
		M = PulseMedium
		L = PulseLong
	)

	tests := []struct {
		name     string
		pulses   []Pulse
		want     byte
		wantHalf bool
	}{
		{"one bit from two shorts", []Pulse{S, S}, 0x80, false},
		{"single short is pending", []Pulse{S}, 0x00, true},
		{"zero bit", []Pulse{S, S, M}, 0x40, false},
		{"medium keeps the half bit", []Pulse{S, M, S}, 0x80, false},
		{"long resolves the half bit", []Pulse{S, L}, 0x80, false},
		{"long alone shifts a zero", []Pulse{S, S, L}, 0x40, false},
		{"lsb first", []Pulse{S, S, M, M, M, M, M, M, L}, 0x01, false},
		{"a5", []Pulse{S, S, M, S, S, M, M, S, S, M, S, L}, 0xa5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d PulseDecoder
			for _, p := range tt.pulses {
				d.Feed(p)
			}
			if d.Shift != tt.want {
				t.Errorf("Shift = %02x, want %02x", d.Shift, tt.want)
			}
			if d.Half != tt.wantHalf {
				t.Errorf("Half = %v, want %v", d.Half, tt.wantHalf)
			}
		})
	}
}

func TestPulseDecoderCompletesOnLongOnly(t *testing.T) {
	var d PulseDecoder
	for _, p := range []Pulse{PulseShort, PulseShort, PulseMedium, PulseShort} {
		if _, complete := d.Feed(p); complete {
			t.Fatalf("%v completed a byte", p)
		}
	}
	if _, complete := d.Feed(PulseLong); !complete {
		t.Error("long pulse did not complete the byte")
	}
}
