package galaksija

// Pulse is the duration class of a timed gap.
type Pulse uint8

const (
	// PulseShort is half of a one bit.
	PulseShort Pulse = iota
	// PulseMedium is a zero bit.
	PulseMedium
	// PulseLong ends a byte.
	PulseLong
)

func (p Pulse) String() string {
	switch p {
	case PulseShort:
		return "short"
	case PulseMedium:
		return "medium"
	case PulseLong:
		return "long"
	}
	return "unknown"
}

// Bands are the lower bounds (inclusive, in samples) of the medium and long classes.
type Bands struct {
	Medium int
	Long   int
}

var (
	// TernaryBands: short < 50 <= medium < 200 <= long
	TernaryBands = Bands{Medium: 50, Long: 200}

	// ThresholdBands: short < 100 <= medium < 230 <= long
	ThresholdBands = Bands{Medium: 100, Long: 230}
)

// Classify never clamps: anything past Long is long.
func (b Bands) Classify(count int) Pulse {
	if count < b.Medium {
		return PulseShort
	}
	if count < b.Long {
		return PulseMedium
	}
	return PulseLong
}

// PulseDecoder shifts bits into an 8-bit register, LSB first.
// Two short pulses make a one, a medium pulse a zero.
// A long pulse shifts in the pending half bit (one) or a zero and completes the byte.
type PulseDecoder struct {
	Shift byte
	Half  bool
}

// Feed applies one pulse and reports whether it completed a byte.
func (d *PulseDecoder) Feed(p Pulse) (byte, bool) {
	switch p {
	case PulseShort:
		if d.Half {
			d.shiftIn(1)
			d.Half = false
		} else {
			d.Half = true
		}
	case PulseMedium:
		d.shiftIn(0)
	case PulseLong:
		if d.Half {
			d.shiftIn(1)
		} else {
			d.shiftIn(0)
		}
		d.Half = false
		return d.Shift, true
	}
	return d.Shift, false
}

func (d *PulseDecoder) shiftIn(bit byte) {
	d.Shift = (d.Shift >> 1) | (bit << 7)
}
