package adc

// Level is a fixed signal level of one sample.
type Level int8

const (
	Low  Level = -1
	Zero Level = 0
	High Level = 1
)

func (l Level) String() string {
	switch l {
	case Low:
		return "low"
	case Zero:
		return "zero"
	case High:
		return "high"
	}
	return "unknown"
}

// Classifier fixes the level of raw samples.
// Reference is the level whose run lengths carry the bits.
type Classifier interface {
	Classify(sample float64) Level
	Reference() Level
}

// TernaryLevel is the amplitude both polarities must exceed to leave Zero.
const TernaryLevel = 0.3

// DefaultEdgeLevel is the Threshold edge used when none is configured.
const DefaultEdgeLevel = 0.1

// Ternary splits samples into Low, Zero and High around ±0.3.
// The gaps between pulses (Zero) are timed.
type Ternary struct{}

func (Ternary) Classify(sample float64) Level {
	if sample > TernaryLevel {
		return High
	}
	if sample < -TernaryLevel {
		return Low
	}
	return Zero
}

func (Ternary) Reference() Level { return Zero }

// Threshold detects the negative edge only: samples below -EdgeLevel are High,
// everything else is Low. The Low runs are timed.
type Threshold struct {
	EdgeLevel float64
}

func (t Threshold) Classify(sample float64) Level {
	if sample < -t.EdgeLevel {
		return High
	}
	return Low
}

func (Threshold) Reference() Level { return Low }
