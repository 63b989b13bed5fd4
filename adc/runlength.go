package adc

// RunLength is a finished run of one level.
// Length counts the samples after the first one of the run.
type RunLength struct {
	Level  Level
	Length int
}

// RunLengthTracker counts samples of the same level and reports the runs
// of the reference level when they end.
type RunLengthTracker struct {
	reference Level
	prev      Level
	count     int
}

// NewRunLengthTracker starts as if the stream was already at the reference level.
func NewRunLengthTracker(reference Level) *RunLengthTracker {
	return &RunLengthTracker{reference: reference, prev: reference}
}

// Next feeds the level of one sample. The last sample of the stream always
// ends the current run.
func (t *RunLengthTracker) Next(level Level, last bool) (RunLength, bool) {
	if level == t.prev && !last {
		t.count++
		return RunLength{}, false
	}

	run := RunLength{Level: t.prev, Length: t.count}
	t.prev = level
	t.count = 0
	return run, run.Level == t.reference
}
