package adc

import "testing"

func TestTernaryClassify(t *testing.T) {
	tests := []struct {
		sample float64
		want   Level
	}{
		{0, Zero},
		{0.3, Zero},
		{-0.3, Zero},
		{0.31, High},
		{1, High},
		{-0.31, Low},
		{-1, Low},
	}

	var c Ternary
	for _, tt := range tests {
		if got := c.Classify(tt.sample); got != tt.want {
			t.Errorf("Classify(%v) = %v, want %v", tt.sample, got, tt.want)
		}
	}
	if c.Reference() != Zero {
		t.Errorf("Reference() = %v, want zero", c.Reference())
	}
}

func TestThresholdClassify(t *testing.T) {
	tests := []struct {
		edge   float64
		sample float64
		want   Level
	}{
		{DefaultEdgeLevel, 0, Low},
		{DefaultEdgeLevel, 0.9, Low},
		{DefaultEdgeLevel, -0.1, Low},
		{DefaultEdgeLevel, -0.11, High},
		{0.5, -0.4, Low},
		{0.5, -0.6, High},
	}

	for _, tt := range tests {
		c := Threshold{EdgeLevel: tt.edge}
		if got := c.Classify(tt.sample); got != tt.want {
			t.Errorf("Threshold{%v}.Classify(%v) = %v, want %v", tt.edge, tt.sample, got, tt.want)
		}
	}
	if (Threshold{}).Reference() != Low {
		t.Error("Reference() should be low")
	}
}
