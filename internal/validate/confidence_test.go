package validate

import (
	"testing"

	"boardingpass_parser/internal/boardingpass"
)

func TestFilterLowConfidence(t *testing.T) {
	words := []WordScore{
		{"DELTA", 0.98},
		{"DL1234", 0.92},
		{"%#@!", 0.21},
		{"LAX", 0.88},
		{"sm0dge", 0.40},
		{"JFK", 0.91},
	}

	got := FilterLowConfidence(words, 0.75)
	want := "DELTA DL1234 LAX JFK"
	if got != want {
		t.Errorf("FilterLowConfidence = %q, want %q", got, want)
	}
}

func TestFilterLowConfidenceDefaultThreshold(t *testing.T) {
	words := []WordScore{{"KEEP", 0.8}, {"DROP", 0.7}}
	if got := FilterLowConfidence(words, 0); got != "KEEP" {
		t.Errorf("FilterLowConfidence with default threshold = %q, want %q", got, "KEEP")
	}
}

func TestEstimateConfidence(t *testing.T) {
	tests := []struct {
		kind  boardingpass.TokenKind
		value string
		want  float64
	}{
		{boardingpass.KindAirport, "LAX", 0.9},
		{boardingpass.KindAirport, "L4X", 0.6},
		{boardingpass.KindFlight, "DL1234", 0.9},
		{boardingpass.KindTime, "15:30", 0.9},
		{boardingpass.KindTime, "15:3O", 0.6},
		{boardingpass.KindGate, "B12", 0.75},
	}

	for _, tt := range tests {
		if got := EstimateConfidence(tt.kind, tt.value); got != tt.want {
			t.Errorf("EstimateConfidence(%s, %q) = %v, want %v", tt.kind, tt.value, got, tt.want)
		}
	}
}
