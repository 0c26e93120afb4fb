package validate

import "testing"

func TestTime(t *testing.T) {
	tests := []struct {
		input string
		valid bool
		want  string
		conf  float64
	}{
		{"13:30", true, "13:30", 0.9},
		{"09:05", true, "09:05", 0.9},
		{"13:80", true, "13:30", 0.6},
		{"13:70", true, "13:10", 0.6},
		{"99:99", true, "03:39", 0.6},
		{"25:30", true, "01:30", 0.6},
		{"4:45PM", true, "16:45", 0.9},
		{"4:45 PM", true, "16:45", 0.9},
		{"12:00AM", true, "00:00", 0.9},
		{"12:00PM", true, "12:00", 0.9},
		{"11:59PM", true, "23:59", 0.9},
		{"gate", false, "", 0.3},
		{"1530", false, "", 0.3},
	}

	for _, tt := range tests {
		got := Time(tt.input)
		if got.Valid != tt.valid {
			t.Errorf("Time(%q).Valid = %v, want %v", tt.input, got.Valid, tt.valid)
			continue
		}
		if got.Value != tt.want {
			t.Errorf("Time(%q).Value = %q, want %q", tt.input, got.Value, tt.want)
		}
		if got.Confidence != tt.conf {
			t.Errorf("Time(%q).Confidence = %v, want %v", tt.input, got.Confidence, tt.conf)
		}
	}
}

func TestCorrectOCRTime(t *testing.T) {
	tests := []struct {
		input     string
		conf      float64
		want      string
		corrected bool
		wantConf  float64
	}{
		{"13:30", 0.9, "13:30", false, 0.9},
		{"13:80", 0.9, "13:30", true, 0.6},
		{"13:80", 0.4, "13:30", true, 0.4},
		{"25:61", 0.9, "01:01", true, 0.6},
		{"junk", 0.9, "junk", false, 0},
	}

	for _, tt := range tests {
		got := CorrectOCRTime(tt.input, tt.conf)
		if got.Time != tt.want {
			t.Errorf("CorrectOCRTime(%q).Time = %q, want %q", tt.input, got.Time, tt.want)
		}
		if got.Corrected != tt.corrected {
			t.Errorf("CorrectOCRTime(%q).Corrected = %v, want %v", tt.input, got.Corrected, tt.corrected)
		}
		if got.Confidence != tt.wantConf {
			t.Errorf("CorrectOCRTime(%q).Confidence = %v, want %v", tt.input, got.Confidence, tt.wantConf)
		}
	}
}

// A repaired time fed back through the corrector must come out unchanged.
func TestCorrectOCRTimeIdempotent(t *testing.T) {
	for _, input := range []string{"13:80", "99:99", "25:30", "08:15"} {
		first := CorrectOCRTime(input, 0.9)
		second := CorrectOCRTime(first.Time, first.Confidence)
		if second.Time != first.Time {
			t.Errorf("second pass changed %q: %q -> %q", input, first.Time, second.Time)
		}
		if second.Corrected {
			t.Errorf("second pass over %q reported a correction", first.Time)
		}
		if second.Confidence != first.Confidence {
			t.Errorf("second pass changed confidence of %q: %v -> %v", input, first.Confidence, second.Confidence)
		}
	}
}

// Correction must never raise confidence above the input value.
func TestCorrectOCRTimeMonotonic(t *testing.T) {
	for _, input := range []string{"13:30", "13:80", "99:99", "4:45PM"} {
		for _, conf := range []float64{0.3, 0.5, 0.6, 0.9, 1.0} {
			got := CorrectOCRTime(input, conf)
			if got.Confidence > conf {
				t.Errorf("CorrectOCRTime(%q, %v).Confidence = %v, exceeds input", input, conf, got.Confidence)
			}
		}
	}
}
