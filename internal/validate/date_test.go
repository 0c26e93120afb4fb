package validate

import "testing"

func TestDate(t *testing.T) {
	tests := []struct {
		input string
		valid bool
		want  string
		conf  float64
	}{
		{"OCTOBER 9, 2024", true, "2024-10-09", 0.9},
		{"OCTOBER 9 2024", true, "2024-10-09", 0.9},
		{"JANUARY 1, 2025", true, "2025-01-01", 0.9},
		{"OCT 9, 2024", true, "2024-10-09", 0.9},
		{"9 OCT 2024", true, "2024-10-09", 0.9},
		{"09OCT24", true, "2024-10-09", 0.9},
		{"10/09/2024", true, "2024-10-09", 0.8},
		{"10-09-24", true, "2024-10-09", 0.8},
		{"FEBRUARY 30, 2024", false, "", 0.3},
		{"13/13/2024", false, "", 0.3},
		{"SOMEDAY", false, "", 0.3},
	}

	for _, tt := range tests {
		got := Date(tt.input)
		if got.Valid != tt.valid {
			t.Errorf("Date(%q).Valid = %v, want %v", tt.input, got.Valid, tt.valid)
			continue
		}
		if got.Value != tt.want {
			t.Errorf("Date(%q).Value = %q, want %q", tt.input, got.Value, tt.want)
		}
		if got.Confidence != tt.conf {
			t.Errorf("Date(%q).Confidence = %v, want %v", tt.input, got.Confidence, tt.conf)
		}
	}
}
