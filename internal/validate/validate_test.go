package validate

import "testing"

func TestFlightNumber(t *testing.T) {
	tests := []struct {
		input      string
		valid      bool
		value      string
		suggestion string
		conf       float64
	}{
		{"DL1234", true, "DL1234", "", 0.9},
		{"DL 1234", true, "DL1234", "", 0.9},
		{"dl1234", true, "DL1234", "", 0.9},
		{"B61234", true, "B61234", "", 0.9},
		{"DZ1234", false, "", "DL1234", 0.7},
		{"1234", false, "", "", 0.3},
		{"DELTA", false, "", "", 0.3},
	}

	for _, tt := range tests {
		got := FlightNumber(tt.input)
		if got.Valid != tt.valid {
			t.Errorf("FlightNumber(%q).Valid = %v, want %v", tt.input, got.Valid, tt.valid)
		}
		if got.Value != tt.value {
			t.Errorf("FlightNumber(%q).Value = %q, want %q", tt.input, got.Value, tt.value)
		}
		if got.Suggestion != tt.suggestion {
			t.Errorf("FlightNumber(%q).Suggestion = %q, want %q", tt.input, got.Suggestion, tt.suggestion)
		}
		if got.Confidence != tt.conf {
			t.Errorf("FlightNumber(%q).Confidence = %v, want %v", tt.input, got.Confidence, tt.conf)
		}
	}
}

// DZ is one edit from both DL and AZ; the correction must prefer the
// candidate sharing the first character and must be stable across calls.
func TestNearestAirlineCodeDeterministic(t *testing.T) {
	first := nearestAirlineCode("DZ")
	if first != "DL" {
		t.Fatalf("nearestAirlineCode(DZ) = %q, want DL", first)
	}
	for i := 0; i < 10; i++ {
		if got := nearestAirlineCode("DZ"); got != first {
			t.Fatalf("nearestAirlineCode(DZ) changed: %q then %q", first, got)
		}
	}
}

func TestAirport(t *testing.T) {
	tests := []struct {
		input      string
		valid      bool
		value      string
		suggestion string
		conf       float64
	}{
		{"LAX", true, "LAX", "", 0.95},
		{"jfk", true, "JFK", "", 0.95},
		{"0RD", false, "", "ORD", 0.7},
		{"5F0", false, "", "SFO", 0.7},
		{"QQQ", true, "QQQ", "", 0.6}, // well-formed, not in table
		{"DEP", false, "", "", 0.3},   // blocklisted keyword
		{"ZZ", false, "", "", 0.3},
		{"L4X", false, "", "", 0.3},
	}

	for _, tt := range tests {
		got := Airport(tt.input)
		if got.Valid != tt.valid || got.Value != tt.value || got.Suggestion != tt.suggestion || got.Confidence != tt.conf {
			t.Errorf("Airport(%q) = %+v, want valid=%v value=%q suggestion=%q conf=%v",
				tt.input, got, tt.valid, tt.value, tt.suggestion, tt.conf)
		}
	}
}

func TestSeat(t *testing.T) {
	tests := []struct {
		input string
		valid bool
		value string
	}{
		{"12A", true, "12A"},
		{"1a", true, "1A"},
		{"60K", true, "60K"},
		{"0A", false, ""},
		{"61A", false, ""},
		{"12Z", false, ""},
		{"A12", false, ""},
	}

	for _, tt := range tests {
		got := Seat(tt.input)
		if got.Valid != tt.valid || got.Value != tt.value {
			t.Errorf("Seat(%q) = valid=%v value=%q, want valid=%v value=%q",
				tt.input, got.Valid, got.Value, tt.valid, tt.value)
		}
	}
}

func TestGate(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"B12", true},
		{"7", true},
		{"A1B", true},
		{"gate", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := Gate(tt.input); got.Valid != tt.valid {
			t.Errorf("Gate(%q).Valid = %v, want %v", tt.input, got.Valid, tt.valid)
		}
	}
}

func TestEditDistanceAtMostOne(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"DZ", "DL", true},
		{"DL", "DL", true},
		{"DL", "AA", false},
		{"UA", "UAL", true},
		{"UAL", "UA", true},
		{"AB", "BA", false},
	}
	for _, tt := range tests {
		if got := editDistanceAtMostOne(tt.a, tt.b); got != tt.want {
			t.Errorf("editDistanceAtMostOne(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
