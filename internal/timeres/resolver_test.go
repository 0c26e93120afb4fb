package timeres

import (
	"testing"
	"time"

	"boardingpass_parser/internal/boardingpass"
	"boardingpass_parser/internal/scanerr"
)

func TestEstimateFlightDuration(t *testing.T) {
	tests := []struct {
		origin, destination string
		want                float64
	}{
		{"LAX", "JFK", 5.5},  // exact table entry
		{"JFK", "LAX", 6.25}, // asymmetric return leg
		{"LAX", "SEA", 2.75}, // tabled short-coast leg
		{"LAX", "SAN", 1.5},  // untabled, ~110 mi, short haul bucket
		{"SAN", "SEA", 3.0},  // untabled, ~1050 mi, medium haul bucket
		{"SEA", "MIA", 5.5},  // untabled, ~2720 mi, long haul bucket
		{"XXX", "YYY", 3.0},  // unknown airports, fallback of last resort
	}

	for _, tt := range tests {
		got := EstimateFlightDuration(tt.origin, tt.destination)
		if got != tt.want {
			t.Errorf("EstimateFlightDuration(%s, %s) = %v, want %v", tt.origin, tt.destination, got, tt.want)
		}
	}
}

// Estimation must never fail, whatever the inputs.
func TestEstimateFlightDurationTotal(t *testing.T) {
	for _, pair := range [][2]string{{"", ""}, {"LAX", ""}, {"", "JFK"}, {"???", "!!!"}} {
		if got := EstimateFlightDuration(pair[0], pair[1]); got <= 0 {
			t.Errorf("EstimateFlightDuration(%q, %q) = %v, want > 0", pair[0], pair[1], got)
		}
	}
}

func TestResolveZonedTime(t *testing.T) {
	z, err := ResolveZonedTime("2024-10-09", "15:30", "LAX")
	if err != nil {
		t.Fatalf("ResolveZonedTime: %v", err)
	}
	if z.Timezone != "America/Los_Angeles" {
		t.Errorf("Timezone = %q, want America/Los_Angeles", z.Timezone)
	}
	if z.AirportCode != "LAX" {
		t.Errorf("AirportCode = %q, want LAX", z.AirportCode)
	}
	// October 9 is PDT (UTC-7).
	want := time.Date(2024, 10, 9, 22, 30, 0, 0, time.UTC)
	if !z.UTC.Equal(want) {
		t.Errorf("UTC = %v, want %v", z.UTC, want)
	}
	if got := z.Local().Format("15:04"); got != "15:30" {
		t.Errorf("Local = %s, want 15:30", got)
	}
}

func TestResolveZonedTimeErrors(t *testing.T) {
	tests := []struct {
		date, timeStr, airport string
		code                   scanerr.Code
	}{
		{"2024-10-09", "15:30", "QQQ", scanerr.AirportNotFound},
		{"2024-10-09", "gate", "LAX", scanerr.TimeParseFailed},
		{"not-a-date", "15:30", "LAX", scanerr.DateParseFailed},
	}

	for _, tt := range tests {
		_, err := ResolveZonedTime(tt.date, tt.timeStr, tt.airport)
		if err == nil {
			t.Errorf("ResolveZonedTime(%q, %q, %q) succeeded, want %s", tt.date, tt.timeStr, tt.airport, tt.code)
			continue
		}
		if err.Code != tt.code {
			t.Errorf("ResolveZonedTime(%q, %q, %q) code = %s, want %s", tt.date, tt.timeStr, tt.airport, err.Code, tt.code)
		}
	}
}

func TestValidateDateRange(t *testing.T) {
	now := time.Date(2024, 10, 9, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		date string
		ok   bool
	}{
		{"2024-10-09", true},
		{"2023-10-09", true},  // exactly one year back
		{"2026-10-09", true},  // exactly two years ahead
		{"2023-10-08", false}, // one day past the lower bound
		{"2026-10-10", false}, // one day past the upper bound
		{"1999-01-01", false},
	}

	for _, tt := range tests {
		err := ValidateDateRange(tt.date, now)
		if tt.ok && err != nil {
			t.Errorf("ValidateDateRange(%s) = %v, want nil", tt.date, err)
		}
		if !tt.ok {
			if err == nil {
				t.Errorf("ValidateDateRange(%s) = nil, want INVALID_DATE_RANGE", tt.date)
			} else if err.Code != scanerr.InvalidDateRange {
				t.Errorf("ValidateDateRange(%s) code = %s, want INVALID_DATE_RANGE", tt.date, err.Code)
			}
		}
	}
}

func TestAirlineTimeOrder(t *testing.T) {
	def := AirlineTimeOrder("DL")
	if len(def) != 3 || def[0] != boardingpass.RoleBoarding || def[1] != boardingpass.RoleDeparture {
		t.Errorf("AirlineTimeOrder(DL) = %v, want boarding, departure, arrival", def)
	}

	ba := AirlineTimeOrder("BA")
	if len(ba) != 3 || ba[1] != boardingpass.RoleArrival || ba[2] != boardingpass.RoleDeparture {
		t.Errorf("AirlineTimeOrder(BA) = %v, want boarding, arrival, departure", ba)
	}
}
