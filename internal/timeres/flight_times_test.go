package timeres

import (
	"strings"
	"testing"
	"time"

	"boardingpass_parser/internal/boardingpass"
	"boardingpass_parser/internal/scanerr"
)

var testNow = time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

func timeTok(value string, role boardingpass.TimeRole) boardingpass.Token {
	return boardingpass.Token{Kind: boardingpass.KindTime, Value: value, Role: role}
}

func TestExtractFlightTimes(t *testing.T) {
	ft := ExtractFlightTimes(Input{
		Date:        "2024-10-09",
		Times:       []boardingpass.Token{timeTok("15:30", boardingpass.RoleDeparture)},
		Origin:      "LAX",
		Destination: "JFK",
		Airline:     "DL",
	}, testNow)

	if len(ft.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", ft.Errors)
	}
	if ft.Departure == nil {
		t.Fatal("departure not resolved")
	}
	if got := ft.Departure.Local().Format("15:04"); got != "15:30" {
		t.Errorf("departure local = %s, want 15:30", got)
	}

	// No arrival on the pass: it is estimated from the tabled 5.5h block.
	if ft.Arrival == nil {
		t.Fatal("arrival not estimated")
	}
	wantArr := ft.Departure.UTC.Add(5*time.Hour + 30*time.Minute)
	if !ft.Arrival.UTC.Equal(wantArr) {
		t.Errorf("arrival UTC = %v, want %v", ft.Arrival.UTC, wantArr)
	}
	if ft.Arrival.Timezone != "America/New_York" {
		t.Errorf("arrival timezone = %q, want America/New_York", ft.Arrival.Timezone)
	}
	if len(ft.Warnings) == 0 || !strings.Contains(ft.Warnings[0], "estimated") {
		t.Errorf("expected an estimation warning, got %v", ft.Warnings)
	}
}

func TestExtractFlightTimesOvernightAdvance(t *testing.T) {
	// 23:50 departure with a 01:20 arrival reads as arrival before
	// departure; the resolver assumes an overnight flight.
	ft := ExtractFlightTimes(Input{
		Date: "2024-10-09",
		Times: []boardingpass.Token{
			timeTok("23:50", boardingpass.RoleDeparture),
			timeTok("01:20", boardingpass.RoleArrival),
		},
		Origin:      "JFK",
		Destination: "BOS",
	}, testNow)

	if ft.Departure == nil || ft.Arrival == nil {
		t.Fatalf("times not resolved: %+v", ft)
	}
	if !ft.Arrival.UTC.After(ft.Departure.UTC) {
		t.Errorf("arrival %v not after departure %v", ft.Arrival.UTC, ft.Departure.UTC)
	}
	if diff := ft.Arrival.UTC.Sub(ft.Departure.UTC); diff > 24*time.Hour {
		t.Errorf("advance overshot: %v", diff)
	}
	found := false
	for _, w := range ft.Warnings {
		if strings.Contains(w, "overnight") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an overnight warning, got %v", ft.Warnings)
	}
}

func TestExtractFlightTimesMissingInputs(t *testing.T) {
	// No date: nothing can resolve.
	ft := ExtractFlightTimes(Input{Times: []boardingpass.Token{timeTok("15:30", boardingpass.RoleDeparture)}}, testNow)
	if ft.Departure != nil {
		t.Error("departure resolved without a date")
	}
	if !ft.Errors.Has(scanerr.MissingRequired) {
		t.Errorf("want MISSING_REQUIRED_FIELD, got %v", ft.Errors)
	}

	// Date but no times.
	ft = ExtractFlightTimes(Input{Date: "2024-10-09", Origin: "LAX", Destination: "JFK"}, testNow)
	if !ft.Errors.Has(scanerr.MissingRequired) {
		t.Errorf("want MISSING_REQUIRED_FIELD for departure_time, got %v", ft.Errors)
	}

	// Out-of-range date is flagged, not resolved.
	ft = ExtractFlightTimes(Input{
		Date:   "2030-01-01",
		Times:  []boardingpass.Token{timeTok("15:30", boardingpass.RoleDeparture)},
		Origin: "LAX",
	}, testNow)
	if !ft.Errors.Has(scanerr.InvalidDateRange) {
		t.Errorf("want INVALID_DATE_RANGE, got %v", ft.Errors)
	}
}

// A single unlabelled time is taken as the departure.
func TestExtractFlightTimesSingleUnlabelled(t *testing.T) {
	ft := ExtractFlightTimes(Input{
		Date:        "2024-10-09",
		Times:       []boardingpass.Token{timeTok("08:00", boardingpass.RoleUnknown)},
		Origin:      "ORD",
		Destination: "DEN",
	}, testNow)
	if ft.Departure == nil {
		t.Fatal("single unlabelled time not treated as departure")
	}
	if got := ft.Departure.Local().Format("15:04"); got != "08:00" {
		t.Errorf("departure local = %s, want 08:00", got)
	}
}

// Three unlabelled times follow the carrier's printed order.
func TestExtractFlightTimesAirlineOrder(t *testing.T) {
	toks := []boardingpass.Token{
		timeTok("14:45", boardingpass.RoleUnknown),
		timeTok("15:30", boardingpass.RoleUnknown),
		timeTok("23:30", boardingpass.RoleUnknown),
	}

	ft := ExtractFlightTimes(Input{
		Date: "2024-10-09", Times: toks, Origin: "LAX", Destination: "JFK", Airline: "DL",
	}, testNow)
	if ft.Boarding == nil || ft.Departure == nil || ft.Arrival == nil {
		t.Fatalf("roles not filled: %+v", ft)
	}
	if got := ft.Departure.Local().Format("15:04"); got != "15:30" {
		t.Errorf("DL departure = %s, want 15:30 (second printed time)", got)
	}

	// BA prints arrival ahead of departure.
	ft = ExtractFlightTimes(Input{
		Date: "2024-10-09", Times: toks, Origin: "LAX", Destination: "JFK", Airline: "BA",
	}, testNow)
	if ft.Arrival == nil || ft.Departure == nil {
		t.Fatalf("roles not filled: %+v", ft)
	}
	if got := ft.Arrival.Local().Format("15:04"); got != "15:30" {
		t.Errorf("BA arrival = %s, want 15:30 (second printed time)", got)
	}
}

func TestSafeParseTime(t *testing.T) {
	tests := []struct {
		input   string
		minConf float64
		ok      bool
		want    string
		code    scanerr.Code
	}{
		{"15:30", 0.5, true, "15:30", ""},
		{"4:45PM", 0.5, true, "16:45", ""},
		{"13:80", 0.5, true, "13:30", ""},
		{"13:80", 0.75, false, "", scanerr.OCRConfidenceTooLow},
		{"gate", 0.5, false, "", scanerr.InvalidTimeFormat},
	}

	for _, tt := range tests {
		got := SafeParseTime(tt.input, tt.minConf)
		if got.OK != tt.ok {
			t.Errorf("SafeParseTime(%q, %v).OK = %v, want %v", tt.input, tt.minConf, got.OK, tt.ok)
			continue
		}
		if tt.ok && got.Time != tt.want {
			t.Errorf("SafeParseTime(%q).Time = %q, want %q", tt.input, got.Time, tt.want)
		}
		if !tt.ok && got.Err.Code != tt.code {
			t.Errorf("SafeParseTime(%q) code = %s, want %s", tt.input, got.Err.Code, tt.code)
		}
	}
}

func TestStrictDateExtraction(t *testing.T) {
	date, err := StrictDateExtraction("OCTOBER 9, 2024", testNow)
	if err != nil {
		t.Fatalf("StrictDateExtraction: %v", err)
	}
	if date != "2024-10-09" {
		t.Errorf("date = %q, want 2024-10-09", date)
	}

	if _, err := StrictDateExtraction("SOMEDAY", testNow); err == nil || err.Code != scanerr.DateParseFailed {
		t.Errorf("want DATE_PARSE_FAILED, got %v", err)
	}
	if _, err := StrictDateExtraction("JANUARY 1, 2031", testNow); err == nil || err.Code != scanerr.InvalidDateRange {
		t.Errorf("want INVALID_DATE_RANGE, got %v", err)
	}
}

func TestEstimateArrivalTime(t *testing.T) {
	dep, zerr := ResolveZonedTime("2024-10-09", "15:30", "LAX")
	if zerr != nil {
		t.Fatalf("resolve departure: %v", zerr)
	}

	arr, err := EstimateArrivalTime(dep, "LAX", "JFK")
	if err != nil {
		t.Fatalf("EstimateArrivalTime: %v", err)
	}
	if !arr.UTC.Equal(dep.UTC.Add(5*time.Hour + 30*time.Minute)) {
		t.Errorf("arrival = %v, want departure + 5.5h", arr.UTC)
	}
	if arr.Confidence > dep.Confidence {
		t.Errorf("estimated arrival confidence %v exceeds departure %v", arr.Confidence, dep.Confidence)
	}

	if _, err := EstimateArrivalTime(nil, "LAX", "JFK"); err == nil || err.Code != scanerr.MissingRequired {
		t.Errorf("want MISSING_REQUIRED_FIELD for nil departure, got %v", err)
	}
	if _, err := EstimateArrivalTime(dep, "LAX", "QQQ"); err == nil || err.Code != scanerr.AirportNotFound {
		t.Errorf("want AIRPORT_NOT_FOUND for unknown destination, got %v", err)
	}
}
