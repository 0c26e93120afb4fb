package scanerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewCarriesSuggestion(t *testing.T) {
	e := New(AirportNotFound, "origin", "QQQ")
	if e.Code != AirportNotFound || e.Field != "origin" || e.Value != "QQQ" {
		t.Errorf("New populated %+v", e)
	}
	if e.Suggestion == "" {
		t.Error("default suggestion missing")
	}
}

func TestErrorString(t *testing.T) {
	e := New(DateParseFailed, "date", "SOMEDAY")
	if got := e.Error(); got != `DATE_PARSE_FAILED: date ("SOMEDAY")` {
		t.Errorf("Error() = %q", got)
	}
	e = New(MissingRequired, "origin", "")
	if got := e.Error(); got != "MISSING_REQUIRED_FIELD: origin" {
		t.Errorf("Error() = %q", got)
	}
}

func TestAs(t *testing.T) {
	// A typed error survives wrapping.
	typed := New(TimezoneMismatch, "airport", "XYZ")
	wrapped := fmt.Errorf("resolving: %w", typed)
	if got := As(wrapped, "fallback"); got != typed {
		t.Errorf("As unwrapped %+v, want original", got)
	}

	// A plain error becomes OCR_FAILED with the fallback field.
	plain := errors.New("engine exploded")
	got := As(plain, "document")
	if got.Code != OCRFailed || got.Field != "document" || got.Message != "engine exploded" {
		t.Errorf("As(plain) = %+v", got)
	}
}

func TestListAddIgnoresNil(t *testing.T) {
	var l List
	l.Add(nil)
	l.Add(New(DateParseFailed, "date", ""))
	if len(l) != 1 {
		t.Errorf("len = %d, want 1", len(l))
	}
}

func TestListFields(t *testing.T) {
	var l List
	l.Add(New(AirportNotFound, "origin", "QQQ"))
	l.Add(New(TimeParseFailed, "departure_time", "99x99"))
	l.Add(New(MissingRequired, "origin", "")) // duplicate field
	l.Add(&Error{Code: OCRFailed})            // no field

	got := l.Fields()
	want := []string{"origin", "departure_time"}
	if len(got) != len(want) {
		t.Fatalf("Fields() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Fields()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestListHas(t *testing.T) {
	var l List
	l.Add(New(InvalidDateRange, "date", "1999-01-01"))
	if !l.Has(InvalidDateRange) {
		t.Error("Has(INVALID_DATE_RANGE) = false")
	}
	if l.Has(RouteNotFound) {
		t.Error("Has(ROUTE_NOT_FOUND) = true on empty code")
	}
}
