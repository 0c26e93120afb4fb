// Package timeres turns extracted date and time-of-day strings into zoned
// instants. It is the only place wall-clock strings become timestamps: a
// naive timestamp never leaves this package without its IANA timezone.
//
// Resolution runs in one of two modes. Lenient functions return nil values
// and accumulate warnings, for best-effort parsing; strict functions return
// a typed error on any unresolved required input and never guess.
package timeres

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"boardingpass_parser/internal/boardingpass"
	"boardingpass_parser/internal/geo"
	"boardingpass_parser/internal/reference"
	"boardingpass_parser/internal/scanerr"
	"boardingpass_parser/internal/validate"
)

// Distance buckets for arrival estimation when a route is not in the
// duration table, in statute miles and block hours.
const (
	shortHaulMiles  = 500.0
	mediumHaulMiles = 1500.0
	longHaulMiles   = 3000.0

	shortHaulHours  = 1.5
	mediumHaulHours = 3.0
	longHaulHours   = 5.5
	ultraHaulHours  = 8.0

	// unknownRouteHours is the fallback of last resort when neither the
	// route table nor airport coordinates are available.
	unknownRouteHours = 3.0
)

// EstimateFlightDuration returns the block time in hours for a leg. Exact
// route-table entries win; otherwise great-circle distance is bucketed into
// haul classes. This function never fails; it is the fallback of last resort
// for arrival estimation.
func EstimateFlightDuration(origin, destination string) float64 {
	if hours, ok := reference.LookupRouteDuration(origin, destination); ok {
		return hours
	}
	miles, ok := geo.Distance(origin, destination)
	if !ok {
		return unknownRouteHours
	}
	switch {
	case miles < shortHaulMiles:
		return shortHaulHours
	case miles < mediumHaulMiles:
		return mediumHaulHours
	case miles < longHaulMiles:
		return longHaulHours
	default:
		return ultraHaulHours
	}
}

// AirlineTimeOrder returns the expected ordering of unlabelled time tokens
// for a carrier. Most carriers print boarding, departure, arrival; a small
// set prints arrival ahead of departure and is special-cased in the
// reference table.
func AirlineTimeOrder(airlineCode string) []boardingpass.TimeRole {
	return reference.AirlineTimeOrder(airlineCode)
}

// ResolveZonedTime interprets timeStr as wall-clock time at the given
// airport on the given date (YYYY-MM-DD) and returns the zoned instant.
// This is the strict form: any unresolved input yields a typed error.
func ResolveZonedTime(date, timeStr, airportCode string) (*boardingpass.ZonedInstant, *scanerr.Error) {
	year, month, day, err := parseISODate(date)
	if err != nil {
		return nil, err
	}

	tr := validate.Time(timeStr)
	if !tr.Valid {
		return nil, scanerr.New(scanerr.TimeParseFailed, "time", timeStr)
	}
	hour, minute := splitClock(tr.Value)

	loc, zoneName, zerr := geo.Timezone(airportCode)
	if zerr != nil {
		return nil, scanerr.As(zerr, "airport")
	}

	local := time.Date(year, time.Month(month), day, hour, minute, 0, 0, loc)
	return &boardingpass.ZonedInstant{
		UTC:         local.UTC(),
		Timezone:    zoneName,
		AirportCode: airportCode,
		Confidence:  tr.Confidence,
	}, nil
}

// ResolveZonedTimeLenient is the best-effort form: nil means the caller may
// fall back to an explicitly flagged local interpretation, or drop the
// field.
func ResolveZonedTimeLenient(date, timeStr, airportCode string) *boardingpass.ZonedInstant {
	z, err := ResolveZonedTime(date, timeStr, airportCode)
	if err != nil {
		return nil
	}
	return z
}

// ValidateDateRange accepts exactly the closed interval
// [now-1 year, now+2 years]. Dates outside it fail with INVALID_DATE_RANGE.
func ValidateDateRange(date string, now time.Time) *scanerr.Error {
	year, month, day, err := parseISODate(date)
	if err != nil {
		return err
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	lower := now.AddDate(-1, 0, 0)
	upper := now.AddDate(2, 0, 0)
	if d.Before(truncateDay(lower)) || d.After(truncateDay(upper)) {
		return scanerr.Newf(scanerr.InvalidDateRange, "date", date,
			"date must fall between %s and %s", lower.Format("2006-01-02"), upper.Format("2006-01-02"))
	}
	return nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseISODate splits a canonical YYYY-MM-DD value. Raw date strings should
// go through validate.Date first.
func parseISODate(date string) (year, month, day int, e *scanerr.Error) {
	parts := strings.Split(strings.TrimSpace(date), "-")
	if len(parts) != 3 {
		return 0, 0, 0, scanerr.New(scanerr.DateParseFailed, "date", date)
	}
	year, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || m < 1 || m > 12 || day < 1 || day > 31 {
		return 0, 0, 0, scanerr.New(scanerr.DateParseFailed, "date", date)
	}
	return year, m, day, nil
}

func splitClock(hhmm string) (hour, minute int) {
	fmt.Sscanf(hhmm, "%d:%d", &hour, &minute)
	return hour, minute
}
