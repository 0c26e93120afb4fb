package timeres

import (
	"time"

	"boardingpass_parser/internal/boardingpass"
	"boardingpass_parser/internal/geo"
	"boardingpass_parser/internal/reference"
	"boardingpass_parser/internal/scanerr"
	"boardingpass_parser/internal/validate"
)

// TimeParse is the envelope returned by SafeParseTime. Exactly one of Time
// and Err is meaningful, selected by OK.
type TimeParse struct {
	OK   bool
	Time string // canonical HH:MM, 24h
	Err  *scanerr.Error
}

// SafeParseTime parses a raw time string without ever panicking or
// returning an unstructured error. Shape failures report
// INVALID_TIME_FORMAT; values whose confidence after OCR repair falls below
// minConfidence report OCR_CONFIDENCE_TOO_LOW.
func SafeParseTime(text string, minConfidence float64) TimeParse {
	r := validate.Time(text)
	if !r.Valid {
		return TimeParse{Err: scanerr.New(scanerr.InvalidTimeFormat, "time", text)}
	}
	if r.Confidence < minConfidence {
		return TimeParse{Err: scanerr.Newf(scanerr.OCRConfidenceTooLow, "time", text,
			"confidence %.2f below %.2f", r.Confidence, minConfidence)}
	}
	return TimeParse{OK: true, Time: r.Value}
}

// StrictDateExtraction parses and range-checks a raw date string. It either
// returns the canonical YYYY-MM-DD or a typed error; there is no partial
// outcome.
func StrictDateExtraction(text string, now time.Time) (string, *scanerr.Error) {
	r := validate.Date(text)
	if !r.Valid {
		return "", scanerr.New(scanerr.DateParseFailed, "date", text)
	}
	if err := ValidateDateRange(r.Value, now); err != nil {
		return "", err
	}
	return r.Value, nil
}

// EstimateArrivalTime derives the arrival instant from a resolved departure
// and the leg's estimated block time, expressed in the destination's zone.
// Strict: a nil departure, an unresolvable destination, or a route with
// neither a table entry nor computable distance is a typed error, never a
// guess.
func EstimateArrivalTime(departure *boardingpass.ZonedInstant, origin, destination string) (*boardingpass.ZonedInstant, *scanerr.Error) {
	if departure == nil {
		return nil, scanerr.New(scanerr.MissingRequired, "departure_time", "")
	}
	_, zoneName, zerr := geo.Timezone(destination)
	if zerr != nil {
		return nil, scanerr.As(zerr, "destination")
	}

	hours, tabled := reference.LookupRouteDuration(origin, destination)
	if !tabled {
		if _, ok := geo.Distance(origin, destination); !ok {
			return nil, scanerr.New(scanerr.RouteNotFound, "route", reference.RouteKey(origin, destination))
		}
		hours = EstimateFlightDuration(origin, destination)
	}

	conf := departure.Confidence
	if conf > estimatedArrivalCeiling {
		conf = estimatedArrivalCeiling
	}
	return &boardingpass.ZonedInstant{
		UTC:         departure.UTC.Add(time.Duration(hours * float64(time.Hour))),
		Timezone:    zoneName,
		AirportCode: destination,
		Confidence:  conf,
	}, nil
}
