// Package scanerr defines the fixed extraction error taxonomy.
//
// Field-level validators never return these; they report confidence instead.
// Strict-mode resolution functions return typed *Error values, and the
// pipeline orchestrator converts them into the partial-failure envelope.
// Nothing propagates past the pipeline boundary as an unstructured error.
package scanerr

import (
	"errors"
	"fmt"
)

// Code identifies one of the fixed extraction failure classes.
type Code string

const (
	DateParseFailed     Code = "DATE_PARSE_FAILED"
	TimeParseFailed     Code = "TIME_PARSE_FAILED"
	AirportNotFound     Code = "AIRPORT_NOT_FOUND"
	InvalidDateRange    Code = "INVALID_DATE_RANGE"
	TimezoneMismatch    Code = "TIMEZONE_MISMATCH"
	MissingRequired     Code = "MISSING_REQUIRED_FIELD"
	OCRConfidenceTooLow Code = "OCR_CONFIDENCE_TOO_LOW"
	RouteNotFound       Code = "ROUTE_NOT_FOUND"
	InvalidTimeFormat   Code = "INVALID_TIME_FORMAT"
	OCRFailed           Code = "OCR_FAILED"
)

// defaultSuggestions give the operator something actionable per code.
var defaultSuggestions = map[Code]string{
	DateParseFailed:     "enter the date manually as MM/DD/YYYY",
	TimeParseFailed:     "enter the time manually as HH:MM (24h)",
	AirportNotFound:     "enter the 3-letter IATA airport code manually",
	InvalidDateRange:    "check the year; dates must fall within one year past to two years ahead",
	TimezoneMismatch:    "verify the airport code; its timezone could not be resolved",
	MissingRequired:     "this field was not found in the scan and must be entered manually",
	OCRConfidenceTooLow: "the scan was too noisy for this field; retake the photo or enter it manually",
	RouteNotFound:       "no duration is known for this route; verify origin and destination",
	InvalidTimeFormat:   "times must look like 15:30 or 3:30PM",
	OCRFailed:           "no recogniser could read the document; retake the photo",
}

// Error is a single typed extraction failure.
type Error struct {
	Code       Code   `json:"code"`
	Field      string `json:"field"`
	Value      string `json:"value,omitempty"`      // The offending raw value, if any.
	Suggestion string `json:"suggestion,omitempty"` // Human-actionable fix.
	Message    string `json:"message,omitempty"`
}

func (e *Error) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (%q)", e.Code, e.Field, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Field)
}

// New builds an Error with the default suggestion for its code.
func New(code Code, field, value string) *Error {
	return &Error{
		Code:       code,
		Field:      field,
		Value:      value,
		Suggestion: defaultSuggestions[code],
	}
}

// Newf builds an Error with a formatted message appended.
func Newf(code Code, field, value, format string, args ...any) *Error {
	e := New(code, field, value)
	e.Message = fmt.Sprintf(format, args...)
	return e
}

// As extracts an *Error from an error chain, or wraps a plain error as an
// OCR_FAILED-class failure so the pipeline never leaks unstructured errors.
func As(err error, fallbackField string) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	out := New(OCRFailed, fallbackField, "")
	out.Message = err.Error()
	return out
}

// List accumulates non-fatal errors during lenient extraction.
type List []*Error

// Add appends an error, ignoring nils.
func (l *List) Add(e *Error) {
	if e != nil {
		*l = append(*l, e)
	}
}

// Fields returns the distinct field names carried by the list, in order of
// first appearance. This is the requiresManualEntry list.
func (l List) Fields() []string {
	seen := make(map[string]bool)
	var fields []string
	for _, e := range l {
		if e.Field == "" || seen[e.Field] {
			continue
		}
		seen[e.Field] = true
		fields = append(fields, e.Field)
	}
	return fields
}

// Has reports whether any error in the list carries the given code.
func (l List) Has(code Code) bool {
	for _, e := range l {
		if e.Code == code {
			return true
		}
	}
	return false
}
