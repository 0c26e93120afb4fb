// Package validate implements the per-field validators and OCR correctors.
// Every function here is pure and total: it never fails, it reports trust
// through the Result confidence instead. Fuzzy correction is only applied
// below the confidence thresholds, and a corrected value never carries more
// confidence than the raw read it was derived from.
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"boardingpass_parser/internal/reference"
)

// Tunable confidence constants. Their relative ordering matters more than
// their magnitudes.
const (
	ConfidenceFloor    = 0.5  // Below this, values go to manual entry regardless of correction rules.
	FilterThreshold    = 0.75 // Default per-word cutoff for FilterLowConfidence.
	confKnown          = 0.95 // Exact hit in a reference table.
	confWellFormed     = 0.9  // Shape is right, no repair needed.
	confCorrected      = 0.7  // A fuzzy/confusion correction was applied.
	confRepaired       = 0.6  // An OCR digit repair was applied.
	confPlausible      = 0.6  // Not in the reference table but shaped right.
	confUnrecognisable = 0.3  // Nothing usable found.
)

// Result is the outcome of validating a single candidate value.
// Suggestion is populated when the raw value is invalid or unknown but a
// corrected candidate exists within edit distance one of a reference entity.
type Result struct {
	Valid      bool    `json:"valid"`
	Value      string  `json:"value,omitempty"`
	Suggestion string  `json:"suggestion,omitempty"`
	Confidence float64 `json:"confidence"`
}

var flightNumRe = regexp.MustCompile(`^([A-Z][A-Z0-9])\s?(\d{1,4})$`)

// FlightNumber validates an airline designator plus flight number.
// Unknown airline prefixes are matched against the reference table at edit
// distance one and offered as a suggestion with reduced confidence.
func FlightNumber(text string) Result {
	m := flightNumRe.FindStringSubmatch(strings.TrimSpace(strings.ToUpper(text)))
	if m == nil {
		return Result{Confidence: confUnrecognisable}
	}
	prefix, digits := m[1], m[2]

	if reference.IsKnownAirline(prefix) {
		return Result{Valid: true, Value: prefix + digits, Confidence: confWellFormed}
	}

	if fixed := nearestAirlineCode(prefix); fixed != "" {
		return Result{Suggestion: fixed + digits, Confidence: confCorrected}
	}
	return Result{Confidence: confUnrecognisable}
}

// nearestAirlineCode finds a known airline code within edit distance one of
// prefix. Candidates sharing the first character are preferred, since OCR
// noise clusters in trailing characters; ties break alphabetically so the
// correction is deterministic.
func nearestAirlineCode(prefix string) string {
	codes := reference.AirlineCodes()
	sort.Strings(codes)

	var fallback string
	for _, code := range codes {
		if editDistanceAtMostOne(prefix, code) {
			if code[0] == prefix[0] {
				return code
			}
			if fallback == "" {
				fallback = code
			}
		}
	}
	return fallback
}

// editDistanceAtMostOne reports whether two strings are within Levenshtein
// distance one. Specialised for the short codes this package compares.
func editDistanceAtMostOne(a, b string) bool {
	if a == b {
		return true
	}
	la, lb := len(a), len(b)
	switch {
	case la == lb:
		diff := 0
		for i := 0; i < la; i++ {
			if a[i] != b[i] {
				diff++
			}
		}
		return diff == 1
	case la+1 == lb:
		return oneInsertion(a, b)
	case lb+1 == la:
		return oneInsertion(b, a)
	}
	return false
}

// oneInsertion reports whether long equals short with one extra character.
func oneInsertion(short, long string) bool {
	skipped := false
	i, j := 0, 0
	for i < len(short) && j < len(long) {
		if short[i] == long[j] {
			i++
			j++
			continue
		}
		if skipped {
			return false
		}
		skipped = true
		j++
	}
	return true
}

// Airport validates a 3-letter airport code. Unknown codes that appear in
// the OCR confusion table yield a suggestion; other well-formed codes are
// treated as plausible but unverified, since the reference table is
// necessarily incomplete.
func Airport(code string) Result {
	code = strings.TrimSpace(strings.ToUpper(code))

	if reference.IsKnownAirport(code) {
		return Result{Valid: true, Value: code, Confidence: confKnown}
	}
	if fixed, ok := reference.ConfusedAirport(code); ok {
		return Result{Suggestion: fixed, Confidence: confCorrected}
	}
	if len(code) == 3 && isUpperAlpha(code) && !reference.IsAirportBlocked(code) {
		return Result{Valid: true, Value: code, Confidence: confPlausible}
	}
	return Result{Confidence: confUnrecognisable}
}

func isUpperAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

var seatRe = regexp.MustCompile(`^(\d{1,2})([A-K])$`)

// Seat validates a seat designator and its row bounds.
func Seat(text string) Result {
	m := seatRe.FindStringSubmatch(strings.TrimSpace(strings.ToUpper(text)))
	if m == nil {
		return Result{Confidence: confUnrecognisable}
	}
	row, _ := strconv.Atoi(m[1])
	if row < 1 || row > 60 {
		return Result{Confidence: confUnrecognisable}
	}
	return Result{Valid: true, Value: fmt.Sprintf("%d%s", row, m[2]), Confidence: confWellFormed}
}

var gateRe = regexp.MustCompile(`^[A-Z]?\d{1,3}[A-Z]?$`)

// Gate validates a gate designator.
func Gate(text string) Result {
	text = strings.TrimSpace(strings.ToUpper(text))
	if !gateRe.MatchString(text) {
		return Result{Confidence: confUnrecognisable}
	}
	return Result{Valid: true, Value: text, Confidence: confWellFormed}
}
