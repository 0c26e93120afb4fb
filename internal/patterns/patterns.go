// Package patterns provides shared regex patterns and helper functions for
// boarding-pass text parsing.
package patterns

import (
	"regexp"
	"strings"
)

// Core field patterns used across the lexer and validators.
var (
	// FlightNumPattern matches a 2-char IATA airline code + 1-4 digit number,
	// with an optional space between them ("DL1234", "B6 623").
	FlightNumPattern = regexp.MustCompile(`\b([A-Z][A-Z0-9])\s?(\d{1,4})\b`)

	// AirportCodePattern matches word-bounded 3-letter codes. Candidates are
	// filtered against the blocklist and surrounding alphanumeric runs
	// before a token is emitted.
	AirportCodePattern = regexp.MustCompile(`\b([A-Z]{3})\b`)

	// Explicit origin/destination anchors.
	// e.g. "FROM: LAX", "TO JFK", "LAX - JFK".
	FromPattern       = regexp.MustCompile(`\bFROM[:\s]+([A-Z0-9]{3})\b`)
	ToPattern         = regexp.MustCompile(`\bTO[:\s]+([A-Z0-9]{3})\b`)
	RouteArrowPattern = regexp.MustCompile(`\b([A-Z0-9]{3})\s*(?:-|->)\s*([A-Z0-9]{3})\b`)

	// TimePattern matches HH:MM with optional AM/PM marker.
	TimePattern = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*(AM|PM)?\b`)

	// Date patterns, tried in order of specificity.
	DateFullMonthPattern = regexp.MustCompile(`\b(JANUARY|FEBRUARY|MARCH|APRIL|MAY|JUNE|JULY|AUGUST|SEPTEMBER|OCTOBER|NOVEMBER|DECEMBER)\s+(\d{1,2})(?:,|\s)\s*(\d{4})\b`)
	DateAbbrevPattern    = regexp.MustCompile(`\b(\d{1,2})\s*(JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\s*(\d{2,4})\b`)
	DateMonthFirstAbbrev = regexp.MustCompile(`\b(JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\s+(\d{1,2})(?:,|\s)\s*(\d{4})\b`)
	DateNumericPattern   = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})\b`)

	// Gate and terminal require their keyword anchors.
	GatePattern     = regexp.MustCompile(`\bGATE[:\s]+([A-Z]?\d{1,3}[A-Z]?)\b`)
	TerminalPattern = regexp.MustCompile(`\b(?:TERMINAL|TERM)[:\s]+([A-Z0-9]{1,3})\b`)

	// Seat patterns: labelled first, then bare row+letter.
	SeatLabeledPattern = regexp.MustCompile(`\bSEAT[:\s]+(\d{1,2}[A-K])\b`)
	SeatBarePattern    = regexp.MustCompile(`\b(\d{1,2}[A-F])\b`)

	// ConfirmationPattern matches a labelled 6-char record locator.
	ConfirmationPattern = regexp.MustCompile(`\b(?:CONFIRMATION|CONF|PNR|RECORD\s+LOCATOR|BOOKING\s+REF(?:ERENCE)?)[.:#\s]+([A-Z0-9]{6})\b`)

	// Passenger name: labelled "NAME: DOE/JANE" first, then the bare
	// LAST/FIRST convention.
	PassengerNamePattern  = regexp.MustCompile(`\b(?:NAME|PASSENGER|PAX)[:\s]+([A-Z]+/[A-Z]+)\b`)
	PassengerSlashPattern = regexp.MustCompile(`\b([A-Z]{2,})/([A-Z]{2,})\b`)
)

// Time role keywords, searched in a fixed lookback window before a time
// token to infer whether it is the boarding, departure or arrival time.
var (
	DepartKeywords   = []string{"DEPART", "DEP ", "DEP:", "STD"}
	ArrivalKeywords  = []string{"ARRIV", "ARR ", "ARR:", "STA", "LANDS"}
	BoardingKeywords = []string{"BOARD", "BRD", "GATE CLOSES"}
)

// RoleLookbackWindow is how many characters before a time token are searched
// for a role keyword.
const RoleLookbackWindow = 24

// MonthNumbers maps month names and abbreviations to month numbers.
var MonthNumbers = map[string]int{
	"JANUARY": 1, "FEBRUARY": 2, "MARCH": 3, "APRIL": 4, "MAY": 5,
	"JUNE": 6, "JULY": 7, "AUGUST": 8, "SEPTEMBER": 9, "OCTOBER": 10,
	"NOVEMBER": 11, "DECEMBER": 12,
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "JUN": 6, "JUL": 7,
	"AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// normaliseReplacer collapses the whitespace variants OCR output produces.
var normaliseReplacer = strings.NewReplacer("\r\n", "\n", "\t", " ", " ", " ")

// Normalise uppercases text and collapses runs of spaces while preserving
// line breaks, which the table-row formats depend on.
func Normalise(text string) string {
	text = normaliseReplacer.Replace(strings.ToUpper(text))

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}

// Tokenize splits normalised text into uppercase word tokens.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ReplaceAll(text, "\n", " "))
	tokens := make([]string, len(fields))
	for i, f := range fields {
		tokens[i] = strings.ToUpper(f)
	}
	return tokens
}

// WordBounded reports whether the match at [start, end) in text is not part
// of a longer alphanumeric run. This keeps flight numbers from being read as
// seats and vice versa.
func WordBounded(text string, start, end int) bool {
	if start > 0 && isAlnum(text[start-1]) {
		return false
	}
	if end < len(text) && isAlnum(text[end]) {
		return false
	}
	return true
}

func isAlnum(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
