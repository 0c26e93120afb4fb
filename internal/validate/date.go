package validate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"boardingpass_parser/internal/patterns"
)

// Date validates a date string, trying full-month-name, abbreviated-month
// and numeric patterns in that order. The value is normalised to YYYY-MM-DD.
// Plausibility-range enforcement is the time resolver's job; this function
// only answers whether a syntactically valid date was found.
func Date(text string) Result {
	text = strings.TrimSpace(strings.ToUpper(text))

	if m := patterns.DateFullMonthPattern.FindStringSubmatch(text); m != nil {
		return dateResult(m[3], patterns.MonthNumbers[m[1]], m[2], confWellFormed)
	}
	if m := patterns.DateMonthFirstAbbrev.FindStringSubmatch(text); m != nil {
		return dateResult(m[3], patterns.MonthNumbers[m[1]], m[2], confWellFormed)
	}
	if m := patterns.DateAbbrevPattern.FindStringSubmatch(text); m != nil {
		return dateResult(m[3], patterns.MonthNumbers[m[2]], m[1], confWellFormed)
	}
	if m := patterns.DateNumericPattern.FindStringSubmatch(text); m != nil {
		// Month-first, the dominant convention on US boarding passes. Kept
		// slightly below the month-name confidence because of the MM/DD
		// ambiguity.
		month, _ := strconv.Atoi(m[1])
		return dateResult(m[3], month, m[2], 0.8)
	}
	return Result{Confidence: confUnrecognisable}
}

// dateResult assembles and sanity-checks a parsed date.
func dateResult(yearStr string, month int, dayStr string, conf float64) Result {
	year, _ := strconv.Atoi(yearStr)
	day, _ := strconv.Atoi(dayStr)
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return Result{Confidence: confUnrecognisable}
	}

	// Reject impossible dates like Feb 30 by checking the round trip.
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != time.Month(month) {
		return Result{Confidence: confUnrecognisable}
	}

	return Result{
		Valid:      true,
		Value:      fmt.Sprintf("%04d-%02d-%02d", year, month, day),
		Confidence: conf,
	}
}
