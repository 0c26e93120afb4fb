// Package patterns provides shared regex patterns and helper functions for
// boarding-pass text parsing. This file contains grok-style base patterns
// for use with the Compiler.

package patterns

// BasePatterns defines reusable regex components for grok-style pattern
// composition. They are referenced in format patterns using {PATTERN_NAME}
// syntax.
var BasePatterns = map[string]string{
	// Entity codes.
	"AIRPORT": `[A-Z0-9]{3}`,
	"AIRLINE": `[A-Z][A-Z0-9]`,
	"FLIGHT":  `[A-Z][A-Z0-9]\s?\d{1,4}`,

	// Times.
	"TIME":   `\d{1,2}:\d{2}`,
	"AMPM":   `(?:AM|PM)?`,
	"TIME12": `\d{1,2}:\d{2}\s*(?:AM|PM)?`,

	// Dates.
	"DATE_NUM":    `\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`,
	"DATE_ABBREV": `\d{1,2}\s*(?:JAN|FEB|MAR|APR|MAY|JUN|JUL|AUG|SEP|OCT|NOV|DEC)\s*\d{2,4}`,
	"MONTH":       `(?:JANUARY|FEBRUARY|MARCH|APRIL|MAY|JUNE|JULY|AUGUST|SEPTEMBER|OCTOBER|NOVEMBER|DECEMBER)`,

	// Pass fields.
	"GATE":     `[A-Z]?\d{1,3}[A-Z]?`,
	"SEAT":     `\d{1,2}[A-K]`,
	"TERMINAL": `[A-Z0-9]{1,3}`,
	"PNR":      `[A-Z0-9]{6}`,
	"NAME":     `[A-Z]+/[A-Z]+(?:\s[A-Z]+)?`,

	// Layout helpers.
	"WS": `[ \t]+`,
	"NL": `\s*\n\s*`,
}
