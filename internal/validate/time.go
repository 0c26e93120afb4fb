package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var timeRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*(AM|PM)?$`)

// Time validates and normalises a time-of-day string. AM/PM markers are
// folded into 24h form, and the OCR digit repair table is applied to
// out-of-range components. Confidence is 0.9 for a clean parse and 0.6 when
// any repair was needed.
func Time(text string) Result {
	h, m, repaired, ok := parseClock(text)
	if !ok {
		return Result{Confidence: confUnrecognisable}
	}

	conf := confWellFormed
	if repaired {
		conf = confRepaired
	}
	return Result{Valid: true, Value: fmt.Sprintf("%02d:%02d", h, m), Confidence: conf}
}

// TimeCorrection is the outcome of an OCR-aware time repair.
type TimeCorrection struct {
	Time       string  `json:"time"`
	Corrected  bool    `json:"corrected"`
	Confidence float64 `json:"confidence"`
}

// CorrectOCRTime repairs a time string read from a noisy scan. An already
// valid time passes through unchanged at its original confidence; a repaired
// one never comes out more confident than it went in.
func CorrectOCRTime(text string, confidence float64) TimeCorrection {
	h, m, repaired, ok := parseClock(text)
	if !ok {
		return TimeCorrection{Time: text, Confidence: 0}
	}
	out := TimeCorrection{
		Time:       fmt.Sprintf("%02d:%02d", h, m),
		Corrected:  repaired,
		Confidence: confidence,
	}
	if repaired && out.Confidence > confRepaired {
		out.Confidence = confRepaired
	}
	return out
}

// parseClock parses HH:MM with an optional AM/PM marker, normalises to 24h,
// and applies the OCR repair table:
//
//	minutes 80 -> 30 (8 is a misread 3)
//	minutes 70 -> 10 (7 is a misread 1)
//	other minutes >= 60 -> mod 60
//	hours >= 24 -> mod 24
func parseClock(text string) (h, m int, repaired, ok bool) {
	match := timeRe.FindStringSubmatch(strings.TrimSpace(strings.ToUpper(text)))
	if match == nil {
		return 0, 0, false, false
	}
	h, _ = strconv.Atoi(match[1])
	m, _ = strconv.Atoi(match[2])

	switch match[3] {
	case "PM":
		if h != 12 && h < 12 {
			h += 12
		}
	case "AM":
		if h == 12 {
			h = 0
		}
	}

	if m >= 60 {
		repaired = true
		switch m {
		case 80:
			m = 30
		case 70:
			m = 10
		default:
			m %= 60
		}
	}
	if h >= 24 {
		repaired = true
		h %= 24
	}
	return h, m, repaired, true
}
