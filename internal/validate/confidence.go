package validate

import (
	"strings"

	"boardingpass_parser/internal/boardingpass"
)

// WordScore pairs a recognised word with its per-word confidence, as
// reported by an OCR backend.
type WordScore struct {
	Word       string  `json:"word"`
	Confidence float64 `json:"confidence"`
}

// FilterLowConfidence rebuilds a cleaned text string keeping only words at
// or above the threshold. When per-word confidence is available the token
// extractor should prefer this cleaned text and fall back to the raw text
// only as a last resort.
func FilterLowConfidence(words []WordScore, threshold float64) string {
	if threshold <= 0 {
		threshold = FilterThreshold
	}
	var kept []string
	for _, w := range words {
		if w.Confidence >= threshold && w.Word != "" {
			kept = append(kept, w.Word)
		}
	}
	return strings.Join(kept, " ")
}

// EstimateConfidence produces a shape-based confidence for a token when the
// recogniser supplied no per-word scores. A well-formed value of the
// expected shape defaults high; a value mixing letters into digit positions
// (or the reverse) is the classic O/0, I/1 substitution signature and
// defaults low.
func EstimateConfidence(kind boardingpass.TokenKind, value string) float64 {
	switch kind {
	case boardingpass.KindAirport:
		if containsDigit(value) {
			return confRepaired
		}
		return confWellFormed
	case boardingpass.KindFlight:
		if flightNumRe.MatchString(value) {
			return confWellFormed
		}
		return confRepaired
	case boardingpass.KindTime, boardingpass.KindDate:
		if containsAmbiguousLetter(value) {
			return confRepaired
		}
		return confWellFormed
	default:
		return 0.75
	}
}

func containsDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}

// containsAmbiguousLetter flags letters inside otherwise numeric fields,
// excluding the expected AM/PM and month-name characters.
func containsAmbiguousLetter(s string) bool {
	return strings.ContainsAny(s, "OIl|")
}
