// Package reference holds the static aviation entity tables used by the
// extraction pipeline: airline codes, airports, route durations and the
// per-airline time ordering conventions. All tables are immutable after
// package initialisation and safe to share across concurrent extractions.
package reference

// Airlines maps 2-letter IATA airline codes to carrier names.
var Airlines = map[string]string{
	"AA": "American Airlines",
	"AC": "Air Canada",
	"AF": "Air France",
	"AM": "Aeromexico",
	"AS": "Alaska Airlines",
	"AV": "Avianca",
	"AY": "Finnair",
	"AZ": "ITA Airways",
	"B6": "JetBlue Airways",
	"BA": "British Airways",
	"CA": "Air China",
	"CM": "Copa Airlines",
	"CX": "Cathay Pacific",
	"DL": "Delta Air Lines",
	"EI": "Aer Lingus",
	"EK": "Emirates",
	"EY": "Etihad Airways",
	"F9": "Frontier Airlines",
	"G4": "Allegiant Air",
	"HA": "Hawaiian Airlines",
	"IB": "Iberia",
	"JL": "Japan Airlines",
	"KE": "Korean Air",
	"KL": "KLM Royal Dutch Airlines",
	"LA": "LATAM Airlines",
	"LH": "Lufthansa",
	"LX": "Swiss International Air Lines",
	"MU": "China Eastern Airlines",
	"NH": "All Nippon Airways",
	"NK": "Spirit Airlines",
	"NZ": "Air New Zealand",
	"OS": "Austrian Airlines",
	"QF": "Qantas",
	"QR": "Qatar Airways",
	"SK": "Scandinavian Airlines",
	"SQ": "Singapore Airlines",
	"SU": "Aeroflot",
	"TK": "Turkish Airlines",
	"TP": "TAP Air Portugal",
	"UA": "United Airlines",
	"VA": "Virgin Australia",
	"VS": "Virgin Atlantic",
	"WN": "Southwest Airlines",
	"WS": "WestJet",
}

// IsKnownAirline reports whether code is a known IATA airline code.
func IsKnownAirline(code string) bool {
	_, ok := Airlines[code]
	return ok
}

// AirlineName returns the carrier name for a code, or empty.
func AirlineName(code string) string {
	return Airlines[code]
}

// AirlineCodes returns every known airline code. Order is unspecified.
func AirlineCodes() []string {
	codes := make([]string, 0, len(Airlines))
	for c := range Airlines {
		codes = append(codes, c)
	}
	return codes
}
