package reference

// AirportConfusions maps frequently misread 3-letter strings to the airport
// code they almost always are. The entries come from single-glyph OCR
// substitutions (O/0, I/1, S/5, B/8, G/6, Z/2) against the common-airports
// table.
var AirportConfusions = map[string]string{
	"0RD": "ORD",
	"B0S": "BOS",
	"5EA": "SEA",
	"5FO": "SFO",
	"5F0": "SFO",
	"SF0": "SFO",
	"MC0": "MCO",
	"H0N": "HNL",
	"LG4": "LGA",
	"1AD": "IAD",
	"1AH": "IAH",
	"PH1": "PHL",
	"J8K": "JFK",
	"JEK": "JFK",
	"LAK": "LAX",
	"DEM": "DEN",
	"5AN": "SAN",
	"8NA": "BNA",
	"8OS": "BOS",
	"8WI": "BWI",
}

// ConfusedAirport returns the corrected airport code for a known OCR
// confusion, if one exists.
func ConfusedAirport(code string) (string, bool) {
	fixed, ok := AirportConfusions[code]
	return fixed, ok
}
