package reference

// RouteDurations maps ordered "ORIGIN-DESTINATION" IATA pairs to scheduled
// block time in float hours. The table is asymmetric: prevailing winds make
// eastbound and westbound legs differ, so both directions are listed.
var RouteDurations = map[string]float64{
	"LAX-JFK": 5.5,
	"JFK-LAX": 6.25,
	"SFO-JFK": 5.5,
	"JFK-SFO": 6.5,
	"LAX-ORD": 4.0,
	"ORD-LAX": 4.5,
	"LAX-SFO": 1.5,
	"SFO-LAX": 1.5,
	"LAX-SEA": 2.75,
	"SEA-LAX": 2.75,
	"LAX-LAS": 1.25,
	"LAS-LAX": 1.25,
	"SEA-SFO": 2.25,
	"SFO-SEA": 2.25,
	"ORD-JFK": 2.25,
	"JFK-ORD": 2.75,
	"ATL-JFK": 2.25,
	"JFK-ATL": 2.5,
	"ATL-LAX": 5.0,
	"LAX-ATL": 4.25,
	"DFW-LAX": 3.5,
	"LAX-DFW": 3.0,
	"DEN-ORD": 2.25,
	"ORD-DEN": 2.75,
	"BOS-JFK": 1.25,
	"JFK-BOS": 1.25,
	"MIA-JFK": 3.0,
	"JFK-MIA": 3.25,
	"SEA-JFK": 5.25,
	"JFK-SEA": 6.25,
	"IAH-LAX": 3.5,
	"LAX-IAH": 3.25,
	"PHX-LAX": 1.5,
	"LAX-PHX": 1.25,
	"JFK-LHR": 7.0,
	"LHR-JFK": 8.0,
	"LAX-HNL": 5.75,
	"HNL-LAX": 5.25,
	"LAX-NRT": 11.5,
	"NRT-LAX": 9.75,
	"SFO-HND": 11.0,
	"HND-SFO": 9.5,
	"JFK-CDG": 7.25,
	"CDG-JFK": 8.25,
	"LAX-SYD": 15.0,
	"SYD-LAX": 13.5,
	"YYZ-LAX": 5.25,
	"LAX-YYZ": 4.75,
}

// RouteKey builds the ordered lookup key for a leg.
func RouteKey(origin, destination string) string {
	return origin + "-" + destination
}

// LookupRouteDuration returns the tabled block time for a leg, if known.
func LookupRouteDuration(origin, destination string) (float64, bool) {
	h, ok := RouteDurations[RouteKey(origin, destination)]
	return h, ok
}
