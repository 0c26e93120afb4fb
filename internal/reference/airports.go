package reference

// Airport is one entry of the common-airports table.
type Airport struct {
	Code     string  // IATA code.
	Name     string
	City     string
	Lat      float64
	Lon      float64
	Timezone string // IANA name.
}

// Airports is the common-airports table, keyed by IATA code. The table is
// necessarily incomplete; codes outside it are treated as plausible but
// unverified rather than rejected.
var Airports = map[string]Airport{
	"ATL": {"ATL", "Hartsfield-Jackson Atlanta International", "Atlanta", 33.6407, -84.4277, "America/New_York"},
	"AUS": {"AUS", "Austin-Bergstrom International", "Austin", 30.1975, -97.6664, "America/Chicago"},
	"BNA": {"BNA", "Nashville International", "Nashville", 36.1263, -86.6774, "America/Chicago"},
	"BOS": {"BOS", "Boston Logan International", "Boston", 42.3656, -71.0096, "America/New_York"},
	"BWI": {"BWI", "Baltimore/Washington International", "Baltimore", 39.1774, -76.6684, "America/New_York"},
	"CDG": {"CDG", "Paris Charles de Gaulle", "Paris", 49.0097, 2.5479, "Europe/Paris"},
	"CLT": {"CLT", "Charlotte Douglas International", "Charlotte", 35.2140, -80.9431, "America/New_York"},
	"DCA": {"DCA", "Ronald Reagan Washington National", "Washington", 38.8521, -77.0377, "America/New_York"},
	"DEN": {"DEN", "Denver International", "Denver", 39.8561, -104.6737, "America/Denver"},
	"DFW": {"DFW", "Dallas/Fort Worth International", "Dallas", 32.8998, -97.0403, "America/Chicago"},
	"DTW": {"DTW", "Detroit Metropolitan Wayne County", "Detroit", 42.2162, -83.3554, "America/Detroit"},
	"DXB": {"DXB", "Dubai International", "Dubai", 25.2532, 55.3657, "Asia/Dubai"},
	"EWR": {"EWR", "Newark Liberty International", "Newark", 40.6895, -74.1745, "America/New_York"},
	"FLL": {"FLL", "Fort Lauderdale-Hollywood International", "Fort Lauderdale", 26.0742, -80.1506, "America/New_York"},
	"FRA": {"FRA", "Frankfurt am Main", "Frankfurt", 50.0379, 8.5622, "Europe/Berlin"},
	"HND": {"HND", "Tokyo Haneda", "Tokyo", 35.5494, 139.7798, "Asia/Tokyo"},
	"HNL": {"HNL", "Daniel K. Inouye International", "Honolulu", 21.3187, -157.9224, "Pacific/Honolulu"},
	"IAD": {"IAD", "Washington Dulles International", "Washington", 38.9531, -77.4565, "America/New_York"},
	"IAH": {"IAH", "George Bush Intercontinental", "Houston", 29.9902, -95.3368, "America/Chicago"},
	"JFK": {"JFK", "John F. Kennedy International", "New York", 40.6413, -73.7781, "America/New_York"},
	"LAS": {"LAS", "Harry Reid International", "Las Vegas", 36.0840, -115.1537, "America/Los_Angeles"},
	"LAX": {"LAX", "Los Angeles International", "Los Angeles", 33.9416, -118.4085, "America/Los_Angeles"},
	"LGA": {"LGA", "LaGuardia", "New York", 40.7769, -73.8740, "America/New_York"},
	"LHR": {"LHR", "London Heathrow", "London", 51.4700, -0.4543, "Europe/London"},
	"MCO": {"MCO", "Orlando International", "Orlando", 28.4312, -81.3081, "America/New_York"},
	"MDW": {"MDW", "Chicago Midway International", "Chicago", 41.7868, -87.7522, "America/Chicago"},
	"MEX": {"MEX", "Mexico City International", "Mexico City", 19.4363, -99.0721, "America/Mexico_City"},
	"MIA": {"MIA", "Miami International", "Miami", 25.7959, -80.2870, "America/New_York"},
	"MSP": {"MSP", "Minneapolis-Saint Paul International", "Minneapolis", 44.8848, -93.2223, "America/Chicago"},
	"NRT": {"NRT", "Narita International", "Tokyo", 35.7720, 140.3929, "Asia/Tokyo"},
	"ORD": {"ORD", "Chicago O'Hare International", "Chicago", 41.9742, -87.9073, "America/Chicago"},
	"PDX": {"PDX", "Portland International", "Portland", 45.5898, -122.5951, "America/Los_Angeles"},
	"PHL": {"PHL", "Philadelphia International", "Philadelphia", 39.8744, -75.2424, "America/New_York"},
	"PHX": {"PHX", "Phoenix Sky Harbor International", "Phoenix", 33.4352, -112.0101, "America/Phoenix"},
	"SAN": {"SAN", "San Diego International", "San Diego", 32.7338, -117.1933, "America/Los_Angeles"},
	"SEA": {"SEA", "Seattle-Tacoma International", "Seattle", 47.4502, -122.3088, "America/Los_Angeles"},
	"SFO": {"SFO", "San Francisco International", "San Francisco", 37.6213, -122.3790, "America/Los_Angeles"},
	"SIN": {"SIN", "Singapore Changi", "Singapore", 1.3644, 103.9915, "Asia/Singapore"},
	"SJC": {"SJC", "Norman Y. Mineta San Jose International", "San Jose", 37.3639, -121.9289, "America/Los_Angeles"},
	"SLC": {"SLC", "Salt Lake City International", "Salt Lake City", 40.7899, -111.9791, "America/Denver"},
	"STL": {"STL", "St. Louis Lambert International", "St. Louis", 38.7487, -90.3700, "America/Chicago"},
	"SYD": {"SYD", "Sydney Kingsford Smith", "Sydney", -33.9399, 151.1753, "Australia/Sydney"},
	"TPA": {"TPA", "Tampa International", "Tampa", 27.9755, -82.5332, "America/New_York"},
	"YUL": {"YUL", "Montreal-Trudeau International", "Montreal", 45.4706, -73.7408, "America/Toronto"},
	"YVR": {"YVR", "Vancouver International", "Vancouver", 49.1947, -123.1792, "America/Vancouver"},
	"YYZ": {"YYZ", "Toronto Pearson International", "Toronto", 43.6777, -79.6248, "America/Toronto"},
}

// IsKnownAirport reports whether code is in the common-airports table.
func IsKnownAirport(code string) bool {
	_, ok := Airports[code]
	return ok
}

// LookupAirport returns the airport entry for a code.
func LookupAirport(code string) (Airport, bool) {
	a, ok := Airports[code]
	return a, ok
}

// airportWordBlocklist contains common boarding-pass words that look like
// 3-letter airport codes but never are. Checked before emitting an airport
// token.
var airportWordBlocklist = map[string]bool{
	"AND": true, "ARR": true, "BAG": true, "DEP": true, "EST": true,
	"FLT": true, "FOR": true, "GRP": true, "LTD": true, "MAY": true,
	"NOT": true, "PNR": true, "ROW": true, "SEQ": true, "STD": true,
	"STA": true, "THE": true, "VIA": true, "ZON": true, "OUT": true,
	"PM": true, "AM": true,
}

// IsAirportBlocked reports whether a 3-letter token is a known false
// positive rather than a plausible airport code.
func IsAirportBlocked(code string) bool {
	return airportWordBlocklist[code]
}
