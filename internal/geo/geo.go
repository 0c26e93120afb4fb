// Package geo resolves airport codes to timezones and computes great-circle
// distances between airports using the reference tables.
package geo

import (
	"math"
	"time"

	"boardingpass_parser/internal/reference"
	"boardingpass_parser/internal/scanerr"
)

const earthRadiusMiles = 3958.8

// Timezone returns the IANA timezone location for an airport code.
// Fails with AIRPORT_NOT_FOUND for unknown codes and TIMEZONE_MISMATCH when
// the tabled zone name cannot be loaded.
func Timezone(airportCode string) (*time.Location, string, error) {
	a, ok := reference.LookupAirport(airportCode)
	if !ok {
		return nil, "", scanerr.New(scanerr.AirportNotFound, "airport", airportCode)
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return nil, "", scanerr.Newf(scanerr.TimezoneMismatch, "airport", airportCode,
			"timezone %q: %v", a.Timezone, err)
	}
	return loc, a.Timezone, nil
}

// Distance returns the great-circle distance in statute miles between two
// airports. The second return is false when either airport is unknown.
func Distance(origin, destination string) (float64, bool) {
	a, okA := reference.LookupAirport(origin)
	b, okB := reference.LookupAirport(destination)
	if !okA || !okB {
		return 0, false
	}
	return haversine(a.Lat, a.Lon, b.Lat, b.Lon), true
}

// haversine computes great-circle distance between two lat/lon points.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}
