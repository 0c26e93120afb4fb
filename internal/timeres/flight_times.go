package timeres

import (
	"time"

	"boardingpass_parser/internal/boardingpass"
	"boardingpass_parser/internal/scanerr"
)

// estimatedArrivalCeiling caps the confidence of an arrival derived from
// route duration rather than read off the document.
const estimatedArrivalCeiling = 0.7

// Input carries everything the lenient time orchestration needs. Times must
// be in document order; Date is the canonical YYYY-MM-DD from field
// validation, empty when no date was extracted.
type Input struct {
	Date        string
	Times       []boardingpass.Token
	Origin      string
	Destination string
	Airline     string
}

// FlightTimes is the lenient resolution result. Any of the three instants
// may be nil; Errors carries the typed failures behind each gap.
type FlightTimes struct {
	Departure *boardingpass.ZonedInstant
	Arrival   *boardingpass.ZonedInstant
	Boarding  *boardingpass.ZonedInstant
	Warnings  []string
	Errors    scanerr.List
}

// ExtractFlightTimes resolves all times on a pass in lenient mode. Missing
// or unresolvable inputs become nil fields plus accumulated errors, never a
// hard failure. A missing arrival is derived from departure plus the
// estimated route duration, and an arrival at or before departure is
// advanced by 24 hours on the assumption of an overnight flight.
func ExtractFlightTimes(in Input, now time.Time) FlightTimes {
	var out FlightTimes

	if in.Date == "" {
		out.Errors.Add(scanerr.New(scanerr.MissingRequired, "date", ""))
		return out
	}
	if err := ValidateDateRange(in.Date, now); err != nil {
		out.Errors.Add(err)
		return out
	}

	byRole := assignRoles(in.Times, in.Airline)

	if tok, ok := byRole[boardingpass.RoleDeparture]; ok {
		if in.Origin == "" {
			out.Errors.Add(scanerr.New(scanerr.MissingRequired, "origin", ""))
		} else if z, err := ResolveZonedTime(in.Date, tok.Value, in.Origin); err != nil {
			out.Errors.Add(err)
		} else {
			out.Departure = z
		}
	} else {
		out.Errors.Add(scanerr.New(scanerr.MissingRequired, "departure_time", ""))
	}

	// Boarding is optional; a resolution failure just drops it.
	if tok, ok := byRole[boardingpass.RoleBoarding]; ok && in.Origin != "" {
		out.Boarding = ResolveZonedTimeLenient(in.Date, tok.Value, in.Origin)
	}

	if tok, ok := byRole[boardingpass.RoleArrival]; ok && in.Destination != "" {
		out.Arrival = ResolveZonedTimeLenient(in.Date, tok.Value, in.Destination)
	}
	if out.Arrival == nil && out.Departure != nil && in.Destination != "" {
		if z, err := EstimateArrivalTime(out.Departure, in.Origin, in.Destination); err == nil {
			out.Arrival = z
			out.Warnings = append(out.Warnings, "arrival time estimated from route duration")
		}
	}

	if out.Arrival != nil && out.Departure != nil && !out.Arrival.UTC.After(out.Departure.UTC) {
		out.Arrival.UTC = out.Arrival.UTC.Add(24 * time.Hour)
		out.Warnings = append(out.Warnings, "arrival was at or before departure; assumed overnight flight and advanced it one day")
	}

	return out
}

// assignRoles maps each time token to a role. Keyword-labelled tokens keep
// their role. A pass with a single unlabelled time is assumed to show the
// departure. Remaining unlabelled tokens are matched, in document order,
// against the carrier's printed time order for the roles not yet taken.
func assignRoles(times []boardingpass.Token, airline string) map[boardingpass.TimeRole]boardingpass.Token {
	byRole := make(map[boardingpass.TimeRole]boardingpass.Token)
	var unlabelled []boardingpass.Token
	for _, tok := range times {
		if tok.Role == boardingpass.RoleUnknown {
			unlabelled = append(unlabelled, tok)
			continue
		}
		if _, dup := byRole[tok.Role]; !dup {
			byRole[tok.Role] = tok
		}
	}

	if len(unlabelled) == 1 && len(byRole) == 0 {
		byRole[boardingpass.RoleDeparture] = unlabelled[0]
		return byRole
	}

	order := AirlineTimeOrder(airline)
	i := 0
	for _, role := range order {
		if i >= len(unlabelled) {
			break
		}
		if _, taken := byRole[role]; taken {
			continue
		}
		byRole[role] = unlabelled[i]
		i++
	}
	return byRole
}
