package boardingpass

import "time"

// ZonedInstant is a UTC timestamp paired with the IANA timezone it was
// resolved in. A naked wall-clock time never crosses a package boundary in
// the time-resolution subsystem; it is always wrapped in one of these.
type ZonedInstant struct {
	UTC         time.Time `json:"utc"`
	Timezone    string    `json:"timezone"` // IANA name, e.g. "America/Los_Angeles".
	AirportCode string    `json:"airport_code,omitempty"`
	Confidence  float64   `json:"confidence"`
}

// Local returns the instant expressed in its own timezone. Falls back to UTC
// if the zone cannot be loaded (the resolver guarantees it can).
func (z *ZonedInstant) Local() time.Time {
	loc, err := time.LoadLocation(z.Timezone)
	if err != nil {
		return z.UTC
	}
	return z.UTC.In(loc)
}

// ExtractionMeta records how a draft was produced.
type ExtractionMeta struct {
	Backend    string   `json:"backend,omitempty"` // Recognizer that produced the accepted text.
	Confidence float64  `json:"confidence"`
	Warnings   []string `json:"warnings,omitempty"`
	// LocalTimeFallback marks departure/arrival/boarding instants that were
	// interpreted without a resolved timezone (lenient mode only).
	LocalTimeFallback bool `json:"local_time_fallback,omitempty"`
}

// FlightRecordDraft is the accumulating result of one extraction. Pipeline
// stages fill it in incrementally; once the orchestrator accepts it the
// draft is handed off as-is and must not be mutated further.
type FlightRecordDraft struct {
	Airline      string `json:"airline,omitempty"`       // IATA airline code, e.g. "DL".
	AirlineName  string `json:"airline_name,omitempty"`
	FlightNumber string `json:"flight_number,omitempty"` // Full designator, e.g. "DL1234".
	Confirmation string `json:"confirmation,omitempty"`  // PNR / record locator.

	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
	Gate        string `json:"gate,omitempty"`
	Terminal    string `json:"terminal,omitempty"`
	Seat        string `json:"seat,omitempty"`

	PassengerName string `json:"passenger_name,omitempty"`
	FlightDate    string `json:"flight_date,omitempty"` // YYYY-MM-DD.

	Departure *ZonedInstant `json:"departure,omitempty"`
	Arrival   *ZonedInstant `json:"arrival,omitempty"`
	Boarding  *ZonedInstant `json:"boarding,omitempty"`

	Meta ExtractionMeta `json:"meta"`
}

// CriticalFields are the fields whose absence blocks pipeline success.
var CriticalFields = []string{"origin", "destination", "date", "departure_time"}

// HasCriticalFields reports whether origin, destination, flight date and
// departure time are all present.
func (d *FlightRecordDraft) HasCriticalFields() bool {
	return d.Origin != "" && d.Destination != "" && d.FlightDate != "" && d.Departure != nil
}

// MissingCriticalFields lists which critical fields are absent.
func (d *FlightRecordDraft) MissingCriticalFields() []string {
	var missing []string
	if d.Origin == "" {
		missing = append(missing, "origin")
	}
	if d.Destination == "" {
		missing = append(missing, "destination")
	}
	if d.FlightDate == "" {
		missing = append(missing, "date")
	}
	if d.Departure == nil {
		missing = append(missing, "departure_time")
	}
	return missing
}

// FieldCount counts populated fields, used to rank partial results.
func (d *FlightRecordDraft) FieldCount() int {
	n := 0
	for _, s := range []string{
		d.Airline, d.FlightNumber, d.Confirmation, d.Origin, d.Destination,
		d.Gate, d.Terminal, d.Seat, d.PassengerName, d.FlightDate,
	} {
		if s != "" {
			n++
		}
	}
	for _, z := range []*ZonedInstant{d.Departure, d.Arrival, d.Boarding} {
		if z != nil {
			n++
		}
	}
	return n
}
