package pipeline

import (
	"time"

	"boardingpass_parser/internal/boardingpass"
	"boardingpass_parser/internal/reference"
	"boardingpass_parser/internal/scanerr"
	"boardingpass_parser/internal/timeres"
	"boardingpass_parser/internal/tokens"
	"boardingpass_parser/internal/validate"
)

// resolve runs token extraction and field resolution over one text and
// assembles the result envelope. In strict mode the first typed error stops
// resolution; in lenient mode errors accumulate and the draft keeps every
// field that did resolve.
func (p *Pipeline) resolve(text string) Result {
	toks := tokens.Extract(text)
	now := p.opts.Now()
	strict := p.opts.Mode == Strict

	draft := &boardingpass.FlightRecordDraft{}
	var errs scanerr.List
	var confidences []float64

	// Flight number, and the airline code it implies.
	if t := toks.First(boardingpass.KindFlight); t != nil {
		r := validate.FlightNumber(t.Value)
		switch {
		case r.Valid:
			draft.FlightNumber = r.Value
		case r.Suggestion != "" && r.Confidence >= validate.ConfidenceFloor:
			draft.FlightNumber = r.Suggestion
			draft.Meta.Warnings = append(draft.Meta.Warnings,
				"flight number "+t.Value+" corrected to "+r.Suggestion)
		}
		if draft.FlightNumber != "" {
			draft.Airline = draft.FlightNumber[:2]
			draft.AirlineName = reference.AirlineName(draft.Airline)
			confidences = append(confidences, r.Confidence)
		}
	}

	// Origin and destination.
	var err *scanerr.Error
	draft.Origin, err = p.resolveAirport(toks.ByRole(boardingpass.KindAirport, boardingpass.RoleDeparture), "origin", draft, &confidences)
	if strict && err != nil {
		return p.strictFail(draft, err)
	}
	errs.Add(err)
	draft.Destination, err = p.resolveAirport(toks.ByRole(boardingpass.KindAirport, boardingpass.RoleArrival), "destination", draft, &confidences)
	if strict && err != nil {
		return p.strictFail(draft, err)
	}
	errs.Add(err)

	// Flight date.
	if t := toks.First(boardingpass.KindDate); t != nil {
		if strict {
			date, serr := timeres.StrictDateExtraction(t.Value, now)
			if serr != nil {
				return p.strictFail(draft, serr)
			}
			draft.FlightDate = date
		} else {
			r := validate.Date(t.Value)
			if !r.Valid {
				errs.Add(scanerr.New(scanerr.DateParseFailed, "date", t.Value))
			} else if rerr := timeres.ValidateDateRange(r.Value, now); rerr != nil {
				errs.Add(rerr)
			} else {
				draft.FlightDate = r.Value
				confidences = append(confidences, r.Confidence)
			}
		}
	}

	// Times. The resolver handles role assignment, arrival estimation and
	// the overnight-flight advance.
	timeToks := toks.ByKind(boardingpass.KindTime)
	ft := timeres.ExtractFlightTimes(timeres.Input{
		Date:        draft.FlightDate,
		Times:       timeToks,
		Origin:      draft.Origin,
		Destination: draft.Destination,
		Airline:     draft.Airline,
	}, now)
	if strict && len(ft.Errors) > 0 {
		return p.strictFail(draft, ft.Errors[0])
	}
	errs = append(errs, ft.Errors...)
	draft.Departure, draft.Arrival, draft.Boarding = ft.Departure, ft.Arrival, ft.Boarding
	draft.Meta.Warnings = append(draft.Meta.Warnings, ft.Warnings...)
	for _, z := range []*boardingpass.ZonedInstant{draft.Departure, draft.Arrival, draft.Boarding} {
		if z != nil {
			confidences = append(confidences, z.Confidence)
		}
	}

	// Lenient fallback: when the departure airport's timezone could not be
	// resolved but a date and a departure time were read, keep the time
	// interpreted as UTC and flag it. Zoned semantics are preserved; only
	// the zone's provenance is degraded.
	if !strict && draft.Departure == nil && draft.FlightDate != "" && ft.Errors.Has(scanerr.AirportNotFound) {
		if z := localFallbackInstant(draft.FlightDate, timeToks, draft.Origin); z != nil {
			draft.Departure = z
			draft.Meta.LocalTimeFallback = true
			draft.Meta.Warnings = append(draft.Meta.Warnings,
				"departure timezone unresolved; time recorded without zone adjustment")
		}
	}

	// Ancillary fields.
	if t := toks.First(boardingpass.KindSeat); t != nil {
		if r := validate.Seat(t.Value); r.Valid {
			draft.Seat = r.Value
		}
	}
	if t := toks.First(boardingpass.KindGate); t != nil {
		if r := validate.Gate(t.Value); r.Valid {
			draft.Gate = r.Value
		}
	}
	if t := toks.First(boardingpass.KindTerminal); t != nil {
		draft.Terminal = t.Value
	}
	if t := toks.First(boardingpass.KindConfirmation); t != nil {
		draft.Confirmation = t.Value
	}
	if t := toks.First(boardingpass.KindPassengerName); t != nil {
		draft.PassengerName = t.Value
	}

	draft.Meta.Confidence = minConfidence(confidences)

	for _, f := range draft.MissingCriticalFields() {
		if !hasErrorForField(errs, f) {
			errs.Add(scanerr.New(scanerr.MissingRequired, f, ""))
		}
	}
	if strict && len(errs) > 0 {
		return p.strictFail(draft, errs[0])
	}

	res := Result{
		Success:        draft.HasCriticalFields(),
		Record:         draft,
		Errors:         errs,
		ReviewPriority: reviewPriority(draft),
	}
	if !res.Success {
		res.RequiresManualEntry = errs.Fields()
	}
	return res
}

// resolveAirport validates one airport token, accepting confusion-table
// corrections with a warning. A nil token is not an error here; missing
// critical fields are reported once at the end of resolution.
func (p *Pipeline) resolveAirport(tok *boardingpass.Token, field string, draft *boardingpass.FlightRecordDraft, confidences *[]float64) (string, *scanerr.Error) {
	if tok == nil {
		return "", nil
	}
	r := validate.Airport(tok.Value)
	switch {
	case r.Valid:
		*confidences = append(*confidences, r.Confidence)
		return r.Value, nil
	case r.Suggestion != "" && r.Confidence >= validate.ConfidenceFloor:
		draft.Meta.Warnings = append(draft.Meta.Warnings,
			field+" "+tok.Value+" corrected to "+r.Suggestion)
		*confidences = append(*confidences, r.Confidence)
		return r.Suggestion, nil
	}
	return "", scanerr.New(scanerr.AirportNotFound, field, tok.Value)
}

// localFallbackInstant builds a UTC-flagged departure from the first usable
// departure-role (or unlabelled) time token.
func localFallbackInstant(date string, timeToks []boardingpass.Token, origin string) *boardingpass.ZonedInstant {
	var raw string
	for _, t := range timeToks {
		if t.Role == boardingpass.RoleDeparture {
			raw = t.Value
			break
		}
	}
	if raw == "" && len(timeToks) == 1 && timeToks[0].Role == boardingpass.RoleUnknown {
		raw = timeToks[0].Value
	}
	if raw == "" {
		return nil
	}
	tp := timeres.SafeParseTime(raw, validate.ConfidenceFloor)
	if !tp.OK {
		return nil
	}
	t, err := time.Parse("2006-01-02 15:04", date+" "+tp.Time)
	if err != nil {
		return nil
	}
	return &boardingpass.ZonedInstant{
		UTC:         t.UTC(),
		Timezone:    "UTC",
		AirportCode: origin,
		Confidence:  validate.ConfidenceFloor,
	}
}

func (p *Pipeline) strictFail(draft *boardingpass.FlightRecordDraft, err *scanerr.Error) Result {
	var errs scanerr.List
	errs.Add(err)
	return Result{
		Record:              draft,
		Errors:              errs,
		RequiresManualEntry: errs.Fields(),
		ReviewPriority:      reviewPriority(draft),
	}
}

// minConfidence treats the weakest resolved field as the record's overall
// confidence.
func minConfidence(confs []float64) float64 {
	if len(confs) == 0 {
		return 0
	}
	min := confs[0]
	for _, c := range confs[1:] {
		if c < min {
			min = c
		}
	}
	return min
}

func hasErrorForField(errs scanerr.List, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
