package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"boardingpass_parser/internal/boardingpass"
	"boardingpass_parser/internal/reference"
	"boardingpass_parser/internal/storage"
	"boardingpass_parser/internal/timeres"
	"boardingpass_parser/internal/validate"
	"boardingpass_parser/pkg/logger"
)

// CorrectionRequest carries an operator's manual corrections for one
// extraction. Empty fields leave the stored value untouched.
type CorrectionRequest struct {
	FlightNumber  string `json:"flight_number,omitempty"`
	Origin        string `json:"origin,omitempty"`
	Destination   string `json:"destination,omitempty"`
	FlightDate    string `json:"flight_date,omitempty"`  // Any supported date format.
	DepartureTime string `json:"departure_time,omitempty"` // HH:MM or H:MMAM/PM.
	Gate          string `json:"gate,omitempty"`
	Terminal      string `json:"terminal,omitempty"`
	Seat          string `json:"seat,omitempty"`
	PassengerName string `json:"passenger_name,omitempty"`
	Confirmation  string `json:"confirmation,omitempty"`
	Annotation    string `json:"annotation,omitempty"`
}

// handleSubmitReview applies manual corrections. Corrections go through the
// same validators as scanned values; an entry the validators reject is a
// 422, not a silent overwrite.
func (s *Server) handleSubmitReview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req CorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	extractions, err := s.db.Query(storage.QueryParams{ID: id, Limit: 1})
	if err != nil {
		s.log.WithError(err).Error("query extraction")
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	if len(extractions) == 0 {
		writeError(w, http.StatusNotFound, "extraction not found")
		return
	}

	var draft boardingpass.FlightRecordDraft
	if extractions[0].RecordJSON != "" {
		_ = json.Unmarshal([]byte(extractions[0].RecordJSON), &draft)
	}

	fieldErrors := applyCorrections(&draft, &req)
	if len(fieldErrors) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "corrections failed validation",
			"fields": fieldErrors,
		})
		return
	}

	if err := s.db.MarkReviewed(id, &draft, req.Annotation); err != nil {
		s.log.WithError(err).Error("mark reviewed")
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}

	// A corrected draft that now has its critical fields graduates into the
	// flight record store.
	if s.pg != nil && draft.HasCriticalFields() {
		if err := s.pg.UpsertFlightRecord(r.Context(), storage.FlightRecordFromDraft(&draft)); err != nil {
			s.log.WithError(err).Error("upsert flight record")
		}
	}

	s.log.Info("review applied", logger.Int64("id", id))
	writeJSON(w, http.StatusOK, draft)
}

// applyCorrections validates each provided correction and writes it into
// the draft. Returns per-field error messages for everything rejected.
func applyCorrections(draft *boardingpass.FlightRecordDraft, req *CorrectionRequest) map[string]string {
	fieldErrors := make(map[string]string)

	if req.FlightNumber != "" {
		res := validate.FlightNumber(req.FlightNumber)
		if !res.Valid {
			fieldErrors["flight_number"] = "not a valid flight designator"
		} else {
			draft.FlightNumber = res.Value
			draft.Airline = res.Value[:2]
			draft.AirlineName = reference.AirlineName(draft.Airline)
		}
	}
	if req.Origin != "" {
		res := validate.Airport(req.Origin)
		if !res.Valid {
			fieldErrors["origin"] = "not a valid airport code"
		} else {
			draft.Origin = res.Value
		}
	}
	if req.Destination != "" {
		res := validate.Airport(req.Destination)
		if !res.Valid {
			fieldErrors["destination"] = "not a valid airport code"
		} else {
			draft.Destination = res.Value
		}
	}
	if req.FlightDate != "" {
		res := validate.Date(req.FlightDate)
		if !res.Valid {
			fieldErrors["flight_date"] = "unrecognised date format"
		} else {
			draft.FlightDate = res.Value
		}
	}
	if req.Seat != "" {
		res := validate.Seat(req.Seat)
		if !res.Valid {
			fieldErrors["seat"] = "not a valid seat"
		} else {
			draft.Seat = res.Value
		}
	}
	if req.Gate != "" {
		res := validate.Gate(req.Gate)
		if !res.Valid {
			fieldErrors["gate"] = "not a valid gate"
		} else {
			draft.Gate = res.Value
		}
	}
	if req.Terminal != "" {
		draft.Terminal = strings.ToUpper(strings.TrimSpace(req.Terminal))
	}
	if req.PassengerName != "" {
		draft.PassengerName = strings.ToUpper(strings.TrimSpace(req.PassengerName))
	}
	if req.Confirmation != "" {
		draft.Confirmation = strings.ToUpper(strings.TrimSpace(req.Confirmation))
	}

	// Re-resolve the departure instant when the operator supplied a time, or
	// when date/origin changed under an existing one.
	if len(fieldErrors) == 0 {
		depTime := req.DepartureTime
		if depTime == "" && draft.Departure != nil && (req.FlightDate != "" || req.Origin != "") {
			depTime = draft.Departure.Local().Format("15:04")
		}
		if depTime != "" && draft.FlightDate != "" && draft.Origin != "" {
			z, zerr := timeres.ResolveZonedTime(draft.FlightDate, depTime, draft.Origin)
			if zerr != nil {
				fieldErrors["departure_time"] = zerr.Error()
			} else {
				// Manual entry is authoritative.
				z.Confidence = 1.0
				draft.Departure = z
				draft.Meta.LocalTimeFallback = false
			}
		} else if req.DepartureTime != "" {
			fieldErrors["departure_time"] = "origin and flight_date must be set before a departure time can be resolved"
		}
	}

	return fieldErrors
}
