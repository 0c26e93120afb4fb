// Package api provides the REST API for the extraction review queue and the
// flight record store.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"boardingpass_parser/internal/storage"
	"boardingpass_parser/pkg/logger"
)

// Config holds configuration for the review API server.
type Config struct {
	Port        int      `toml:"port"`
	AuthEnabled bool     `toml:"auth_enabled"`
	APIKeys     []string `toml:"api_keys"`
}

// Server serves the review queue over the local extraction log, and flight
// record lookups when a PostgreSQL store is attached.
type Server struct {
	db          *storage.DB
	pg          *storage.PostgresDB // Optional; nil disables /flights.
	port        int
	authEnabled bool
	apiKeys     map[string]bool
	log         *logger.Logger
}

// NewServer creates a review API server. pg may be nil.
func NewServer(db *storage.DB, pg *storage.PostgresDB, cfg Config, log *logger.Logger) *Server {
	keys := make(map[string]bool)
	for _, k := range cfg.APIKeys {
		if k != "" {
			keys[k] = true
		}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		db:          db,
		pg:          pg,
		port:        cfg.Port,
		authEnabled: cfg.AuthEnabled,
		apiKeys:     keys,
		log:         log,
	}
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := ":" + strconv.Itoa(s.port)
	s.log.Info("review API starting",
		logger.String("addr", addr),
		logger.Bool("auth", s.authEnabled))
	return http.ListenAndServe(addr, s.Router())
}

// Router returns the configured chi router.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			if s.authEnabled {
				r.Use(s.authMiddleware)
			}
			r.Get("/extractions", s.handleListExtractions)
			r.Get("/extractions/{id}", s.handleGetExtraction)
			r.Get("/review/queue", s.handleReviewQueue)
			r.Post("/review/{id}", s.handleSubmitReview)
			r.Get("/stats", s.handleStats)
			if s.pg != nil {
				r.Get("/flights/{date}", s.handleListFlights)
			}
		})
	})

	return r
}

// corsMiddleware adds CORS headers for browser access.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-API-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authMiddleware validates API key authentication.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			auth := r.Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				apiKey = strings.TrimPrefix(auth, "Bearer ")
			}
		}
		if apiKey == "" {
			apiKey = r.URL.Query().Get("api_key")
		}

		if apiKey == "" {
			writeError(w, http.StatusUnauthorized, "API key required")
			return
		}
		if !s.apiKeys[apiKey] {
			writeError(w, http.StatusForbidden, "invalid API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// APIExtraction is the JSON representation of a stored extraction.
type APIExtraction struct {
	ID             int64                  `json:"id"`
	ScannedAt      string                 `json:"scanned_at"`
	Backend        string                 `json:"backend"`
	Mode           string                 `json:"mode"`
	Flight         string                 `json:"flight,omitempty"`
	Origin         string                 `json:"origin,omitempty"`
	Destination    string                 `json:"destination,omitempty"`
	FlightDate     string                 `json:"flight_date,omitempty"`
	RawText        string                 `json:"raw_text"`
	Record         map[string]interface{} `json:"record"`
	MissingFields  []string               `json:"missing_fields,omitempty"`
	Confidence     float64                `json:"confidence"`
	ReviewPriority int                    `json:"review_priority"`
	Reviewed       bool                   `json:"reviewed"`
	Annotation     string                 `json:"annotation,omitempty"`
	Corrected      map[string]interface{} `json:"corrected,omitempty"`
}

func extractionToAPI(e *storage.Extraction) APIExtraction {
	api := APIExtraction{
		ID:             e.ID,
		ScannedAt:      e.ScannedAt.Format(time.RFC3339),
		Backend:        e.Backend,
		Mode:           e.Mode,
		Flight:         e.Flight,
		Origin:         e.Origin,
		Destination:    e.Destination,
		FlightDate:     e.FlightDate,
		RawText:        e.RawText,
		Confidence:     e.Confidence,
		ReviewPriority: e.ReviewPriority,
		Reviewed:       e.Reviewed,
		Annotation:     e.Annotation,
	}
	if e.MissingFields != "" {
		api.MissingFields = strings.Split(e.MissingFields, ",")
	}
	if e.RecordJSON != "" {
		_ = json.Unmarshal([]byte(e.RecordJSON), &api.Record)
	}
	if e.CorrectedJSON != "" {
		_ = json.Unmarshal([]byte(e.CorrectedJSON), &api.Corrected)
	}
	return api
}

func (s *Server) handleListExtractions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := storage.QueryParams{
		Backend:      q.Get("backend"),
		Flight:       strings.ToUpper(q.Get("flight")),
		Origin:       strings.ToUpper(q.Get("origin")),
		Destination:  strings.ToUpper(q.Get("destination")),
		MissingField: q.Get("missing"),
		HasMissing:   q.Get("has_missing") == "true",
		Unreviewed:   q.Get("unreviewed") == "true",
		FullText:     q.Get("q"),
		OrderBy:      q.Get("order_by"),
		OrderDesc:    q.Get("order") == "desc",
	}
	if v := q.Get("limit"); v != "" {
		params.Limit, _ = strconv.Atoi(v)
	}
	if v := q.Get("offset"); v != "" {
		params.Offset, _ = strconv.Atoi(v)
	}

	extractions, err := s.db.Query(params)
	if err != nil {
		s.log.WithError(err).Error("query extractions")
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}

	out := make([]APIExtraction, 0, len(extractions))
	for i := range extractions {
		out = append(out, extractionToAPI(&extractions[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetExtraction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
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
	writeJSON(w, http.StatusOK, extractionToAPI(&extractions[0]))
}

func (s *Server) handleReviewQueue(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	extractions, err := s.db.NextForReview(limit)
	if err != nil {
		s.log.WithError(err).Error("query review queue")
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	out := make([]APIExtraction, 0, len(extractions))
	for i := range extractions {
		out = append(out, extractionToAPI(&extractions[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	stats, err := s.db.GetStats()
	if err != nil {
		s.log.WithError(err).Error("query stats")
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListFlights(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	records, err := s.pg.ListFlightRecords(r.Context(), date, limit)
	if err != nil {
		s.log.WithError(err).Error("list flight records")
		writeError(w, http.StatusInternalServerError, "query failed")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
