// Package storage persists extraction results. SQLite holds the local
// result log and manual review queue; PostgreSQL holds deduplicated flight
// records; ClickHouse archives every raw attempt for analytics.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Extraction is one stored extraction attempt with its resolved record.
type Extraction struct {
	ID             int64
	ScannedAt      time.Time
	Backend        string
	Mode           string
	Flight         string
	Airline        string
	Origin         string
	Destination    string
	FlightDate     string
	RawText        string
	RecordJSON     string
	MissingFields  string
	Confidence     float64
	ReviewPriority int
	Reviewed       bool
	Annotation     string
	CorrectedJSON  string
}

// DB wraps a SQLite database connection for extraction storage.
type DB struct {
	db *sql.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL mode for concurrent readers while the worker writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS extractions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scanned_at TEXT NOT NULL,
		backend TEXT NOT NULL,
		mode TEXT NOT NULL,
		flight TEXT,
		airline TEXT,
		origin TEXT,
		destination TEXT,
		flight_date TEXT,
		raw_text TEXT NOT NULL,
		record_json TEXT NOT NULL,
		missing_fields TEXT,
		confidence REAL,
		review_priority INTEGER DEFAULT 0,
		reviewed INTEGER DEFAULT 0,
		annotation TEXT,
		corrected_json TEXT,
		created_at TEXT DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_extractions_flight ON extractions(flight);
	CREATE INDEX IF NOT EXISTS idx_extractions_backend ON extractions(backend);
	CREATE INDEX IF NOT EXISTS idx_extractions_missing ON extractions(missing_fields);
	CREATE INDEX IF NOT EXISTS idx_extractions_review ON extractions(reviewed, review_priority);
	CREATE INDEX IF NOT EXISTS idx_extractions_scanned ON extractions(scanned_at);

	-- FTS5 virtual table for full-text search on raw scan text.
	CREATE VIRTUAL TABLE IF NOT EXISTS extractions_fts USING fts5(
		raw_text,
		content='extractions',
		content_rowid='id'
	);

	-- Triggers to keep the FTS index in sync.
	CREATE TRIGGER IF NOT EXISTS extractions_ai AFTER INSERT ON extractions BEGIN
		INSERT INTO extractions_fts(rowid, raw_text) VALUES (new.id, new.raw_text);
	END;

	CREATE TRIGGER IF NOT EXISTS extractions_ad AFTER DELETE ON extractions BEGIN
		INSERT INTO extractions_fts(extractions_fts, rowid, raw_text) VALUES('delete', old.id, old.raw_text);
	END;

	CREATE TRIGGER IF NOT EXISTS extractions_au AFTER UPDATE ON extractions BEGIN
		INSERT INTO extractions_fts(extractions_fts, rowid, raw_text) VALUES('delete', old.id, old.raw_text);
		INSERT INTO extractions_fts(rowid, raw_text) VALUES (new.id, new.raw_text);
	END;
	`

	_, err := db.Exec(schema)
	return err
}

// InsertParams contains the parameters for storing one extraction attempt.
type InsertParams struct {
	ScannedAt      time.Time
	Backend        string
	Mode           string
	Flight         string
	Airline        string
	Origin         string
	Destination    string
	FlightDate     string
	RawText        string
	Record         interface{}
	MissingFields  []string
	Confidence     float64
	ReviewPriority int
}

// Insert stores an extraction attempt and returns its id.
func (d *DB) Insert(p InsertParams) (int64, error) {
	recordJSON, err := json.Marshal(p.Record)
	if err != nil {
		return 0, fmt.Errorf("marshal record: %w", err)
	}

	result, err := d.db.Exec(`
		INSERT INTO extractions (scanned_at, backend, mode, flight, airline, origin, destination, flight_date, raw_text, record_json, missing_fields, confidence, review_priority)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ScannedAt.UTC().Format(time.RFC3339), p.Backend, p.Mode, p.Flight, p.Airline,
		p.Origin, p.Destination, p.FlightDate, p.RawText, string(recordJSON),
		strings.Join(p.MissingFields, ","), p.Confidence, p.ReviewPriority)
	if err != nil {
		return 0, fmt.Errorf("insert extraction: %w", err)
	}

	return result.LastInsertId()
}

// QueryParams contains filtering options for querying extractions.
type QueryParams struct {
	ID           int64  // Filter by specific extraction ID.
	Backend      string // Filter by recognizer backend (exact match).
	Flight       string // Filter by flight designator (LIKE match).
	Origin       string // Filter by origin airport (exact match).
	Destination  string // Filter by destination airport (exact match).
	MissingField string // Filter by specific missing field (LIKE match).
	HasMissing   bool   // Only extractions with any missing fields.
	Unreviewed   bool   // Only extractions not yet reviewed.
	FullText     string // FTS5 full-text search on raw_text.
	Limit        int    // Max results (default 100).
	Offset       int    // Pagination offset.
	OrderBy      string // Sort field (scanned_at, confidence, review_priority).
	OrderDesc    bool   // Sort descending.
}

// Query retrieves extractions matching the given parameters.
func (d *DB) Query(p QueryParams) ([]Extraction, error) {
	var conditions []string
	var args []interface{}

	if p.ID != 0 {
		conditions = append(conditions, "id = ?")
		args = append(args, p.ID)
	}
	if p.Backend != "" {
		conditions = append(conditions, "backend = ?")
		args = append(args, p.Backend)
	}
	if p.Flight != "" {
		conditions = append(conditions, "flight LIKE ?")
		args = append(args, "%"+p.Flight+"%")
	}
	if p.Origin != "" {
		conditions = append(conditions, "origin = ?")
		args = append(args, p.Origin)
	}
	if p.Destination != "" {
		conditions = append(conditions, "destination = ?")
		args = append(args, p.Destination)
	}
	if p.MissingField != "" {
		conditions = append(conditions, "missing_fields LIKE ?")
		args = append(args, "%"+p.MissingField+"%")
	}
	if p.HasMissing {
		conditions = append(conditions, "missing_fields != '' AND missing_fields IS NOT NULL")
	}
	if p.Unreviewed {
		conditions = append(conditions, "reviewed = 0")
	}

	// FTS5 search requires a JOIN with the FTS table.
	var query string
	if p.FullText != "" {
		query = `SELECT e.id, e.scanned_at, e.backend, e.mode, e.flight, e.airline,
				e.origin, e.destination, e.flight_date, e.raw_text, e.record_json,
				e.missing_fields, e.confidence, e.review_priority, e.reviewed,
				e.annotation, e.corrected_json
				FROM extractions e
				JOIN extractions_fts fts ON e.id = fts.rowid
				WHERE extractions_fts MATCH ?`
		args = append([]interface{}{p.FullText}, args...)
		if len(conditions) > 0 {
			query += " AND " + strings.Join(conditions, " AND ")
		}
	} else {
		query = `SELECT id, scanned_at, backend, mode, flight, airline,
				origin, destination, flight_date, raw_text, record_json,
				missing_fields, confidence, review_priority, reviewed,
				annotation, corrected_json
				FROM extractions`
		if len(conditions) > 0 {
			query += " WHERE " + strings.Join(conditions, " AND ")
		}
	}

	orderField := "id"
	switch p.OrderBy {
	case "scanned_at", "confidence", "review_priority", "flight":
		orderField = p.OrderBy
	}
	direction := "ASC"
	if p.OrderDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", orderField, direction)

	limit := 100
	if p.Limit > 0 {
		limit = p.Limit
	}
	query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, p.Offset)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query extractions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Extraction
	for rows.Next() {
		e, err := scanExtraction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanExtraction(rows *sql.Rows) (Extraction, error) {
	var e Extraction
	var ts string
	var missing, annotation, corrected sql.NullString
	var confidence sql.NullFloat64
	var priority, reviewed sql.NullInt64

	err := rows.Scan(&e.ID, &ts, &e.Backend, &e.Mode, &e.Flight, &e.Airline,
		&e.Origin, &e.Destination, &e.FlightDate, &e.RawText, &e.RecordJSON,
		&missing, &confidence, &priority, &reviewed, &annotation, &corrected)
	if err != nil {
		return e, fmt.Errorf("scan row: %w", err)
	}

	e.ScannedAt, _ = time.Parse(time.RFC3339, ts)
	if missing.Valid {
		e.MissingFields = missing.String
	}
	if confidence.Valid {
		e.Confidence = confidence.Float64
	}
	if priority.Valid {
		e.ReviewPriority = int(priority.Int64)
	}
	if reviewed.Valid {
		e.Reviewed = reviewed.Int64 == 1
	}
	if annotation.Valid {
		e.Annotation = annotation.String
	}
	if corrected.Valid {
		e.CorrectedJSON = corrected.String
	}
	return e, nil
}

// NextForReview returns the unreviewed extractions with the highest review
// priority, most urgent first.
func (d *DB) NextForReview(limit int) ([]Extraction, error) {
	return d.Query(QueryParams{
		Unreviewed: true,
		HasMissing: true,
		OrderBy:    "review_priority",
		OrderDesc:  true,
		Limit:      limit,
	})
}

// MarkReviewed records a manual correction against an extraction and takes
// it off the review queue.
func (d *DB) MarkReviewed(id int64, corrected interface{}, annotation string) error {
	correctedJSON, err := json.Marshal(corrected)
	if err != nil {
		return fmt.Errorf("marshal corrected record: %w", err)
	}
	res, err := d.db.Exec(`
		UPDATE extractions SET reviewed = 1, corrected_json = ?, annotation = ?
		WHERE id = ?
	`, string(correctedJSON), annotation, id)
	if err != nil {
		return fmt.Errorf("mark reviewed: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("extraction %d not found", id)
	}
	return nil
}

// Stats holds aggregate statistics about stored extractions.
type Stats struct {
	Total            int
	ByBackend        map[string]int
	WithMissing      int
	PendingReview    int
	TopMissingFields map[string]int
}

// GetStats returns statistics about the stored extractions.
func (d *DB) GetStats() (*Stats, error) {
	stats := &Stats{
		ByBackend:        make(map[string]int),
		TopMissingFields: make(map[string]int),
	}

	row := d.db.QueryRow("SELECT COUNT(*) FROM extractions")
	if err := row.Scan(&stats.Total); err != nil {
		return nil, err
	}

	rows, err := d.db.Query("SELECT backend, COUNT(*) FROM extractions GROUP BY backend ORDER BY COUNT(*) DESC")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var backend string
		var count int
		if err := rows.Scan(&backend, &count); err != nil {
			_ = rows.Close()
			return nil, err
		}
		stats.ByBackend[backend] = count
	}
	_ = rows.Close()

	row = d.db.QueryRow("SELECT COUNT(*) FROM extractions WHERE missing_fields != '' AND missing_fields IS NOT NULL")
	if err := row.Scan(&stats.WithMissing); err != nil {
		return nil, err
	}

	row = d.db.QueryRow("SELECT COUNT(*) FROM extractions WHERE reviewed = 0 AND missing_fields != '' AND missing_fields IS NOT NULL")
	if err := row.Scan(&stats.PendingReview); err != nil {
		return nil, err
	}

	// Missing fields are stored comma-separated; tally per field.
	rows, err = d.db.Query("SELECT missing_fields FROM extractions WHERE missing_fields != '' AND missing_fields IS NOT NULL")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var fields string
		if err := rows.Scan(&fields); err != nil {
			_ = rows.Close()
			return nil, err
		}
		for _, f := range strings.Split(fields, ",") {
			if f = strings.TrimSpace(f); f != "" {
				stats.TopMissingFields[f]++
			}
		}
	}
	_ = rows.Close()

	return stats, rows.Err()
}
