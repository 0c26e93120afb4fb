package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// ClickHouseConfig holds ClickHouse connection settings.
type ClickHouseConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// ClickHouseDB archives every extraction attempt, successful or not, for
// accuracy analytics across backends and document sources.
type ClickHouseDB struct {
	conn driver.Conn
}

// Conn returns the underlying connection for direct queries.
func (d *ClickHouseDB) Conn() driver.Conn {
	return d.conn
}

// OpenClickHouse opens a connection to ClickHouse.
func OpenClickHouse(ctx context.Context, cfg ClickHouseConfig) (*ClickHouseDB, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:     10 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Close closes the ClickHouse connection.
func (d *ClickHouseDB) Close() error {
	return d.conn.Close()
}

// CreateSchema creates the ClickHouse tables.
func (d *ClickHouseDB) CreateSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS scan_attempts (
		id              UInt64,
		scanned_at      DateTime64(3),
		backend         LowCardinality(String),
		mode            LowCardinality(String),
		success         UInt8,
		flight          LowCardinality(String),
		airline         LowCardinality(String),
		origin          LowCardinality(String),
		destination     LowCardinality(String),
		flight_date     String,
		raw_text        String,
		record_json     String,
		missing_fields  String,
		error_codes     String,
		confidence      Float32,
		review_priority UInt16,
		created_at      DateTime64(3) DEFAULT now64(3)
	)
	ENGINE = MergeTree()
	PARTITION BY toYYYYMM(scanned_at)
	ORDER BY (backend, scanned_at, id)
	SETTINGS index_granularity = 8192`

	if err := d.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	// Bloom filter index for raw text search (ignore error if it exists).
	_ = d.conn.Exec(ctx, `ALTER TABLE scan_attempts ADD INDEX IF NOT EXISTS idx_raw_text_bloom raw_text TYPE tokenbf_v1(32768, 3, 0) GRANULARITY 1`)

	return nil
}

// ScanAttempt is one archived extraction attempt.
type ScanAttempt struct {
	ID             uint64
	ScannedAt      time.Time
	Backend        string
	Mode           string
	Success        bool
	Flight         string
	Airline        string
	Origin         string
	Destination    string
	FlightDate     string
	RawText        string
	RecordJSON     string
	MissingFields  string
	ErrorCodes     string
	Confidence     float32
	ReviewPriority uint16
	CreatedAt      time.Time
}

// AttemptParams contains parameters for archiving one attempt.
type AttemptParams struct {
	ID             uint64
	ScannedAt      time.Time
	Backend        string
	Mode           string
	Success        bool
	Flight         string
	Airline        string
	Origin         string
	Destination    string
	FlightDate     string
	RawText        string
	Record         interface{}
	MissingFields  []string
	ErrorCodes     []string
	Confidence     float32
	ReviewPriority uint16
}

// InsertAttempt archives a single extraction attempt.
func (d *ClickHouseDB) InsertAttempt(ctx context.Context, p AttemptParams) error {
	recordJSON, err := json.Marshal(p.Record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	err = d.conn.Exec(ctx, `
		INSERT INTO scan_attempts (id, scanned_at, backend, mode, success, flight, airline, origin, destination, flight_date, raw_text, record_json, missing_fields, error_codes, confidence, review_priority)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.ScannedAt, p.Backend, p.Mode, boolToUInt8(p.Success), p.Flight, p.Airline,
		p.Origin, p.Destination, p.FlightDate, p.RawText, string(recordJSON),
		strings.Join(p.MissingFields, ","), strings.Join(p.ErrorCodes, ","),
		p.Confidence, p.ReviewPriority)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

// InsertAttemptBatch archives multiple attempts in one batch.
func (d *ClickHouseDB) InsertAttemptBatch(ctx context.Context, attempts []AttemptParams) error {
	if len(attempts) == 0 {
		return nil
	}

	batch, err := d.conn.PrepareBatch(ctx, `
		INSERT INTO scan_attempts (id, scanned_at, backend, mode, success, flight, airline, origin, destination, flight_date, raw_text, record_json, missing_fields, error_codes, confidence, review_priority)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range attempts {
		recordJSON, err := json.Marshal(p.Record)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		err = batch.Append(p.ID, p.ScannedAt, p.Backend, p.Mode, boolToUInt8(p.Success),
			p.Flight, p.Airline, p.Origin, p.Destination, p.FlightDate, p.RawText,
			string(recordJSON), strings.Join(p.MissingFields, ","),
			strings.Join(p.ErrorCodes, ","), p.Confidence, p.ReviewPriority)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

func boolToUInt8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// BackendAccuracy summarises extraction quality per recognizer backend.
type BackendAccuracy struct {
	Backend       string
	Attempts      uint64
	Successes     uint64
	AvgConfidence float64
}

// AccuracyByBackend aggregates success rate and mean confidence per backend
// over the given window.
func (d *ClickHouseDB) AccuracyByBackend(ctx context.Context, since time.Time) ([]BackendAccuracy, error) {
	rows, err := d.conn.Query(ctx, `
		SELECT backend, count() AS attempts, countIf(success = 1) AS successes, avg(confidence) AS avg_confidence
		FROM scan_attempts
		WHERE scanned_at >= ?
		GROUP BY backend
		ORDER BY attempts DESC
	`, since)
	if err != nil {
		return nil, fmt.Errorf("query accuracy: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []BackendAccuracy
	for rows.Next() {
		var a BackendAccuracy
		if err := rows.Scan(&a.Backend, &a.Attempts, &a.Successes, &a.AvgConfidence); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
