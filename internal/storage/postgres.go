package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"boardingpass_parser/internal/boardingpass"
)

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

// PostgresDB wraps a PostgreSQL connection pool holding the deduplicated
// flight records extracted from passes.
type PostgresDB struct {
	pool *pgxpool.Pool
}

// OpenPostgres opens a connection pool to PostgreSQL.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*PostgresDB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

// Close closes the PostgreSQL connection pool.
func (d *PostgresDB) Close() {
	d.pool.Close()
}

// Pool returns the underlying pool for direct queries.
func (d *PostgresDB) Pool() *pgxpool.Pool {
	return d.pool
}

// CreateSchema creates the PostgreSQL tables.
func (d *PostgresDB) CreateSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS flight_records (
		id              SERIAL PRIMARY KEY,
		flight_number   TEXT NOT NULL,
		airline         TEXT,
		airline_name    TEXT,
		origin          TEXT NOT NULL,
		destination     TEXT,
		flight_date     TEXT NOT NULL,
		departure_utc   TIMESTAMPTZ,
		departure_tz    TEXT,
		arrival_utc     TIMESTAMPTZ,
		arrival_tz      TEXT,
		boarding_utc    TIMESTAMPTZ,
		boarding_tz     TEXT,
		gate            TEXT,
		terminal        TEXT,
		seat            TEXT,
		passenger_name  TEXT,
		confirmation    TEXT,
		confidence      DOUBLE PRECISION,
		first_seen      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_seen       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		scan_count      INTEGER NOT NULL DEFAULT 1,
		UNIQUE(flight_number, flight_date, origin)
	);

	CREATE INDEX IF NOT EXISTS idx_flight_records_date ON flight_records(flight_date);
	CREATE INDEX IF NOT EXISTS idx_flight_records_confirmation ON flight_records(confirmation);
	CREATE INDEX IF NOT EXISTS idx_flight_records_passenger ON flight_records(passenger_name);
	`

	if _, err := d.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// FlightRecord is a deduplicated flight record row.
type FlightRecord struct {
	ID            int
	FlightNumber  string
	Airline       string
	AirlineName   string
	Origin        string
	Destination   string
	FlightDate    string
	DepartureUTC  *time.Time
	DepartureTZ   string
	ArrivalUTC    *time.Time
	ArrivalTZ     string
	BoardingUTC   *time.Time
	BoardingTZ    string
	Gate          string
	Terminal      string
	Seat          string
	PassengerName string
	Confirmation  string
	Confidence    float64
	FirstSeen     time.Time
	LastSeen      time.Time
	ScanCount     int
}

// FlightRecordFromDraft flattens a pipeline draft into a row.
func FlightRecordFromDraft(draft *boardingpass.FlightRecordDraft) FlightRecord {
	fr := FlightRecord{
		FlightNumber:  draft.FlightNumber,
		Airline:       draft.Airline,
		AirlineName:   draft.AirlineName,
		Origin:        draft.Origin,
		Destination:   draft.Destination,
		FlightDate:    draft.FlightDate,
		Gate:          draft.Gate,
		Terminal:      draft.Terminal,
		Seat:          draft.Seat,
		PassengerName: draft.PassengerName,
		Confirmation:  draft.Confirmation,
		Confidence:    draft.Meta.Confidence,
	}
	if z := draft.Departure; z != nil {
		t := z.UTC
		fr.DepartureUTC, fr.DepartureTZ = &t, z.Timezone
	}
	if z := draft.Arrival; z != nil {
		t := z.UTC
		fr.ArrivalUTC, fr.ArrivalTZ = &t, z.Timezone
	}
	if z := draft.Boarding; z != nil {
		t := z.UTC
		fr.BoardingUTC, fr.BoardingTZ = &t, z.Timezone
	}
	return fr
}

// UpsertFlightRecord inserts or updates a flight record. Re-scanning the
// same pass bumps scan_count and fills in fields the earlier scan missed.
func (d *PostgresDB) UpsertFlightRecord(ctx context.Context, fr FlightRecord) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO flight_records (flight_number, airline, airline_name, origin, destination, flight_date,
			departure_utc, departure_tz, arrival_utc, arrival_tz, boarding_utc, boarding_tz,
			gate, terminal, seat, passenger_name, confirmation, confidence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (flight_number, flight_date, origin) DO UPDATE SET
			destination = COALESCE(NULLIF(EXCLUDED.destination, ''), flight_records.destination),
			departure_utc = COALESCE(EXCLUDED.departure_utc, flight_records.departure_utc),
			departure_tz = COALESCE(NULLIF(EXCLUDED.departure_tz, ''), flight_records.departure_tz),
			arrival_utc = COALESCE(EXCLUDED.arrival_utc, flight_records.arrival_utc),
			arrival_tz = COALESCE(NULLIF(EXCLUDED.arrival_tz, ''), flight_records.arrival_tz),
			boarding_utc = COALESCE(EXCLUDED.boarding_utc, flight_records.boarding_utc),
			boarding_tz = COALESCE(NULLIF(EXCLUDED.boarding_tz, ''), flight_records.boarding_tz),
			gate = COALESCE(NULLIF(EXCLUDED.gate, ''), flight_records.gate),
			terminal = COALESCE(NULLIF(EXCLUDED.terminal, ''), flight_records.terminal),
			seat = COALESCE(NULLIF(EXCLUDED.seat, ''), flight_records.seat),
			passenger_name = COALESCE(NULLIF(EXCLUDED.passenger_name, ''), flight_records.passenger_name),
			confirmation = COALESCE(NULLIF(EXCLUDED.confirmation, ''), flight_records.confirmation),
			confidence = GREATEST(EXCLUDED.confidence, flight_records.confidence),
			last_seen = NOW(),
			scan_count = flight_records.scan_count + 1
	`, fr.FlightNumber, fr.Airline, fr.AirlineName, fr.Origin, fr.Destination, fr.FlightDate,
		fr.DepartureUTC, fr.DepartureTZ, fr.ArrivalUTC, fr.ArrivalTZ, fr.BoardingUTC, fr.BoardingTZ,
		fr.Gate, fr.Terminal, fr.Seat, fr.PassengerName, fr.Confirmation, fr.Confidence)
	return err
}

// GetFlightRecord retrieves a flight record by its natural key. Returns nil
// when no row matches.
func (d *PostgresDB) GetFlightRecord(ctx context.Context, flightNumber, flightDate, origin string) (*FlightRecord, error) {
	var fr FlightRecord
	err := d.pool.QueryRow(ctx, `
		SELECT id, flight_number, airline, airline_name, origin, destination, flight_date,
			departure_utc, departure_tz, arrival_utc, arrival_tz, boarding_utc, boarding_tz,
			gate, terminal, seat, passenger_name, confirmation, confidence,
			first_seen, last_seen, scan_count
		FROM flight_records WHERE flight_number = $1 AND flight_date = $2 AND origin = $3
	`, flightNumber, flightDate, origin).Scan(
		&fr.ID, &fr.FlightNumber, &fr.Airline, &fr.AirlineName, &fr.Origin, &fr.Destination, &fr.FlightDate,
		&fr.DepartureUTC, &fr.DepartureTZ, &fr.ArrivalUTC, &fr.ArrivalTZ, &fr.BoardingUTC, &fr.BoardingTZ,
		&fr.Gate, &fr.Terminal, &fr.Seat, &fr.PassengerName, &fr.Confirmation, &fr.Confidence,
		&fr.FirstSeen, &fr.LastSeen, &fr.ScanCount)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fr, nil
}

// ListFlightRecords retrieves records for a date, most recently seen first.
func (d *PostgresDB) ListFlightRecords(ctx context.Context, flightDate string, limit int) ([]FlightRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := d.pool.Query(ctx, `
		SELECT id, flight_number, airline, airline_name, origin, destination, flight_date,
			departure_utc, departure_tz, arrival_utc, arrival_tz, boarding_utc, boarding_tz,
			gate, terminal, seat, passenger_name, confirmation, confidence,
			first_seen, last_seen, scan_count
		FROM flight_records WHERE flight_date = $1
		ORDER BY last_seen DESC LIMIT $2
	`, flightDate, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FlightRecord
	for rows.Next() {
		var fr FlightRecord
		if err := rows.Scan(
			&fr.ID, &fr.FlightNumber, &fr.Airline, &fr.AirlineName, &fr.Origin, &fr.Destination, &fr.FlightDate,
			&fr.DepartureUTC, &fr.DepartureTZ, &fr.ArrivalUTC, &fr.ArrivalTZ, &fr.BoardingUTC, &fr.BoardingTZ,
			&fr.Gate, &fr.Terminal, &fr.Seat, &fr.PassengerName, &fr.Confirmation, &fr.Confidence,
			&fr.FirstSeen, &fr.LastSeen, &fr.ScanCount); err != nil {
			return nil, err
		}
		out = append(out, fr)
	}
	return out, rows.Err()
}
