// Package main provides the scan-worker service.
//
// The worker consumes raw boarding pass documents from a NATS queue
// subscription, runs the extraction pipeline, and persists the outcome:
// every attempt goes to the local SQLite log (which feeds the review
// queue), and when the shared stores are enabled, successful records are
// upserted into PostgreSQL and every attempt is archived in ClickHouse.
// When a request carries a reply subject, the extraction result is sent
// back as JSON.
//
// Usage:
//
//	scan-worker [-config worker.toml]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"

	"boardingpass_parser/internal/pipeline"
	"boardingpass_parser/internal/recognize"
	"boardingpass_parser/internal/storage"
	"boardingpass_parser/pkg/logger"
)

func main() {
	configPath := flag.String("config", envOrDefault("SCAN_WORKER_CONFIG", ""), "TOML config file")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	log = log.Named("scan-worker")

	w, err := newWorker(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("worker setup")
	}
	defer w.close()

	if err := w.run(); err != nil {
		log.WithError(err).Fatal("worker stopped")
	}
}

type worker struct {
	cfg      Config
	log      *logger.Logger
	pipe     *pipeline.Pipeline
	db       *storage.DB
	ch       *storage.ClickHouseDB // nil unless storage.enabled
	pg       *storage.PostgresDB   // nil unless storage.enabled
	nc       *nats.Conn
	attempts atomic.Uint64
}

func newWorker(cfg Config, log *logger.Logger) (*worker, error) {
	db, err := storage.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("open result database: %w", err)
	}

	w := &worker{cfg: cfg, log: log, db: db}

	w.pipe = pipeline.New(recognize.NewRegistry(
		recognize.NewPlainText(),
		recognize.NewPDFText(),
		recognize.NewTesseract(),
	), pipeline.Options{
		Mode:            pipeline.Mode(cfg.Pipeline.Mode),
		FilterThreshold: cfg.Pipeline.FilterThreshold,
	}, log.Logger)

	if cfg.Storage.Enabled {
		if err := w.openStores(); err != nil {
			w.close()
			return nil, err
		}
	}

	return w, nil
}

// openStores connects the shared ClickHouse attempt archive and PostgreSQL
// flight record store and makes sure their schemas exist.
func (w *worker) openStores() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ch, err := storage.OpenClickHouse(ctx, w.cfg.Storage.ClickHouse)
	if err != nil {
		return fmt.Errorf("clickhouse: %w", err)
	}
	if err := ch.CreateSchema(ctx); err != nil {
		_ = ch.Close()
		return fmt.Errorf("clickhouse schema: %w", err)
	}
	w.ch = ch

	pg, err := storage.OpenPostgres(ctx, w.cfg.Storage.Postgres)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	if err := pg.CreateSchema(ctx); err != nil {
		pg.Close()
		return fmt.Errorf("postgres schema: %w", err)
	}
	w.pg = pg
	return nil
}

func (w *worker) close() {
	if w.nc != nil {
		w.nc.Close()
	}
	if w.ch != nil {
		_ = w.ch.Close()
	}
	if w.pg != nil {
		w.pg.Close()
	}
	_ = w.db.Close()
}

func (w *worker) run() error {
	nc, err := nats.Connect(w.cfg.NATS.URL,
		nats.Name("boardingpass-scan-worker"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return fmt.Errorf("connect nats: %w", err)
	}
	w.nc = nc

	sub, err := nc.QueueSubscribe(w.cfg.NATS.Subject, w.cfg.NATS.Queue, w.handleScan)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	w.log.Info("worker started",
		logger.String("subject", w.cfg.NATS.Subject),
		logger.String("queue", w.cfg.NATS.Queue),
		logger.String("mode", w.cfg.Pipeline.Mode))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	w.log.Info("draining subscription")
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("drain: %w", err)
	}
	return nil
}

// handleScan processes one document. The message payload is the raw
// document bytes; a Content-Type header, when present, declares the MIME
// type, otherwise it is sniffed from the payload.
func (w *worker) handleScan(msg *nats.Msg) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	scannedAt := time.Now()
	res := w.pipe.ParseDocument(ctx, msg.Data, msg.Header.Get("Content-Type"))

	w.store(ctx, scannedAt, msg.Data, res)

	if msg.Reply != "" {
		body, err := json.Marshal(res)
		if err == nil {
			err = msg.Respond(body)
		}
		if err != nil {
			w.log.WithError(err).Warn("reply failed")
		}
	}
}

func (w *worker) store(ctx context.Context, scannedAt time.Time, raw []byte, res pipeline.Result) {
	params := storage.InsertParams{
		ScannedAt:      scannedAt,
		Mode:           w.cfg.Pipeline.Mode,
		RawText:        string(raw),
		Record:         res.Record,
		MissingFields:  res.RequiresManualEntry,
		ReviewPriority: res.ReviewPriority,
	}
	if res.Record != nil {
		params.Backend = res.Record.Meta.Backend
		params.Flight = res.Record.FlightNumber
		params.Airline = res.Record.Airline
		params.Origin = res.Record.Origin
		params.Destination = res.Record.Destination
		params.FlightDate = res.Record.FlightDate
		params.Confidence = res.Record.Meta.Confidence
	}

	id, err := w.db.Insert(params)
	if err != nil {
		w.log.WithError(err).Error("store extraction")
	}
	w.log.Debug("extraction stored",
		logger.Int64("id", id),
		logger.Bool("success", res.Success),
		logger.Int("attempt", int(w.attempts.Add(1))))

	if w.ch == nil {
		return
	}

	if res.Success && res.Record != nil {
		if err := w.pg.UpsertFlightRecord(ctx, storage.FlightRecordFromDraft(res.Record)); err != nil {
			w.log.WithError(err).Error("upsert flight record")
		}
	}

	codes := make([]string, 0, len(res.Errors))
	for _, e := range res.Errors {
		codes = append(codes, string(e.Code))
	}
	attempt := storage.AttemptParams{
		ID:             uint64(scannedAt.UnixNano()),
		ScannedAt:      scannedAt,
		Backend:        params.Backend,
		Mode:           params.Mode,
		Success:        res.Success,
		Flight:         params.Flight,
		Airline:        params.Airline,
		Origin:         params.Origin,
		Destination:    params.Destination,
		FlightDate:     params.FlightDate,
		RawText:        params.RawText,
		Record:         res.Record,
		MissingFields:  res.RequiresManualEntry,
		ErrorCodes:     codes,
		Confidence:     float32(params.Confidence),
		ReviewPriority: uint16(res.ReviewPriority),
	}
	if err := w.ch.InsertAttempt(ctx, attempt); err != nil {
		w.log.WithError(err).Error("archive attempt")
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
