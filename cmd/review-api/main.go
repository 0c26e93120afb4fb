// Package main provides the review-api server.
//
// This is the REST API over the extraction result log: operators pull the
// manual review queue, submit corrections, and query extraction history.
// Corrections are validated with the same rules as scanned values; accepted
// corrections with a complete set of critical fields are upserted into the
// PostgreSQL flight record store.
//
// Usage:
//
//	review-api [options]
//
// Options:
//
//	-db PATH            SQLite result database (default: results.db, env: BOARDINGPASS_DB)
//	-pg-host HOST       PostgreSQL host (default: localhost, env: POSTGRES_HOST)
//	-pg-port PORT       PostgreSQL port (default: 5432, env: POSTGRES_PORT)
//	-pg-database DB     PostgreSQL database (default: boardingpass, env: POSTGRES_DATABASE)
//	-pg-user USER       PostgreSQL user (default: boardingpass, env: POSTGRES_USER)
//	-pg-password PASS   PostgreSQL password (default: boardingpass, env: POSTGRES_PASSWORD)
//	-no-postgres        Run without the flight record store
//	-port N             HTTP port (default: 8081)
//	-auth               Enable API key authentication
//	-api-keys KEYS      Comma-separated list of valid API keys
//	-log-level LEVEL    debug, info, warn, error (default: info)
//
// Authentication:
//
//	When -auth is enabled, requests must include an API key via:
//	  - X-API-Key header
//	  - Authorization: Bearer <key> header
//	  - ?api_key=<key> query parameter
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"boardingpass_parser/internal/api"
	"boardingpass_parser/internal/storage"
	"boardingpass_parser/pkg/logger"
)

func main() {
	dbPath := flag.String("db", envOrDefault("BOARDINGPASS_DB", "results.db"), "SQLite result database")

	pgHost := flag.String("pg-host", envOrDefault("POSTGRES_HOST", "localhost"), "PostgreSQL host")
	pgPort := flag.Int("pg-port", envOrDefaultInt("POSTGRES_PORT", 5432), "PostgreSQL port")
	pgUser := flag.String("pg-user", envOrDefault("POSTGRES_USER", "boardingpass"), "PostgreSQL user")
	pgPassword := flag.String("pg-password", envOrDefault("POSTGRES_PASSWORD", "boardingpass"), "PostgreSQL password")
	pgDB := flag.String("pg-database", envOrDefault("POSTGRES_DATABASE", "boardingpass"), "PostgreSQL database")
	noPostgres := flag.Bool("no-postgres", false, "Run without the flight record store")

	port := flag.Int("port", 8081, "HTTP port for API server")
	authEnabled := flag.Bool("auth", false, "Enable API key authentication")
	apiKeys := flag.String("api-keys", "", "Comma-separated list of valid API keys (when auth enabled)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")

	flag.Parse()

	log, err := logger.New(logger.Config{Level: *logLevel, Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	log = log.Named("review-api")

	db, err := storage.Open(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("opening result database")
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()

	var pg *storage.PostgresDB
	if !*noPostgres {
		pg, err = storage.OpenPostgres(ctx, storage.PostgresConfig{
			Host:     *pgHost,
			Port:     *pgPort,
			Database: *pgDB,
			User:     *pgUser,
			Password: *pgPassword,
		})
		if err != nil {
			log.WithError(err).Fatal("opening PostgreSQL")
		}
		defer pg.Close()

		if err := pg.CreateSchema(ctx); err != nil {
			log.WithError(err).Fatal("creating PostgreSQL schema")
		}
	}

	srv := api.NewServer(db, pg, api.Config{
		Port:        *port,
		AuthEnabled: *authEnabled,
		APIKeys:     splitKeys(*apiKeys),
	}, log)

	if err := srv.Run(); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func splitKeys(s string) []string {
	if s == "" {
		return nil
	}
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}
