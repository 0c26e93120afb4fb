package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"boardingpass_parser/internal/storage"
	"boardingpass_parser/pkg/logger"
)

// Config is the scan-worker TOML configuration.
type Config struct {
	NATS     NATSConfig     `toml:"nats"`
	Pipeline PipelineConfig `toml:"pipeline"`
	SQLite   SQLiteConfig   `toml:"sqlite"`
	Storage  StorageConfig  `toml:"storage"`
	Log      logger.Config  `toml:"log"`
}

type NATSConfig struct {
	URL     string `toml:"url"`
	Subject string `toml:"subject"`
	Queue   string `toml:"queue"`
}

type PipelineConfig struct {
	Mode            string  `toml:"mode"`             // lenient or strict
	FilterThreshold float64 `toml:"filter_threshold"` // 0 means the default
}

type SQLiteConfig struct {
	Path string `toml:"path"`
}

// StorageConfig gates the optional shared stores. The worker always logs to
// SQLite; PostgreSQL and ClickHouse are for multi-worker deployments.
type StorageConfig struct {
	Enabled    bool                     `toml:"enabled"`
	ClickHouse storage.ClickHouseConfig `toml:"clickhouse"`
	Postgres   storage.PostgresConfig   `toml:"postgres"`
}

// DefaultConfig returns a local development configuration.
func DefaultConfig() Config {
	return Config{
		NATS: NATSConfig{
			URL:     "nats://localhost:4222",
			Subject: "boardingpass.scan",
			Queue:   "scan-workers",
		},
		Pipeline: PipelineConfig{Mode: "lenient"},
		SQLite:   SQLiteConfig{Path: "results.db"},
		Storage: StorageConfig{
			ClickHouse: storage.ClickHouseConfig{
				Host:     "localhost",
				Port:     9000,
				Database: "boardingpass",
				User:     "default",
			},
			Postgres: storage.PostgresConfig{
				Host:     "localhost",
				Port:     5432,
				Database: "boardingpass",
				User:     "boardingpass",
				Password: "boardingpass",
			},
		},
		Log: logger.Config{Level: "info", Format: "json"},
	}
}

// LoadConfig reads a TOML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Pipeline.Mode != "lenient" && cfg.Pipeline.Mode != "strict" {
		return cfg, fmt.Errorf("invalid pipeline mode %q", cfg.Pipeline.Mode)
	}
	return cfg, nil
}
