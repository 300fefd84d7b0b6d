// Package config loads server configuration from flags, a .env file and
// environment variables, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all server settings.
type Config struct {
	DBPath         string
	Addr           string
	SessionSecret  string
	RequestTimeout time.Duration
	Seed           bool
}

// Load parses flags for the serve subcommand, then falls back to
// environment variables (a .env file is loaded first if present).
func Load(args []string) (Config, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	var cfg Config
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVar(&cfg.DBPath, "db", "", "path to SQLite database file")
	fs.StringVar(&cfg.Addr, "addr", "", "listen address")
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "session signing key (prefer env)")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", 0, "per-request timeout")
	fs.BoolVar(&cfg.Seed, "seed", false, "insert demo data when initializing a new database")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.DBPath == "" {
		cfg.DBPath = os.Getenv("FOUNDLY_DB")
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "foundly.sqlite3"
	}

	if cfg.Addr == "" {
		cfg.Addr = os.Getenv("FOUNDLY_ADDR")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("FOUNDLY_SESSION_SECRET")
	}

	if cfg.RequestTimeout == 0 {
		if v := os.Getenv("FOUNDLY_REQUEST_TIMEOUT"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, errors.New("invalid FOUNDLY_REQUEST_TIMEOUT value")
			}
			cfg.RequestTimeout = d
		}
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 10 * time.Second
	}

	return cfg, nil
}
