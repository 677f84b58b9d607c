// Package config loads application configuration from environment
// variables.  A local .env file is honored via godotenv so development
// setups do not need to export anything by hand; real environments set the
// variables directly and the .env load is a no-op.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable; strings for identifiers and secrets,
// durations for anything time based.
type Config struct {
	Env           string        // application environment (dev, prod)
	Port          string        // HTTP port to listen on
	DBUser        string        // database username
	DBPass        string        // database password (optional)
	DBHost        string        // database host address
	DBPort        string        // database port number
	DBName        string        // database name
	SessionSecret string        // secret used to sign session tokens
	HoldTTL       time.Duration // soft hold lifetime
	SweepInterval time.Duration // how often the sweeper ticks
	Abandonment   time.Duration // pending booking abandonment window
}

// Load reads configuration from the environment.  Required variables are
// enforced by must(); optional ones fall back to sensible defaults.
func Load() Config {
	// Best effort: absent .env files are fine.
	_ = godotenv.Load()

	return Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"),
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		SessionSecret: must("SESSION_SECRET"),
		HoldTTL:       minutes("HOLD_TTL_MIN", 5),
		SweepInterval: minutes("SWEEP_INTERVAL_MIN", 15),
		Abandonment:   minutes("ABANDONMENT_MIN", 45),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// minutes reads an integer minute count with a default.
func minutes(key string, def int) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(def) * time.Minute
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Fatalf("invalid minute count for %s: %q", key, v)
	}
	return time.Duration(n) * time.Minute
}
