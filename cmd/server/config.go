package main

import (
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the server configuration. Values come from a .env file (if
// present), then environment variables, then command-line flags, in
// increasing precedence.
type Config struct {
	Port      int    // HTTP server port
	Store     string // "json" or "sqlite"
	DataPath  string // snapshot file path (json store)
	DBPath    string // database path (sqlite store)
	LogPretty bool   // console writer instead of raw JSON logs
}

// LoadConfig resolves configuration from .env, environment, and flags.
func LoadConfig() Config {
	// Missing .env is fine; env vars and flags still apply.
	_ = godotenv.Load()

	cfg := Config{
		Port:      envInt("PORT", 8080),
		Store:     envStr("STORE", "json"),
		DataPath:  envStr("DATA_PATH", "./data/bookledger.json"),
		DBPath:    envStr("DB_PATH", "./data/bookledger.db"),
		LogPretty: envBool("LOG_PRETTY", true),
	}

	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.StringVar(&cfg.Store, "store", cfg.Store, `document store backend ("json" or "sqlite")`)
	flag.StringVar(&cfg.DataPath, "data", cfg.DataPath, "snapshot file path (json store)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "database path (sqlite store)")
	flag.BoolVar(&cfg.LogPretty, "log-pretty", cfg.LogPretty, "human-readable log output")
	flag.Parse()

	return cfg
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
