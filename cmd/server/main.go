/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the book ledger server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (.env, environment, flags)
  2. Initialize the document store (json file or SQLite)
  3. Create the ledger engine and API handler
  4. Configure the HTTP router
  5. Start the server with graceful shutdown

CONFIGURATION:
  PORT / -port            HTTP server port (default: 8080)
  STORE / -store          "json" (flat file) or "sqlite"
  DATA_PATH / -data       snapshot file path for the json store
  DB_PATH / -db           database path for the sqlite store
                          (":memory:" for in-memory)
  LOG_PRETTY / -log-pretty  console log output instead of JSON

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the store
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - store/jsonfile, store/sqlite: Document store implementations
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/warp/bookledger/api"
	"github.com/warp/bookledger/ledger"
	"github.com/warp/bookledger/store/jsonfile"
	"github.com/warp/bookledger/store/sqlite"
)

func main() {
	cfg := LoadConfig()

	// Logger
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	log.Info().
		Int("port", cfg.Port).
		Str("store", cfg.Store).
		Msg("starting book ledger server")

	// Document store
	var (
		store  ledger.DocumentStore
		closer func() error
	)
	switch cfg.Store {
	case "sqlite":
		s, err := sqlite.New(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize sqlite store")
		}
		store, closer = s, s.Close
	case "json":
		s, err := jsonfile.New(cfg.DataPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize json store")
		}
		store, closer = s, func() error { return nil }
	default:
		log.Fatal().Str("store", cfg.Store).Msg("unknown store backend")
	}
	defer closer()

	// Engine and router
	engine := ledger.New(store, log.Logger)
	handler := api.NewHandler(engine, log.Logger)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("listening on http://localhost:%d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}
