// ABOUTME: Entry point for lumenote-syncd, the delta sync server.
// ABOUTME: Serves the sync exchange endpoint over HTTP with graceful shutdown.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/lumenote/lumenote/internal/server"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment variables")
	}

	dbPath := os.Getenv("LUMENOTE_SYNCD_DB")
	if dbPath == "" {
		dbPath = "lumenote-syncd.db"
	}
	port := os.Getenv("LUMENOTE_SYNCD_PORT")
	if port == "" {
		port = "8787"
	}
	requiredKey := os.Getenv("LUMENOTE_SYNCD_KEY")
	if requiredKey == "" {
		log.Warn().Msg("LUMENOTE_SYNCD_KEY not set: any sync key is accepted as its own partition")
	}

	storage, err := server.OpenStorage(dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", dbPath).Msg("open storage")
	}
	defer func() { _ = storage.Close() }()

	srv := server.New(storage, requiredKey, log)
	httpSrv := &http.Server{
		Addr:              ":" + port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", port).Str("db", dbPath).Msg("sync server starting")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
