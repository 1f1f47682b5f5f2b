// Package main runs the EduPay tuition ledger API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/go-petr/edupay/cmd/httpserver"
	"github.com/go-petr/edupay/internal/accountrepo"
	"github.com/go-petr/edupay/internal/middleware"
	"github.com/go-petr/edupay/pkg/configpkg"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	store, db, err := accountrepo.Open(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot open account store")
	}

	server, err := httpserver.New(store, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	srv := &http.Server{
		Addr:              config.ServerAddress,
		Handler:           server,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("address", config.ServerAddress).Bool("demo", config.DemoMode).Msg("EDUPAY API SERVER HAS STARTED")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("cannot start server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}

	if err := server.Close(); err != nil {
		logger.Error().Err(err).Msg("cannot close server connections")
	}

	if db != nil {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("cannot close database")
		}
	}

	logger.Info().Msg("EDUPAY API SERVER HAS STOPPED")
}
