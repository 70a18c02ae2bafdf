package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/weapub/sj-calculadora/internal/config"
	"github.com/weapub/sj-calculadora/internal/infra"
	"github.com/weapub/sj-calculadora/internal/logging"
	"github.com/weapub/sj-calculadora/internal/router"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(os.Stderr, cfg.IsProduction(), cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := infra.NewDatabase(ctx, cfg.DatabaseURL, infra.DBOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		LogSQL:          cfg.DBLogSQL,
	})
	if err != nil {
		cancel()
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	// Schema must be in place before the first request is accepted.
	err = infra.EnsureSchema(ctx, db, infra.SchemaOptions{SeedDemo: cfg.SeedDemo})
	cancel()
	if err != nil {
		_ = infra.Close(db)
		log.Fatal().Err(err).Msg("failed to prepare schema")
	}

	r := router.New(cfg, db)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("Calculadora backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	if err := infra.Close(db); err != nil {
		log.Error().Err(err).Msg("closing database pool")
	}
	log.Info().Msg("server exited")
}
