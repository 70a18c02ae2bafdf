// cmd/migrate applies the schema patches (and optionally the demo seed) and exits.
// Uso: go run ./cmd/migrate [-seed=false]
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/weapub/sj-calculadora/internal/config"
	"github.com/weapub/sj-calculadora/internal/infra"
	"github.com/weapub/sj-calculadora/internal/logging"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	seed := flag.Bool("seed", cfg.SeedDemo, "insert demo suppliers and products into an empty database")
	flag.Parse()

	logging.Setup(os.Stderr, cfg.IsProduction(), cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := infra.NewDatabase(ctx, cfg.DatabaseURL, infra.DBOptions{LogSQL: cfg.DBLogSQL})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer func() { _ = infra.Close(db) }()

	if err := infra.EnsureSchema(ctx, db, infra.SchemaOptions{SeedDemo: *seed}); err != nil {
		log.Error().Err(err).Msg("schema update failed")
		_ = infra.Close(db)
		os.Exit(1)
	}
	log.Info().Bool("seed", *seed).Msg("schema up to date")
}
