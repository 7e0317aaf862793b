package main

import (
	"context"
	"database/sql"
	"flag"
	"strings"

	"github.com/rs/zerolog/log"

	"sleigh-route-service/internal/adapters/repositories"
	"sleigh-route-service/internal/config"
	"sleigh-route-service/internal/platform/db"
	"sleigh-route-service/internal/platform/logger"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogPretty)

	children := flag.String("children", cfg.Input.ChildrenPath, "children CSV file")
	articles := flag.String("articles", cfg.Input.ArticlesPath, "articles CSV file")
	specs := flag.String("specs", cfg.Input.SpecsPath, "sleigh specification CSV file")
	schemaOnly := flag.Bool("schema-only", false, "create the schema without seeding")
	flag.Parse()

	if strings.TrimSpace(cfg.Storage.DatabaseURL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, cfg.Storage.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer conn.Close()

	if err := initAndSeed(ctx, conn, *schemaOnly, *children, *articles, *specs); err != nil {
		log.Fatal().Err(err).Msg("dbtool failed")
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, schemaOnly bool, children, articles, specs string) error {
	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return err
	}
	log.Info().Msg("schema ready")

	if schemaOnly {
		return nil
	}

	in, err := repositories.LoadSeedFromCSV(children, articles, specs)
	if err != nil {
		return err
	}

	log.Info().Int("children", len(in.Children)).Int("articles", len(in.Articles)).Msg("seeding database")
	if err := repositories.Seed(ctx, conn, in); err != nil {
		return err
	}
	log.Info().Msg("seeding complete")

	return nil
}
