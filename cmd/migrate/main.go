package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/flexprice/paystack-gateway/internal/config"
	"github.com/flexprice/paystack-gateway/internal/logger"
	"github.com/flexprice/paystack-gateway/internal/postgres"
)

func main() {
	// Parse command line flags
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	flag.Parse()

	if *dryRun {
		fmt.Println(strings.Join(postgres.Schema, ";\n\n") + ";")
		return
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)

	db, err := postgres.NewDB(cfg, logger)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Running database migrations...")
	if err := db.Migrate(ctx); err != nil {
		logger.Fatalw("Failed to create schema resources", "error", err)
	}
	logger.Info("Migration completed successfully")
}
