package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/campusworks/records-api/internal/seed"
	"github.com/campusworks/records-api/pkg/config"
	"github.com/campusworks/records-api/pkg/database"
	"github.com/campusworks/records-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := seed.Run(ctx, db, logr, adminPassword); err != nil {
		logr.Sugar().Fatalw("seed failed", "error", err)
	}
}
