package main

import (
	"crumbs/config"
	"crumbs/infra"
	"log/slog"
	"os"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := infra.Initialize(cfg)

	db, err := infra.SetupDB(cfg)
	if err != nil {
		logger.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := infra.Migrate(db); err != nil {
		logger.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tokenDB, err := infra.SetupTokenDB(cfg.TokenDBPath)
	if err != nil {
		logger.Error("failed to open token blacklist database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := infra.MigrateTokens(tokenDB); err != nil {
		logger.Error("failed to migrate token blacklist database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("migration completed")
}
