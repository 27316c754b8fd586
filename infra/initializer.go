package infra

import (
	"crumbs/config"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
)

// Initialize installs the process-wide JSON logger and selects the gin mode for the environment.
func Initialize(cfg *config.Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	return logger
}
