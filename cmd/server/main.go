package main

import (
	"log/slog"
	"os"

	"building-portal/internal/app"
	"building-portal/internal/logger"
)

func main() {
	logger.SetupDefault(os.Getenv("APP_ENV"))

	application, err := app.New()
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}
