package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/evercare/planhub/internal/buildinfo"
	"github.com/evercare/planhub/internal/client/cli"
	"github.com/evercare/planhub/internal/client/config"
	"github.com/evercare/planhub/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "starting cli", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}
