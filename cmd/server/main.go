package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/evercare/planhub/internal/buildinfo"
	"github.com/evercare/planhub/internal/logging"
	"github.com/evercare/planhub/internal/server"
	"github.com/evercare/planhub/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
