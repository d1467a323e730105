package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"pr-review-bot/internal/app"
	"pr-review-bot/internal/config"
	"pr-review-bot/internal/observability"
)

func main() {

	cfg := config.Load()
	logger := observability.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	server := app.NewServer(cfg, logger)

	if err := server.Start(ctx); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}
