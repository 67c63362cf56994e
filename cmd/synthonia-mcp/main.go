// Command synthonia-mcp serves the formula tools over stdio. The HTTP server
// mounts the same tools at /mcp.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/garrettladley/synthonia/internal/mcp"
	"github.com/garrettladley/synthonia/internal/xslog"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	// stdout carries the protocol
	logger := xslog.NewLoggerFromEnv(os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = xslog.WithLogger(ctx, logger)

	logger.InfoContext(ctx, "starting mcp server", xslog.Version())
	if err := mcp.NewServer(nil).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.ErrorContext(ctx, "mcp server stopped", xslog.Error(err))
		os.Exit(1)
	}
}
