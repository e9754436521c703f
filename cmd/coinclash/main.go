// Command coinclash runs seeded AI-versus-AI combats and logs every event.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"coinclash/internal/config"
	"coinclash/internal/logging"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "coinclash: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	content, err := config.LoadContent(cfg.ContentPath)
	if err != nil {
		return err
	}
	sim, err := newSimulator(cfg, content, logger)
	if err != nil {
		return err
	}
	summary, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("simulation finished",
		zap.Int("combats", summary.Combats),
		zap.Int("victories", summary.Victories),
		zap.Int("defeats", summary.Defeats),
		zap.Int("turns", summary.Turns))
	return nil
}
