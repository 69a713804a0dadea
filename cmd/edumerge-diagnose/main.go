package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"edumerge/internal/config"
	"edumerge/internal/diagnostics"
	"edumerge/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.FromEnv()
	log := logger.NewConsoleLogger(cfg.LogLevel)

	report := diagnostics.NewChecker(cfg, log).Run(ctx)
	fmt.Print(diagnostics.Render(report))

	if !report.OK() {
		return 1
	}
	return 0
}
