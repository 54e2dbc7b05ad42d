package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stxscan/internal/accountwatch"
	"stxscan/internal/config"
	"stxscan/internal/handlers/cli"
	"stxscan/internal/infra/hiro"
	"stxscan/internal/infra/walletagent"
	"stxscan/internal/pkg/logger"
	"stxscan/internal/pkg/resilience/retry"
	"stxscan/internal/pkg/telemetry"
	"stxscan/internal/txcategory"
)

// serviceName identifies this process in telemetry exports.
const serviceName = "stxscan"

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			return err
		}
		defer shutdown(context.Background())
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return err
	}
	defer logger.Sync()

	hiroClient := hiro.NewClient()

	var wallet txcategory.Wallet
	if cfg.WalletAgentURL != "" {
		wallet = walletagent.NewClient(cfg.WalletAgentURL)
	}
	categories := txcategory.New(hiroClient, wallet)

	follower := accountwatch.New(hiroClient,
		accountwatch.WithPollInterval(time.Duration(cfg.PollIntervalSeconds)*time.Second),
		accountwatch.WithHeadLimit(cfg.PageLimit),
		accountwatch.WithRetry(retry.New(retry.WithAttempts(2))),
	)

	return cli.Run(ctx, cli.Deps{
		Ledger:     hiroClient,
		Categories: categories,
		Follower:   follower,

		DefaultNetwork:    cfg.Network,
		DefaultAPIBaseURL: cfg.APIBaseURL,
		CategoryContract:  cfg.CategoryContract,
		PageLimit:         cfg.PageLimit,
	})
}

func main() {
	if err := run(); err != nil {
		// run can fail before the logger is configured, so the error goes
		// to stderr directly.
		fmt.Fprintln(os.Stderr, "stxscan:", err)
		os.Exit(1)
	}
}
