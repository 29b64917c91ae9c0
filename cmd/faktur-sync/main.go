package main

import (
	"context"
	"os"
	"time"

	"faktur/internal/cli"
	"faktur/internal/core"
	applog "faktur/internal/log"
	"faktur/internal/syncer"
)

// faktur-sync runs one reconciliation cycle against the remote store:
// pull the remote collection, merge it with local history, persist the
// merged result, then push it back.
func main() {
	cli.LoadEnvFile()

	cfg := cli.LoadAndValidateConfig(applog.New(applog.Config{
		Level: applog.ParseLevel("info"),
	}))
	logger := cli.SetupLogger(cfg, applog.ComponentSyncer)

	deviceID := cli.InitDeviceID(logger, cfg)
	store := cli.InitHistory(cfg)
	numbers := cli.InitNumbering(cfg)

	client := syncer.NewClient(cfg.RemoteAPIBase)
	service := syncer.NewService(store, client, deviceID, logger,
		syncer.WithPushTimeout(cfg.PushTimeout))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	logger.Info("Starting sync cycle",
		"device_id", deviceID,
		"remote", cfg.RemoteAPIBase)

	records := service.Load(ctx)

	if err := service.PushNow(ctx); err != nil {
		logger.Error("Push failed", "error", err, "records", len(records))
		os.Exit(1)
	}

	stats := core.ComputeStats(records)
	logger.Info("Sync cycle complete",
		"records", stats.Count,
		"with_pdf", stats.WithPDF,
		"total_revenue", core.FormatAmount(stats.TotalRevenue),
		"next_invoice_number", numbers.Peek())
}
