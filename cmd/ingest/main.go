package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock_analytics/internal/app/config"
	"stock_analytics/internal/app/di"
	"stock_analytics/internal/app/scheduler"
	seriesadapters "stock_analytics/internal/feature/series/adapters"
	"stock_analytics/internal/feature/series/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	cron := flag.Bool("cron", false, "stay running and ingest on ingest.cron instead of once")
	timeout := flag.Duration("timeout", 30*time.Minute, "deadline of a one-shot run")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slog.SetDefault(di.NewLogger(cfg))

	if cfg.DB.Driver == "" {
		slog.Error("ingest needs db.driver")
		os.Exit(1)
	}
	gdb, err := di.OpenDatabase(cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := di.OpenRedis(ctx, cfg)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	// The ingest loop owns the quota, so the provider itself is not throttled.
	market, err := di.NewUpstreamMarket(cfg, nil)
	if err != nil {
		slog.Error("failed to build upstream provider", "error", err)
		os.Exit(1)
	}
	symbolUC := usecase.NewSymbolUsecase(seriesadapters.NewSymbolRepository(gdb))
	ingestUC := usecase.NewIngestUsecase(market, di.NewBarWriter(cfg, rdb, gdb), di.NewProviderLimiter(cfg), cfg.Lookback())
	job := di.NewIngestJob(symbolUC, ingestUC, cfg.Ingest.Markets)

	if !*cron {
		runCtx, cancel := context.WithTimeout(ctx, *timeout)
		defer cancel()
		if err := job(runCtx); err != nil {
			slog.Error("ingest failed", "error", err)
			os.Exit(1)
		}
		slog.Info("ingest ok")
		return
	}

	sched := scheduler.New(ctx, cfg.Location())
	if err := sched.Register(di.IngestTask, cfg.Ingest.Cron, job); err != nil {
		slog.Error("failed to schedule ingest", "error", err)
		os.Exit(1)
	}
	sched.Start()
	slog.Info("ingest scheduled", "cron", cfg.Ingest.Cron, "location", cfg.Location().String())

	<-ctx.Done()
	sched.Stop()
}
