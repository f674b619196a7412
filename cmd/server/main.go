package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"stock_analytics/internal/app/config"
	"stock_analytics/internal/app/di"
	"stock_analytics/internal/app/router"
	"stock_analytics/internal/app/scheduler"
	analyticshandler "stock_analytics/internal/feature/analytics/transport/handler"
	seriesadapters "stock_analytics/internal/feature/series/adapters"
	serieshandler "stock_analytics/internal/feature/series/transport/handler"
	seriesusecase "stock_analytics/internal/feature/series/usecase"
	platformhandler "stock_analytics/internal/platform/http/handler"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slog.SetDefault(di.NewLogger(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db (optional)
	gdb, err := di.OpenDatabase(cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis (optional)
	rdb := di.OpenRedis(ctx, cfg)
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Repository
	limiter := di.NewProviderLimiter(cfg)
	market, err := di.NewMarket(cfg, gdb, limiter)
	if err != nil {
		slog.Error("failed to build market provider", "error", err)
		os.Exit(1)
	}
	store := di.NewSeriesStore(cfg, di.NewCachedMarket(cfg, rdb, market), reg)

	// Usecase & Handler
	analyticsH := analyticshandler.NewAnalyticsHandler(di.NewAnalyticsUsecase(cfg, store, gdb))
	handlers := router.Handlers{
		Health:    platformhandler.NewHealthHandler(di.NewHealthChecks(gdb, rdb)),
		Analytics: analyticsH,
	}
	if gdb != nil {
		symbolUC := seriesusecase.NewSymbolUsecase(seriesadapters.NewSymbolRepository(gdb))
		handlers.Symbols = serieshandler.NewSymbolHandler(symbolUC)

		// Scheduled ingest keeps the bar table current when the service reads from it.
		if cfg.Provider.Name == config.ProviderDatabase && cfg.Ingest.Cron != "" {
			upstream, err := di.NewUpstreamMarket(cfg, nil)
			if err != nil {
				slog.Error("failed to build upstream provider", "error", err)
				os.Exit(1)
			}
			ingestUC := seriesusecase.NewIngestUsecase(upstream, di.NewBarWriter(cfg, rdb, gdb), limiter, cfg.Lookback())

			sched := scheduler.New(ctx, cfg.Location())
			if err := sched.Register(di.IngestTask, cfg.Ingest.Cron, di.NewIngestJob(symbolUC, ingestUC, cfg.Ingest.Markets)); err != nil {
				slog.Error("failed to schedule ingest", "error", err)
				os.Exit(1)
			}
			sched.Start()
			defer sched.Stop()
		}
	}

	if !cfg.Auth.Enabled {
		slog.Warn("auth is disabled; /api routes are public")
	}

	r := router.NewRouter(handlers, router.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AuthEnabled:    cfg.Auth.Enabled,
		AuthSecret:     cfg.Auth.Secret,
		Registry:       reg,
	})

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: r}
	go func() {
		slog.Info("server listening", "addr", cfg.Server.Addr, "provider", cfg.Provider.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
