package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/supplylens/supplylens/pkg/dataset"
	"github.com/supplylens/supplylens/pkg/randsrc"
	"github.com/supplylens/supplylens/pkg/types"
	"github.com/supplylens/supplylens/server/internal/alerts"
	"github.com/supplylens/supplylens/server/internal/api"
	"github.com/supplylens/supplylens/server/internal/auth"
	"github.com/supplylens/supplylens/server/internal/config"
	"github.com/supplylens/supplylens/server/internal/dashboard"
	"github.com/supplylens/supplylens/server/internal/promexport"
	"github.com/supplylens/supplylens/server/internal/store"
	"github.com/supplylens/supplylens/server/internal/ws"
)

func main() {
	configPath := flag.String("config", "", "path to config file; built-in defaults when empty")
	source := flag.String("dataset", "", "dataset file or DSN, overrides server.dataset.source")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// .env is optional; it only seeds variables that are not already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env", "err", err)
	}

	slog.Info("supplylens-server starting", "config", *configPath)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			slog.Error("failed to load config", "err", err)
			os.Exit(1)
		}
	}
	if *source != "" {
		cfg.Server.Dataset.Source = *source
	}

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"dataset", cfg.Server.Dataset.Source,
		"cache_ttl", cfg.Server.Cache.TTL,
		"alert_rules", len(cfg.Server.Alerts.Rules),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	ds, err := dataset.Load(ctx, cfg.Server.Dataset.Source, cfg.Server.Dataset.Strict)
	if err != nil {
		slog.Error("failed to load dataset", "source", cfg.Server.Dataset.Source, "err", err)
		os.Exit(1)
	}
	slog.Info("dataset loaded",
		"suppliers", len(ds.Suppliers),
		"shipments", len(ds.Shipments),
		"inventory", len(ds.Inventory),
	)

	// Dashboard cache with background TTL eviction.
	st := store.New(cfg.Server.Cache.TTL)
	go st.Run(ctx)

	// Alerts engine, evaluated on every freshly built dashboard.
	alertEngine := alerts.New(cfg.Server.Alerts)

	svc := dashboard.New(ds, randsrc.New(cfg.Server.Engine.Seed), st, alertEngine)

	// WebSocket hub, pushes dashboards to UI clients every stream interval.
	hub := ws.New(svc, cfg.Server.Stream.Interval)
	go hub.Run(ctx)

	if cfg.Server.Dataset.Watch {
		if dataset.IsSQL(cfg.Server.Dataset.Source) {
			slog.Warn("dataset watch ignored for database sources", "source", cfg.Server.Dataset.Source)
		} else {
			go func() {
				err := dataset.Watch(ctx, cfg.Server.Dataset.Source, cfg.Server.Dataset.Strict, func(next *types.Dataset) {
					svc.Reload(next)
					hub.Notify()
				})
				if err != nil && !errors.Is(err, context.Canceled) {
					slog.Error("dataset watch stopped", "err", err)
				}
			}()
		}
	}

	// Combined HTTP server: REST API, WebSocket hub and Prometheus metrics on HTTPPort.
	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", api.New(svc, alertEngine))
	httpMux.Handle("/ws/stream", hub)
	httpMux.Handle("/metrics", promexport.Handler(svc, alertEngine.Firing))

	handler := auth.APIKey(
		cfg.Server.Auth.Mode,
		cfg.Server.Auth.EffectiveHeader(),
		cfg.Server.Auth.Key(),
		httpMux,
		"/api/v1/health", "/metrics",
	)

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("supplylens-server shutting down")
	shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
	defer done()
	httpSrv.Shutdown(shutdownCtx) //nolint:errcheck
}
