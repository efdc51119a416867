// Command skyrouted serves the route planner over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/velmark/skyroute/internal/app"
	"github.com/velmark/skyroute/internal/config"
	"github.com/velmark/skyroute/internal/httpapi"
	"github.com/velmark/skyroute/internal/obs"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	metrics := obs.NewMetrics(prometheus.NewRegistry())
	a, err := app.Build(ctx, cfg, logger, metrics)
	if err != nil {
		logger.Error("build engine", "error", err)
		os.Exit(1)
	}

	handler := httpapi.NewHandler(a.Planner, a.Registry, metrics)
	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: httpapi.NewRouter(handler, metrics, logger),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
		ReadHeaderTimeout: 5 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("shutting down", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown", "error", err)
		}
		rootCancel()
		close(idleConnsClosed)
	}()

	logger.Info("server listening", "addr", cfg.Listen, "airports", a.Graph.AirportCount(), "offers", a.Graph.OfferCount())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server", "error", err)
		os.Exit(1)
	}
	<-idleConnsClosed
	logger.Info("server stopped")
}
