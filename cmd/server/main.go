package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dvalk/slidenav/internal/api"
	"github.com/dvalk/slidenav/internal/config"
	"github.com/dvalk/slidenav/internal/metrics"
	"github.com/dvalk/slidenav/internal/preview"
	"github.com/dvalk/slidenav/internal/session"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := session.NewStore(cfg.SessionTTL, cfg.CacheSize)
	if err != nil {
		log.Error("failed to create session store", "error", err)
		os.Exit(1)
	}

	hub := preview.NewHub(log)
	stats := metrics.NewEngineStats(cfg.StatsWindow)

	var renderer *preview.RendererClient
	if cfg.RendererURL != "" {
		renderer = preview.NewRendererClient(cfg.RendererURL, cfg.RendererAPIKey)
		if err := renderer.Health(ctx); err != nil {
			log.Warn("preview renderer unreachable at startup", "url", cfg.RendererURL, "error", err)
		}
	}

	// Evict idle document sessions.
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				store.Cleanup()
			}
		}
	}()

	srv := api.NewServer(store, hub, renderer, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if renderer != nil {
			renderer.Close()
		}
	}()

	log.Info("starting slidenav", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
