package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frida212/code-analyzer/internal/analysis"
	"github.com/frida212/code-analyzer/internal/api"
	"github.com/frida212/code-analyzer/internal/backend/cloudfunction"
	"github.com/frida212/code-analyzer/internal/backend/fallback"
	"github.com/frida212/code-analyzer/internal/backend/openaicompat"
	"github.com/frida212/code-analyzer/internal/backend/vertex"
	"github.com/frida212/code-analyzer/internal/cache"
	"github.com/frida212/code-analyzer/internal/config"
	"github.com/frida212/code-analyzer/internal/store"
	"github.com/frida212/code-analyzer/pkg/models"
)

const shutdownTimeout = 30 * time.Second

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Run history is optional: without DATABASE_URL the server serves
	// analyses but remembers nothing.
	var st store.Store
	if cfg.Database.URL != "" {
		if err := store.RunMigrations(cfg.Database.URL, "migrations"); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		pool, err := store.Connect(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()
		st = store.NewPostgresStore(pool)
		slog.Info("analysis-run history enabled")
	} else {
		slog.Info("DATABASE_URL not set, run history disabled")
	}

	var c cache.Cache = cache.NewNoop()
	if cfg.Redis.URL != "" {
		rc, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rc.Close()
		c = rc
		slog.Info("redis cache enabled")
	} else {
		slog.Info("REDIS_URL not set, rate limiting and status cache disabled")
	}

	var cf models.Backend
	if cfg.CloudFunction.URL != "" {
		cf = cloudfunction.New(cfg.CloudFunction.URL, cfg.Analysis.BackendTimeout)
		slog.Info("cloud function backend configured", "url", cfg.CloudFunction.URL)
	}

	var vx *vertex.Backend
	var vxBackend models.Backend
	if cfg.Vertex.Script != "" {
		vx = vertex.New(cfg.Vertex)
		vxBackend = vx
		slog.Info("vertex bridge configured",
			"script", cfg.Vertex.Script,
			"endpoint_id", vx.EndpointID(),
		)
	}

	var oa models.Backend
	if cfg.OpenAI.BaseURL != "" {
		oa = openaicompat.New(cfg.OpenAI)
		slog.Info("openai-compatible backend configured",
			"base_url", cfg.OpenAI.BaseURL,
			"model", cfg.OpenAI.Model,
		)
	}

	svc := analysis.NewService(cf, vxBackend, oa, fallback.New(), st, cfg.Analysis.BackendTimeout)

	deps := api.Dependencies{
		Config:   cfg,
		Analysis: svc,
		Store:    st,
		Cache:    c,
	}
	if vx != nil {
		deps.Vertex = vx
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewRouter(deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Analysis.BackendTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "port", cfg.Server.Port, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}
