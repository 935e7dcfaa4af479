package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/siva9346/formating-app/internal/config"
	"github.com/siva9346/formating-app/internal/db"
	"github.com/siva9346/formating-app/internal/llm"
	"github.com/siva9346/formating-app/internal/menu"
	"github.com/siva9346/formating-app/internal/router"
	"github.com/siva9346/formating-app/internal/storage"
	"github.com/siva9346/formating-app/pkg/logger"
	"github.com/siva9346/formating-app/pkg/tracer"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx := context.Background()

	// ───────────────────────── CONFIG ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(ctx, "load config", err)
	}

	logger.Init(cfg.Observability.LogLevel, cfg.Observability.LogFormat)

	if err := cfg.Validate(); err != nil {
		logger.Fatal(ctx, "invalid config", err)
	}
	if cfg.Gemini.APIKey == "" {
		logger.Warn(ctx, "GOOGLE_GEMINI_API_KEY is not set, uploads will fail until it is")
	}
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ───────────────────────── TRACING ─────────────────────────
	shutdownTracer, err := tracer.Init(ctx, tracer.Config{
		ServiceName: cfg.App.Name,
		Endpoint:    cfg.Observability.TraceEndpoint,
		SampleRate:  cfg.Observability.SampleRate,
		Enabled:     cfg.Observability.TraceEnabled,
	})
	if err != nil {
		logger.Fatal(ctx, "init tracer", err)
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB, err := db.ConnectPostgres(ctx, db.PoolConfig{
		URL:             cfg.Database.URL,
		SearchPath:      cfg.Database.Schema,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		logger.Fatal(ctx, "connect postgres", err)
	}
	defer pgDB.Close()

	menuRepo := menu.NewPostgresRepository(pgDB)
	if err := menuRepo.EnsureSchema(ctx); err != nil {
		logger.Fatal(ctx, "ensure schema", err)
	}

	// ───────────────────────── STORAGE (OPTIONAL) ─────────────────────────
	var archive menu.Storage
	if cfg.Storage.Enabled() {
		r2Client, err := storage.NewR2Client(ctx, storage.R2Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
		})
		if err != nil {
			logger.Fatal(ctx, "init r2", err)
		}
		archive = r2Client
		logger.Info(ctx, "upload archiving enabled", "bucket", cfg.Storage.Bucket)
	}

	// ───────────────────────── SERVICES ─────────────────────────
	geminiClient := llm.NewGeminiClient(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.BaseURL,
		cfg.Gemini.Timeout,
	)
	menuService := menu.NewService(menuRepo, geminiClient, archive)

	r, err := router.NewRouter(menuService, router.Options{
		ServiceName:    cfg.App.Name,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})
	if err != nil {
		logger.Fatal(ctx, "build router", err)
	}

	// ───────────────────────── START ─────────────────────────
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}

	go func() {
		logger.Info(ctx, "api listening", "addr", cfg.Server.Addr, "model", cfg.Gemini.Model)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "http server", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "http shutdown", err)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Error(ctx, "tracer shutdown", err)
	}
}
