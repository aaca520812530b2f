package main

import (
	"MachineCatalog/internal/blob"
	"MachineCatalog/internal/config"
	"MachineCatalog/internal/handlers"
	"MachineCatalog/internal/logger"
	"MachineCatalog/internal/middleware"
	"MachineCatalog/internal/repo"
	"MachineCatalog/internal/service"
	"MachineCatalog/internal/views"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	cfg := config.NewConfig()
	if cfg.Version {
		fmt.Printf("Machine Catalog server\nVersion: %s\nBuild date: %s\n", version, buildDate)
		return
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := log.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		_ = log.Sync()
	}()

	generated, err := cfg.EnsureSessionSecret()
	if err != nil {
		sugar.Fatalw("failed to generate session secret", "error", err)
	}
	if generated {
		sugar.Warnw("SESSION_SECRET is not set, using a random one: sessions will not survive restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	blobs, err := blob.NewS3Storage(ctx, blob.S3Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		sugar.Fatalw("failed to initialize image storage", "error", err)
	}

	userService := service.NewUserService(repo.NewUserRepository(gormDB))
	machineService := service.NewMachineService(repo.NewMachineRepository(gormDB), blobs, sugar, cfg.UploadMaxBytes())

	renderer, err := views.New()
	if err != nil {
		sugar.Fatalw("failed to parse templates", "error", err)
	}
	sessions := middleware.NewSessions(cfg.SessionSecret, cfg.SessionTTL, cfg.EnableHTTPS)

	h := handlers.NewHandler(userService, machineService, sessions, renderer, middleware.NewMetrics(), sugar, cfg)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"S3Endpoint", cfg.S3Endpoint,
		"S3Bucket", cfg.S3Bucket,
		"UploadMaxMB", cfg.UploadMaxMB,
	)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infow("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Infow("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("graceful shutdown failed", "error", err)
	}
}
