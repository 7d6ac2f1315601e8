package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "elitehire/docs" // Swagger docs
	"elitehire/internal/api"
	"elitehire/internal/assessment"
	"elitehire/internal/cache"
	redisCache "elitehire/internal/cache/redis"
	"elitehire/internal/config"
	"elitehire/internal/logger"
	"elitehire/internal/session"
	"elitehire/internal/storage"

	"go.uber.org/zap"
)

// @title EliteHire Assessment API
// @version 1.0
// @description Candidate assessment service with a deterministic local scoring engine and an HR results dashboard
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /api

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer zlog.Sync()

	bank := assessment.NewBank()
	if cfg.QuestionBankFile != "" {
		if err := bank.LoadFile(cfg.QuestionBankFile); err != nil {
			zlog.Fatal("loading question bank", zap.Error(err))
		}
		zlog.Info("question bank overrides loaded", zap.String("file", cfg.QuestionBankFile))
	}

	ctx := context.Background()

	// Without DATABASE_URL the service runs storage-less and saveResult
	// answers with the mock-success path.
	var db *storage.DB
	if cfg.DatabaseURL != "" {
		db, err = storage.NewDB(cfg.DatabaseURL)
		if err != nil {
			zlog.Fatal("db open", zap.Error(err))
		}
		defer db.Close()

		if err := db.EnsureSchema(ctx); err != nil {
			zlog.Fatal("db schema", zap.Error(err))
		}
		zlog.Info("database connected")
	} else {
		zlog.Warn("DATABASE_URL not set, persistence runs in mock-success mode")
	}

	var blobCache cache.Cache
	if cfg.RedisURL != "" {
		rc, err := redisCache.New(ctx, cfg.RedisURL)
		if err != nil {
			zlog.Fatal("redis connect", zap.Error(err))
		}
		defer rc.Close()
		blobCache = rc
		zlog.Info("results cache connected")
	}

	mirror := cache.NewResultsMirror(blobCache)
	if err := mirror.Load(ctx); err != nil {
		zlog.Warn("loading results cache", zap.Error(err))
	} else if mirror.Len() > 0 {
		zlog.Info("results cache loaded", zap.Int("records", mirror.Len()))
	}

	apiSrv := api.NewAPI(api.Options{
		DB:     db,
		Bank:   bank,
		Mirror: mirror,
		Delay:  session.FixedDelay(cfg.SimulatedDelay),
		Logger: zlog,
	})
	router := api.NewRouter(apiSrv)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zlog.Error("server shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	zlog.Info("API server listening", zap.String("port", cfg.Port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal("server error", zap.Error(err))
	}

	<-idleConnsClosed
}
