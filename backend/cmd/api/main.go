package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/brodiemcgee/eros-admin/backend/internal/app/apiapp"
	"github.com/brodiemcgee/eros-admin/backend/internal/config"
	"github.com/brodiemcgee/eros-admin/backend/internal/infra/logger"
)

const shutdownGrace = 10 * time.Second

func main() {
	// A missing .env is fine; deployments set the environment directly.
	_ = godotenv.Load()

	cfgPath := os.Getenv("APP_CONFIG")
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level, "eros-admin-api")
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	log.Info("config loaded", zap.String("path", cfgPath), zap.String("env", cfg.Env), zap.String("backend_mode", cfg.Backend.Mode))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := apiapp.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("create api app", zap.Error(err))
	}
	if degraded := app.Degraded(); len(degraded) > 0 {
		log.Warn("starting with degraded dependencies", zap.Strings("degraded", degraded))
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- app.Run() }()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Fatal("api server failed", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := app.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown api app", zap.Error(err))
		}
	}
}
