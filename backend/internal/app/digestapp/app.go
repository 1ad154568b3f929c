package digestapp

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/brodiemcgee/eros-admin/backend/internal/app/backend"
	"github.com/brodiemcgee/eros-admin/backend/internal/config"
	tginfra "github.com/brodiemcgee/eros-admin/backend/internal/infra/telegram"
	"github.com/brodiemcgee/eros-admin/backend/internal/jobs/digest"
	dashboardsvc "github.com/brodiemcgee/eros-admin/backend/internal/services/dashboard"
)

type App struct {
	logger  *zap.Logger
	backend *backend.Backend
	job     *digest.Job
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	notifier, err := tginfra.NewNotifier(cfg.Digest.BotToken, cfg.Digest.ChatID)
	if err != nil {
		return nil, fmt.Errorf("init telegram notifier: %w", err)
	}

	be := backend.Open(ctx, cfg.Backend, cfg.Postgres, logger)
	if len(be.Degraded) > 0 {
		logger.Warn("digest backend degraded", zap.Strings("degraded", be.Degraded))
	}

	dashboard := dashboardsvc.NewService(be.Gateway, logger)
	return &App{
		logger:  logger,
		backend: be,
		job:     digest.NewJob(dashboard, notifier, cfg.Digest.Interval, logger),
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("digest worker started", zap.String("backend_mode", a.backend.Gateway.Mode()))
	return a.job.Loop(ctx)
}

func (a *App) Close() {
	if a.backend != nil {
		a.backend.Close()
	}
}
