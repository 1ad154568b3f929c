package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/brodiemcgee/eros-admin/backend/internal/app/backend"
	"github.com/brodiemcgee/eros-admin/backend/internal/config"
	s3infra "github.com/brodiemcgee/eros-admin/backend/internal/infra/s3"
	redrepo "github.com/brodiemcgee/eros-admin/backend/internal/repo/redis"
	analyticsvc "github.com/brodiemcgee/eros-admin/backend/internal/services/analytics"
	"github.com/brodiemcgee/eros-admin/backend/internal/services/audit"
	authsvc "github.com/brodiemcgee/eros-admin/backend/internal/services/auth"
	compliancesvc "github.com/brodiemcgee/eros-admin/backend/internal/services/compliance"
	dashboardsvc "github.com/brodiemcgee/eros-admin/backend/internal/services/dashboard"
	photossvc "github.com/brodiemcgee/eros-admin/backend/internal/services/photos"
	ratesvc "github.com/brodiemcgee/eros-admin/backend/internal/services/rate"
	subssvc "github.com/brodiemcgee/eros-admin/backend/internal/services/subscriptions"
	"github.com/brodiemcgee/eros-admin/backend/internal/services/transition"
	userssvc "github.com/brodiemcgee/eros-admin/backend/internal/services/users"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	backend    *backend.Backend
	redis      *goredis.Client
	httpRouter http.Handler

	mu       sync.Mutex
	degraded []string
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	app := &App{cfg: cfg, logger: log}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log, cfg.HTTP.CORSOrigins)

	be := backend.Open(ctx, cfg.Backend, cfg.Postgres, log)
	app.backend = be
	app.markDegraded(be.Degraded...)
	gw := be.Gateway

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	app.redis = redisClient
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis ping failed, sessions and caching will error until it recovers", zap.Error(err))
		app.markDegraded("redis")
	}
	cancel()

	var signer photossvc.URLSigner
	if storage, err := s3infra.Open(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Bucket:    cfg.S3.Bucket,
		UseSSL:    cfg.S3.UseSSL,
		Region:    cfg.S3.Region,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
		app.markDegraded("s3")
	} else {
		// Presigning is local, so an unreachable bucket still yields links.
		checkCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := storage.Check(checkCtx); err != nil {
			log.Warn("s3 bucket check failed", zap.String("bucket", cfg.S3.Bucket), zap.Error(err))
			app.markDegraded("s3")
		}
		cancel()
		signer = storage
	}

	var cipher *authsvc.SecretCipher
	if c, err := authsvc.NewSecretCipher(cfg.Auth.SecretKey); err != nil {
		log.Warn("totp secret key is not configured, two-factor enrolment is disabled", zap.Error(err))
	} else {
		cipher = c
	}

	loc, err := time.LoadLocation(cfg.Analytics.Timezone)
	if err != nil {
		log.Warn("invalid analytics timezone, using UTC", zap.String("timezone", cfg.Analytics.Timezone), zap.Error(err))
		loc = time.UTC
	}

	analytics := analyticsvc.NewService(gw, analyticsvc.Config{
		Location: loc,
		Cache:    redrepo.NewCacheRepo(redisClient),
		CacheTTL: cfg.Analytics.CacheTTL,
	}, log)
	recorder := audit.NewRecorder(gw, log)
	transitions := transition.NewService(gw, recorder).WithInvalidator(analytics)

	authService := authsvc.NewService(
		authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL),
		redrepo.NewSessionRepo(redisClient),
		authsvc.NewAdminStore(gw),
		ratesvc.NewLoginThrottle(redrepo.NewRateRepo(redisClient), cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow),
		cipher,
		authsvc.Config{SessionTTL: cfg.Auth.SessionTTL, TOTPIssuer: cfg.Auth.TOTPIssuer},
		log,
	)

	deps := Dependencies{
		AuthService:          authService,
		DashboardService:     dashboardsvc.NewService(gw, log),
		ComplianceService:    compliancesvc.NewService(gw, transitions, signer, cfg.S3.PresignTTL, log),
		PhotosService:        photossvc.NewService(gw, transitions, signer, photossvc.Config{KeyTemplate: cfg.S3.PhotoKeyTemplate, PresignTTL: cfg.S3.PresignTTL}, log),
		SubscriptionsService: subssvc.NewService(gw, transitions, recorder).WithInvalidator(analytics),
		UsersService:         userssvc.NewService(gw).WithInvalidator(analytics),
		AnalyticsService:     analytics,
		Degraded:             app.Degraded,
		Logger:               log,
	}
	RegisterRoutes(r, deps)

	app.server = &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}
	app.httpRouter = r

	return app, nil
}

func (a *App) markDegraded(names ...string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.degraded = append(a.degraded, names...)
}

// Degraded lists the dependencies that failed to initialize.
func (a *App) Degraded() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.degraded...)
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr), zap.String("backend_mode", a.backend.Gateway.Mode()))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	a.backend.Close()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
