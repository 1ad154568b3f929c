// Package backend opens the gateway shared by the api and digest apps.
package backend

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/brodiemcgee/eros-admin/backend/internal/config"
	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
	"github.com/brodiemcgee/eros-admin/backend/internal/repo/dualrepo"
	pgrepo "github.com/brodiemcgee/eros-admin/backend/internal/repo/postgres"
	"github.com/brodiemcgee/eros-admin/backend/internal/repo/postgrest"
)

type Backend struct {
	Gateway  *dualrepo.Gateway
	Pool     *pgxpool.Pool
	Degraded []string
}

// Open builds whichever gateways the configured mode needs. A backend that
// fails to initialize is logged and left out; calls that need it fail with a
// BackendError instead of aborting startup.
func Open(ctx context.Context, cfg config.BackendConfig, pgCfg config.PostgresConfig, log *zap.Logger) *Backend {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	out := &Backend{}

	var httpGateway gateway.Gateway
	if mode != dualrepo.ModeDB {
		client, err := postgrest.NewClient(cfg.RestURL, cfg.ServiceKey, cfg.Timeout)
		if err != nil {
			log.Warn("rest backend init failed, continuing in degraded mode", zap.Error(err))
			out.Degraded = append(out.Degraded, "rest")
		} else {
			httpGateway = client
		}
	}

	var dbGateway gateway.Gateway
	if mode != dualrepo.ModeHTTP {
		pool, err := pgrepo.NewPool(ctx, pgCfg.DSN)
		if err != nil {
			log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
			out.Degraded = append(out.Degraded, "postgres")
		} else {
			out.Pool = pool
			dbGateway = pgrepo.NewGatewayRepo(pool)
		}
	}

	out.Gateway = dualrepo.NewGateway(httpGateway, dbGateway, mode, log)
	return out
}

func (b *Backend) Close() {
	if b != nil && b.Pool != nil {
		b.Pool.Close()
	}
}
