package dualrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
)

const (
	ModeDual = "dual"
	ModeHTTP = "http"
	ModeDB   = "db"
)

// Gateway prefers the REST backend. Reads fall back to the database when the
// REST call failed in a way the backend did not decide (transport errors,
// timeouts, 5xx). Writes never fall back: a timed out write may still have
// been applied, so it is attempted exactly once.
type Gateway struct {
	httpGateway gateway.Gateway
	dbGateway   gateway.Gateway
	mode        string
	logger      *zap.Logger
}

func NewGateway(httpGateway gateway.Gateway, dbGateway gateway.Gateway, mode string, logger *zap.Logger) *Gateway {
	normalizedMode := strings.ToLower(strings.TrimSpace(mode))
	switch normalizedMode {
	case ModeDB, ModeHTTP, ModeDual:
	default:
		normalizedMode = ModeDual
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		httpGateway: httpGateway,
		dbGateway:   dbGateway,
		mode:        normalizedMode,
		logger:      logger,
	}
}

func (g *Gateway) Mode() string {
	if g == nil {
		return ""
	}
	return g.mode
}

func (g *Gateway) Select(ctx context.Context, q gateway.Query) (json.RawMessage, error) {
	return callWithFallback(g, true, "select "+q.Table, func(gw gateway.Gateway) (json.RawMessage, error) {
		return gw.Select(ctx, q)
	})
}

func (g *Gateway) Count(ctx context.Context, q gateway.Query) (int64, error) {
	return callWithFallback(g, true, "count "+q.Table, func(gw gateway.Gateway) (int64, error) {
		return gw.Count(ctx, q)
	})
}

func (g *Gateway) Update(ctx context.Context, table string, id string, patch map[string]any) error {
	_, err := callWithFallback(g, false, "update "+table, func(gw gateway.Gateway) (struct{}, error) {
		return struct{}{}, gw.Update(ctx, table, id, patch)
	})
	return err
}

func (g *Gateway) Insert(ctx context.Context, table string, row map[string]any) error {
	_, err := callWithFallback(g, false, "insert "+table, func(gw gateway.Gateway) (struct{}, error) {
		return struct{}{}, gw.Insert(ctx, table, row)
	})
	return err
}

func (g *Gateway) RPC(ctx context.Context, name string, params map[string]any) (json.RawMessage, error) {
	return callWithFallback(g, false, "rpc "+name, func(gw gateway.Gateway) (json.RawMessage, error) {
		return gw.RPC(ctx, name, params)
	})
}

func callWithFallback[T any](g *Gateway, read bool, op string, call func(gateway.Gateway) (T, error)) (T, error) {
	var zero T
	if g == nil {
		return zero, errors.New("dual gateway is nil")
	}

	switch g.mode {
	case ModeDB:
		if g.dbGateway == nil {
			return zero, unavailable(op, "db gateway is not configured")
		}
		return call(g.dbGateway)
	case ModeHTTP:
		if g.httpGateway == nil {
			return zero, unavailable(op, "http gateway is not configured")
		}
		return call(g.httpGateway)
	default:
		if g.httpGateway == nil {
			if g.dbGateway == nil {
				return zero, unavailable(op, "gateways are not configured")
			}
			return call(g.dbGateway)
		}

		value, err := call(g.httpGateway)
		if err == nil {
			return value, nil
		}
		if !read || g.dbGateway == nil || !gateway.IsFallbackable(err) {
			return zero, err
		}

		g.logger.Warn("backend http call failed, falling back to db",
			zap.String("op", op),
			zap.Error(err),
		)
		dbValue, dbErr := call(g.dbGateway)
		if dbErr != nil {
			return zero, fmt.Errorf("http err: %v; db fallback err: %w", err, dbErr)
		}
		return dbValue, nil
	}
}

func unavailable(op, reason string) error {
	return &gateway.BackendError{
		Op:      op,
		Message: "backend is unavailable",
		Err:     errors.New(reason),
	}
}
