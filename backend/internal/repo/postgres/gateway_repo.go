package postgres

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
)

// GatewayRepo serves gateway calls straight from the backend's Postgres.
type GatewayRepo struct {
	pool *pgxpool.Pool
}

func NewGatewayRepo(pool *pgxpool.Pool) *GatewayRepo {
	return &GatewayRepo{pool: pool}
}

func (r *GatewayRepo) Select(ctx context.Context, q gateway.Query) (json.RawMessage, error) {
	if r.pool == nil {
		return nil, poolMissing("select " + q.Table)
	}

	sql, args, err := buildSelect(q)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapPgError("select "+q.Table, err)
	}
	defer rows.Close()

	var buf bytes.Buffer
	buf.WriteByte('[')
	first := true
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, mapPgError("scan "+q.Table, err)
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		buf.Write(raw)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError("iterate "+q.Table, err)
	}
	buf.WriteByte(']')

	return json.RawMessage(buf.Bytes()), nil
}

func (r *GatewayRepo) Count(ctx context.Context, q gateway.Query) (int64, error) {
	if r.pool == nil {
		return 0, poolMissing("count " + q.Table)
	}

	sql, args, err := buildCount(q)
	if err != nil {
		return 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, mapPgError("count "+q.Table, err)
	}
	return total, nil
}

func (r *GatewayRepo) Update(ctx context.Context, table string, id string, patch map[string]any) error {
	if r.pool == nil {
		return poolMissing("update " + table)
	}

	sql, args, err := buildUpdate(table, id, patch)
	if err != nil {
		return err
	}

	err = WithActorTx(ctx, r.pool, gateway.ActorFromContext(ctx), func(ctx context.Context, tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, sql, args...)
		return execErr
	})
	if err != nil {
		return mapPgError("update "+table, err)
	}
	return nil
}

func (r *GatewayRepo) Insert(ctx context.Context, table string, row map[string]any) error {
	if r.pool == nil {
		return poolMissing("insert " + table)
	}

	sql, args, err := buildInsert(table, row)
	if err != nil {
		return err
	}

	if _, err := r.pool.Exec(ctx, sql, args...); err != nil {
		return mapPgError("insert "+table, err)
	}
	return nil
}

func (r *GatewayRepo) RPC(ctx context.Context, name string, params map[string]any) (json.RawMessage, error) {
	if r.pool == nil {
		return nil, poolMissing("rpc " + name)
	}

	sql, args, err := buildRPC(name, params)
	if err != nil {
		return nil, err
	}

	var result *string
	err = WithActorTx(ctx, r.pool, gateway.ActorFromContext(ctx), func(ctx context.Context, tx pgx.Tx) error {
		return tx.QueryRow(ctx, sql, args...).Scan(&result)
	})
	if err != nil {
		return nil, mapPgError("rpc "+name, err)
	}

	return rpcResult(result), nil
}

func rpcResult(result *string) json.RawMessage {
	if result == nil || *result == "" {
		return nil
	}
	if json.Valid([]byte(*result)) {
		return json.RawMessage(*result)
	}
	encoded, err := json.Marshal(*result)
	if err != nil {
		return nil
	}
	return encoded
}

func poolMissing(op string) error {
	return &gateway.BackendError{
		Op:      op,
		Message: "database is unavailable",
		Err:     errors.New("postgres pool is nil"),
	}
}

func mapPgError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &gateway.BackendError{
			Op:      op,
			Code:    pgErr.Code,
			Message: pgErr.Message,
			Err:     err,
		}
	}

	var netErr net.Error
	fallbackable := errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded)
	return &gateway.BackendError{
		Op:           op,
		Fallbackable: fallbackable,
		Err:          err,
	}
}
