package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WithActorTx runs fn in a transaction whose request.jwt.claims setting
// names the acting admin, so backend procedures relying on auth.uid() see
// the same identity they would through the REST endpoint.
func WithActorTx(ctx context.Context, pool *pgxpool.Pool, actorID string, fn func(context.Context, pgx.Tx) error) error {
	if pool == nil {
		return errors.New("postgres pool is nil")
	}

	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if actorID != "" {
		claims, err := json.Marshal(map[string]string{"sub": actorID, "role": "authenticated"})
		if err != nil {
			return fmt.Errorf("marshal actor claims: %w", err)
		}
		if _, err := tx.Exec(ctx, `SELECT set_config('request.jwt.claims', $1, true)`, string(claims)); err != nil {
			return fmt.Errorf("set actor claims: %w", err)
		}
	}

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
