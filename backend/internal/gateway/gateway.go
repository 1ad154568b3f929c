// Package gateway defines the generic contract the console uses to reach the
// managed datastore: filtered queries, exact counts, primary-key updates,
// inserts and named procedure calls. Rows travel as JSON so every backend
// decodes into the same model types.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
)

type Gateway interface {
	// Select returns the matching rows as a JSON array.
	Select(ctx context.Context, q Query) (json.RawMessage, error)
	// Count returns the exact number of matching rows without fetching them.
	Count(ctx context.Context, q Query) (int64, error)
	// Update patches the row whose primary key equals id.
	Update(ctx context.Context, table string, id string, patch map[string]any) error
	Insert(ctx context.Context, table string, row map[string]any) error
	// RPC invokes a named procedure and returns its raw JSON result, which
	// may be empty for void procedures.
	RPC(ctx context.Context, name string, params map[string]any) (json.RawMessage, error)
}

// SelectInto runs q and decodes the resulting array into dest.
func SelectInto(ctx context.Context, gw Gateway, q Query, dest any) error {
	if gw == nil {
		return fmt.Errorf("gateway is nil")
	}
	raw, err := gw.Select(ctx, q)
	if err != nil {
		return err
	}
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("[]")
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %s rows: %w", q.Table, err)
	}
	return nil
}
