// Package gatewaytest provides an in-memory gateway that records calls.
package gatewaytest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
)

type UpdateCall struct {
	Table string
	ID    string
	Patch map[string]any
}

type InsertCall struct {
	Table string
	Row   map[string]any
}

type RPCCall struct {
	Name   string
	Params map[string]any
}

type Fake struct {
	SelectFn func(q gateway.Query) (json.RawMessage, error)
	CountFn  func(q gateway.Query) (int64, error)
	RPCFn    func(name string, params map[string]any) (json.RawMessage, error)

	UpdateErr error
	InsertErr error

	mu      sync.Mutex
	Selects []gateway.Query
	Counts  []gateway.Query
	Updates []UpdateCall
	Inserts []InsertCall
	RPCs    []RPCCall
}

func (f *Fake) Select(_ context.Context, q gateway.Query) (json.RawMessage, error) {
	f.mu.Lock()
	f.Selects = append(f.Selects, q)
	f.mu.Unlock()
	if f.SelectFn != nil {
		return f.SelectFn(q)
	}
	return json.RawMessage("[]"), nil
}

func (f *Fake) Count(_ context.Context, q gateway.Query) (int64, error) {
	f.mu.Lock()
	f.Counts = append(f.Counts, q)
	f.mu.Unlock()
	if f.CountFn != nil {
		return f.CountFn(q)
	}
	return 0, nil
}

func (f *Fake) Update(_ context.Context, table string, id string, patch map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Updates = append(f.Updates, UpdateCall{Table: table, ID: id, Patch: patch})
	return f.UpdateErr
}

func (f *Fake) Insert(_ context.Context, table string, row map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Inserts = append(f.Inserts, InsertCall{Table: table, Row: row})
	return f.InsertErr
}

func (f *Fake) RPC(_ context.Context, name string, params map[string]any) (json.RawMessage, error) {
	f.mu.Lock()
	f.RPCs = append(f.RPCs, RPCCall{Name: name, Params: params})
	f.mu.Unlock()
	if f.RPCFn != nil {
		return f.RPCFn(name, params)
	}
	return nil, nil
}

// Calls returns the number of network-visible calls made so far.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Selects) + len(f.Counts) + len(f.Updates) + len(f.Inserts) + len(f.RPCs)
}

// Rows marshals v for use as a SelectFn result.
func Rows(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return raw
}
