package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestQueryBuilderDoesNotShareFilters(t *testing.T) {
	base := From("photo_moderation_queue").OrderBy("submitted_at", false).WithLimit(50)
	pending := base.Eq("status", "pending")
	all := base

	if len(pending.Filters) != 1 {
		t.Fatalf("expected one filter on pending query, got %d", len(pending.Filters))
	}
	if len(all.Filters) != 0 {
		t.Fatalf("base query must stay unfiltered, got %d filters", len(all.Filters))
	}
}

func TestQueryValidate(t *testing.T) {
	testCases := []struct {
		name    string
		query   Query
		wantErr bool
	}{
		{name: "plain table", query: From("profiles")},
		{name: "star column", query: From("profiles").Select("*")},
		{
			name: "embed",
			query: From("gdpr_requests").Embed(Embed{
				Table:       "profiles",
				Hint:        "gdpr_requests_user_id_fkey",
				LocalColumn: "user_id",
				Columns:     []string{"display_name", "email"},
			}),
		},
		{name: "bad table", query: From("profiles; drop table x"), wantErr: true},
		{name: "bad column", query: From("profiles").Select("id, email"), wantErr: true},
		{name: "bad order", query: From("profiles").OrderBy("created_at desc", false), wantErr: true},
		{name: "bad op", query: Query{Table: "profiles", Filters: []Filter{{Column: "id", Op: "like"}}}, wantErr: true},
		{name: "negative limit", query: From("profiles").WithLimit(-1), wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.query.Validate()
			if tc.wantErr && !errors.Is(err, ErrInvalidQuery) {
				t.Fatalf("expected ErrInvalidQuery, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 30, 0, 0, time.FixedZone("X", 3600))
	if got := FormatValue(ts); got != "2026-03-01T11:30:00Z" {
		t.Fatalf("unexpected time format: %s", got)
	}
	if got := FormatValue(true); got != "true" {
		t.Fatalf("unexpected bool format: %s", got)
	}
	if got := FormatValue(int64(42)); got != "42" {
		t.Fatalf("unexpected int format: %s", got)
	}
}

func TestMessageReturnsBackendMessageVerbatim(t *testing.T) {
	err := fmt.Errorf("reject photo: %w", &BackendError{
		Op:         "update photo_moderation_queue",
		StatusCode: 403,
		Message:    "new row violates row-level security policy",
	})

	if got := Message(err); got != "new row violates row-level security policy" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := Message(errors.New("boom")); got != fallbackMessage {
		t.Fatalf("unexpected fallback message: %q", got)
	}
}

func TestIsFallbackable(t *testing.T) {
	if !IsFallbackable(&BackendError{Op: "select", StatusCode: 503, Fallbackable: true}) {
		t.Fatalf("5xx backend error should be fallbackable")
	}
	if IsFallbackable(&BackendError{Op: "select", StatusCode: 400}) {
		t.Fatalf("4xx backend error should not be fallbackable")
	}
	if !IsFallbackable(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)) {
		t.Fatalf("deadline exceeded should be fallbackable")
	}
	if IsFallbackable(nil) {
		t.Fatalf("nil error is not fallbackable")
	}
}

type staticGateway struct {
	raw json.RawMessage
}

func (g staticGateway) Select(context.Context, Query) (json.RawMessage, error) {
	return g.raw, nil
}

func (g staticGateway) Count(context.Context, Query) (int64, error) {
	return 0, nil
}

func (g staticGateway) Update(context.Context, string, string, map[string]any) error {
	return nil
}

func (g staticGateway) Insert(context.Context, string, map[string]any) error {
	return nil
}

func (g staticGateway) RPC(context.Context, string, map[string]any) (json.RawMessage, error) {
	return nil, nil
}

func TestSelectIntoTreatsNullAsEmpty(t *testing.T) {
	var rows []map[string]any
	if err := SelectInto(context.Background(), staticGateway{raw: json.RawMessage("null")}, From("profiles"), &rows); err != nil {
		t.Fatalf("select into: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", rows)
	}
}
