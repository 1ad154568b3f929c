package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
	"github.com/brodiemcgee/eros-admin/backend/internal/gateway/gatewaytest"
	compliancesvc "github.com/brodiemcgee/eros-admin/backend/internal/services/compliance"
	dashboardsvc "github.com/brodiemcgee/eros-admin/backend/internal/services/dashboard"
	photossvc "github.com/brodiemcgee/eros-admin/backend/internal/services/photos"
	subssvc "github.com/brodiemcgee/eros-admin/backend/internal/services/subscriptions"
	"github.com/brodiemcgee/eros-admin/backend/internal/services/transition"
	userssvc "github.com/brodiemcgee/eros-admin/backend/internal/services/users"
)

func newTestRouter(fake *gatewaytest.Fake) chi.Router {
	transitions := transition.NewService(fake, nil)
	photos := NewPhotosHandler(photossvc.NewService(fake, transitions, nil, photossvc.Config{}, nil), nil)
	compliance := NewComplianceHandler(compliancesvc.NewService(fake, transitions, nil, 0, nil), nil)
	subs := NewSubscriptionsHandler(subssvc.NewService(fake, transitions, nil), nil)
	users := NewUsersHandler(userssvc.NewService(fake), nil)
	dashboard := NewDashboardHandler(dashboardsvc.NewService(fake, nil), nil)

	r := chi.NewRouter()
	r.Get("/admin/dashboard", dashboard.Get)
	r.Get("/admin/photos", photos.List)
	r.Post("/admin/photos/{id}/approve", photos.Approve)
	r.Post("/admin/photos/{id}/reject", photos.Reject)
	r.Post("/admin/compliance/flags/{id}/{action}", compliance.ResolveContentFlag)
	r.Get("/admin/subscriptions/plans", subs.Plans)
	r.Post("/admin/subscriptions/plans/{id}/toggle", subs.TogglePlan)
	r.Get("/admin/subscriptions", subs.List)
	r.Post("/admin/subscriptions/{id}/cancel", subs.Cancel)
	r.Post("/admin/users/{id}/ban", users.Ban)
	return r
}

func serve(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var decoded map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return rr, decoded
}

func TestPhotoListEmptyState(t *testing.T) {
	fake := &gatewaytest.Fake{SelectFn: func(gateway.Query) (json.RawMessage, error) { return json.RawMessage("null"), nil }}
	rr, body := serve(t, newTestRouter(fake), http.MethodGet, "/admin/photos", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"items":[]`) || body["empty"] != true {
		t.Fatalf("expected empty array with empty flag, got %s", rr.Body.String())
	}
}

func TestBackendErrorsPassMessageThrough(t *testing.T) {
	fake := &gatewaytest.Fake{SelectFn: func(gateway.Query) (json.RawMessage, error) {
		return nil, &gateway.BackendError{Op: "select", StatusCode: 403, Message: "permission denied for table photo_moderation_queue"}
	}}
	rr, body := serve(t, newTestRouter(fake), http.MethodGet, "/admin/photos?filter=all", "")

	if rr.Code != http.StatusBadGateway {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	if body["code"] != "BACKEND_ERROR" || body["message"] != "permission denied for table photo_moderation_queue" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestValidationShortCircuits(t *testing.T) {
	cases := []struct {
		name     string
		method   string
		path     string
		body     string
		wantCode string
	}{
		{name: "reject without reason", method: http.MethodPost, path: "/admin/photos/p-1/reject", body: `{"reason":"  "}`, wantCode: "REASON_REQUIRED"},
		{name: "cancel without confirm", method: http.MethodPost, path: "/admin/subscriptions/s-1/cancel", wantCode: "CONFIRMATION_REQUIRED"},
		{name: "ban without confirm", method: http.MethodPost, path: "/admin/users/5f0c7a3e-8d7b-4d6c-9b0e-1f2a3b4c5d6e/ban", body: `{"reason":"spam"}`, wantCode: "CONFIRMATION_REQUIRED"},
		{name: "ban with bad id", method: http.MethodPost, path: "/admin/users/not-a-uuid/ban", body: `{"confirm":true}`, wantCode: "VALIDATION_ERROR"},
		{name: "unknown flag action", method: http.MethodPost, path: "/admin/compliance/flags/f-1/escalate", body: `{"reason":"x"}`, wantCode: "VALIDATION_ERROR"},
		{name: "unknown photo filter", method: http.MethodGet, path: "/admin/photos?filter=flagged", wantCode: "VALIDATION_ERROR"},
		{name: "unknown body field", method: http.MethodPost, path: "/admin/photos/p-1/reject", body: `{"why":"x"}`, wantCode: "VALIDATION_ERROR"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &gatewaytest.Fake{}
			rr, body := serve(t, newTestRouter(fake), tc.method, tc.path, tc.body)
			if rr.Code != http.StatusBadRequest || body["code"] != tc.wantCode {
				t.Fatalf("expected 400 %s, got %d %v", tc.wantCode, rr.Code, body)
			}
			if fake.Calls() != 0 {
				t.Fatalf("expected no gateway calls, got %d", fake.Calls())
			}
		})
	}
}

func TestUnexpectedStatusKeepsRawValue(t *testing.T) {
	cases := []struct {
		name string
		path string
		row  map[string]any
	}{
		{
			name: "photo queue",
			path: "/admin/photos?filter=all",
			row:  map[string]any{"id": "q-1", "photo_id": "ph-1", "user_id": "u-1", "status": "escalated", "submitted_at": "2026-01-01T00:00:00Z"},
		},
		{
			name: "subscriptions",
			path: "/admin/subscriptions",
			row:  map[string]any{"id": "s-1", "user_id": "u-1", "subscription_plan_id": "p-1", "status": "paused", "created_at": "2026-01-01T00:00:00Z"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &gatewaytest.Fake{SelectFn: func(gateway.Query) (json.RawMessage, error) {
				return gatewaytest.Rows([]map[string]any{tc.row}), nil
			}}
			rr, body := serve(t, newTestRouter(fake), http.MethodGet, tc.path, "")
			if rr.Code != http.StatusOK {
				t.Fatalf("unexpected status: %d %v", rr.Code, body)
			}
			items, _ := body["items"].([]any)
			if len(items) != 1 {
				t.Fatalf("unexpected items: %v", body)
			}
			item := items[0].(map[string]any)
			if item["status"] != "unknown" || item["status_raw"] != tc.row["status"] {
				t.Fatalf("expected unknown status with raw %v, got status=%v status_raw=%v", tc.row["status"], item["status"], item["status_raw"])
			}
		})
	}
}

func TestTogglePlanSendsSingleUpdate(t *testing.T) {
	fake := &gatewaytest.Fake{}
	rr, body := serve(t, newTestRouter(fake), http.MethodPost, "/admin/subscriptions/plans/p-1/toggle", `{"is_active":true}`)
	if rr.Code != http.StatusOK || body["is_active"] != false {
		t.Fatalf("unexpected response: %d %v", rr.Code, body)
	}
	if fake.Calls() != 1 || len(fake.Updates) != 1 || fake.Updates[0].Patch["is_active"] != false {
		t.Fatalf("expected one update to is_active=false, got calls=%d updates=%+v", fake.Calls(), fake.Updates)
	}
}

func TestTogglePlanRequiresCurrentValue(t *testing.T) {
	fake := &gatewaytest.Fake{}
	rr, body := serve(t, newTestRouter(fake), http.MethodPost, "/admin/subscriptions/plans/p-1/toggle", `{}`)
	if rr.Code != http.StatusBadRequest || body["code"] != "VALIDATION_ERROR" {
		t.Fatalf("expected 400 VALIDATION_ERROR, got %d %v", rr.Code, body)
	}
	if fake.Calls() != 0 {
		t.Fatalf("expected no gateway calls, got %d", fake.Calls())
	}
}

func TestApprovePhotoWritesOneUpdate(t *testing.T) {
	fake := &gatewaytest.Fake{}
	rr, body := serve(t, newTestRouter(fake), http.MethodPost, "/admin/photos/p-1/approve", "")
	if rr.Code != http.StatusOK || body["ok"] != true {
		t.Fatalf("unexpected response: %d %v", rr.Code, body)
	}
	if len(fake.Updates) != 1 || fake.Updates[0].ID != "p-1" || fake.Updates[0].Patch["status"] != "approved" {
		t.Fatalf("unexpected updates: %+v", fake.Updates)
	}
}

func TestPlansRenderPriceDisplay(t *testing.T) {
	fake := &gatewaytest.Fake{SelectFn: func(gateway.Query) (json.RawMessage, error) {
		return gatewaytest.Rows([]map[string]any{{"id": "p-1", "name": "Plus", "price_amount": 1999, "currency": "usd", "is_active": true, "created_at": "2026-01-01T00:00:00Z", "updated_at": "2026-01-01T00:00:00Z"}}), nil
	}}
	rr, body := serve(t, newTestRouter(fake), http.MethodGet, "/admin/subscriptions/plans", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	items, _ := body["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("unexpected items: %v", body)
	}
	plan := items[0].(map[string]any)
	if plan["price_display"] != "$19.99" {
		t.Fatalf("unexpected price display: %v", plan["price_display"])
	}
	if features, ok := plan["features"].([]any); !ok || len(features) != 0 {
		t.Fatalf("features must be an empty array, got %v", plan["features"])
	}
}

func TestDashboardAllStatsFailed(t *testing.T) {
	fake := &gatewaytest.Fake{CountFn: func(gateway.Query) (int64, error) {
		return 0, &gateway.BackendError{Op: "count", Message: "connection refused"}
	}}
	rr, body := serve(t, newTestRouter(fake), http.MethodGet, "/admin/dashboard", "")
	if rr.Code != http.StatusBadGateway || body["message"] != "connection refused" {
		t.Fatalf("unexpected response: %d %v", rr.Code, body)
	}
}

func TestNilServiceIsUnavailable(t *testing.T) {
	h := NewPhotosHandler(nil, nil)
	rr, body := serve(t, http.HandlerFunc(h.List), http.MethodGet, "/admin/photos", "")
	if rr.Code != http.StatusInternalServerError || body["code"] != "PHOTOS_SERVICE_UNAVAILABLE" {
		t.Fatalf("unexpected response: %d %v", rr.Code, body)
	}
}

func TestHealthReportsDegraded(t *testing.T) {
	h := NewHealthHandler(func() []string { return []string{"s3"} })
	rr, body := serve(t, http.HandlerFunc(h.Get), http.MethodGet, "/healthz", "")
	if rr.Code != http.StatusOK || body["ok"] != true {
		t.Fatalf("unexpected response: %d %v", rr.Code, body)
	}
	if degraded, _ := body["degraded"].([]any); len(degraded) != 1 || degraded[0] != "s3" {
		t.Fatalf("unexpected degraded list: %v", body["degraded"])
	}
}

func TestAuthHandlerValidation(t *testing.T) {
	rr, body := serve(t, http.HandlerFunc(NewAuthHandler(nil, nil).Login), http.MethodPost, "/admin/auth/login", `{}`)
	if rr.Code != http.StatusInternalServerError || body["code"] != "AUTH_SERVICE_UNAVAILABLE" {
		t.Fatalf("unexpected response: %d %v", rr.Code, body)
	}

	rr, body = serve(t, http.HandlerFunc(NewAuthHandler(nil, nil).Me), http.MethodGet, "/admin/auth/me", "")
	if rr.Code != http.StatusUnauthorized || body["code"] != "UNAUTHORIZED" {
		t.Fatalf("unexpected response: %d %v", rr.Code, body)
	}
}
