package apiapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
	"github.com/brodiemcgee/eros-admin/backend/internal/services/audit"
	authsvc "github.com/brodiemcgee/eros-admin/backend/internal/services/auth"
)

type validatorStub struct {
	identity authsvc.Identity
	err      error
}

func (v validatorStub) ValidateAccessToken(_ context.Context, token string) (authsvc.Identity, error) {
	if token != "good-token" {
		return authsvc.Identity{}, authsvc.ErrUnauthorized
	}
	return v.identity, v.err
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	mw := RequireRole(enums.AdminRoleSuperAdmin, enums.AdminRoleAdmin, enums.AdminRoleModerator)

	req := httptest.NewRequest(http.MethodGet, "/admin/photos", nil)
	req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
		AdminID: "adm-1",
		SID:     "sid-1",
		Role:    enums.AdminRoleModerator,
	}))
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNoContent)
	}
}

func TestRequireRoleRejectsForbiddenRole(t *testing.T) {
	mw := RequireRole(enums.AdminRoleSuperAdmin, enums.AdminRoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin/analytics", nil)
	req = req.WithContext(authsvc.WithIdentity(context.Background(), authsvc.Identity{
		AdminID: "adm-2",
		SID:     "sid-2",
		Role:    enums.AdminRoleSupport,
	}))
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called for forbidden role")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusForbidden)
	}
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	rr := httptest.NewRecorder()
	RequireRole(enums.AdminRoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called without identity")
	})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/analytics", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareRejectsMissingAndInvalidTokens(t *testing.T) {
	mw := AuthMiddleware(validatorStub{}, zap.NewNop())
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called")
	})

	for _, header := range []string{"", "Basic abc", "Bearer bad-token"} {
		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		mw(next).ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: unexpected status %d", header, rr.Code)
		}
	}
}

func TestAuthMiddlewareSetsActorContext(t *testing.T) {
	mw := AuthMiddleware(validatorStub{identity: authsvc.Identity{
		AdminID: "5f0c7a3e-8d7b-4d6c-9b0e-1f2a3b4c5d6e",
		SID:     "sid-9",
		Role:    enums.AdminRoleAdmin,
	}}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	req.RemoteAddr = "203.0.113.7"
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := authsvc.IdentityFromContext(r.Context())
		if !ok || identity.Role != enums.AdminRoleAdmin {
			t.Fatalf("identity missing in context: %+v", identity)
		}
		if gateway.ActorFromContext(r.Context()) != identity.AdminID {
			t.Fatalf("gateway actor not set")
		}
		if ip := audit.ClientIPFromContext(r.Context()); ip != "203.0.113.7" {
			t.Fatalf("client ip mismatch: %q", ip)
		}
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNoContent)
	}
}

func TestAuthMiddlewareWithoutValidator(t *testing.T) {
	rr := httptest.NewRecorder()
	AuthMiddleware(nil, nil)(http.NotFoundHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}
