package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/pquerna/otp/totp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
	"github.com/brodiemcgee/eros-admin/backend/internal/domain/model"
	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
	"github.com/brodiemcgee/eros-admin/backend/internal/gateway/gatewaytest"
	redrepo "github.com/brodiemcgee/eros-admin/backend/internal/repo/redis"
	authsvc "github.com/brodiemcgee/eros-admin/backend/internal/services/auth"
	"github.com/brodiemcgee/eros-admin/backend/internal/services/rate"
)

const (
	testAdminID  = "5f0c7a3e-8d7b-4d6c-9b0e-1f2a3b4c5d6e"
	testPassword = "correct horse battery"
	testKey      = "0123456789abcdef0123456789abcdef"
)

type memoryAdmins struct {
	mu    sync.Mutex
	admin model.AdminUser
}

func (m *memoryAdmins) FindByEmail(_ context.Context, email string) (model.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !strings.EqualFold(email, m.admin.Email) {
		return model.AdminUser{}, authsvc.ErrAdminNotFound
	}
	return m.admin, nil
}

func (m *memoryAdmins) GetByID(_ context.Context, id string) (model.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id != m.admin.ID {
		return model.AdminUser{}, authsvc.ErrAdminNotFound
	}
	return m.admin, nil
}

func (m *memoryAdmins) MarkLogin(_ context.Context, _ string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admin.LastLoginAt = &at
	return nil
}

func (m *memoryAdmins) SaveTOTPSecret(_ context.Context, _ string, sealed string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admin.TwoFactorSecret = &sealed
	m.admin.TwoFactorEnabled = false
	return nil
}

func (m *memoryAdmins) EnableTOTP(_ context.Context, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admin.TwoFactorEnabled = true
	return nil
}

type authFixture struct {
	svc    *authsvc.Service
	admins *memoryAdmins
	mr     *miniredis.Miniredis
}

func newAuthFixture(t *testing.T, maxAttempts int) *authFixture {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	hash, err := authsvc.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	admins := &memoryAdmins{admin: model.AdminUser{
		ID:           testAdminID,
		Email:        "ops@example.com",
		RoleRaw:      "moderator",
		Role:         enums.AdminRoleModerator,
		IsActive:     true,
		PasswordHash: hash,
	}}

	cipher, err := authsvc.NewSecretCipher(testKey)
	if err != nil {
		t.Fatalf("secret cipher: %v", err)
	}

	svc := authsvc.NewService(
		authsvc.NewJWTManager("test-secret", 15*time.Minute),
		redrepo.NewSessionRepo(client),
		admins,
		rate.NewLoginThrottle(redrepo.NewRateRepo(client), maxAttempts, time.Minute),
		cipher,
		authsvc.Config{SessionTTL: time.Hour, TOTPIssuer: "Eros Admin Test"},
		nil,
	)

	return &authFixture{svc: svc, admins: admins, mr: mr}
}

func TestLoginIssuesSessionBackedToken(t *testing.T) {
	f := newAuthFixture(t, 5)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, authsvc.LoginInput{Email: " OPS@example.com ", Password: testPassword, UserAgent: "test", IP: "10.0.0.1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.AccessToken == "" || res.Admin.ID != testAdminID || res.Admin.LastLoginAt == nil {
		t.Fatalf("unexpected login result: %+v", res)
	}

	identity, err := f.svc.ValidateAccessToken(ctx, res.AccessToken)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if identity.AdminID != testAdminID || identity.Role != enums.AdminRoleModerator || identity.Email != "ops@example.com" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if !f.mr.Exists("admin_sessions:" + identity.SID) {
		t.Fatalf("expected session hash in redis")
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	f := newAuthFixture(t, 5)
	ctx := context.Background()

	res, err := f.svc.Login(ctx, authsvc.LoginInput{Email: "ops@example.com", Password: testPassword})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	identity, err := f.svc.ValidateAccessToken(ctx, res.AccessToken)
	if err != nil {
		t.Fatalf("validate before logout: %v", err)
	}

	if err := f.svc.Logout(ctx, identity.SID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := f.svc.ValidateAccessToken(ctx, res.AccessToken); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("expected unauthorized after logout, got %v", err)
	}
}

func TestLoginRejectsBadCredentialsAndThrottles(t *testing.T) {
	f := newAuthFixture(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := f.svc.Login(ctx, authsvc.LoginInput{Email: "ops@example.com", Password: "wrong"})
		if !errors.Is(err, authsvc.ErrUnauthorized) {
			t.Fatalf("attempt #%d: expected unauthorized, got %v", i+1, err)
		}
	}

	_, err := f.svc.Login(ctx, authsvc.LoginInput{Email: "ops@example.com", Password: testPassword})
	var tooMany *authsvc.TooManyAttemptsError
	if !errors.As(err, &tooMany) || tooMany.RetryAfter <= 0 {
		t.Fatalf("expected TooManyAttemptsError, got %v", err)
	}
}

func TestLoginUnknownAndInactiveAdmins(t *testing.T) {
	f := newAuthFixture(t, 10)
	ctx := context.Background()

	if _, err := f.svc.Login(ctx, authsvc.LoginInput{Email: "nobody@example.com", Password: testPassword}); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("unknown admin: expected unauthorized, got %v", err)
	}
	if _, err := f.svc.Login(ctx, authsvc.LoginInput{Email: "", Password: testPassword}); !errors.Is(err, authsvc.ErrInvalidInput) {
		t.Fatalf("empty email: expected invalid input, got %v", err)
	}

	f.admins.admin.IsActive = false
	if _, err := f.svc.Login(ctx, authsvc.LoginInput{Email: "ops@example.com", Password: testPassword}); !errors.Is(err, authsvc.ErrUnauthorized) {
		t.Fatalf("inactive admin: expected unauthorized, got %v", err)
	}
}

func TestTOTPSetupEnableAndLogin(t *testing.T) {
	f := newAuthFixture(t, 10)
	ctx := context.Background()
	identity := authsvc.Identity{AdminID: testAdminID, Role: enums.AdminRoleModerator}

	setup, err := f.svc.SetupTOTP(ctx, identity)
	if err != nil {
		t.Fatalf("setup totp: %v", err)
	}
	if setup.Secret == "" || !strings.HasPrefix(setup.QRDataURL, "data:image/png;base64,") {
		t.Fatalf("unexpected setup: %+v", setup)
	}
	stored := f.admins.admin.TwoFactorSecret
	if stored == nil || !strings.HasPrefix(*stored, "enc:v1:") || strings.Contains(*stored, setup.Secret) {
		t.Fatalf("secret must be stored sealed, got %v", stored)
	}

	if err := f.svc.EnableTOTP(ctx, identity, "000000"); !errors.Is(err, authsvc.ErrInvalidTOTP) {
		t.Fatalf("expected invalid totp, got %v", err)
	}

	code, err := totp.GenerateCode(setup.Secret, time.Now())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	if err := f.svc.EnableTOTP(ctx, identity, code); err != nil {
		t.Fatalf("enable totp: %v", err)
	}
	if !f.admins.admin.TwoFactorEnabled {
		t.Fatalf("expected two-factor to be enabled")
	}
	if _, err := f.svc.SetupTOTP(ctx, identity); !errors.Is(err, authsvc.ErrTOTPAlreadyEnabled) {
		t.Fatalf("expected already enabled, got %v", err)
	}

	if _, err := f.svc.Login(ctx, authsvc.LoginInput{Email: "ops@example.com", Password: testPassword}); !errors.Is(err, authsvc.ErrTOTPRequired) {
		t.Fatalf("expected totp required, got %v", err)
	}
	if _, err := f.svc.Login(ctx, authsvc.LoginInput{Email: "ops@example.com", Password: testPassword, TOTPCode: code}); err != nil {
		t.Fatalf("login with totp: %v", err)
	}
}

func TestEnableTOTPWithoutSetup(t *testing.T) {
	f := newAuthFixture(t, 10)
	err := f.svc.EnableTOTP(context.Background(), authsvc.Identity{AdminID: testAdminID}, "123456")
	if !errors.Is(err, authsvc.ErrTOTPNotStarted) {
		t.Fatalf("expected ErrTOTPNotStarted, got %v", err)
	}
}

func TestAdminStoreFindByEmail(t *testing.T) {
	fake := &gatewaytest.Fake{SelectFn: func(q gateway.Query) (json.RawMessage, error) {
		return gatewaytest.Rows([]map[string]any{{"id": testAdminID, "email": "ops@example.com", "role": "super_admin", "is_active": true, "created_at": "2026-01-01T00:00:00Z"}}), nil
	}}
	store := authsvc.NewAdminStore(fake)

	admin, err := store.FindByEmail(context.Background(), " Ops@Example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if admin.Role != enums.AdminRoleSuperAdmin {
		t.Fatalf("expected normalized role, got %q", admin.Role)
	}
	q := fake.Selects[0]
	if q.Table != "admin_users" || q.Limit != 1 || len(q.Filters) != 1 || q.Filters[0].Value != "ops@example.com" {
		t.Fatalf("unexpected query: %+v", q)
	}

	if err := store.EnableTOTP(context.Background(), testAdminID); err != nil {
		t.Fatalf("enable totp: %v", err)
	}
	if fake.Updates[0].Patch["two_factor_enabled"] != true {
		t.Fatalf("unexpected update: %+v", fake.Updates[0])
	}
}

func TestAdminStoreNotFound(t *testing.T) {
	store := authsvc.NewAdminStore(&gatewaytest.Fake{})
	if _, err := store.GetByID(context.Background(), testAdminID); !errors.Is(err, authsvc.ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}
}
