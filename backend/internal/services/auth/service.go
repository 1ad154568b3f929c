package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/model"
)

const (
	defaultSessionTTL = 12 * time.Hour
	defaultIssuer     = "Eros Admin"
)

type SessionStore interface {
	Create(ctx context.Context, session model.AdminSession) error
	Get(ctx context.Context, sid string) (model.AdminSession, error)
	Delete(ctx context.Context, sid string) error
}

type AdminDirectory interface {
	FindByEmail(ctx context.Context, email string) (model.AdminUser, error)
	GetByID(ctx context.Context, id string) (model.AdminUser, error)
	MarkLogin(ctx context.Context, id string, at time.Time) error
	SaveTOTPSecret(ctx context.Context, id, sealedSecret string) error
	EnableTOTP(ctx context.Context, id string) error
}

type LoginThrottle interface {
	Check(ctx context.Context, key string) (time.Duration, error)
	RegisterFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

type Config struct {
	SessionTTL time.Duration
	TOTPIssuer string
}

type Service struct {
	jwt      *JWTManager
	sessions SessionStore
	admins   AdminDirectory
	throttle LoginThrottle
	cipher   *SecretCipher
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(jwtManager *JWTManager, sessions SessionStore, admins AdminDirectory, throttle LoginThrottle, cipher *SecretCipher, cfg Config, logger *zap.Logger) *Service {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if strings.TrimSpace(cfg.TOTPIssuer) == "" {
		cfg.TOTPIssuer = defaultIssuer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		jwt:      jwtManager,
		sessions: sessions,
		admins:   admins,
		throttle: throttle,
		cipher:   cipher,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Login checks email and password, then the TOTP code when the admin has
// two-factor enabled. Failed attempts count towards the throttle; a missing
// TOTP code does not.
func (s *Service) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return LoginResult{}, ErrInvalidInput
	}
	if s.jwt == nil || s.sessions == nil || s.admins == nil {
		return LoginResult{}, fmt.Errorf("auth service dependencies are not configured")
	}

	throttleKey := "login:" + email
	if s.throttle != nil {
		retryAfter, err := s.throttle.Check(ctx, throttleKey)
		if err != nil {
			return LoginResult{}, fmt.Errorf("check login throttle: %w", err)
		}
		if retryAfter > 0 {
			return LoginResult{}, &TooManyAttemptsError{RetryAfter: retryAfter}
		}
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			return LoginResult{}, s.fail(ctx, throttleKey, ErrUnauthorized)
		}
		return LoginResult{}, err
	}
	if !admin.IsActive || !admin.Role.Valid() || admin.PasswordHash == "" {
		return LoginResult{}, s.fail(ctx, throttleKey, ErrUnauthorized)
	}
	if err := CheckPassword(admin.PasswordHash, in.Password); err != nil {
		return LoginResult{}, s.fail(ctx, throttleKey, ErrUnauthorized)
	}

	if admin.TwoFactorEnabled {
		if strings.TrimSpace(in.TOTPCode) == "" {
			return LoginResult{}, ErrTOTPRequired
		}
		secret, err := s.openSecret(admin)
		if err != nil {
			return LoginResult{}, err
		}
		if !ValidateTOTP(secret, in.TOTPCode, s.now()) {
			return LoginResult{}, s.fail(ctx, throttleKey, ErrInvalidTOTP)
		}
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, throttleKey); err != nil {
			s.logger.Warn("reset login throttle failed", zap.Error(err))
		}
	}

	now := s.now().UTC()
	session := model.AdminSession{
		ID:        NewSessionID(),
		AdminID:   admin.ID,
		Email:     admin.Email,
		Role:      admin.Role,
		UserAgent: strings.TrimSpace(in.UserAgent),
		IP:        strings.TrimSpace(in.IP),
		ExpiresAt: now.Add(s.cfg.SessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return LoginResult{}, fmt.Errorf("create session: %w", err)
	}

	accessToken, accessExpires, err := s.jwt.GenerateAccessToken(admin.ID, session.ID, admin.Role)
	if err != nil {
		return LoginResult{}, fmt.Errorf("generate access token: %w", err)
	}

	if err := s.admins.MarkLogin(ctx, admin.ID, now); err != nil {
		s.logger.Warn("update last_login_at failed", zap.String("admin_id", admin.ID), zap.Error(err))
	} else {
		admin.LastLoginAt = &now
	}

	return LoginResult{
		AccessToken:   accessToken,
		AccessExpires: accessExpires,
		Admin:         admin,
	}, nil
}

func (s *Service) ValidateAccessToken(ctx context.Context, accessToken string) (Identity, error) {
	if s.jwt == nil || s.sessions == nil {
		return Identity{}, ErrUnauthorized
	}
	claims, err := s.jwt.ParseAccessToken(accessToken)
	if err != nil {
		return Identity{}, ErrUnauthorized
	}

	session, err := s.sessions.Get(ctx, claims.SID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return Identity{}, ErrUnauthorized
		}
		return Identity{}, fmt.Errorf("get session: %w", err)
	}
	if session.AdminID != claims.AdminID || session.Role != claims.Role {
		return Identity{}, ErrUnauthorized
	}
	if s.now().After(session.ExpiresAt) {
		return Identity{}, ErrUnauthorized
	}

	return Identity{
		AdminID: session.AdminID,
		SID:     session.ID,
		Email:   session.Email,
		Role:    session.Role,
	}, nil
}

func (s *Service) Logout(ctx context.Context, sid string) error {
	if strings.TrimSpace(sid) == "" {
		return ErrInvalidInput
	}
	if s.sessions == nil {
		return fmt.Errorf("session store is nil")
	}
	if err := s.sessions.Delete(ctx, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Service) Me(ctx context.Context, identity Identity) (model.AdminUser, error) {
	if s.admins == nil {
		return model.AdminUser{}, fmt.Errorf("admin directory is nil")
	}
	admin, err := s.admins.GetByID(ctx, identity.AdminID)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			return model.AdminUser{}, ErrUnauthorized
		}
		return model.AdminUser{}, err
	}
	if !admin.IsActive {
		return model.AdminUser{}, ErrUnauthorized
	}
	return admin, nil
}

// SetupTOTP stores a fresh sealed secret on the admin row with two-factor
// still disabled; EnableTOTP turns it on once a code from it verifies.
func (s *Service) SetupTOTP(ctx context.Context, identity Identity) (TOTPSetup, error) {
	if s.cipher == nil {
		return TOTPSetup{}, ErrTOTPUnavailable
	}
	admin, err := s.Me(ctx, identity)
	if err != nil {
		return TOTPSetup{}, err
	}
	if admin.TwoFactorEnabled {
		return TOTPSetup{}, ErrTOTPAlreadyEnabled
	}

	secret, otpURL, err := GenerateTOTPSecret(s.cfg.TOTPIssuer, admin.Email)
	if err != nil {
		return TOTPSetup{}, fmt.Errorf("generate totp secret: %w", err)
	}
	sealed, err := s.cipher.Encrypt(secret)
	if err != nil {
		return TOTPSetup{}, fmt.Errorf("seal totp secret: %w", err)
	}
	if err := s.admins.SaveTOTPSecret(ctx, admin.ID, sealed); err != nil {
		return TOTPSetup{}, err
	}
	qr, err := MakeQRCodeDataURL(otpURL, 256)
	if err != nil {
		return TOTPSetup{}, fmt.Errorf("render totp qr: %w", err)
	}

	return TOTPSetup{Secret: secret, OTPURL: otpURL, QRDataURL: qr}, nil
}

func (s *Service) EnableTOTP(ctx context.Context, identity Identity, code string) error {
	admin, err := s.Me(ctx, identity)
	if err != nil {
		return err
	}
	if admin.TwoFactorEnabled {
		return ErrTOTPAlreadyEnabled
	}
	if admin.TwoFactorSecret == nil || strings.TrimSpace(*admin.TwoFactorSecret) == "" {
		return ErrTOTPNotStarted
	}
	secret, err := s.openSecret(admin)
	if err != nil {
		return err
	}
	if !ValidateTOTP(secret, code, s.now()) {
		return ErrInvalidTOTP
	}
	return s.admins.EnableTOTP(ctx, admin.ID)
}

func (s *Service) openSecret(admin model.AdminUser) (string, error) {
	if admin.TwoFactorSecret == nil {
		return "", ErrTOTPNotStarted
	}
	secret, err := s.cipher.Decrypt(*admin.TwoFactorSecret)
	if err != nil {
		return "", fmt.Errorf("open totp secret: %w", err)
	}
	if secret == "" {
		return "", ErrTOTPNotStarted
	}
	return secret, nil
}

func (s *Service) fail(ctx context.Context, throttleKey string, cause error) error {
	if s.throttle != nil {
		if err := s.throttle.RegisterFailure(ctx, throttleKey); err != nil {
			s.logger.Warn("register failed login failed", zap.Error(err))
		}
	}
	return cause
}
