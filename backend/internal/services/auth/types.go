package auth

import (
	"errors"
	"time"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
	"github.com/brodiemcgee/eros-admin/backend/internal/domain/model"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrSessionNotFound    = errors.New("session not found")
	ErrAdminNotFound      = errors.New("admin user not found")
	ErrTOTPRequired       = errors.New("totp code is required")
	ErrInvalidTOTP        = errors.New("invalid totp code")
	ErrTOTPAlreadyEnabled = errors.New("two-factor authentication is already enabled")
	ErrTOTPNotStarted     = errors.New("two-factor setup has not been started")
	ErrTOTPUnavailable    = errors.New("two-factor secrets cannot be stored")
)

// TooManyAttemptsError is returned while the login throttle is closed.
type TooManyAttemptsError struct {
	RetryAfter time.Duration
}

func (e *TooManyAttemptsError) Error() string {
	return "too many login attempts"
}

type AccessClaims struct {
	AdminID   string
	SID       string
	Role      enums.AdminRole
	ExpiresAt time.Time
}

type LoginInput struct {
	Email     string
	Password  string
	TOTPCode  string
	UserAgent string
	IP        string
}

type LoginResult struct {
	AccessToken   string
	AccessExpires time.Time
	Admin         model.AdminUser
}

type TOTPSetup struct {
	Secret    string
	OTPURL    string
	QRDataURL string
}
