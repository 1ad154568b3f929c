package handlers

import (
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/model"
	authsvc "github.com/brodiemcgee/eros-admin/backend/internal/services/auth"
	"github.com/brodiemcgee/eros-admin/backend/internal/transport/http/dto"
	httperrors "github.com/brodiemcgee/eros-admin/backend/internal/transport/http/errors"
)

type AuthHandler struct {
	auth *authsvc.Service
	log  *zap.Logger
}

func NewAuthHandler(auth *authsvc.Service, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: nopIfNil(log)}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		writeUnavailable(w, "auth")
		return
	}

	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	res, err := h.auth.Login(r.Context(), authsvc.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		TOTPCode:  req.TOTPCode,
		UserAgent: r.UserAgent(),
		IP:        r.RemoteAddr,
	})
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	writeOK(w, dto.LoginResponse{
		AccessToken:  res.AccessToken,
		ExpiresAt:    res.AccessExpires,
		ExpiresInSec: int64(math.Max(0, time.Until(res.AccessExpires).Seconds())),
		Admin:        toAdminMe(res.Admin),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.auth == nil {
		writeUnavailable(w, "auth")
		return
	}
	if err := h.auth.Logout(r.Context(), identity.SID); err != nil {
		h.log.Warn("logout failed", zap.String("admin_id", identity.AdminID), zap.Error(err))
		writeInternal(w, "INTERNAL_ERROR", "failed to logout")
		return
	}
	writeOK(w, dto.OKResponse{OK: true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.auth == nil {
		writeUnavailable(w, "auth")
		return
	}
	admin, err := h.auth.Me(r.Context(), identity)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}
	writeOK(w, toAdminMe(admin))
}

func (h *AuthHandler) TOTPSetup(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.auth == nil {
		writeUnavailable(w, "auth")
		return
	}
	setup, err := h.auth.SetupTOTP(r.Context(), identity)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}
	writeOK(w, dto.TOTPSetupResponse{
		Secret:    setup.Secret,
		OTPURL:    setup.OTPURL,
		QRDataURL: setup.QRDataURL,
	})
}

func (h *AuthHandler) TOTPEnable(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.auth == nil {
		writeUnavailable(w, "auth")
		return
	}

	var req dto.TOTPEnableRequest
	if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.Code) == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "code is required")
		return
	}
	if err := h.auth.EnableTOTP(r.Context(), identity, req.Code); err != nil {
		h.writeAuthError(w, err)
		return
	}
	writeOK(w, dto.OKResponse{OK: true})
}

func (h *AuthHandler) writeAuthError(w http.ResponseWriter, err error) {
	var tooMany *authsvc.TooManyAttemptsError
	switch {
	case errors.As(err, &tooMany):
		httperrors.WriteRateLimited(w, "TOO_MANY_ATTEMPTS", "too many login attempts", tooMany.RetryAfter)
	case errors.Is(err, authsvc.ErrInvalidInput):
		writeBadRequest(w, "VALIDATION_ERROR", "email and password are required")
	case errors.Is(err, authsvc.ErrTOTPRequired):
		writeUnauthorized(w, "TOTP_REQUIRED", "two-factor code is required")
	case errors.Is(err, authsvc.ErrInvalidTOTP):
		writeUnauthorized(w, "INVALID_TOTP", "invalid two-factor code")
	case errors.Is(err, authsvc.ErrUnauthorized):
		writeUnauthorized(w, "UNAUTHORIZED", "invalid credentials")
	case errors.Is(err, authsvc.ErrTOTPAlreadyEnabled):
		httperrors.WriteError(w, http.StatusConflict, "TOTP_ALREADY_ENABLED", err.Error())
	case errors.Is(err, authsvc.ErrTOTPNotStarted):
		writeBadRequest(w, "TOTP_NOT_STARTED", err.Error())
	case errors.Is(err, authsvc.ErrTOTPUnavailable):
		writeInternal(w, "TOTP_UNAVAILABLE", err.Error())
	default:
		h.log.Warn("auth request failed", zap.Error(err))
		writeInternal(w, "INTERNAL_ERROR", "authentication failed")
	}
}

func toAdminMe(admin model.AdminUser) dto.AdminMe {
	return dto.AdminMe{
		ID:               admin.ID,
		Email:            admin.Email,
		Role:             string(admin.Role),
		TwoFactorEnabled: admin.TwoFactorEnabled,
		LastLoginAt:      admin.LastLoginAt,
	}
}
