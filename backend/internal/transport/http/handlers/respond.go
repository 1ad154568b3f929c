package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/brodiemcgee/eros-admin/backend/internal/gateway"
	authsvc "github.com/brodiemcgee/eros-admin/backend/internal/services/auth"
	photossvc "github.com/brodiemcgee/eros-admin/backend/internal/services/photos"
	subssvc "github.com/brodiemcgee/eros-admin/backend/internal/services/subscriptions"
	"github.com/brodiemcgee/eros-admin/backend/internal/services/transition"
	userssvc "github.com/brodiemcgee/eros-admin/backend/internal/services/users"
	httperrors "github.com/brodiemcgee/eros-admin/backend/internal/transport/http/errors"
)

const maxBodyBytes = 64 << 10

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

// decodeOptionalJSON accepts an empty body and leaves target untouched.
func decodeOptionalJSON(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	if err := decodeJSON(r, target); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeOK(w http.ResponseWriter, payload any) {
	httperrors.Write(w, http.StatusOK, payload)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.WriteError(w, http.StatusBadRequest, code, message)
}

func writeUnauthorized(w http.ResponseWriter, code, message string) {
	httperrors.WriteError(w, http.StatusUnauthorized, code, message)
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.WriteError(w, http.StatusInternalServerError, code, message)
}

func writeUnavailable(w http.ResponseWriter, service string) {
	writeInternal(w, strings.ToUpper(service)+"_SERVICE_UNAVAILABLE", service+" service is unavailable")
}

// writeServiceError maps service and gateway errors onto the API envelope.
// Backend messages are passed through verbatim.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error, op string) {
	switch {
	case errors.Is(err, transition.ErrReasonRequired):
		writeBadRequest(w, "REASON_REQUIRED", err.Error())
	case errors.Is(err, transition.ErrConfirmationRequired):
		writeBadRequest(w, "CONFIRMATION_REQUIRED", err.Error())
	case errors.Is(err, transition.ErrValidation),
		errors.Is(err, transition.ErrIllegalTransition),
		errors.Is(err, photossvc.ErrValidation),
		errors.Is(err, subssvc.ErrValidation),
		errors.Is(err, userssvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
	case gateway.IsBackendError(err):
		if log != nil {
			log.Warn("backend request failed",
				zap.String("op", op),
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
		}
		httperrors.WriteError(w, http.StatusBadGateway, "BACKEND_ERROR", gateway.Message(err))
	default:
		if log != nil {
			log.Error("request failed", zap.String("op", op), zap.Error(err))
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to "+op)
	}
}

func actorID(r *http.Request) string {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		return ""
	}
	return identity.AdminID
}

func pathID(r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	return id, id != ""
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
