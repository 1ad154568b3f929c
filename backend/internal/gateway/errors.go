package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

var ErrInvalidQuery = errors.New("invalid gateway query")

// BackendError is returned by every gateway backend. Message is what the
// backend itself reported and is shown to admins unchanged.
type BackendError struct {
	Op           string
	StatusCode   int
	Code         string
	Message      string
	Fallbackable bool
	Err          error
}

func (e *BackendError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	switch {
	case e.StatusCode > 0 && msg != "":
		return fmt.Sprintf("%s: status=%d: %s", e.Op, e.StatusCode, msg)
	case msg != "":
		return fmt.Sprintf("%s: %s", e.Op, msg)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s: status=%d", e.Op, e.StatusCode)
	default:
		return e.Op
	}
}

func (e *BackendError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

const fallbackMessage = "backend request failed"

// Message extracts the backend-provided message from err, falling back to a
// generic string when the backend said nothing useful.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		if msg := strings.TrimSpace(backendErr.Message); msg != "" {
			return msg
		}
		if backendErr.Err != nil {
			if msg := strings.TrimSpace(backendErr.Err.Error()); msg != "" {
				return msg
			}
		}
		return fallbackMessage
	}
	return fallbackMessage
}

func IsBackendError(err error) bool {
	var backendErr *BackendError
	return errors.As(err, &backendErr)
}

// IsFallbackable reports whether a second backend may be tried after err.
// Transport failures, timeouts and 5xx responses qualify; anything the
// backend deliberately rejected does not.
func IsFallbackable(err error) bool {
	if err == nil {
		return false
	}
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		return backendErr.Fallbackable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
