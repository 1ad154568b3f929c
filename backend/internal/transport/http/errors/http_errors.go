package errors

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"
)

// APIError is the envelope of every non-2xx response. Backend messages land
// in Message unchanged.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type RateLimitError struct {
	Code          string `json:"code"`
	Message       string `json:"message"`
	RetryAfterSec int64  `json:"retry_after_sec"`
}

func Write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	Write(w, status, APIError{Code: code, Message: message})
}

// WriteRateLimited answers 429 with the wait both in Retry-After and in the body,
// rounded up to whole seconds.
func WriteRateLimited(w http.ResponseWriter, code, message string, retryAfter time.Duration) {
	secs := int64(math.Ceil(retryAfter.Seconds()))
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.FormatInt(secs, 10))
	Write(w, http.StatusTooManyRequests, RateLimitError{Code: code, Message: message, RetryAfterSec: secs})
}
