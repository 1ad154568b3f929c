package auth

import "github.com/segmentio/ksuid"

// NewSessionID returns a time-sortable session id.
func NewSessionID() string {
	return ksuid.New().String()
}
