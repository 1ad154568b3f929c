package auth

import (
	"context"

	"github.com/brodiemcgee/eros-admin/backend/internal/domain/enums"
)

type identityKey struct{}

// Identity is the authenticated admin attached to a request.
type Identity struct {
	AdminID string
	SID     string
	Email   string
	Role    enums.AdminRole
}

func (i Identity) HasRole(roles ...enums.AdminRole) bool {
	for _, role := range roles {
		if i.Role == role {
			return true
		}
	}
	return false
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok && identity.AdminID != ""
}
