package gateway

import "context"

type actorContextKeyType struct{}

var actorContextKey actorContextKeyType

// WithActor records the admin on whose behalf gateway writes are issued.
func WithActor(ctx context.Context, adminID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, actorContextKey, adminID)
}

func ActorFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(actorContextKey).(string)
	return value
}
