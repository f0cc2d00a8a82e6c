package api_context

import (
	"context"

	"github.com/fhuszti/resizer-ms-go/internal/uuid"
)

type ctxKey string

const (
	SessionIDKey  ctxKey = "sessionID"
	AuthUserIDKey ctxKey = "authUserID"
	AuthRolesKey  ctxKey = "authRoles"
)

func SessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(SessionIDKey).(uuid.UUID)
	return id, ok
}

func WithSessionID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, SessionIDKey, id)
}

// AuthUserIDFromContext returns the JWT subject of the caller.
func AuthUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(AuthUserIDKey).(string)
	return id, ok && id != ""
}

func AuthRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(AuthRolesKey).([]string)
	return roles, ok
}

func WithAuth(ctx context.Context, userID string, roles []string) context.Context {
	ctx = context.WithValue(ctx, AuthUserIDKey, userID)
	return context.WithValue(ctx, AuthRolesKey, roles)
}
