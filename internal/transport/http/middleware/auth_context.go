package middleware

import (
	"context"

	"github.com/fashionhub/auth-service/internal/domain"
)

type ctxKey string

const (
	ctxUserID   ctxKey = "user_id"
	ctxRole     ctxKey = "role"
	ctxRawToken ctxKey = "raw_token"
)

// WithIdentity stores the authenticated identity plus the literal bearer
// token (logout needs the raw value to register it in the ledger).
func WithIdentity(ctx context.Context, user domain.User, rawToken string) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, user.ID)
	ctx = context.WithValue(ctx, ctxRole, string(user.Role))
	ctx = context.WithValue(ctx, ctxRawToken, rawToken)
	return ctx
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxUserID).(string)
	return v, ok && v != ""
}

func RoleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxRole).(string)
	return v, ok && v != ""
}

func RawTokenFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxRawToken).(string)
	return v, ok && v != ""
}
