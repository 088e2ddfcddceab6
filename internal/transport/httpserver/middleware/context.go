package middleware

import (
	"context"

	"church-app-go/internal/domain/policy"
	userdomain "church-app-go/internal/domain/user"
)

type contextKey int

const (
	userKey contextKey = iota
)

func WithUser(ctx context.Context, user *userdomain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (*userdomain.User, bool) {
	user, ok := ctx.Value(userKey).(*userdomain.User)
	if !ok || user == nil || user.ID == 0 {
		return nil, false
	}
	return user, true
}

// IdentityFromContext returns the zero identity for anonymous requests.
func IdentityFromContext(ctx context.Context) policy.Identity {
	user, ok := UserFromContext(ctx)
	if !ok {
		return policy.Identity{}
	}
	return user.Identity()
}
