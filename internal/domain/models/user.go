package models

import (
	"context"

	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
)

// User is the authenticated caller of the admin API.
type User struct {
	ID   string
	Role types.UserRole
}

func AnonymousUser() *User {
	return &User{}
}

func (u *User) IsAnonymous() bool {
	return u == nil || u.ID == ""
}

type userCtxKey struct{}

func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

func UserFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userCtxKey{}).(*User)
	return u
}
