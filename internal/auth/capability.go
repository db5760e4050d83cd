// Package auth holds the per-request staff capability.  It is resolved
// once from the access token by middleware and then passed by value to the
// workflows that need it; nothing downstream re-reads roles or claims.
package auth

import (
	"context"
	"strconv"

	"github.com/iliyamo/armhub-seatdesk/internal/model"
)

// Capability is what an authenticated staff member may do.
type Capability struct {
	UserID uint64 `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Admin  bool   `json:"admin"`
}

// Anonymous is the capability of a request without a valid token.
var Anonymous = Capability{}

// Authenticated reports whether the capability belongs to a logged-in user.
func (c Capability) Authenticated() bool { return c.UserID != 0 }

// Subject returns the user id as a string, or "anon".
func (c Capability) Subject() string {
	if !c.Authenticated() {
		return "anon"
	}
	return strconv.FormatUint(c.UserID, 10)
}

// New builds a capability from verified claims.  Admin is granted when the
// token's role is ADMIN.
func New(userID uint64, email, role string) Capability {
	return Capability{UserID: userID, Email: email, Role: role, Admin: role == model.RoleAdmin}
}

type ctxKey struct{}

// WithCapability returns a copy of ctx carrying c.
func WithCapability(ctx context.Context, c Capability) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// FromContext returns the capability stored in ctx, or Anonymous.
func FromContext(ctx context.Context) Capability {
	if c, ok := ctx.Value(ctxKey{}).(Capability); ok {
		return c
	}
	return Anonymous
}
