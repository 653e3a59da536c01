package identity

import (
	"context"
	"time"

	"github.com/tripdesk/tripdesk/pkg/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated user behind a request.
type Identity struct {
	UserID    uint
	Email     string
	Role      model.UserRole
	ExpiresAt time.Time

	// ClientIP is the remote address the request arrived from
	ClientIP string
}

// FromUser creates an Identity for a freshly authenticated user.
func FromUser(u *model.User, expiresAt time.Time) *Identity {
	return &Identity{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		ExpiresAt: expiresAt,
	}
}

// WithClientIP sets the client address and returns the identity for chaining.
func (i *Identity) WithClientIP(ip string) *Identity {
	i.ClientIP = ip
	return i
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == model.UserRoleAdmin
}

// HasRole reports whether the identity has at least the given role.
func (i *Identity) HasRole(role model.UserRole) bool {
	if i == nil {
		return false
	}
	return i.Role >= role
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
