package store

import (
	"context"

	"github.com/tripdesk/tripdesk/pkg/model"
)

// UsersStore abstracts user account storage
type UsersStore interface {
	// CreateUser inserts a user. Returns ErrConflict if the email is taken.
	CreateUser(ctx context.Context, user *model.User) error

	// GetUserByEmail looks up a user by lowercase email.
	// Returns ErrNotFound if there is no such user.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	GetUserByID(ctx context.Context, id uint) (*model.User, error)

	// LinkOAuth records the external identity for an existing user
	LinkOAuth(ctx context.Context, userID uint, provider, subject string) error
}
