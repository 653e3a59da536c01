package password

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/tripdesk/tripdesk/pkg/authenticator"
	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server/store"
	"github.com/tripdesk/tripdesk/pkg/validation"
)

// Name is the registry name of the password authenticator
const Name = "password"

// maxPasswordBytes is the longest input bcrypt accepts
const maxPasswordBytes = 72

// ErrEmailTaken is returned by Signup when the email already has an account
var ErrEmailTaken = errors.New("an account with this email already exists")

// SignupRequest is the body of POST /auth/signup
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Authenticator implements email + password authentication
type Authenticator struct {
	users store.UsersStore
	cost  int
}

// NewAuthenticator creates a password authenticator backed by the users store
func NewAuthenticator(users store.UsersStore) *Authenticator {
	return &Authenticator{users: users, cost: bcrypt.DefaultCost}
}

// Name returns the authenticator name
func (a *Authenticator) Name() string {
	return Name
}

// Authenticate checks the email and password. Unknown emails, OAuth-only
// accounts and wrong passwords all yield ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, input authenticator.Input) (*model.User, error) {
	email := NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, authenticator.ErrInvalidCredentials
	}

	user, err := a.users.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		// keep timing in line with the known-email path
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(input.Password))
		return nil, authenticator.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user.PasswordHash == nil {
		return nil, authenticator.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, authenticator.ErrInvalidCredentials
	}
	return user, nil
}

// Signup validates the request and creates a customer account
func (a *Authenticator) Signup(ctx context.Context, req SignupRequest) (*model.User, error) {
	req.Email = NormalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	errs := validation.Errors{}
	if err := validation.Struct(req); err != nil {
		fe, ok := validation.AsErrors(err)
		if !ok {
			return nil, err
		}
		errs = fe
	}
	if msg := checkPassword(req.Password); msg != "" {
		errs.Add("password", msg)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password, a.cost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: &hash,
		Role:         model.UserRoleCustomer,
	}
	if err := a.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// HashPassword returns the bcrypt hash of password
func HashPassword(password string, cost int) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("password longer than %d bytes", maxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// NormalizeEmail trims and lowercases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkPassword(p string) string {
	switch {
	case p == "":
		return "is required"
	case len(p) < 8:
		return "must be at least 8 characters"
	case len(p) > maxPasswordBytes:
		return fmt.Sprintf("must be at most %d bytes", maxPasswordBytes)
	}
	return ""
}

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("tripdesk-dummy-password"), bcrypt.MinCost)
