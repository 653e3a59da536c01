package authenticator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripdesk/tripdesk/pkg/model"
)

type stubAuthenticator struct {
	name string
}

func (s *stubAuthenticator) Name() string {
	return s.name
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, input Input) (*model.User, error) {
	if input.Password == "" && input.Code == "" {
		return nil, ErrInvalidCredentials
	}
	return &model.User{Email: input.Email}, nil
}

func newTestRegistry(t *testing.T, enabled ...string) *Registry {
	t.Helper()
	r := NewRegistry()
	r.Register(&stubAuthenticator{name: "password"})
	r.Register(&stubAuthenticator{name: "google"})
	for _, name := range enabled {
		require.NoError(t, r.Enable(name))
	}
	return r
}

func TestRegistry_Enable(t *testing.T) {
	r := newTestRegistry(t, "password")

	assert.True(t, r.IsEnabled("password"))
	assert.False(t, r.IsEnabled("google"))

	err := r.Enable("github")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRegistry_Disable(t *testing.T) {
	r := newTestRegistry(t, "password", "google")

	r.Disable("password")
	r.Disable("never-registered")

	assert.False(t, r.IsEnabled("password"))
	assert.Equal(t, []string{"google"}, r.Enabled())
}

func TestRegistry_EnabledIsSorted(t *testing.T) {
	r := newTestRegistry(t, "password", "google")

	assert.Equal(t, []string{"google", "password"}, r.Enabled())
	assert.Empty(t, NewRegistry().Enabled())
}

func TestRegistry_Lookup(t *testing.T) {
	r := newTestRegistry(t, "password")

	tests := []struct {
		name    string
		wantErr error
	}{
		{name: "password"},
		{name: "google", wantErr: ErrNotEnabled},
		{name: "github", wantErr: ErrNotEnabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth, err := r.Lookup(tt.name)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, auth)
				return
			}
			require.NoError(t, err)

			user, err := auth.Authenticate(context.Background(), Input{Email: "asha@example.com", Password: "pw"})
			require.NoError(t, err)
			assert.Equal(t, "asha@example.com", user.Email)

			_, err = auth.Authenticate(context.Background(), Input{Email: "asha@example.com"})
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}
