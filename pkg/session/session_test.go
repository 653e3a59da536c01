package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripdesk/tripdesk/pkg/model"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(testKey, time.Hour, true)
	require.NoError(t, err)
	return m
}

func TestNewManagerRejectsShortKey(t *testing.T) {
	_, err := NewManager([]byte("short"), time.Hour, false)
	assert.Error(t, err)

	_, err = NewManager(testKey, 0, false)
	assert.Error(t, err)
}

func TestIssueAndVerify(t *testing.T) {
	m := newTestManager(t)
	user := &model.User{ID: 12, Email: "asha@example.com", Role: model.UserRoleAdmin}

	token, expires, err := m.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 2*time.Second)

	id, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(12), id.UserID)
	assert.Equal(t, "asha@example.com", id.Email)
	assert.Equal(t, model.UserRoleAdmin, id.Role)
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := newTestManager(t)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := m.Issue(&model.User{ID: 1, Role: model.UserRoleCustomer})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForeignTokens(t *testing.T) {
	m := newTestManager(t)

	claims := Claims{
		Role: "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	wrongIssuer, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	require.NoError(t, err)

	claims.Issuer = Issuer
	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testKey)
	require.NoError(t, err)

	wrongKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another-key-another-key-another!!"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"issuer":    wrongIssuer,
		"algorithm": wrongAlg,
		"key":       wrongKey,
		"garbage":   "not.a.jwt",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Verify(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	_, err = m.Verify("")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestCookies(t *testing.T) {
	m := newTestManager(t)

	c := m.Cookie("tok", time.Now().Add(time.Hour))
	assert.Equal(t, CookieName, c.Name)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	cleared := m.ClearCookie()
	assert.Equal(t, -1, cleared.MaxAge)
	assert.Empty(t, cleared.Value)
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, TokenFromRequest(r))

	r.AddCookie(&http.Cookie{Name: CookieName, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", TokenFromRequest(r))

	r.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-header", TokenFromRequest(r))

	r.Header.Set("Authorization", "Token token=\"x\"")
	assert.Empty(t, TokenFromRequest(r))
}
