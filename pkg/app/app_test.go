package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tripdesk/tripdesk/pkg/config"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 mockDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock
}

func TestNewMinimal(t *testing.T) {
	db, _ := setupTestDB(t)

	a, err := New(config.Default(), nil, db, "127.0.0.1", "0")
	require.NoError(t, err)
	defer a.Close()

	s := a.Server
	assert.False(t, s.Booking.Enabled())
	assert.False(t, s.Flights.Enabled())
	assert.Equal(t, []string{"password"}, s.Authenticators.Enabled())
	assert.NotNil(t, s.Sessions)
	assert.NotNil(t, s.OAuthState)
}

func TestNewWithIntegrations(t *testing.T) {
	db, _ := setupTestDB(t)

	cfg := config.Default()
	cfg.RazorpayKeyID = "rzp_test_key"
	cfg.Secrets.RazorpayKeySecret = "secret"
	cfg.Secrets.GoogleClientID = "client"
	cfg.Secrets.GoogleClientSecret = "shh"
	cfg.Secrets.FlightAPIClientID = "flights"
	cfg.Secrets.FlightAPIClientSecret = "shh"

	a, err := New(cfg, nil, db, "127.0.0.1", "0")
	require.NoError(t, err)
	defer a.Close()

	s := a.Server
	assert.True(t, s.Booking.Enabled())
	assert.True(t, s.Flights.Enabled())
	assert.ElementsMatch(t, []string{"password", "google"}, s.Authenticators.Enabled())
	assert.NotNil(t, a.cache)
}

func TestNewRegistersRoutes(t *testing.T) {
	db, mock := setupTestDB(t)
	mock.ExpectExec("SELECT 1").WillReturnResult(sqlmock.NewResult(0, 0))

	a, err := New(config.Default(), nil, db, "127.0.0.1", "0")
	require.NoError(t, err)
	defer a.Close()

	w := httptest.NewRecorder()
	a.Server.Router.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	a.Server.Router.ServeHTTP(w, httptest.NewRequest("GET", "/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestKeyOrEphemeral(t *testing.T) {
	given := []byte("0123456789abcdef0123456789abcdef")
	key, err := keyOrEphemeral(given)
	require.NoError(t, err)
	assert.Equal(t, given, key)

	a, err := keyOrEphemeral(nil)
	require.NoError(t, err)
	b, err := keyOrEphemeral(nil)
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
