package endpoints

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestHandleStatus(t *testing.T) {
	e := newTestEnv(t)

	t.Run("returns HTML status page", func(t *testing.T) {
		w := e.do("GET", "/", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "Your tripdesk server is running!")
		assert.Contains(t, w.Body.String(), "password")
	})

	t.Run("returns JSON when asked for it", func(t *testing.T) {
		w := e.do("GET", "/?format=json", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
		body := decodeBody(t, w)
		assert.Equal(t, "tripdesk", body["service"])
		assert.Equal(t, true, body["payments"])
		assert.Equal(t, false, body["flight_search"])
		assert.Equal(t, []any{"password"}, body["authenticators"])
	})
}

func TestHandleHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		e := newTestEnv(t)
		e.health.On("CheckConnectivity", mock.Anything).Return(nil)

		w := e.do("GET", "/healthz", nil, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", decodeBody(t, w)["status"])
	})

	t.Run("database unreachable", func(t *testing.T) {
		e := newTestEnv(t)
		e.health.On("CheckConnectivity", mock.Anything).Return(errors.New("connection refused"))

		w := e.do("GET", "/healthz", nil, "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unavailable", decodeBody(t, w)["status"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestEnv(t)
	e.health.On("CheckConnectivity", mock.Anything).Return(nil)
	e.do("GET", "/healthz", nil, "")

	w := e.do("GET", "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `route="/healthz"`)
}

func TestUnknownRoutes(t *testing.T) {
	e := newTestEnv(t)

	w := e.do("GET", "/nowhere", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", errorMessage(t, w))

	w = e.do("DELETE", "/healthz", nil, "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
