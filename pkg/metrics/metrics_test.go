package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	m := New()

	m.OrderCreated()
	m.Payment("captured")
	m.Payment("captured")
	m.Payment("signature_mismatch")
	m.Lead("contact")
	m.FlightSearch(SearchCache)
	m.Email("contact_ack", nil)
	m.Email("contact_ack", errors.New("relay down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Payments.WithLabelValues("captured")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Payments.WithLabelValues("signature_mismatch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Leads.WithLabelValues("contact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FlightSearches.WithLabelValues("cache")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailsSent.WithLabelValues("contact_ack", "sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailsSent.WithLabelValues("contact_ack", "failed")))
}

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "/packages/{slug}", 200, 25*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/packages/{slug}", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPDuration))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.OrderCreated()
		m.Payment("captured")
		m.Lead("contact")
		m.FlightSearch(SearchError)
		m.Email("welcome", nil)
		m.ObserveRequest("GET", "/", 200, time.Millisecond)
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.Lead("flight")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `tripdesk_leads_total{source="flight"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
