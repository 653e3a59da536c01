package endpoints

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripdesk/tripdesk/pkg/flights"
	"github.com/tripdesk/tripdesk/pkg/validation"
)

func flightQuery() url.Values {
	return url.Values{
		"origin":         {"del"},
		"destination":    {"COK"},
		"departure_date": {validation.Today().AddDate(0, 1, 0).Format(validation.DateLayout)},
		"adults":         {"2"},
	}
}

func TestFlightSearchNotConfigured(t *testing.T) {
	e := newTestEnv(t)

	w := e.do("GET", "/flights/search?"+flightQuery().Encode(), nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestFlightSearch(t *testing.T) {
	t.Run("returns offers", func(t *testing.T) {
		e := newTestEnv(t, withFlightSearch())
		e.searcher.result = &flights.Result{
			Offers: []flights.Offer{{ID: "1", Price: flights.Price{Total: "8450.00", Currency: "INR"}, Seats: 4}},
			Count:  1,
		}

		w := e.do("GET", "/flights/search?"+flightQuery().Encode(), nil, "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decodeBody(t, w)
		assert.EqualValues(t, 1, body["count"])
		offer := body["offers"].([]any)[0].(map[string]any)
		assert.Equal(t, "8450.00", offer["price"].(map[string]any)["total"])
		assert.Equal(t, 1, e.searcher.calls)
	})

	t.Run("rejects a bad query before calling upstream", func(t *testing.T) {
		e := newTestEnv(t, withFlightSearch())
		q := flightQuery()
		q.Set("origin", "DELHI")
		q.Set("adults", "many")

		w := e.do("GET", "/flights/search?"+q.Encode(), nil, "")

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, errorFields(t, w), "adults")
		assert.Zero(t, e.searcher.calls)
	})

	t.Run("upstream failure", func(t *testing.T) {
		e := newTestEnv(t, withFlightSearch())
		e.searcher.err = errors.Join(flights.ErrUpstream, errors.New("503 from provider"))

		w := e.do("GET", "/flights/search?"+flightQuery().Encode(), nil, "")

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "upstream service failed", errorMessage(t, w))
	})
}
