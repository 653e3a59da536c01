package flights

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const offersFixture = `{
  "meta": {"count": 1},
  "data": [{
    "type": "flight-offer",
    "id": "1",
    "numberOfBookableSeats": 7,
    "validatingAirlineCodes": ["6E"],
    "price": {"currency": "INR", "total": "5120.00", "grandTotal": "5320.00"},
    "itineraries": [{
      "duration": "PT4H5M",
      "segments": [
        {"departure": {"iataCode": "DEL", "at": "2030-01-01T06:00:00"}, "arrival": {"iataCode": "BOM", "at": "2030-01-01T08:10:00"}, "carrierCode": "6E", "number": "2131", "duration": "PT2H10M", "numberOfStops": 0},
        {"departure": {"iataCode": "BOM", "at": "2030-01-01T09:00:00"}, "arrival": {"iataCode": "GOI", "at": "2030-01-01T10:05:00"}, "carrierCode": "AI", "number": "663", "duration": "PT1H5M", "numberOfStops": 0}
      ]
    }]
  }],
  "dictionaries": {"carriers": {"6E": "INDIGO"}}
}`

func testQuery() Query {
	return Query{Origin: "DEL", Destination: "GOI", DepartureDate: "2030-01-01", Adults: 1, Max: 20, Currency: "INR"}
}

func TestClientSearch(t *testing.T) {
	var tokenCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc(tokenPath, func(w http.ResponseWriter, r *http.Request) {
		tokenCalls.Add(1)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "id", r.PostForm.Get("client_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":1799}`))
	})
	mux.HandleFunc(offersPath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "DEL", r.URL.Query().Get("originLocationCode"))
		_, _ = w.Write([]byte(offersFixture))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, "id", "secret")
	r, err := c.Search(context.Background(), testQuery())
	require.NoError(t, err)

	require.Len(t, r.Offers, 1)
	offer := r.Offers[0]
	assert.Equal(t, 1, r.Count)
	assert.Equal(t, "5320.00", offer.Price.Total)
	assert.Equal(t, "INDIGO", offer.ValidatingCarrier)
	assert.Equal(t, 7, offer.Seats)
	require.Len(t, offer.Itineraries[0].Segments, 2)
	assert.Equal(t, "INDIGO", offer.Itineraries[0].Segments[0].Carrier)
	assert.Equal(t, "AI", offer.Itineraries[0].Segments[1].Carrier)
	assert.Equal(t, "GOI", offer.Itineraries[0].Segments[1].To)

	_, err = c.Search(context.Background(), testQuery())
	require.NoError(t, err)
	assert.Equal(t, int32(1), tokenCalls.Load(), "token should be reused")
}

func TestClientUpstreamErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		detail  string
	}{
		{"bad request", http.StatusBadRequest, `{"errors":[{"status":400,"code":425,"title":"INVALID DATE","detail":"Date/Time is in the past"}]}`, ErrInvalidSearch, "Date/Time is in the past"},
		{"unauthorized", http.StatusUnauthorized, `{}`, ErrUpstream, "status 401"},
		{"server error", http.StatusInternalServerError, ``, ErrUpstream, "status 500"},
		{"garbage", http.StatusOK, `not json`, ErrUpstream, "decoding"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClientWithHTTP(srv.URL, srv.Client()).Search(context.Background(), testQuery())
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), err.Error())
			assert.Contains(t, err.Error(), tt.detail)
		})
	}
}

func TestClientTokenFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "id", "wrong").Search(context.Background(), testQuery())
	assert.True(t, errors.Is(err, ErrUpstream))
}
