package flights

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripdesk/tripdesk/pkg/validation"
)

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format(validation.DateLayout)
}

func TestParseQueryDefaults(t *testing.T) {
	v := url.Values{}
	v.Set("origin", "del")
	v.Set("destination", " bom ")
	v.Set("departure_date", futureDate(10))

	q, err := ParseQuery(v, "INR")
	require.NoError(t, err)
	assert.Equal(t, "DEL", q.Origin)
	assert.Equal(t, "BOM", q.Destination)
	assert.Equal(t, 1, q.Adults)
	assert.Equal(t, 20, q.Max)
	assert.Equal(t, "INR", q.Currency)
}

func TestParseQueryRejects(t *testing.T) {
	base := func() url.Values {
		v := url.Values{}
		v.Set("origin", "DEL")
		v.Set("destination", "BOM")
		v.Set("departure_date", futureDate(10))
		return v
	}

	tests := []struct {
		name  string
		edit  func(url.Values)
		field string
	}{
		{"same airports", func(v url.Values) { v.Set("destination", "del") }, "destination"},
		{"bad iata", func(v url.Values) { v.Set("origin", "DELHI") }, "origin"},
		{"past departure", func(v url.Values) { v.Set("departure_date", "2020-01-01") }, "departure_date"},
		{"bad date", func(v url.Values) { v.Set("departure_date", "tomorrow") }, "departure_date"},
		{"return before departure", func(v url.Values) { v.Set("return_date", futureDate(5)) }, "return_date"},
		{"too many adults", func(v url.Values) { v.Set("adults", "10") }, "adults"},
		{"adults not a number", func(v url.Values) { v.Set("adults", "two") }, "adults"},
		{"bad class", func(v url.Values) { v.Set("travel_class", "luxury") }, "travel_class"},
		{"max too high", func(v url.Values) { v.Set("max", "51") }, "max"},
		{"bad non_stop", func(v url.Values) { v.Set("non_stop", "maybe") }, "non_stop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := base()
			tt.edit(v)
			_, err := ParseQuery(v, "INR")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSearch))

			fe, ok := validation.AsErrors(err)
			require.True(t, ok)
			assert.Contains(t, fe, tt.field)
		})
	}
}

func TestQueryKeyIsCanonical(t *testing.T) {
	a := Query{Origin: "DEL", Destination: "BOM", DepartureDate: "2030-01-01", Adults: 1, Max: 20, Currency: "INR"}
	b := a
	assert.Equal(t, a.Key(), b.Key())

	b.NonStop = true
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestQueryValues(t *testing.T) {
	q := Query{Origin: "DEL", Destination: "GOI", DepartureDate: "2030-01-01", ReturnDate: "2030-01-05", Adults: 2, TravelClass: "BUSINESS", NonStop: true, Max: 5, Currency: "INR"}
	v := q.values()
	assert.Equal(t, "DEL", v.Get("originLocationCode"))
	assert.Equal(t, "GOI", v.Get("destinationLocationCode"))
	assert.Equal(t, "2030-01-05", v.Get("returnDate"))
	assert.Equal(t, "BUSINESS", v.Get("travelClass"))
	assert.Equal(t, "true", v.Get("nonStop"))
	assert.Equal(t, "INR", v.Get("currencyCode"))
}
