package flights

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tripdesk/tripdesk/pkg/validation"
)

var (
	// ErrInvalidSearch is returned for queries rejected locally or by the upstream API
	ErrInvalidSearch = errors.New("invalid flight search")
	// ErrUpstream is returned when the flight API fails or cannot be reached
	ErrUpstream = errors.New("flight search upstream failure")
	// ErrNotConfigured is returned when no flight API credentials are set
	ErrNotConfigured = errors.New("flight search is not configured")
)

// Query is a normalised flight search
type Query struct {
	Origin        string `json:"origin" validate:"required,iata"`
	Destination   string `json:"destination" validate:"required,iata,nefield=Origin"`
	DepartureDate string `json:"departure_date" validate:"required,isodate,notpast"`
	ReturnDate    string `json:"return_date" validate:"omitempty,isodate"`
	Adults        int    `json:"adults" validate:"gte=1,lte=9"`
	TravelClass   string `json:"travel_class" validate:"omitempty,oneof=ECONOMY PREMIUM_ECONOMY BUSINESS FIRST"`
	NonStop       bool   `json:"non_stop"`
	Max           int    `json:"max" validate:"gte=1,lte=50"`
	Currency      string `json:"currency" validate:"len=3"`
}

// ParseQuery builds a Query from URL parameters, applying defaults and case normalisation
func ParseQuery(v url.Values, defaultCurrency string) (Query, error) {
	q := Query{
		Origin:        strings.ToUpper(strings.TrimSpace(v.Get("origin"))),
		Destination:   strings.ToUpper(strings.TrimSpace(v.Get("destination"))),
		DepartureDate: strings.TrimSpace(v.Get("departure_date")),
		ReturnDate:    strings.TrimSpace(v.Get("return_date")),
		TravelClass:   strings.ToUpper(strings.TrimSpace(v.Get("travel_class"))),
		Currency:      strings.ToUpper(strings.TrimSpace(v.Get("currency"))),
		Adults:        1,
		Max:           20,
	}
	if q.Currency == "" {
		q.Currency = defaultCurrency
	}

	errs := validation.Errors{}
	intParam := func(name string, dst *int) {
		if raw := v.Get(name); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				errs.Add(name, "must be a whole number")
				return
			}
			*dst = n
		}
	}
	intParam("adults", &q.Adults)
	intParam("max", &q.Max)
	if raw := v.Get("non_stop"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			errs.Add("non_stop", "must be true or false")
		}
		q.NonStop = b
	}
	if err := errs.Err(); err != nil {
		return q, fmt.Errorf("%w: %w", ErrInvalidSearch, err)
	}

	if err := q.Validate(); err != nil {
		return q, err
	}
	return q, nil
}

// Validate checks the query before any upstream call
func (q Query) Validate() error {
	errs := validation.Errors{}
	if err := validation.Struct(q); err != nil {
		fe, ok := validation.AsErrors(err)
		if !ok {
			return err
		}
		errs = fe
	}
	// ISO dates order lexically
	if _, bad := errs["return_date"]; !bad && q.ReturnDate != "" && q.ReturnDate < q.DepartureDate {
		errs.Add("return_date", "must not be before departure_date")
	}
	if err := errs.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSearch, err)
	}
	return nil
}

// Key is a canonical representation used for caching and request coalescing
func (q Query) Key() string {
	return strings.Join([]string{
		"flights", q.Origin, q.Destination, q.DepartureDate, q.ReturnDate,
		strconv.Itoa(q.Adults), q.TravelClass, strconv.FormatBool(q.NonStop),
		strconv.Itoa(q.Max), q.Currency,
	}, "|")
}

// values renders the upstream query string
func (q Query) values() url.Values {
	v := url.Values{}
	v.Set("originLocationCode", q.Origin)
	v.Set("destinationLocationCode", q.Destination)
	v.Set("departureDate", q.DepartureDate)
	if q.ReturnDate != "" {
		v.Set("returnDate", q.ReturnDate)
	}
	v.Set("adults", strconv.Itoa(q.Adults))
	if q.TravelClass != "" {
		v.Set("travelClass", q.TravelClass)
	}
	if q.NonStop {
		v.Set("nonStop", "true")
	}
	v.Set("max", strconv.Itoa(q.Max))
	v.Set("currencyCode", q.Currency)
	return v
}
