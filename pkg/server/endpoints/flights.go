package endpoints

import (
	"net/http"

	"github.com/tripdesk/tripdesk/pkg/flights"
	"github.com/tripdesk/tripdesk/pkg/server"
)

// RegisterFlightsEndpoints registers the flight search proxy
func RegisterFlightsEndpoints(s *server.Server) {
	currency := "INR"
	if s.Config != nil && s.Config.DefaultCurrency != "" {
		currency = s.Config.DefaultCurrency
	}
	s.Router.HandleFunc("/flights/search", handleFlightSearch(s.Flights, currency)).Methods("GET")
}

func handleFlightSearch(svc *flights.Service, defaultCurrency string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.Enabled() {
			respondWithServiceError(w, r, flights.ErrNotConfigured)
			return
		}

		q, err := flights.ParseQuery(r.URL.Query(), defaultCurrency)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		result, err := svc.Search(r.Context(), q)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, result)
	}
}
