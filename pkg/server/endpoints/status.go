package endpoints

import (
	"context"
	"html/template"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/tripdesk/tripdesk/pkg/server"
	"github.com/tripdesk/tripdesk/pkg/server/store"
)

// StatusResponse is the JSON form of the status page
type StatusResponse struct {
	Service        string   `json:"service"`
	Version        string   `json:"version"`
	Authenticators []string `json:"authenticators"`
	Payments       bool     `json:"payments"`
	FlightSearch   bool     `json:"flight_search"`
}

// RegisterStatusEndpoints registers the status, health and metrics endpoints
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/", handleStatus(s)).Methods("GET")
	s.Router.HandleFunc("/healthz", handleHealth(s.HealthStore)).Methods("GET")

	if s.Metrics != nil && (s.Config == nil || s.Config.MetricsEnabled) {
		s.Router.Handle("/metrics", s.Metrics.Handler()).Methods("GET")
	}

	s.Router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithMessage(w, http.StatusNotFound, "not found")
	})
	s.Router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})
}

var statusPage = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width">
    <title>tripdesk status</title>
  </head>
  <body>
    <main>
      <h1>Status</h1>
      <p class="status-text">Your tripdesk server is running!</p>
      <dl>
        <dt>Version</dt>
        <dd>{{.Version}}</dd>
        <dt>Sign-in providers</dt>
        <dd>{{range $i, $a := .Authenticators}}{{if $i}}, {{end}}{{$a}}{{end}}</dd>
        <dt>Payments</dt>
        <dd>{{if .Payments}}enabled{{else}}not configured{{end}}</dd>
        <dt>Flight search</dt>
        <dd>{{if .FlightSearch}}enabled{{else}}not configured{{end}}</dd>
      </dl>
    </main>
  </body>
</html>
`))

func handleStatus(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("TRIPDESK_VERSION")
		if version == "" {
			version = "0.1.0"
		}

		status := StatusResponse{
			Service:        "tripdesk",
			Version:        version,
			Authenticators: []string{},
			Payments:       s.Booking != nil && s.Booking.Enabled(),
			FlightSearch:   s.Flights.Enabled(),
		}
		if s.Authenticators != nil {
			status.Authenticators = s.Authenticators.Enabled()
		}

		accept := r.Header.Get("Accept")
		format := r.URL.Query().Get("format")
		if format == "json" || strings.Contains(accept, "application/json") {
			respondWithJSON(w, http.StatusOK, status)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = statusPage.Execute(w, status)
	}
}

func handleHealth(health store.HealthStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if health == nil {
			respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		if err := health.CheckConnectivity(ctx); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": "database unreachable"})
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
