package server

import (
	"context"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/tripdesk/tripdesk/pkg/authenticator"
	"github.com/tripdesk/tripdesk/pkg/authenticator/oauth"
	"github.com/tripdesk/tripdesk/pkg/authenticator/password"
	"github.com/tripdesk/tripdesk/pkg/booking"
	"github.com/tripdesk/tripdesk/pkg/config"
	"github.com/tripdesk/tripdesk/pkg/content"
	"github.com/tripdesk/tripdesk/pkg/flights"
	"github.com/tripdesk/tripdesk/pkg/leads"
	"github.com/tripdesk/tripdesk/pkg/metrics"
	"github.com/tripdesk/tripdesk/pkg/server/middleware"
	"github.com/tripdesk/tripdesk/pkg/server/store"
	"github.com/tripdesk/tripdesk/pkg/session"
)

// Notifier sends templated email
type Notifier interface {
	Notify(ctx context.Context, name string, data any, to ...string) error
}

// Server holds the router and everything the endpoints need. Fields are set
// by the caller before endpoints are registered.
type Server struct {
	Router  *mux.Router
	Config  *config.TripdeskConfig
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	HealthStore  store.HealthStore
	UsersStore   store.UsersStore
	CatalogStore store.CatalogStore
	BlogStore    store.BlogStore

	Sessions       *session.Manager
	Authenticators *authenticator.Registry
	Passwords      *password.Authenticator
	OAuthState     *oauth.StateCodec

	Content  *content.Service
	Booking  *booking.Service
	Leads    *leads.Service
	Flights  *flights.Service
	Notifier Notifier

	srv *http.Server
}

func NewServer(cfg *config.TripdeskConfig, logger *zap.Logger, mx *metrics.Metrics, host string, port string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(logger), middleware.Metrics(mx))

	s := &Server{
		Router:         router,
		Config:         cfg,
		Logger:         logger,
		Metrics:        mx,
		Authenticators: authenticator.NewRegistry(),
	}

	s.srv = &http.Server{
		Handler:           s.Handler(),
		Addr:              net.JoinHostPort(host, port),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Handler wraps the router with access logging, proxy header handling, CORS and panic recovery
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.Router
	if s.Config != nil && len(s.Config.CORSAllowedOrigins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(s.Config.CORSAllowedOrigins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Authorization", "Content-Type", "X-Request-ID"}),
			handlers.ExposedHeaders([]string{"X-Request-ID"}),
			handlers.AllowCredentials(),
		)(h)
	}
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(s.Logger)),
		handlers.PrintRecoveryStack(false),
	)(h)
	var trusted []*net.IPNet
	if s.Config != nil {
		trusted = s.Config.TrustedProxyNets()
	}
	h = middleware.ProxyHeaders(trusted)(h)
	return handlers.CombinedLoggingHandler(os.Stdout, h)
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.srv.Addr
}

func (s *Server) Start() error {
	s.Logger.Info("listening", zap.String("addr", s.srv.Addr))
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
