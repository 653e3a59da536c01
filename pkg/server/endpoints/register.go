package endpoints

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server"
	"github.com/tripdesk/tripdesk/pkg/server/middleware"
)

// RegisterAll installs the session middleware and registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	srv.Router.Use(middleware.NewSessionAuthenticator(srv.Sessions).Middleware)

	RegisterStatusEndpoints(srv)
	RegisterAuthEndpoints(srv)
	RegisterCatalogEndpoints(srv)
	RegisterBlogEndpoints(srv)
	RegisterLeadsEndpoints(srv)
	RegisterFlightsEndpoints(srv)
	RegisterOrdersEndpoints(srv)
}

// routeRegistrar registers routes under a path prefix with a guard wrapped
// around each handler. Routes stay on the root router so that an unmatched
// method still falls through to the router's own 404 and 405 handlers.
type routeRegistrar struct {
	r      *mux.Router
	prefix string
	wrap   func(http.Handler) http.Handler
}

func (a routeRegistrar) HandleFunc(path string, h http.HandlerFunc) *mux.Route {
	return a.r.Handle(a.prefix+path, a.wrap(h))
}

// adminRouter registers routes under /admin that require the admin role
func adminRouter(s *server.Server) routeRegistrar {
	return routeRegistrar{r: s.Router, prefix: "/admin", wrap: middleware.RequireRole(model.UserRoleAdmin)}
}

// authRouter registers routes that require any signed in user
func authRouter(s *server.Server) routeRegistrar {
	return routeRegistrar{r: s.Router, wrap: middleware.RequireAuth}
}

func listLimitMax(s *server.Server) int {
	if s.Config == nil || s.Config.APIListLimitMax <= 0 {
		return 100
	}
	return s.Config.APIListLimitMax
}
