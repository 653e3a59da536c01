// Package server provides the HTTP server for the tripdesk API.
//
// The server uses gorilla/mux for routing. Every request passes through
// access logging, proxy header handling, optional CORS and panic recovery,
// then through the router middleware that assigns a request id, records
// metrics and resolves the session.
//
// # Server Setup
//
//	srv := server.NewServer(cfg, logger, mx, "0.0.0.0", "8000")
//	srv.CatalogStore = gormstore.NewCatalogStore(db)
//	// ... remaining stores and services
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//   - / and /healthz - status and liveness
//   - /destinations, /packages, /blog - public catalog and content
//   - /contact, /newsletter - lead capture
//   - /flights/search - flight search proxy
//   - /auth/* - signup, login, logout and OAuth
//   - /orders, /bookings, /payments/webhook - order and payment flow
//   - /admin/* - content and CRM management
package server
