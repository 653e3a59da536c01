// Package middleware contains the HTTP middleware used by the tripdesk router:
// request ids and request scoped loggers, Prometheus request metrics, and
// session authentication with role checks.
package middleware
