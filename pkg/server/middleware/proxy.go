package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
)

var forwardingHeaders = []string{
	"Forwarded",
	"X-Forwarded-For",
	"X-Forwarded-Host",
	"X-Forwarded-Proto",
	"X-Forwarded-Scheme",
	"X-Real-IP",
}

// ProxyHeaders runs handlers.ProxyHeaders only for requests whose peer is one
// of the trusted proxies. Forwarding headers on every other request are
// removed, so RemoteAddr remains the address the connection came from.
//
// For a trusted peer, X-Forwarded-For is reduced to the right-most entry that
// is not itself a trusted proxy. Entries left of it were written by the client.
func ProxyHeaders(trusted []*net.IPNet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		proxied := handlers.ProxyHeaders(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isTrusted(trusted, ClientIP(r)) {
				for _, h := range forwardingHeaders {
					r.Header.Del(h)
				}
				next.ServeHTTP(w, r)
				return
			}

			if chain := r.Header.Values("X-Forwarded-For"); len(chain) > 0 {
				r.Header.Set("X-Forwarded-For", nearestClient(trusted, chain))
			}
			proxied.ServeHTTP(w, r)
		})
	}
}

func nearestClient(trusted []*net.IPNet, chain []string) string {
	var hops []string
	for _, line := range chain {
		for _, hop := range strings.Split(line, ",") {
			if hop = strings.TrimSpace(hop); hop != "" {
				hops = append(hops, hop)
			}
		}
	}
	if len(hops) == 0 {
		return ""
	}
	for i := len(hops) - 1; i >= 0; i-- {
		if !isTrusted(trusted, hops[i]) {
			return hops[i]
		}
	}
	return hops[0]
}

func isTrusted(trusted []*net.IPNet, addr string) bool {
	ip := net.ParseIP(addr)
	if ip == nil {
		return false
	}
	for _, n := range trusted {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
