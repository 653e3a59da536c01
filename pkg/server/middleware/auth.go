package middleware

import (
	"encoding/json"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/tripdesk/tripdesk/pkg/identity"
	"github.com/tripdesk/tripdesk/pkg/logging"
	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/session"
)

// TokenVerifier turns a session token into an identity
type TokenVerifier interface {
	Verify(token string) (*identity.Identity, error)
}

var _ TokenVerifier = (*session.Manager)(nil)

// SessionAuthenticator places the caller's identity on the request context
// when the request carries a valid session token
type SessionAuthenticator struct {
	Verifier TokenVerifier
}

func NewSessionAuthenticator(verifier TokenVerifier) *SessionAuthenticator {
	return &SessionAuthenticator{Verifier: verifier}
}

// Middleware never rejects a request. Routes that need a caller are wrapped
// with RequireAuth or RequireRole.
func (a *SessionAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := session.TokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := a.Verifier.Verify(token)
		if err != nil {
			logging.FromContext(r.Context()).Debug("ignoring invalid session token", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		id.WithClientIP(ClientIP(r))
		ctx := identity.Set(r.Context(), id)
		logger := logging.FromContext(ctx).With(zap.Uint("user_id", id.UserID))
		ctx = logging.WithLogger(ctx, logger)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests without a valid session with 401
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := identity.Get(r.Context()); !ok {
			respondWithError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects anonymous requests with 401 and callers below role with 403
func RequireRole(role model.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := identity.Get(r.Context())
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !id.HasRole(role) {
				respondWithError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the host part of the request's remote address. Behind a
// trusted proxy, ProxyHeaders has already rewritten RemoteAddr from
// X-Forwarded-For.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"message": message},
	})
}
