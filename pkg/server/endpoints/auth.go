package endpoints

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/tripdesk/tripdesk/pkg/audit"
	"github.com/tripdesk/tripdesk/pkg/authenticator"
	"github.com/tripdesk/tripdesk/pkg/authenticator/oauth"
	"github.com/tripdesk/tripdesk/pkg/authenticator/password"
	"github.com/tripdesk/tripdesk/pkg/identity"
	"github.com/tripdesk/tripdesk/pkg/logging"
	"github.com/tripdesk/tripdesk/pkg/mailer"
	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server"
	"github.com/tripdesk/tripdesk/pkg/server/middleware"
)

var errOAuthDenied = errors.New("sign in was cancelled or refused")

// AuthResponse is returned by signup and login
type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// RegisterAuthEndpoints registers credential, session and OAuth routes
func RegisterAuthEndpoints(s *server.Server) {
	s.Router.HandleFunc("/auth/signup", handleSignup(s)).Methods("POST")
	s.Router.HandleFunc("/auth/login", handleLogin(s)).Methods("POST")
	s.Router.HandleFunc("/auth/logout", handleLogout(s)).Methods("POST")
	s.Router.HandleFunc("/auth/oauth/{provider}/start", handleOAuthStart(s)).Methods("GET")
	s.Router.HandleFunc("/auth/oauth/{provider}/callback", handleOAuthCallback(s)).Methods("GET")

	authRouter(s).HandleFunc("/auth/me", handleMe(s)).Methods("GET")
}

func handleSignup(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.Authenticators.IsEnabled(password.Name) || s.Passwords == nil {
			respondWithServiceError(w, r, authenticator.ErrNotEnabled)
			return
		}

		var req password.SignupRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		event := audit.AuthenticateEvent{
			Email:    password.NormalizeEmail(req.Email),
			ClientIP: middleware.ClientIP(r),
			Provider: password.Name,
			Action:   "signup",
		}

		user, err := s.Passwords.Signup(r.Context(), req)
		if err != nil {
			event.ErrorMessage = err.Error()
			audit.Log(event)
			respondWithServiceError(w, r, err)
			return
		}
		event.Success = true
		audit.Log(event)

		if s.Notifier != nil {
			_ = s.Notifier.Notify(r.Context(), mailer.TemplateWelcome, mailer.Welcome{
				Name:     user.Name,
				LoginURL: publicURL(s, "/"),
			}, user.Email)
		}

		startSession(s, w, r, user, http.StatusCreated)
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func handleLogin(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth, err := s.Authenticators.Lookup(password.Name)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		var req loginRequest
		if err := decodeJSON(w, r, &req); err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		clientIP := middleware.ClientIP(r)
		event := audit.AuthenticateEvent{
			Email:    password.NormalizeEmail(req.Email),
			ClientIP: clientIP,
			Provider: password.Name,
			Action:   "login",
		}

		user, err := auth.Authenticate(r.Context(), authenticator.Input{
			Email:    req.Email,
			Password: req.Password,
			ClientIP: clientIP,
		})
		if err != nil {
			event.ErrorMessage = err.Error()
			audit.Log(event)
			respondWithServiceError(w, r, err)
			return
		}
		event.Success = true
		audit.Log(event)

		startSession(s, w, r, user, http.StatusOK)
	}
}

func startSession(s *server.Server, w http.ResponseWriter, r *http.Request, user *model.User, code int) {
	token, expires, err := s.Sessions.Issue(user)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	http.SetCookie(w, s.Sessions.Cookie(token, expires))
	respondWithJSON(w, code, AuthResponse{User: user, Token: token})
}

func handleLogout(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, s.Sessions.ClearCookie())
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleMe(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := identity.Get(r.Context())
		user, err := s.UsersStore.GetUserByID(r.Context(), id.UserID)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		respondWithJSON(w, http.StatusOK, user)
	}
}

func oauthProvider(s *server.Server, r *http.Request) (*oauth.Authenticator, error) {
	name := mux.Vars(r)["provider"]
	if name == password.Name {
		return nil, authenticator.ErrNotEnabled
	}
	auth, err := s.Authenticators.Lookup(name)
	if err != nil {
		return nil, err
	}
	provider, ok := auth.(*oauth.Authenticator)
	if !ok {
		return nil, authenticator.ErrNotEnabled
	}
	return provider, nil
}

func handleOAuthStart(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, err := oauthProvider(s, r)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		st, cookie, err := s.OAuthState.Begin(localRedirect(r.URL.Query().Get("redirect")))
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		http.SetCookie(w, cookie)
		http.Redirect(w, r, provider.AuthCodeURL(st.State, st.Nonce), http.StatusFound)
	}
}

func handleOAuthCallback(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, err := oauthProvider(s, r)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}

		q := r.URL.Query()
		clientIP := middleware.ClientIP(r)
		event := audit.AuthenticateEvent{
			ClientIP: clientIP,
			Provider: provider.Name(),
			Action:   "oauth",
		}
		fail := func(err error) {
			event.ErrorMessage = err.Error()
			audit.Log(event)
			http.SetCookie(w, s.OAuthState.ClearCookie())
			respondWithServiceError(w, r, err)
		}

		if providerErr := q.Get("error"); providerErr != "" {
			logging.FromContext(r.Context()).Info("oauth provider returned an error", zap.String("error", providerErr))
			fail(fmt.Errorf("%w: %s", errOAuthDenied, providerErr))
			return
		}

		var cookieValue string
		if c, err := r.Cookie(oauth.StateCookieName); err == nil {
			cookieValue = c.Value
		}
		st, err := s.OAuthState.Verify(cookieValue, q.Get("state"))
		if err != nil {
			fail(err)
			return
		}

		user, err := provider.Authenticate(r.Context(), authenticator.Input{Code: q.Get("code"), ClientIP: clientIP})
		if err != nil {
			fail(err)
			return
		}
		event.Email = user.Email
		event.Success = true
		audit.Log(event)

		token, expires, err := s.Sessions.Issue(user)
		if err != nil {
			respondWithServiceError(w, r, err)
			return
		}
		http.SetCookie(w, s.OAuthState.ClearCookie())
		http.SetCookie(w, s.Sessions.Cookie(token, expires))

		target := st.Redirect
		if target == "" && s.Config != nil {
			target = s.Config.OAuthSuccessRedirect
		}
		if target == "" {
			target = "/"
		}
		http.Redirect(w, r, target, http.StatusFound)
	}
}

// localRedirect only keeps same-site absolute paths
func localRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return ""
	}
	return target
}

func publicURL(s *server.Server, path string) string {
	if s.Config == nil {
		return path
	}
	return strings.TrimRight(s.Config.PublicBaseURL, "/") + path
}
