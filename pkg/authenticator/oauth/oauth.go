package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/tripdesk/tripdesk/pkg/authenticator"
	"github.com/tripdesk/tripdesk/pkg/model"
	"github.com/tripdesk/tripdesk/pkg/server/store"
)

// GoogleUserInfoURL is Google's OpenID Connect userinfo endpoint
const GoogleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

var (
	ErrMissingCode      = errors.New("authorization code missing")
	ErrExchange         = errors.New("authorization code exchange failed")
	ErrEmailNotVerified = errors.New("provider did not return a verified email")
)

// Config holds OAuth provider configuration
type Config struct {
	// Name is the registry name and the {provider} path segment
	Name         string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Endpoint     oauth2.Endpoint
	UserInfoURL  string
	Scopes       []string
}

// Google returns the configuration of the built-in Google provider. The
// callback lives at {publicBaseURL}/auth/oauth/google/callback.
func Google(clientID, clientSecret, publicBaseURL string) Config {
	return Config{
		Name:         "google",
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  strings.TrimRight(publicBaseURL, "/") + "/auth/oauth/google/callback",
		Endpoint:     google.Endpoint,
		UserInfoURL:  GoogleUserInfoURL,
		Scopes:       []string{"openid", "email", "profile"},
	}
}

// UserInfo is the subset of OpenID Connect userinfo claims tripdesk uses
type UserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// Authenticator implements the OAuth2 authorization code flow
type Authenticator struct {
	name        string
	oauth       *oauth2.Config
	userInfoURL string
	users       store.UsersStore

	// HTTPClient is used for the token exchange and userinfo calls when set
	HTTPClient *http.Client
}

// NewAuthenticator creates an OAuth authenticator for the given provider
func NewAuthenticator(cfg Config, users store.UsersStore) *Authenticator {
	return &Authenticator{
		name: cfg.Name,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     cfg.Endpoint,
			Scopes:       cfg.Scopes,
		},
		userInfoURL: cfg.UserInfoURL,
		users:       users,
	}
}

// Name returns the authenticator name
func (a *Authenticator) Name() string {
	return a.name
}

// AuthCodeURL returns the provider consent page URL for the given state
func (a *Authenticator) AuthCodeURL(state, nonce string) string {
	return a.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOnline,
		oauth2.SetAuthURLParam("nonce", nonce),
		oauth2.SetAuthURLParam("prompt", "select_account"),
	)
}

// Authenticate exchanges the authorization code, fetches the user's profile
// and returns the matching local user, creating or linking it as needed.
func (a *Authenticator) Authenticate(ctx context.Context, input authenticator.Input) (*model.User, error) {
	if input.Code == "" {
		return nil, ErrMissingCode
	}
	if a.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, a.HTTPClient)
	}

	token, err := a.oauth.Exchange(ctx, input.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExchange, err)
	}

	info, err := a.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	if info.Email == "" || !info.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	return a.upsertUser(ctx, info)
}

func (a *Authenticator) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.userInfoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := a.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("userinfo returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	info.Email = strings.ToLower(strings.TrimSpace(info.Email))
	return &info, nil
}

func (a *Authenticator) upsertUser(ctx context.Context, info *UserInfo) (*model.User, error) {
	user, err := a.users.GetUserByEmail(ctx, info.Email)
	switch {
	case err == nil:
		if user.OAuthProvider == nil || *user.OAuthProvider != a.name ||
			user.OAuthSubject == nil || *user.OAuthSubject != info.Sub {
			if err := a.users.LinkOAuth(ctx, user.ID, a.name, info.Sub); err != nil {
				return nil, fmt.Errorf("failed to link %s account: %w", a.name, err)
			}
			user.OAuthProvider = &a.name
			user.OAuthSubject = &info.Sub
		}
		return user, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	provider, subject := a.name, info.Sub
	name := info.Name
	if name == "" {
		name, _, _ = strings.Cut(info.Email, "@")
	}
	user = &model.User{
		Email:         info.Email,
		Name:          name,
		Role:          model.UserRoleCustomer,
		OAuthProvider: &provider,
		OAuthSubject:  &subject,
	}
	if err := a.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// lost a race with a concurrent callback for the same email
			return a.users.GetUserByEmail(ctx, info.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}
