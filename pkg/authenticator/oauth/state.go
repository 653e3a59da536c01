package oauth

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tripdesk/tripdesk/pkg/seal"
)

const (
	// StateCookieName carries the sealed state between start and callback
	StateCookieName = "tripdesk_oauth"
	// StateTTL bounds how long a login attempt may take
	StateTTL = 10 * time.Minute
)

var ErrInvalidState = errors.New("oauth state invalid or expired")

var stateAAD = []byte(StateCookieName)

// State is sealed into the state cookie when a login starts
type State struct {
	State    string    `json:"state"`
	Nonce    string    `json:"nonce"`
	Redirect string    `json:"redirect,omitempty"`
	Expires  time.Time `json:"expires"`
}

// StateCodec seals and verifies login state cookies
type StateCodec struct {
	sealer *seal.Sealer
	secure bool
	now    func() time.Time
}

func NewStateCodec(sealer *seal.Sealer, secureCookies bool) *StateCodec {
	return &StateCodec{sealer: sealer, secure: secureCookies, now: time.Now}
}

// Begin creates a fresh state and the cookie that carries it
func (c *StateCodec) Begin(redirect string) (*State, *http.Cookie, error) {
	state, err := randomToken()
	if err != nil {
		return nil, nil, err
	}
	nonce, err := randomToken()
	if err != nil {
		return nil, nil, err
	}

	st := &State{
		State:    state,
		Nonce:    nonce,
		Redirect: redirect,
		Expires:  c.now().Add(StateTTL).UTC(),
	}
	value, err := c.sealer.Seal(stateAAD, st)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to seal oauth state: %w", err)
	}

	return st, &http.Cookie{
		Name:     StateCookieName,
		Value:    value,
		Path:     "/auth/oauth/",
		MaxAge:   int(StateTTL.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Verify opens the state cookie and checks it against the state query parameter
func (c *StateCodec) Verify(cookieValue, state string) (*State, error) {
	if cookieValue == "" || state == "" {
		return nil, ErrInvalidState
	}

	var st State
	if err := c.sealer.Open(stateAAD, cookieValue, &st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if subtle.ConstantTimeCompare([]byte(st.State), []byte(state)) != 1 {
		return nil, ErrInvalidState
	}
	if c.now().After(st.Expires) {
		return nil, ErrInvalidState
	}
	return &st, nil
}

// ClearCookie expires the state cookie
func (c *StateCodec) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     StateCookieName,
		Value:    "",
		Path:     "/auth/oauth/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func randomToken() (string, error) {
	b, err := seal.RandomBytes(24)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
