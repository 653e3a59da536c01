package authenticator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/tripdesk/tripdesk/pkg/model"
)

var (
	// ErrInvalidCredentials is returned for any failed login, whatever the cause
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotEnabled is returned by Lookup for unknown or disabled authenticators
	ErrNotEnabled = errors.New("authenticator not enabled")
)

// Authenticator defines the interface for all login methods
type Authenticator interface {
	// Name returns the authenticator name (e.g., "password", "google")
	Name() string

	// Authenticate validates the input and returns the user it belongs to
	Authenticate(ctx context.Context, input Input) (*model.User, error)
}

// Input contains the input for authentication. Which fields are used
// depends on the authenticator.
type Input struct {
	Email    string
	Password string
	// Code is the OAuth authorization code returned to the callback
	Code     string
	ClientIP string
}

// Registry tracks the login methods a server knows about and which of them
// are switched on. Google is registered only when OAuth credentials are
// configured.
type Registry struct {
	mu             sync.RWMutex
	authenticators map[string]Authenticator
	enabled        map[string]bool
}

// NewRegistry creates a new authenticator registry
func NewRegistry() *Registry {
	return &Registry{
		authenticators: make(map[string]Authenticator),
		enabled:        make(map[string]bool),
	}
}

// Register adds an authenticator to the registry
func (r *Registry) Register(auth Authenticator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authenticators[auth.Name()] = auth
}

// Enable switches on a registered authenticator
func (r *Registry) Enable(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.authenticators[name]; !ok {
		return fmt.Errorf("authenticator %q not found", name)
	}
	r.enabled[name] = true
	return nil
}

// Disable disables an authenticator by name
func (r *Registry) Disable(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.enabled, name)
}

// Lookup returns the named authenticator only when it is enabled
func (r *Registry) Lookup(name string) (Authenticator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	auth, ok := r.authenticators[name]
	if !ok || !r.enabled[name] {
		return nil, fmt.Errorf("%w: %s", ErrNotEnabled, name)
	}
	return auth, nil
}

// IsEnabled checks if an authenticator is enabled
func (r *Registry) IsEnabled(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled[name]
}

// Enabled returns all enabled authenticator names, sorted
func (r *Registry) Enabled() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.enabled))
	for name := range r.enabled {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
