// Package authenticator defines the interface shared by tripdesk login methods.
//
// # Authenticator Interface
//
// All authenticators implement the Authenticator interface:
//
//	type Authenticator interface {
//	    Name() string
//	    Authenticate(ctx context.Context, input Input) (*model.User, error)
//	}
//
// # Built-in Authenticators
//
//   - password: email and bcrypt password, see [github.com/tripdesk/tripdesk/pkg/authenticator/password]
//   - google: OAuth2 authorization code flow, see [github.com/tripdesk/tripdesk/pkg/authenticator/oauth]
//
// Authenticators are registered in a Registry at server start. The password
// authenticator is always enabled; google is enabled only when its client
// credentials are configured. Lookup refuses authenticators that are not
// enabled so the HTTP layer can answer 404 for them.
package authenticator
