// Package identity carries the authenticated user through a request.
//
// Session middleware verifies the caller's token, builds an Identity from its
// claims and stores it on the request context:
//
//	ctx = identity.Set(ctx, id.WithClientIP(clientIP))
//
// Handlers retrieve it again with Get:
//
//	id, ok := identity.Get(r.Context())
package identity
