// Package session issues and verifies signed session tokens.
//
// Tokens are HS256 JWTs with the claims sub (user id), email, role, iss,
// iat and exp. They travel either in an "Authorization: Bearer" header or in
// the tripdesk_session cookie.
package session
