// Package seal provides authenticated encryption for small values that
// travel through untrusted hands, such as the OAuth state cookie.
//
// Values are sealed with AES-256-GCM. The packed form is a version byte,
// the GCM tag, the nonce and the ciphertext, base64url encoded:
//
//	s, err := seal.New(key)
//	token, err := s.Seal([]byte("oauth"), state)
//
//	var out State
//	err = s.Open([]byte("oauth"), token, &out)
//
// The associated data binds a sealed value to its purpose so a token issued
// for one cookie cannot be replayed into another.
package seal
