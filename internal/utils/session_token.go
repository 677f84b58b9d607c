// Package utils provides helpers for issuing session tokens.  The engine
// does not own customer identity; a session token is only a signed
// correlator so hold ownership survives page reloads without the client
// being able to forge someone else's session ID.
package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionToken is a signed HS256 JWT whose subject is the session ID.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // UTC expiration time
}

// NewSessionToken signs a token for the given session ID.  The TTL should
// comfortably exceed the hold TTL so a token never expires mid-checkout.
func NewSessionToken(secret, sessionID string, ttl time.Duration) (SessionToken, error) {
	exp := time.Now().UTC().Add(ttl)
	claims := jwt.MapClaims{
		"sub": sessionID,
		"exp": exp.Unix(),
		"iat": time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}
