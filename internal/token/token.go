// Package token issues and checks the signed bearer tokens handed out by the
// identity provider.
//
// A token is a JWT signed with HS256 using a single process-wide key. It names
// the user it was issued to and expires an hour after issue. Whether the user
// is still logged in is not the concern of this package, see package session.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Lifetime is how long an issued token remains valid.
const Lifetime = time.Hour

// DefaultSecret is the signing key used when none is configured. It is public,
// so anyone can mint tokens for a server that keeps it.
const DefaultSecret = "sso-secret-key-change-in-production"

var (
	// ErrInvalid is returned for tokens that are malformed, were signed with a
	// different key or algorithm, or do not name a user.
	ErrInvalid = errors.New("token is invalid")

	// ErrExpired is returned for correctly signed tokens past their expiry.
	ErrExpired = errors.New("token has expired")
)

type claims struct {
	User string `json:"user"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tokens with a shared symmetric key.
type Codec struct {
	key []byte

	// Clock returns the current time, it defaults to time.Now.
	Clock func() time.Time
}

// New returns a Codec using key to sign and verify tokens.
func New(key []byte) *Codec {
	return &Codec{key: key, Clock: time.Now}
}

// Issue returns a new token for user, issued now and valid for Lifetime. Each
// call produces a distinct token.
func (c *Codec) Issue(user string) (string, error) {
	now := c.Clock()

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(Lifetime)),
		},
	})

	return t.SignedString(c.key)
}

// Verify checks the signature and expiry of raw, returning the user it was
// issued to. The error is always ErrInvalid or ErrExpired.
func (c *Codec) Verify(raw string) (string, error) {
	var parsed claims

	_, err := jwt.ParseWithClaims(raw, &parsed, func(*jwt.Token) (interface{}, error) {
		return c.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.Clock),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}

	if parsed.User == "" {
		return "", ErrInvalid
	}

	return parsed.User, nil
}
