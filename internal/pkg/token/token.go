// Package token issues and verifies the stateless bearer tokens used by
// the API. A token binds a subject (the user's email) to an expiry; there
// is no server-side revocation, expiry is the only invalidation.
package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

const (
	Issuer   = "mtodo"
	Audience = "urn:mtodo-clients"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrMissingSubject = errors.New("token subject is missing")
)

func Issue(subject string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwtlib.RegisteredClaims{
		Subject:   subject,
		Issuer:    Issuer,
		Audience:  jwtlib.ClaimStrings{Audience},
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
	}
	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// Verify checks signature, audience, issuer and expiry, and returns the
// subject unmodified.
func Verify(tokenString string, secret []byte) (string, error) {
	claims := &jwtlib.RegisteredClaims{}
	t, err := jwtlib.ParseWithClaims(tokenString, claims, func(t *jwtlib.Token) (interface{}, error) {
		if t.Method.Alg() != jwtlib.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	},
		jwtlib.WithAudience(Audience),
		jwtlib.WithIssuer(Issuer),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		return "", ErrInvalidToken
	}
	if !t.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrMissingSubject
	}
	return claims.Subject, nil
}
