// Package token issues and verifies the signed bearer tokens that authenticate
// API requests. Tokens are HS256 JWTs carrying the user id as subject; they are
// never persisted and cannot be revoked individually — only expiry or rotating
// the signing secret invalidates them.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed        = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
)

// Issuer mints and verifies tokens under a single process-wide secret loaded
// at startup. The secret is read-only after construction.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token asserting subjectID for the configured TTL.
func (i *Issuer) Issue(subjectID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify parses and validates tokenString and returns the embedded subject id.
// Failures are classified as ErrMalformed, ErrSignatureInvalid, or ErrExpired;
// callers surface all three identically but may log them apart.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrSignatureInvalid
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", ErrMalformed
		default:
			return "", ErrMalformed
		}
	}
	if !tkn.Valid || claims.Subject == "" {
		return "", ErrMalformed
	}
	return claims.Subject, nil
}
