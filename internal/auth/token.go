// Package auth issues and verifies the admin tokens guarding the lead listing.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer       = "ecoindus-site"
	adminSubject = "admin"
)

var (
	// ErrInvalidAdminKey is returned when the presented admin key does not match.
	ErrInvalidAdminKey = errors.New("invalid admin key")
	// ErrInvalidToken is returned for any token that fails verification.
	ErrInvalidToken = errors.New("invalid token")
)

// Issuer signs and verifies HS256 admin tokens
type Issuer struct {
	secret   []byte
	adminKey string
	ttl      time.Duration
	now      func() time.Time
}

// NewIssuer creates a token issuer. adminKey is the shared secret exchanged
// for a token on login.
func NewIssuer(secret, adminKey string, ttl time.Duration) *Issuer {
	return &Issuer{
		secret:   []byte(secret),
		adminKey: adminKey,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Login exchanges the admin key for a signed token.
func (i *Issuer) Login(adminKey string) (string, time.Time, error) {
	if i.adminKey == "" || subtle.ConstantTimeCompare([]byte(adminKey), []byte(i.adminKey)) != 1 {
		return "", time.Time{}, ErrInvalidAdminKey
	}
	return i.Issue(adminSubject)
}

// Issue signs a token for subject valid for the configured TTL.
func (i *Issuer) Issue(subject string) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a token, returning its claims.
func (i *Issuer) Verify(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
