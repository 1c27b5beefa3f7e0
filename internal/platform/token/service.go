// Package token issues and validates the signed access tokens that bind a
// session to a user, and provides the Gin middleware that guards routes.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformedToken is returned when the Authorization header does not
	// carry a bearer token.
	ErrMalformedToken = errors.New("malformed authorization header")

	// ErrInvalidToken is returned when a token fails signature or expiry checks.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Config holds the signing secret and token lifetime.
type Config struct {
	Secret string
	Expiry time.Duration
}

// Decoded carries the verified claims of an access token.
type Decoded struct {
	// Subject is the user ID the token was issued for.
	Subject string
	// IssuedAt is the time the token was signed.
	IssuedAt time.Time
	// ExpiresAt is the expiry carried in the token itself.
	ExpiresAt time.Time
}

// Service signs and verifies access tokens with an HMAC secret.
type Service struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewService creates a Service from the given configuration.
func NewService(cfg Config) *Service {
	return &Service{
		secret: []byte(cfg.Secret),
		expiry: cfg.Expiry,
		now:    time.Now,
	}
}

// Issue creates a signed token for the given subject with standard claims.
func (s *Service) Issue(subject string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": now.Add(s.expiry).Unix(),
		"iat": now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the token carried in an Authorization header value and
// returns its claims. The header must use the Bearer scheme.
func (s *Service) Decode(authorization string) (Decoded, error) {
	if !strings.HasPrefix(authorization, "Bearer ") {
		return Decoded{}, ErrMalformedToken
	}
	tokenStr := strings.TrimPrefix(authorization, "Bearer ")

	t, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Check signing algorithm (only HMAC allowed)
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !t.Valid {
		return Decoded{}, ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return Decoded{}, ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Decoded{}, ErrInvalidToken
	}

	d := Decoded{Subject: sub}
	if exp, ok := claims["exp"].(float64); ok {
		d.ExpiresAt = time.Unix(int64(exp), 0)
	}
	if iat, ok := claims["iat"].(float64); ok {
		d.IssuedAt = time.Unix(int64(iat), 0)
	}
	return d, nil
}

// Expired reports whether the decoded token is past its expiry. The check is
// re-derived from the exp claim rather than relying on the parse-time check.
func (s *Service) Expired(d Decoded) bool {
	return d.ExpiresAt.IsZero() || s.now().After(d.ExpiresAt)
}

// MatchesSubject reports whether the decoded token belongs to the given
// subject and is still within its lifetime.
func (s *Service) MatchesSubject(d Decoded, subject string) bool {
	return !s.Expired(d) && d.Subject == subject
}
