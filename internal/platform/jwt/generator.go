// Package jwtmw issues and verifies the service tokens that guard the /api routes.
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultScope is granted to tokens minted for the analytics API.
const DefaultScope = "analytics:read"

// Generator defines the interface for service token generation.
type Generator interface {
	// GenerateToken creates a signed token for a calling service.
	GenerateToken(subject string) (string, error)
}

type generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a HS256 generator. A non-positive expiration mints tokens
// without an exp claim.
func NewGenerator(secret string, expiration time.Duration) *generator {
	return &generator{secret: []byte(secret), expiration: expiration, now: time.Now}
}

var _ Generator = (*generator)(nil)

// GenerateToken creates a signed token carrying sub, scope, iat and exp.
func (g *generator) GenerateToken(subject string) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("token subject is required")
	}
	now := g.now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"scope": DefaultScope,
		"iat":   now.Unix(),
	}
	if g.expiration > 0 {
		claims["exp"] = now.Add(g.expiration).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
