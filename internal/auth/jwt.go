// Cicerone - AI Tourist Guide and Itinerary Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cicerone

// Package auth mints and verifies the short-lived HS256 bearer tokens that
// protect admin endpoints (catalog mutations, stats). There are no user
// accounts: one configured admin secret is exchanged for a token at
// /api/v1/auth/token, and an empty secret disables the whole surface.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/cicerone/internal/config"
)

// RoleAdmin is the only role tokens carry.
const RoleAdmin = "admin"

const defaultTokenTTL = time.Hour

var (
	// ErrDisabled is returned when no admin secret is configured.
	ErrDisabled = errors.New("auth: admin endpoints disabled")

	// ErrBadSecret is returned when the presented secret does not match.
	ErrBadSecret = errors.New("auth: wrong admin secret")

	// ErrInvalidToken is returned for expired, malformed or tampered tokens.
	ErrInvalidToken = errors.New("auth: invalid or expired token")
)

// Claims are the JWT claims carried by admin tokens.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager mints and verifies admin tokens. The secret is kept as []byte;
// signing uses HMAC-SHA256.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a token manager from the security configuration.
// An empty admin secret yields a disabled manager that rejects minting.
func NewManager(cfg config.SecurityConfig) *Manager {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &Manager{
		secret: []byte(cfg.AdminSecret),
		ttl:    ttl,
	}
}

// Enabled reports whether an admin secret is configured.
func (m *Manager) Enabled() bool {
	return len(m.secret) > 0
}

// Mint exchanges the admin secret for a signed bearer token. The secret
// comparison is constant-time.
func (m *Manager) Mint(presented string) (string, time.Time, error) {
	if !m.Enabled() {
		return "", time.Time{}, ErrDisabled
	}
	if subtle.ConstantTimeCompare([]byte(presented), m.secret) != 1 {
		return "", time.Time{}, ErrBadSecret
	}

	now := time.Now()
	expiresAt := now.Add(m.ttl)
	claims := &Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify validates a bearer token and returns its claims. The signing
// method is pinned to HMAC to rule out algorithm confusion.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	if !m.Enabled() {
		return nil, ErrDisabled
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Role != RoleAdmin {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
