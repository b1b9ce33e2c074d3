// Package tokens issues and verifies the HS256 bearer tokens carried by API callers.
package tokens

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Apurer/petcare-api/internal/shared/auth"
)

// DefaultTTL matches the lifetime of a login session.
const DefaultTTL = 72 * time.Hour

const clockSkew = 30 * time.Second

var (
	// ErrInvalidToken covers every verification failure: signature, expiry, issuer, audience or claims.
	ErrInvalidToken = errors.New("invalid token")
	// ErrEmptySecret is returned when a manager is built without signing material.
	ErrEmptySecret = errors.New("token secret is empty")
)

// Claims is the JWT payload.
type Claims struct {
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	IsBlocked      bool   `json:"isBlocked"`
	Type           string `json:"type"`
	ProfilePicture string `json:"profilePicture,omitempty"`
	SessionID      string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// Manager signs and verifies tokens with a shared secret.
type Manager struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewManager builds a manager. A non-positive ttl falls back to DefaultTTL.
func NewManager(secret, issuer, audience string, ttl time.Duration) (*Manager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// WithClock overrides the time source for deterministic testing.
func (m *Manager) WithClock(now func() time.Time) {
	if now != nil {
		m.now = now
	}
}

// TTL reports the configured token lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for the principal and returns it with its expiry.
func (m *Manager) Issue(p auth.Principal) (string, time.Time, error) {
	if !p.Authenticated() {
		return "", time.Time{}, fmt.Errorf("%w: principal has no email", ErrInvalidToken)
	}
	now := m.now().UTC()
	expires := now.Add(m.ttl)
	claims := Claims{
		Email:          p.Email,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		IsBlocked:      p.Blocked,
		Type:           string(p.Role),
		ProfilePicture: p.ProfilePicture,
		SessionID:      p.SessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	if m.issuer != "" {
		claims.Issuer = m.issuer
	}
	if m.audience != "" {
		claims.Audience = jwt.ClaimStrings{m.audience}
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expires, nil
}

// Verify parses raw and returns the principal it carries.
func (m *Manager) Verify(raw string) (auth.Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return auth.Anonymous, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(clockSkew),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}
	if m.audience != "" {
		opts = append(opts, jwt.WithAudience(m.audience))
	}
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, opts...)
	if err != nil {
		return auth.Anonymous, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || strings.TrimSpace(claims.Email) == "" {
		return auth.Anonymous, ErrInvalidToken
	}
	role, err := auth.ParseRole(claims.Type)
	if err != nil {
		return auth.Anonymous, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return auth.Principal{
		Email:          claims.Email,
		FirstName:      claims.FirstName,
		LastName:       claims.LastName,
		Role:           role,
		Blocked:        claims.IsBlocked,
		ProfilePicture: claims.ProfilePicture,
		SessionID:      claims.SessionID,
	}, nil
}
