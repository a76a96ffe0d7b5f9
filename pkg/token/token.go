// Package token signs and verifies the HS256 session tokens handed out at login.
//
// Tokens are self-contained: nothing is stored server-side, so a token stays valid until it
// expires.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// DefaultTTL is the lifetime of every issued token.
const DefaultTTL = time.Hour

var (
	// ErrMissingToken means the request carried no bearer token at all.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken covers bad signatures, malformed and expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Claims is the payload of a session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"usuario_id"`
	Email  string `json:"correo"`
}

// Manager issues and verifies tokens with a single shared secret.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option customizes a Manager.
type Option func(*Manager)

// WithIssuer sets the iss claim on issued tokens.
func WithIssuer(issuer string) Option {
	return func(m *Manager) { m.issuer = issuer }
}

// WithClock replaces time.Now for issuing.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func NewManager(secret string, opts ...Option) *Manager {
	m := &Manager{
		secret: []byte(secret),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Issue signs a token for the given user. It returns the token together with its expiry.
func (m *Manager) Issue(userID int64, email string) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
		Email:  email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse checks the signature and expiry of a raw token.
func (m *Manager) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Verify is the gate applied to protected requests. It takes the raw Authorization header and
// returns ErrMissingToken, ErrInvalidToken or the decoded claims.
func (m *Manager) Verify(authorization string) (*Claims, error) {
	raw := BearerToken(authorization)
	if raw == "" {
		return nil, ErrMissingToken
	}
	return m.Parse(raw)
}

// BearerToken extracts the token segment of a "Bearer <token>" header.
func BearerToken(header string) string {
	scheme, raw, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(raw)
}
