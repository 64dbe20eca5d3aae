package adminauth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

type TokenManager struct {
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
}

type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func NewTokenManager(secret string, accessTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}

	return &TokenManager{
		secret:    []byte(strings.TrimSpace(secret)),
		accessTTL: accessTTL,
		now:       time.Now,
	}
}

func (m *TokenManager) IsConfigured() bool {
	return m != nil && len(m.secret) > 0
}

func (m *TokenManager) Generate(identity Identity) (string, time.Time, error) {
	if !m.IsConfigured() {
		return "", time.Time{}, ErrNotConfigured
	}
	if identity.ID <= 0 || strings.TrimSpace(identity.Email) == "" {
		return "", time.Time{}, fmt.Errorf("invalid token payload")
	}

	now := m.now().UTC()
	expiresAt := now.Add(m.accessTTL)
	claims := tokenClaims{
		Email: identity.Email,
		Name:  identity.Name,
		Role:  identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(identity.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Parse verifies the signature and expiry. A positive leeway lets a
// recently expired token through; the refresh flow uses it as its grace
// window, verification passes zero.
func (m *TokenManager) Parse(raw string, leeway time.Duration) (Identity, time.Time, error) {
	if !m.IsConfigured() {
		return Identity{}, time.Time{}, ErrNotConfigured
	}
	if strings.TrimSpace(raw) == "" {
		return Identity{}, time.Time{}, ErrNoToken
	}
	if leeway < 0 {
		leeway = 0
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(leeway),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	if err != nil || token == nil || !token.Valid {
		return Identity{}, time.Time{}, ErrInvalidToken
	}

	identity, expiresAt, err := identityFromClaims(claims)
	if err != nil {
		return Identity{}, time.Time{}, ErrInvalidToken
	}

	return identity, expiresAt, nil
}

// Decode reads claims without verifying the signature. Display-only: the
// result must never feed an access-control decision.
func (m *TokenManager) Decode(raw string) (Identity, bool) {
	if strings.TrimSpace(raw) == "" {
		return Identity{}, false
	}

	claims := &tokenClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return Identity{}, false
	}

	identity, _, err := identityFromClaims(claims)
	if err != nil {
		return Identity{}, false
	}

	return identity, true
}

func identityFromClaims(claims *tokenClaims) (Identity, time.Time, error) {
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return Identity{}, time.Time{}, fmt.Errorf("invalid subject claim")
	}
	if strings.TrimSpace(claims.Email) == "" {
		return Identity{}, time.Time{}, fmt.Errorf("missing email claim")
	}
	if claims.ExpiresAt == nil {
		return Identity{}, time.Time{}, fmt.Errorf("missing expiry claim")
	}

	return Identity{
		ID:    id,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}, claims.ExpiresAt.Time, nil
}
