package adminauth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	pgrepo "github.com/AustiNight/chefmargaretalvis-sub001/internal/repo/postgres"
	ratesvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/rate"
)

type Service struct {
	tokens     *TokenManager
	identities IdentityStore
	limiter    *ratesvc.Limiter
}

func NewService(tokens *TokenManager, identities IdentityStore, limiter *ratesvc.Limiter) *Service {
	return &Service{
		tokens:     tokens,
		identities: identities,
		limiter:    limiter,
	}
}

func (s *Service) IsConfigured() bool {
	return s != nil && s.tokens.IsConfigured() && s.identities != nil
}

// Login authenticates an administrator. The rate limiter is consulted
// before the registry so a blocked client learns nothing about whether
// its credentials were correct.
func (s *Service) Login(ctx context.Context, email, password, clientKey string) (Session, error) {
	if !s.IsConfigured() {
		return Session{}, ErrNotConfigured
	}

	if s.limiter != nil {
		_, allowed, err := s.limiter.Allow(ctx, clientKey)
		if err != nil {
			return Session{}, fmt.Errorf("rate limit login attempt: %w", err)
		}
		if !allowed {
			return Session{}, ErrRateLimited
		}
	}

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	record, err := s.identities.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) || errors.Is(err, pgrepo.ErrAdminUserNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("find identity by email: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(record.Password), []byte(password)) != 1 {
		return Session{}, ErrInvalidCredentials
	}

	return s.issue(Identity{
		ID:    record.ID,
		Email: record.Email,
		Name:  record.Name,
		Role:  record.Role,
	})
}

// Verify validates signature and expiry and returns the asserted identity.
func (s *Service) Verify(token string) (Identity, error) {
	if !s.tokens.IsConfigured() {
		return Identity{}, ErrNotConfigured
	}

	identity, _, err := s.tokens.Parse(token, 0)
	if err != nil {
		return Identity{}, err
	}

	return identity, nil
}

// Decode returns unverified claims for UI display only.
func (s *Service) Decode(token string) (Identity, bool) {
	return s.tokens.Decode(token)
}

// Refresh re-signs the identity carried by a token that is still valid,
// or expired within the configured grace, with a renewed expiry.
func (s *Service) Refresh(token string, grace time.Duration) (Session, error) {
	if !s.tokens.IsConfigured() {
		return Session{}, ErrNotConfigured
	}

	identity, _, err := s.tokens.Parse(token, grace)
	if err != nil {
		return Session{}, err
	}

	return s.issue(identity)
}

func (s *Service) issue(identity Identity) (Session, error) {
	token, expiresAt, err := s.tokens.Generate(identity)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return Session{}, ErrNotConfigured
		}
		return Session{}, fmt.Errorf("generate token: %w", err)
	}

	return Session{
		Token:     token,
		User:      identity,
		ExpiresAt: expiresAt,
	}, nil
}
