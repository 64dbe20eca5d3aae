package adminauth

import (
	"context"
	"errors"
	"testing"
	"time"

	ratesvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/rate"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	registry := NewStaticRegistry([]AdminRecord{
		{Email: "chef@example.com", Name: "Margaret", Role: "admin", Password: "correct-horse"},
	})
	limiter := ratesvc.NewLimiter(ratesvc.NewMemoryStore(), 5, 15*time.Minute)

	return NewService(NewTokenManager("test-secret", time.Hour), registry, limiter)
}

func TestLoginVerifyRoundTrip(t *testing.T) {
	service := newTestService(t)

	session, err := service.Login(context.Background(), "chef@example.com", "correct-horse", "1.2.3.4")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if session.Token == "" {
		t.Fatal("empty session token")
	}
	if session.User.Email != "chef@example.com" || session.User.Role != "admin" {
		t.Fatalf("unexpected session user: %+v", session.User)
	}

	identity, err := service.Verify(session.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if identity != session.User {
		t.Fatalf("identity mismatch: got %+v want %+v", identity, session.User)
	}
}

func TestLoginWrongPasswordIsGeneric(t *testing.T) {
	service := newTestService(t)

	_, err := service.Login(context.Background(), "chef@example.com", "wrong", "1.2.3.4")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmailIsGeneric(t *testing.T) {
	service := newTestService(t)

	_, err := service.Login(context.Background(), "nobody@example.com", "correct-horse", "1.2.3.4")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email must look identical to a bad password, got %v", err)
	}
}

func TestLoginEmailLookupIsCaseInsensitive(t *testing.T) {
	service := newTestService(t)

	if _, err := service.Login(context.Background(), "CHEF@Example.COM", "correct-horse", "1.2.3.4"); err != nil {
		t.Fatalf("login with differently cased email: %v", err)
	}
}

func TestLoginRateLimitAppliesBeforeCredentialCheck(t *testing.T) {
	service := newTestService(t)

	for i := 0; i < 5; i++ {
		if _, err := service.Login(context.Background(), "chef@example.com", "wrong", "9.9.9.9"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	// Correct credentials do not bypass the window.
	if _, err := service.Login(context.Background(), "chef@example.com", "correct-horse", "9.9.9.9"); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	if _, err := service.Login(context.Background(), "chef@example.com", "correct-horse", "1.1.1.1"); err != nil {
		t.Fatalf("other clients must be unaffected: %v", err)
	}
}

func TestRefreshRenewsExpiry(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	issuedAt := time.Date(2026, time.February, 1, 8, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issuedAt }
	registry := NewStaticRegistry([]AdminRecord{
		{Email: "chef@example.com", Role: "admin", Password: "pw"},
	})
	service := NewService(tokens, registry, nil)

	session, err := service.Login(context.Background(), "chef@example.com", "pw", "1.2.3.4")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Five minutes past expiry, still inside the refresh grace.
	tokens.now = func() time.Time { return issuedAt.Add(time.Hour + 5*time.Minute) }

	renewed, err := service.Refresh(session.Token, 15*time.Minute)
	if err != nil {
		t.Fatalf("refresh within grace: %v", err)
	}
	if renewed.User != session.User {
		t.Fatalf("refresh must preserve identity: got %+v want %+v", renewed.User, session.User)
	}
	if !renewed.ExpiresAt.After(session.ExpiresAt) {
		t.Fatalf("refresh must extend expiry: %v -> %v", session.ExpiresAt, renewed.ExpiresAt)
	}

	// Past the grace the token is gone for good.
	tokens.now = func() time.Time { return issuedAt.Add(time.Hour + 16*time.Minute) }

	if _, err := service.Refresh(session.Token, 15*time.Minute); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken past the grace, got %v", err)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	service := newTestService(t)

	session, err := service.Login(context.Background(), "chef@example.com", "correct-horse", "1.2.3.4")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	tampered := session.Token[:len(session.Token)-2] + "xx"
	if _, err := service.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLoginFailsClosedWithoutSecret(t *testing.T) {
	registry := NewStaticRegistry([]AdminRecord{
		{Email: "chef@example.com", Role: "admin", Password: "pw"},
	})
	service := NewService(NewTokenManager("", time.Hour), registry, nil)

	if _, err := service.Login(context.Background(), "chef@example.com", "pw", "1.2.3.4"); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestDecodeDoesNotAuthenticate(t *testing.T) {
	service := newTestService(t)

	session, err := service.Login(context.Background(), "chef@example.com", "correct-horse", "1.2.3.4")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	identity, ok := service.Decode(session.Token)
	if !ok || identity.Email != "chef@example.com" {
		t.Fatalf("decode failed: ok=%v identity=%+v", ok, identity)
	}
}
