package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authsvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/adminauth"
	ratesvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/rate"
	"github.com/AustiNight/chefmargaretalvis-sub001/internal/transport/http/dto"
)

func newTestAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()

	registry := authsvc.NewStaticRegistry([]authsvc.AdminRecord{
		{Email: "chef@example.com", Name: "Margaret", Role: "admin", Password: "correct-horse"},
	})
	limiter := ratesvc.NewLimiter(ratesvc.NewMemoryStore(), 5, 15*time.Minute)
	service := authsvc.NewService(authsvc.NewTokenManager("test-secret", time.Hour), registry, limiter)

	return NewAuthHandler(service, AuthHandlerConfig{
		AccessTTL:    time.Hour,
		RefreshGrace: 15 * time.Minute,
	})
}

func postLogin(t *testing.T, handler *AuthHandler, body, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.RemoteAddr = remoteAddr
	rr := httptest.NewRecorder()
	handler.Login(rr, req)
	return rr
}

func authCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == AuthCookieName {
			return cookie
		}
	}
	t.Fatal("auth cookie not set")
	return nil
}

func TestLoginSetsHardenedCookie(t *testing.T) {
	handler := newTestAuthHandler(t)

	rr := postLogin(t, handler, `{"email": "chef@example.com", "password": "correct-horse"}`, "10.0.0.1:51000")
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d, body %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp dto.LoginResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Token == "" {
		t.Fatalf("unexpected login response: %+v", resp)
	}
	if resp.User.Email != "chef@example.com" || resp.User.Role != "admin" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}

	cookie := authCookie(t, rr)
	if cookie.Value != resp.Token {
		t.Fatal("cookie must carry the issued token")
	}
	if !cookie.HttpOnly {
		t.Fatal("cookie must be HttpOnly")
	}
	if cookie.SameSite != http.SameSiteStrictMode {
		t.Fatalf("cookie must be SameSite=Strict, got %v", cookie.SameSite)
	}
	if cookie.Path != "/" {
		t.Fatalf("unexpected cookie path: %q", cookie.Path)
	}
	if cookie.MaxAge != 3600 {
		t.Fatalf("unexpected cookie max-age: %d", cookie.MaxAge)
	}
}

func TestLoginFailureIsGeneric(t *testing.T) {
	handler := newTestAuthHandler(t)

	wrongPassword := postLogin(t, handler, `{"email": "chef@example.com", "password": "nope"}`, "10.0.0.2:51000")
	unknownEmail := postLogin(t, handler, `{"email": "ghost@example.com", "password": "correct-horse"}`, "10.0.0.3:51000")

	for name, rr := range map[string]*httptest.ResponseRecorder{
		"wrong password": wrongPassword,
		"unknown email":  unknownEmail,
	} {
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: unexpected status %d", name, rr.Code)
		}
		var resp dto.AuthFailureResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: decode response: %v", name, err)
		}
		if resp.Success || resp.Message != "Invalid credentials" {
			t.Fatalf("%s: response must not leak which field failed: %+v", name, resp)
		}
	}
}

func TestLoginRateLimitedAfterFiveAttempts(t *testing.T) {
	handler := newTestAuthHandler(t)

	for i := 0; i < 5; i++ {
		rr := postLogin(t, handler, `{"email": "chef@example.com", "password": "nope"}`, "10.0.0.4:51000")
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: unexpected status %d", i+1, rr.Code)
		}
	}

	rr := postLogin(t, handler, `{"email": "chef@example.com", "password": "correct-horse"}`, "10.0.0.4:51000")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("sixth attempt must be throttled, got %d", rr.Code)
	}

	var resp dto.AuthFailureResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Too many login attempts. Please try again later." {
		t.Fatalf("unexpected throttle message: %q", resp.Message)
	}

	// A different client address is a different window.
	other := postLogin(t, handler, `{"email": "chef@example.com", "password": "correct-horse"}`, "10.0.0.5:51000")
	if other.Code != http.StatusOK {
		t.Fatalf("other client must not be throttled, got %d", other.Code)
	}
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	handler := newTestAuthHandler(t)

	rr := postLogin(t, handler, `{"email": `, "10.0.0.6:51000")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestCheckWithoutCookieIsAnonymous(t *testing.T) {
	handler := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	rr := httptest.NewRecorder()
	handler.Check(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("missing cookie is not an error, got %d", rr.Code)
	}

	var resp dto.CheckResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Authenticated || resp.Message != "No token" {
		t.Fatalf("unexpected check response: %+v", resp)
	}
}

func TestCheckRoundTrip(t *testing.T) {
	handler := newTestAuthHandler(t)

	login := postLogin(t, handler, `{"email": "chef@example.com", "password": "correct-horse"}`, "10.0.0.7:51000")
	cookie := authCookie(t, login)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	handler.Check(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	var resp dto.CheckResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Authenticated || resp.User == nil || resp.User.Email != "chef@example.com" {
		t.Fatalf("unexpected check response: %+v", resp)
	}
}

func TestCheckRejectsTamperedToken(t *testing.T) {
	handler := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "not-a-jwt"})
	rr := httptest.NewRecorder()
	handler.Check(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestRefreshReadsRawCookieHeader(t *testing.T) {
	handler := newTestAuthHandler(t)

	login := postLogin(t, handler, `{"email": "chef@example.com", "password": "correct-horse"}`, "10.0.0.8:51000")
	cookie := authCookie(t, login)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("Cookie", "other=1; "+AuthCookieName+"="+cookie.Value+"; trailing=2")
	rr := httptest.NewRecorder()
	handler.Refresh(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d, body %s", rr.Code, rr.Body.String())
	}

	var resp dto.LoginResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.Token == "" {
		t.Fatalf("unexpected refresh response: %+v", resp)
	}
	if resp.User.Email != "chef@example.com" {
		t.Fatalf("refresh must preserve identity: %+v", resp.User)
	}

	if authCookie(t, rr).Value != resp.Token {
		t.Fatal("refresh must reset the cookie to the renewed token")
	}
}

func TestRefreshWithoutTokenFails(t *testing.T) {
	handler := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	rr := httptest.NewRecorder()
	handler.Refresh(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	handler := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rr := httptest.NewRecorder()
	handler.Logout(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	cookie := authCookie(t, rr)
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("logout must expire the cookie: value=%q max-age=%d", cookie.Value, cookie.MaxAge)
	}
}

func TestTokenFromCookieHeader(t *testing.T) {
	if _, ok := tokenFromCookieHeader(""); ok {
		t.Fatal("empty header must not yield a token")
	}
	if _, ok := tokenFromCookieHeader("other=value"); ok {
		t.Fatal("unrelated cookies must not yield a token")
	}
	if _, ok := tokenFromCookieHeader(AuthCookieName + "="); ok {
		t.Fatal("empty value must not yield a token")
	}
	token, ok := tokenFromCookieHeader("a=1; " + AuthCookieName + "=abc.def.ghi")
	if !ok || token != "abc.def.ghi" {
		t.Fatalf("unexpected token: %q ok=%v", token, ok)
	}
}
