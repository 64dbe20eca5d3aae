package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	authsvc "github.com/AustiNight/chefmargaretalvis-sub001/internal/services/adminauth"
	"github.com/AustiNight/chefmargaretalvis-sub001/internal/transport/http/dto"
	httperrors "github.com/AustiNight/chefmargaretalvis-sub001/internal/transport/http/errors"
)

const AuthCookieName = "auth_token"

type AuthHandler struct {
	service       *authsvc.Service
	accessTTL     time.Duration
	refreshGrace  time.Duration
	secureCookies bool
}

type AuthHandlerConfig struct {
	AccessTTL     time.Duration
	RefreshGrace  time.Duration
	SecureCookies bool
}

func NewAuthHandler(service *authsvc.Service, cfg AuthHandlerConfig) *AuthHandler {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = time.Hour
	}

	return &AuthHandler{
		service:       service,
		accessTTL:     cfg.AccessTTL,
		refreshGrace:  cfg.RefreshGrace,
		secureCookies: cfg.SecureCookies,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeAuthFailure(w, http.StatusInternalServerError, "auth service is unavailable")
		return
	}

	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAuthFailure(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.service.Login(r.Context(), req.Email, req.Password, clientKey(r))
	if err != nil {
		h.handleLoginError(w, err)
		return
	}

	h.setAuthCookie(w, session.Token)
	httperrors.Write(w, http.StatusOK, dto.LoginResponse{
		Success: true,
		User:    toAuthUser(session.User),
		Token:   session.Token,
	})
}

func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeAuthFailure(w, http.StatusInternalServerError, "auth service is unavailable")
		return
	}

	cookie, err := r.Cookie(AuthCookieName)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		httperrors.Write(w, http.StatusOK, dto.CheckResponse{
			Authenticated: false,
			Message:       "No token",
		})
		return
	}

	identity, err := h.service.Verify(cookie.Value)
	if err != nil {
		if errors.Is(err, authsvc.ErrNotConfigured) {
			writeAuthFailure(w, http.StatusInternalServerError, "auth is not configured")
			return
		}
		httperrors.Write(w, http.StatusUnauthorized, dto.CheckResponse{
			Authenticated: false,
			Message:       "Invalid token",
		})
		return
	}

	user := toAuthUser(identity)
	httperrors.Write(w, http.StatusOK, dto.CheckResponse{
		Authenticated: true,
		User:          &user,
	})
}

// Refresh reads the credential straight from the Cookie header rather
// than the parsed cookie jar so it also works for requests forwarded by
// the admin frontend with a hand-built header.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeAuthFailure(w, http.StatusInternalServerError, "auth service is unavailable")
		return
	}

	token, ok := tokenFromCookieHeader(r.Header.Get("Cookie"))
	if !ok {
		writeAuthFailure(w, http.StatusUnauthorized, "No token to refresh")
		return
	}

	session, err := h.service.Refresh(token, h.refreshGrace)
	if err != nil {
		if errors.Is(err, authsvc.ErrNotConfigured) {
			writeAuthFailure(w, http.StatusInternalServerError, "auth is not configured")
			return
		}
		writeAuthFailure(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	h.setAuthCookie(w, session.Token)
	httperrors.Write(w, http.StatusOK, dto.LoginResponse{
		Success: true,
		User:    toAuthUser(session.User),
		Token:   session.Token,
	})
}

// Logout clears the client-held credential. There is no revocation list,
// so this is the entire logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
	httperrors.Write(w, http.StatusOK, dto.LogoutResponse{Success: true})
}

func (h *AuthHandler) handleLoginError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authsvc.ErrRateLimited):
		writeAuthFailure(w, http.StatusTooManyRequests, "Too many login attempts. Please try again later.")
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		writeAuthFailure(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, authsvc.ErrNotConfigured):
		writeAuthFailure(w, http.StatusInternalServerError, "auth is not configured")
	default:
		writeAuthFailure(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.accessTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func writeAuthFailure(w http.ResponseWriter, status int, message string) {
	httperrors.Write(w, status, dto.AuthFailureResponse{
		Success: false,
		Message: message,
	})
}

func toAuthUser(identity authsvc.Identity) dto.AuthUser {
	return dto.AuthUser{
		ID:    identity.ID,
		Email: identity.Email,
		Name:  identity.Name,
		Role:  identity.Role,
	}
}

func tokenFromCookieHeader(header string) (string, bool) {
	for _, part := range strings.Split(header, ";") {
		name, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found || name != AuthCookieName {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			return "", false
		}
		return value, true
	}
	return "", false
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}
