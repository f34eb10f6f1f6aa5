package ui

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/kracgan/student-management-frontend/internal/backend"
	"github.com/kracgan/student-management-frontend/internal/store"
	"github.com/kracgan/student-management-frontend/pkg/model"
)

const (
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "smf_session"
	// DefaultSessionLifetime is the default session lifetime.
	DefaultSessionLifetime = 24 * time.Hour

	genericLoginFailure = "Login failed"
)

// SessionState is the read-only projection handed to the route guard,
// navigation chrome and data views. User is either fully populated or nil.
type SessionState struct {
	User    *model.Identity
	Loading bool

	// Credential record handle: empty when unauthenticated. The token is
	// what data views use to call the backend on the user's behalf.
	ID    string
	Token string
}

// IsAuthenticated reports whether a user is signed in.
func (s SessionState) IsAuthenticated() bool { return s.User != nil }

// IsAdmin reports whether the signed-in user is an administrator.
func (s SessionState) IsAdmin() bool { return s.User != nil && s.User.IsAdmin() }

// IsStudent reports whether the signed-in user is a student.
func (s SessionState) IsStudent() bool { return s.User != nil && s.User.IsStudent() }

// LoginResult carries the outcome of a login attempt. On failure, Message
// holds a human-readable reason suitable for inline display.
type LoginResult struct {
	User    *model.Identity
	Message string
}

// OK reports whether the login succeeded.
func (r LoginResult) OK() bool { return r.User != nil }

// SessionManager owns session state: it restores sessions from the
// credential store, performs login and logout against the backend, and is
// the only writer of the session record.
type SessionManager struct {
	store    store.Store
	auth     backend.AuthService
	logger   *slog.Logger
	lifetime time.Duration
	secure   bool
}

// SessionConfig tunes the session manager.
type SessionConfig struct {
	Lifetime time.Duration // DefaultSessionLifetime when zero
	Secure   bool          // Mark cookies Secure (HTTPS)
}

// NewSessionManager creates a session manager.
func NewSessionManager(st store.Store, auth backend.AuthService, logger *slog.Logger, cfg SessionConfig) *SessionManager {
	lifetime := cfg.Lifetime
	if lifetime <= 0 {
		lifetime = DefaultSessionLifetime
	}
	return &SessionManager{
		store:    st,
		auth:     auth,
		logger:   logger.With("component", "session"),
		lifetime: lifetime,
		secure:   cfg.Secure,
	}
}

// Restore resolves the session state for a request. With a cached identity
// the stored copy is adopted as-is, with no backend call. With a token but
// no cached identity the backend is asked for the current user; any failure
// there clears the stored credentials and falls back to unauthenticated.
// The returned state always has Loading == false: restoration has resolved
// by the time the caller sees it.
func (sm *SessionManager) Restore(r *http.Request) SessionState {
	state := SessionState{Loading: true}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		// No cookie, nothing to restore.
		state.Loading = false
		return state
	}

	ctx := r.Context()
	rec, err := sm.store.LoadCredentials(ctx, cookie.Value)
	if err != nil {
		sm.logger.Error("credential lookup failed", "error", err)
		state.Loading = false
		return state
	}
	if rec == nil {
		state.Loading = false
		return state
	}

	switch {
	case rec.Identity != nil:
		// Optimistic restoration from the cached identity.
		if !rec.Identity.Role.Valid() {
			sm.logger.Warn("cached identity has unrecognized role; clearing", "role", rec.Identity.Role)
			_ = sm.store.ClearCredentials(ctx, rec.ID)
			break
		}
		state.User = rec.Identity
		state.ID = rec.ID
		state.Token = rec.Token

	case rec.Token != "":
		ident, err := sm.auth.CurrentUser(ctx, rec.Token)
		if err != nil {
			// Fail safe: a half-valid session is worse than re-login.
			sm.logger.Warn("session restoration failed; clearing credentials", "error", err)
			_ = sm.store.ClearCredentials(ctx, rec.ID)
			break
		}
		if !ident.Role.Valid() {
			sm.logger.Warn("backend returned unrecognized role; clearing", "role", ident.Role)
			_ = sm.store.ClearCredentials(ctx, rec.ID)
			break
		}
		rec.Identity = ident
		if err := sm.store.SaveCredentials(ctx, rec); err != nil {
			sm.logger.Warn("failed to cache restored identity", "error", err)
		}
		state.User = ident
		state.ID = rec.ID
		state.Token = rec.Token
	}

	state.Loading = false
	return state
}

// Login authenticates against the backend. On success the token and
// identity are persisted and the session cookie is set on w. On failure the
// session is left unchanged and the result carries a human-readable reason.
func (sm *SessionManager) Login(ctx context.Context, w http.ResponseWriter, username, password string) LoginResult {
	token, ident, err := sm.auth.Login(ctx, username, password)
	if err != nil {
		sm.logger.Warn("login failed", "username", username, "error", err)
		return LoginResult{Message: loginFailureMessage(err)}
	}
	if ident == nil || !ident.Role.Valid() {
		sm.logger.Warn("login rejected: unrecognized role", "username", username)
		return LoginResult{Message: genericLoginFailure}
	}

	id, err := generateSessionID()
	if err != nil {
		sm.logger.Error("generate session id failed", "error", err)
		return LoginResult{Message: genericLoginFailure}
	}

	now := time.Now()
	rec := &model.Credentials{
		ID:        id,
		Token:     token,
		Identity:  ident,
		TokenExp:  backend.TokenExpiry(token),
		CreatedAt: now,
		ExpiresAt: now.Add(sm.lifetime),
	}
	// Limit session expiry to token expiry if the token expires sooner.
	if !rec.TokenExp.IsZero() && rec.TokenExp.Before(rec.ExpiresAt) {
		rec.ExpiresAt = rec.TokenExp
	}

	if err := sm.store.SaveCredentials(ctx, rec); err != nil {
		sm.logger.Error("persist credentials failed", "error", err)
		return LoginResult{Message: genericLoginFailure}
	}

	sm.setCookie(w, rec)
	sm.logger.Info("user logged in", "username", ident.Username, "role", ident.Role, "session", rec.ID)
	return LoginResult{User: ident}
}

// Logout clears the stored credentials and the cookie. It always succeeds,
// involves no backend call, and is a no-op when already signed out.
func (sm *SessionManager) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		_ = sm.store.ClearCredentials(ctx, cookie.Value)
	}
	sm.clearCookie(w)
}

// UpdateUser shallow-merges a partial identity update into the session user
// and re-persists the cached copy. No-op, without error, when no user is set.
func (sm *SessionManager) UpdateUser(ctx context.Context, state *SessionState, patch model.IdentityPatch) {
	if state == nil || state.User == nil {
		return
	}
	state.User.Apply(patch)

	if state.ID == "" {
		return
	}
	rec, err := sm.store.LoadCredentials(ctx, state.ID)
	if err != nil || rec == nil {
		return
	}
	rec.Identity = state.User
	if err := sm.store.SaveCredentials(ctx, rec); err != nil {
		sm.logger.Warn("persist updated identity failed", "error", err)
	}
}

// PurgeExpired sweeps expired credential records from the store.
func (sm *SessionManager) PurgeExpired(ctx context.Context) (int64, error) {
	return sm.store.PurgeExpired(ctx)
}

func (sm *SessionManager) setCookie(w http.ResponseWriter, rec *model.Credentials) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    rec.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  rec.ExpiresAt,
	})
}

func (sm *SessionManager) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// loginFailureMessage prefers the backend's human-readable message and
// falls back to a generic one.
func loginFailureMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return genericLoginFailure
}

// generateSessionID generates a cryptographically secure random session ID.
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return "sess_" + hex.EncodeToString(b), nil
}
