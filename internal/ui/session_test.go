package ui

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kracgan/student-management-frontend/internal/backend"
	"github.com/kracgan/student-management-frontend/internal/store"
	"github.com/kracgan/student-management-frontend/pkg/model"
)

// fakeAuth is a scriptable backend.AuthService. Unset hooks fail the call.
type fakeAuth struct {
	loginFn       func(username, password string) (string, *model.Identity, error)
	currentFn     func(token string) (*model.Identity, error)
	currentCalled int
}

func (f *fakeAuth) Login(_ context.Context, username, password string) (string, *model.Identity, error) {
	if f.loginFn == nil {
		return "", nil, errors.New("login not scripted")
	}
	return f.loginFn(username, password)
}

func (f *fakeAuth) CurrentUser(_ context.Context, token string) (*model.Identity, error) {
	f.currentCalled++
	if f.currentFn == nil {
		return nil, errors.New("current user not scripted")
	}
	return f.currentFn(token)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupSessionManager(t *testing.T, auth backend.AuthService) (*SessionManager, *store.SQLiteStore) {
	t.Helper()

	st, err := store.NewSQLiteStore(":memory:", testLogger())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return NewSessionManager(st, auth, testLogger(), SessionConfig{}), st
}

func requestWithSession(id string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if id != "" {
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: id})
	}
	return r
}

func saveRecord(t *testing.T, st *store.SQLiteStore, rec *model.Credentials) {
	t.Helper()
	if err := st.SaveCredentials(context.Background(), rec); err != nil {
		t.Fatalf("save credentials: %v", err)
	}
}

func adminIdentity() *model.Identity {
	return &model.Identity{ID: "u1", Username: "admin", Name: "Admin", Email: "admin@example.com", Role: model.RoleAdmin}
}

func TestRestore_NoCookie(t *testing.T) {
	sm, _ := setupSessionManager(t, &fakeAuth{})

	state := sm.Restore(requestWithSession(""))
	if state.Loading {
		t.Error("restoration must resolve")
	}
	if state.IsAuthenticated() {
		t.Error("expected unauthenticated state")
	}
}

func TestRestore_UnknownSession(t *testing.T) {
	sm, _ := setupSessionManager(t, &fakeAuth{})

	state := sm.Restore(requestWithSession("sess_missing"))
	if state.IsAuthenticated() {
		t.Error("expected unauthenticated state for unknown session id")
	}
}

func TestRestore_CachedIdentitySkipsBackend(t *testing.T) {
	auth := &fakeAuth{}
	sm, st := setupSessionManager(t, auth)

	saveRecord(t, st, &model.Credentials{
		ID:        "sess_1",
		Token:     "t1",
		Identity:  adminIdentity(),
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	})

	state := sm.Restore(requestWithSession("sess_1"))
	if !state.IsAdmin() {
		t.Fatalf("expected admin session, got %+v", state)
	}
	if state.Token != "t1" {
		t.Errorf("expected token t1, got %q", state.Token)
	}
	if auth.currentCalled != 0 {
		t.Error("cached identity must restore without a backend call")
	}
}

func TestRestore_TokenOnlyFetchesIdentity(t *testing.T) {
	auth := &fakeAuth{currentFn: func(token string) (*model.Identity, error) {
		if token != "t1" {
			return nil, errors.New("wrong token")
		}
		return adminIdentity(), nil
	}}
	sm, st := setupSessionManager(t, auth)

	saveRecord(t, st, &model.Credentials{
		ID:        "sess_1",
		Token:     "t1",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	})

	state := sm.Restore(requestWithSession("sess_1"))
	if !state.IsAdmin() {
		t.Fatalf("expected admin session, got %+v", state)
	}

	// The fetched identity is cached: a second restore needs no backend.
	auth.currentFn = nil
	state = sm.Restore(requestWithSession("sess_1"))
	if !state.IsAdmin() {
		t.Error("expected identity to be cached after first restore")
	}
	if auth.currentCalled != 1 {
		t.Errorf("expected exactly one backend call, got %d", auth.currentCalled)
	}
}

func TestRestore_BackendFailureClearsCredentials(t *testing.T) {
	auth := &fakeAuth{currentFn: func(string) (*model.Identity, error) {
		return nil, errors.New("token rejected")
	}}
	sm, st := setupSessionManager(t, auth)

	saveRecord(t, st, &model.Credentials{
		ID:        "sess_1",
		Token:     "t1",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	})

	state := sm.Restore(requestWithSession("sess_1"))
	if state.IsAuthenticated() {
		t.Error("expected unauthenticated state after backend rejection")
	}

	rec, err := st.LoadCredentials(context.Background(), "sess_1")
	if err != nil {
		t.Fatalf("load credentials: %v", err)
	}
	if rec != nil {
		t.Error("expected stored credentials to be cleared")
	}
}

func TestRestore_UnknownRoleClearsCredentials(t *testing.T) {
	sm, st := setupSessionManager(t, &fakeAuth{})

	ident := adminIdentity()
	ident.Role = "superuser"
	saveRecord(t, st, &model.Credentials{
		ID:        "sess_1",
		Token:     "t1",
		Identity:  ident,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	})

	state := sm.Restore(requestWithSession("sess_1"))
	if state.IsAuthenticated() {
		t.Error("unrecognized role must not authenticate")
	}

	rec, err := st.LoadCredentials(context.Background(), "sess_1")
	if err != nil {
		t.Fatalf("load credentials: %v", err)
	}
	if rec != nil {
		t.Error("expected stored credentials to be cleared")
	}
}

func TestLogin_Success(t *testing.T) {
	auth := &fakeAuth{loginFn: func(username, password string) (string, *model.Identity, error) {
		if username != "admin" || password != "admin123" {
			return "", nil, &backend.APIError{StatusCode: 401, Message: "Invalid credentials"}
		}
		return "t1", adminIdentity(), nil
	}}
	sm, st := setupSessionManager(t, auth)

	w := httptest.NewRecorder()
	result := sm.Login(context.Background(), w, "admin", "admin123")
	if !result.OK() {
		t.Fatalf("expected login to succeed, got message %q", result.Message)
	}
	if !result.User.IsAdmin() {
		t.Error("expected admin user")
	}

	cookie := sessionCookie(t, w.Result())
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected session cookie to be set")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	rec, err := st.LoadCredentials(context.Background(), cookie.Value)
	if err != nil {
		t.Fatalf("load credentials: %v", err)
	}
	if rec == nil {
		t.Fatal("expected persisted credentials")
	}
	if rec.Token != "t1" {
		t.Errorf("expected token t1, got %q", rec.Token)
	}
	if rec.Identity == nil || rec.Identity.Username != "admin" {
		t.Errorf("expected cached identity, got %+v", rec.Identity)
	}

	// The cookie restores the session on the next request.
	state := sm.Restore(requestWithSession(cookie.Value))
	if !state.IsAdmin() {
		t.Error("expected session to restore as admin")
	}
}

func TestLogin_BackendRejection(t *testing.T) {
	auth := &fakeAuth{loginFn: func(string, string) (string, *model.Identity, error) {
		return "", nil, &backend.APIError{StatusCode: 401, Message: "Invalid credentials"}
	}}
	sm, _ := setupSessionManager(t, auth)

	w := httptest.NewRecorder()
	result := sm.Login(context.Background(), w, "admin", "wrong")
	if result.OK() {
		t.Fatal("expected login to fail")
	}
	if result.Message != "Invalid credentials" {
		t.Errorf("expected backend message, got %q", result.Message)
	}
	if cookie := sessionCookie(t, w.Result()); cookie != nil {
		t.Error("failed login must not set a session cookie")
	}
}

func TestLogin_NetworkFailureUsesGenericMessage(t *testing.T) {
	auth := &fakeAuth{loginFn: func(string, string) (string, *model.Identity, error) {
		return "", nil, errors.New("connection refused")
	}}
	sm, _ := setupSessionManager(t, auth)

	result := sm.Login(context.Background(), httptest.NewRecorder(), "admin", "admin123")
	if result.OK() {
		t.Fatal("expected login to fail")
	}
	if result.Message != genericLoginFailure {
		t.Errorf("expected generic message, got %q", result.Message)
	}
}

func TestLogin_UnknownRoleRejected(t *testing.T) {
	auth := &fakeAuth{loginFn: func(string, string) (string, *model.Identity, error) {
		ident := adminIdentity()
		ident.Role = "superuser"
		return "t1", ident, nil
	}}
	sm, st := setupSessionManager(t, auth)

	w := httptest.NewRecorder()
	result := sm.Login(context.Background(), w, "admin", "admin123")
	if result.OK() {
		t.Fatal("unrecognized role must not start a session")
	}
	if cookie := sessionCookie(t, w.Result()); cookie != nil {
		t.Error("no cookie may be set for a rejected role")
	}

	recs, err := st.ListCredentials(context.Background())
	if err != nil {
		t.Fatalf("list credentials: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no persisted credentials, got %d", len(recs))
	}
}

func TestLogin_ShortLivedTokenCapsSessionExpiry(t *testing.T) {
	exp := time.Now().Add(5 * time.Minute)
	auth := &fakeAuth{loginFn: func(string, string) (string, *model.Identity, error) {
		return unsignedJWTWithExp(t, exp), adminIdentity(), nil
	}}
	sm, st := setupSessionManager(t, auth)

	w := httptest.NewRecorder()
	result := sm.Login(context.Background(), w, "admin", "admin123")
	if !result.OK() {
		t.Fatalf("expected login to succeed, got %q", result.Message)
	}

	cookie := sessionCookie(t, w.Result())
	rec, err := st.LoadCredentials(context.Background(), cookie.Value)
	if err != nil || rec == nil {
		t.Fatalf("load credentials: rec=%v err=%v", rec, err)
	}
	if rec.ExpiresAt.After(exp.Add(time.Second)) {
		t.Errorf("session expiry %v must not outlive token expiry %v", rec.ExpiresAt, exp)
	}
}

func TestLogout_Idempotent(t *testing.T) {
	auth := &fakeAuth{loginFn: func(string, string) (string, *model.Identity, error) {
		return "t1", adminIdentity(), nil
	}}
	sm, st := setupSessionManager(t, auth)

	w := httptest.NewRecorder()
	sm.Login(context.Background(), w, "admin", "admin123")
	cookie := sessionCookie(t, w.Result())

	for i := 0; i < 2; i++ {
		lw := httptest.NewRecorder()
		sm.Logout(context.Background(), lw, requestWithSession(cookie.Value))

		cleared := sessionCookie(t, lw.Result())
		if cleared == nil || cleared.MaxAge >= 0 {
			t.Fatalf("pass %d: expected an expired session cookie", i+1)
		}
	}

	recs, err := st.ListCredentials(context.Background())
	if err != nil {
		t.Fatalf("list credentials: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected credentials cleared, got %d records", len(recs))
	}

	state := sm.Restore(requestWithSession(cookie.Value))
	if state.IsAuthenticated() {
		t.Error("expected unauthenticated state after logout")
	}
}

func TestLogout_WithoutSession(t *testing.T) {
	sm, _ := setupSessionManager(t, &fakeAuth{})

	w := httptest.NewRecorder()
	sm.Logout(context.Background(), w, requestWithSession(""))

	cleared := sessionCookie(t, w.Result())
	if cleared == nil || cleared.MaxAge >= 0 {
		t.Error("logout without a session still clears the cookie")
	}
}

func TestUpdateUser_MergesAndPersists(t *testing.T) {
	sm, st := setupSessionManager(t, &fakeAuth{})

	saveRecord(t, st, &model.Credentials{
		ID:        "sess_1",
		Token:     "t1",
		Identity:  adminIdentity(),
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	})
	state := sm.Restore(requestWithSession("sess_1"))

	email := "new@example.com"
	sm.UpdateUser(context.Background(), &state, model.IdentityPatch{Email: &email})

	if state.User.Email != email {
		t.Errorf("expected updated email, got %q", state.User.Email)
	}
	if state.User.Name != "Admin" {
		t.Errorf("untouched fields must survive the merge, got name %q", state.User.Name)
	}

	rec, err := st.LoadCredentials(context.Background(), "sess_1")
	if err != nil || rec == nil {
		t.Fatalf("load credentials: rec=%v err=%v", rec, err)
	}
	if rec.Identity.Email != email {
		t.Errorf("expected persisted email %q, got %q", email, rec.Identity.Email)
	}
	if rec.Token != "t1" {
		t.Errorf("token must survive the identity update, got %q", rec.Token)
	}
}

func TestUpdateUser_NoSessionIsNoop(t *testing.T) {
	sm, _ := setupSessionManager(t, &fakeAuth{})

	state := SessionState{}
	name := "Someone"
	sm.UpdateUser(context.Background(), &state, model.IdentityPatch{Name: &name})
	if state.User != nil {
		t.Error("update without a user must stay unauthenticated")
	}
}

func TestLoginFailureMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"api error with message", &backend.APIError{StatusCode: 401, Message: "Invalid credentials"}, "Invalid credentials"},
		{"api error without message", &backend.APIError{StatusCode: 500}, genericLoginFailure},
		{"plain error", errors.New("dial tcp: connection refused"), genericLoginFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := loginFailureMessage(tt.err); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// unsignedJWTWithExp builds a structurally valid, unsigned JWT whose exp
// claim is the given time. Good enough for expiry extraction, which never
// verifies signatures.
func unsignedJWTWithExp(t *testing.T, exp time.Time) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	claims := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(`{"exp":%d}`, exp.Unix())))
	return header + "." + claims + "."
}

// sessionCookie returns the session cookie from a response, nil when absent.
func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}
