package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kracgan/student-management-frontend/internal/backend"
	"github.com/kracgan/student-management-frontend/internal/config"
	"github.com/kracgan/student-management-frontend/internal/server"
	"github.com/kracgan/student-management-frontend/internal/store"
	"github.com/kracgan/student-management-frontend/internal/ui"
	"github.com/kracgan/student-management-frontend/pkg/model"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()

	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

// seedSession writes a credential record straight into a database file.
func seedSession(t *testing.T, dbPath string, rec *model.Credentials) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.NewSQLiteStore(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := st.SaveCredentials(context.Background(), rec); err != nil {
		t.Fatalf("save credentials: %v", err)
	}
}

func TestSessionsListEmpty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sessions.db")

	out, err := runCLI(t, "sessions", "list", "--db", dbPath)
	if err != nil {
		t.Fatalf("sessions list: %v", err)
	}
	if !strings.Contains(out, "No active sessions.") {
		t.Errorf("expected empty store message, got %q", out)
	}
}

func TestSessionsList(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sessions.db")
	seedSession(t, dbPath, &model.Credentials{
		ID:    "sess_abc123",
		Token: "t1",
		Identity: &model.Identity{
			ID: "u1", Username: "admin", Name: "Admin", Role: model.RoleAdmin,
		},
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	})

	out, err := runCLI(t, "sessions", "list", "--db", dbPath)
	if err != nil {
		t.Fatalf("sessions list: %v", err)
	}
	if !strings.Contains(out, "admin") {
		t.Errorf("expected session user in output, got %q", out)
	}
	if !strings.Contains(out, "sess_abc123") {
		t.Errorf("expected session id in output, got %q", out)
	}
}

func TestSessionsPurge(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sessions.db")
	seedSession(t, dbPath, &model.Credentials{
		ID:        "sess_expired",
		Token:     "t1",
		CreatedAt: time.Now().Add(-48 * time.Hour),
		ExpiresAt: time.Now().Add(-24 * time.Hour),
	})

	out, err := runCLI(t, "sessions", "purge", "--db", dbPath)
	if err != nil {
		t.Fatalf("sessions purge: %v", err)
	}
	if !strings.Contains(out, "Purged 1") {
		t.Errorf("expected one purged session, got %q", out)
	}
}

func TestPing(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.NewSQLiteStore(":memory:", logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	api := backend.NewClient(backend.ClientConfig{BaseURL: "http://127.0.0.1:0"}, logger)
	sessions := ui.NewSessionManager(st, api, logger, ui.SessionConfig{})
	srv := server.New(config.Default(), st, ui.New(sessions, api, logger), logger)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	out, err := runCLI(t, "ping", "--server", ts.URL)
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	if !strings.Contains(out, "Status:   healthy") {
		t.Errorf("expected healthy status, got %q", out)
	}
}

func TestPingUnreachable(t *testing.T) {
	_, err := runCLI(t, "ping", "--server", "http://127.0.0.1:1")
	if err == nil {
		t.Fatal("expected error for unreachable server")
	}
}
