package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kracgan/student-management-frontend/internal/store"
)

// resolveDBPath expands the --db flag, defaulting to ~/.smf/sessions.db and
// creating the directory if needed.
func resolveDBPath() (string, error) {
	if flagDB != "" {
		return flagDB, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	dir := filepath.Join(home, ".smf")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return filepath.Join(dir, "sessions.db"), nil
}

// openStore opens the session store and runs migrations.
func openStore(ctx context.Context) (*store.SQLiteStore, error) {
	path, err := resolveDBPath()
	if err != nil {
		return nil, err
	}
	st, err := store.NewSQLiteStore(path, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return st, nil
}
