package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/kracgan/student-management-frontend/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

func (s *SQLiteStore) SaveCredentials(ctx context.Context, c *model.Credentials) error {
	s.logger.Debug("sql", "op", "upsert", "table", "credentials", "id", c.ID)

	var identityJSON *string
	if c.Identity != nil {
		data, err := json.Marshal(c.Identity)
		if err != nil {
			return fmt.Errorf("marshal identity: %w", err)
		}
		str := string(data)
		identityJSON = &str
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO credentials (id, token, identity, token_exp, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Token, identityJSON,
		tokenExpUnix(c.TokenExp),
		c.CreatedAt.Unix(), c.ExpiresAt.Unix(),
	)
	return err
}

func (s *SQLiteStore) LoadCredentials(ctx context.Context, id string) (*model.Credentials, error) {
	s.logger.Debug("sql", "op", "select", "table", "credentials", "id", id)

	var c model.Credentials
	var identityJSON *string
	var tokenExp, createdAt, expiresAt int64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, token, identity, token_exp, created_at, expires_at
		 FROM credentials WHERE id = ?`, id,
	).Scan(&c.ID, &c.Token, &identityJSON, &tokenExp, &createdAt, &expiresAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if tokenExp > 0 {
		c.TokenExp = time.Unix(tokenExp, 0)
	}
	c.CreatedAt = time.Unix(createdAt, 0)
	c.ExpiresAt = time.Unix(expiresAt, 0)

	// Expired records are treated as never saved.
	if c.IsExpired() || c.IsTokenExpired() {
		_ = s.ClearCredentials(ctx, id)
		return nil, nil
	}

	if identityJSON != nil {
		var ident model.Identity
		if err := json.Unmarshal([]byte(*identityJSON), &ident); err != nil {
			// Unparseable cached identity is treated as absent.
			s.logger.Warn("corrupt cached identity dropped", "id", id)
		} else {
			c.Identity = &ident
		}
	}

	return &c, nil
}

func (s *SQLiteStore) ClearCredentials(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "credentials", "id", id)

	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) ListCredentials(ctx context.Context) ([]*model.Credentials, error) {
	s.logger.Debug("sql", "op", "select_all", "table", "credentials")

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, token, identity, token_exp, created_at, expires_at
		 FROM credentials WHERE expires_at >= ? ORDER BY created_at DESC`,
		time.Now().Unix(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*model.Credentials
	for rows.Next() {
		var c model.Credentials
		var identityJSON *string
		var tokenExp, createdAt, expiresAt int64

		if err := rows.Scan(&c.ID, &c.Token, &identityJSON, &tokenExp, &createdAt, &expiresAt); err != nil {
			return nil, err
		}

		if tokenExp > 0 {
			c.TokenExp = time.Unix(tokenExp, 0)
		}
		c.CreatedAt = time.Unix(createdAt, 0)
		c.ExpiresAt = time.Unix(expiresAt, 0)

		if identityJSON != nil {
			var ident model.Identity
			if err := json.Unmarshal([]byte(*identityJSON), &ident); err == nil {
				c.Identity = &ident
			}
		}

		records = append(records, &c)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) PurgeExpired(ctx context.Context) (int64, error) {
	s.logger.Debug("sql", "op", "purge_expired", "table", "credentials")

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM credentials WHERE expires_at < ?`, time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// tokenExpUnix encodes a token expiry, storing 0 for the zero time.
func tokenExpUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
