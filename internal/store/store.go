package store

import (
	"context"

	"github.com/kracgan/student-management-frontend/pkg/model"
)

// Store is the durable credential store: it persists the backend token and
// the optionally cached identity for each browser session.
type Store interface {
	// SaveCredentials persists the record, replacing any existing record
	// with the same ID.
	SaveCredentials(ctx context.Context, c *model.Credentials) error
	// LoadCredentials returns the record for the given ID, or nil if it was
	// never saved, was cleared, or has expired. A corrupted cached identity
	// is returned as absent rather than as an error.
	LoadCredentials(ctx context.Context, id string) (*model.Credentials, error)
	// ClearCredentials removes the record. Clearing an absent record is a
	// no-op success.
	ClearCredentials(ctx context.Context, id string) error
	// ListCredentials returns all live records, newest first.
	ListCredentials(ctx context.Context) ([]*model.Credentials, error)
	// PurgeExpired removes all expired records and reports how many.
	PurgeExpired(ctx context.Context) (int64, error)

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
