package storage

import (
	"context"

	"github.com/julianstephens/hourlog/internal/models"
)

// Provider is the persistence contract for time entries.
//
// Implementations return errors matching the kinds in internal/errors:
// ErrStorageUnavailable from Init and Load, ErrWriteFailed for any failed
// write, ErrNotFound from Get and Update when the id is absent. Deleting an
// absent id succeeds. ListAll makes no ordering promise.
type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error

	// Entries
	ListAll(ctx context.Context) ([]models.Entry, error)
	Get(ctx context.Context, id int64) (models.Entry, error)
	Insert(ctx context.Context, draft models.Draft) (int64, error)
	Update(ctx context.Context, entry models.Entry) error
	// UpdateBatch replaces every given entry or none of them.
	UpdateBatch(ctx context.Context, entries []models.Entry) error
	Delete(ctx context.Context, id int64) error

	// Settings
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error

	// Utils
	Path() string
}
