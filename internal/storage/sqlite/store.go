package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	apperrors "github.com/julianstephens/hourlog/internal/errors"
	"github.com/julianstephens/hourlog/internal/logger"
	"github.com/julianstephens/hourlog/internal/migration"
	"github.com/julianstephens/hourlog/migrations"
)

// Store keeps entries in a single SQLite file.
type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// Init creates the database file and applies pending migrations. It is safe
// to call on an existing database.
func (s *Store) Init(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, "create data directory", err)
	}

	if err := s.open(ctx); err != nil {
		return err
	}

	runner, err := s.runner()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, "load migrations", err)
	}
	applied, err := runner.Apply(ctx, func(msg string) {
		logger.Info(msg, "db", s.path)
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, "run migrations", err)
	}
	if applied > 0 {
		logger.Info("database schema updated", "db", s.path, "migrations", applied)
	}
	return nil
}

// Load opens an initialized database and checks its schema version.
func (s *Store) Load(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, "load store",
			fmt.Errorf("storage not initialized at %s, run 'hourlog init' first", s.path))
	}

	if err := s.open(ctx); err != nil {
		return err
	}

	runner, err := s.runner()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, "load migrations", err)
	}
	if err := runner.ValidateVersion(ctx); err != nil {
		s.Close()
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, "validate schema", err)
	}
	return nil
}

func (s *Store) open(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, "open database", err)
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, "open database", err)
	}
	s.db = db
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

// SchemaVersion reports the applied and the newest known schema versions.
func (s *Store) SchemaVersion(ctx context.Context) (current, latest int, err error) {
	if s.db == nil {
		return 0, 0, apperrors.New(apperrors.ErrStorageUnavailable, "schema version")
	}
	runner, err := s.runner()
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.CurrentVersion(ctx); err != nil {
		return 0, 0, err
	}
	if latest, err = runner.LatestVersion(); err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) Path() string {
	return s.path
}

// DB returns the underlying connection, nil until Init or Load succeeds.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) conn(op string) (*sql.DB, error) {
	if s.db == nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, op, fmt.Errorf("storage not loaded"))
	}
	return s.db, nil
}
