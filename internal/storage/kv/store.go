// Package kv is a key-value storage backend on top of diskv. Every entry is
// a JSON document in its own file, which keeps the data greppable and easy to
// hand-repair.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	apperrors "github.com/julianstephens/hourlog/internal/errors"
	"github.com/julianstephens/hourlog/internal/logger"
	"github.com/julianstephens/hourlog/internal/models"
)

const (
	// SchemaVersion is the record layout this package writes.
	SchemaVersion = 1

	entryCollection = "entries"
	keySchema       = "meta-schema"
	keyNextID       = "meta-nextid"
	keySettings     = "meta-settings"
)

type Store struct {
	path string
	d    *diskv.Diskv
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) open() {
	if s.d != nil {
		return
	}
	s.d = diskv.New(diskv.Options{
		BasePath:          s.path,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})
}

// Init creates the data directory and writes the schema marker. Existing
// data is left untouched.
func (s *Store) Init(ctx context.Context) error {
	if err := os.MkdirAll(s.path, 0700); err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, "create data directory", err)
	}
	s.open()

	if s.d.Has(keySchema) {
		return s.checkSchema()
	}
	if err := s.d.Write(keySchema, []byte(strconv.Itoa(SchemaVersion))); err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, "write schema marker", err)
	}
	if !s.d.Has(keySettings) {
		if err := s.SaveSettings(ctx, models.Settings{Timezone: "Local"}); err != nil {
			return err
		}
	}
	logger.Info("initialized key-value store", "path", s.path)
	return nil
}

func (s *Store) Load(ctx context.Context) error {
	info, err := os.Stat(s.path)
	if err != nil || !info.IsDir() {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, "load store",
			fmt.Errorf("storage not initialized at %s, run 'hourlog init' first", s.path))
	}
	s.open()

	if !s.d.Has(keySchema) {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, "load store",
			fmt.Errorf("%s is not an hourlog data directory", s.path))
	}
	return s.checkSchema()
}

func (s *Store) checkSchema() error {
	raw, err := s.d.Read(keySchema)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, "read schema marker", err)
	}
	version, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, "read schema marker", err)
	}
	if version > SchemaVersion {
		return apperrors.Wrap(apperrors.ErrStorageUnavailable, "validate schema",
			fmt.Errorf("data directory schema version (%d) is newer than supported (%d), please upgrade hourlog", version, SchemaVersion))
	}
	return nil
}

func (s *Store) Close() error {
	s.d = nil
	return nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) store(op string) (*diskv.Diskv, error) {
	if s.d == nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, op, fmt.Errorf("storage not loaded"))
	}
	return s.d, nil
}

func (s *Store) ListAll(ctx context.Context) ([]models.Entry, error) {
	d, err := s.store("list entries")
	if err != nil {
		return nil, err
	}

	var keys []string
	for key := range d.KeysPrefix(entryCollection+"-", ctx.Done()) {
		keys = append(keys, key)
	}
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, "list entries", err)
	}
	sort.Strings(keys)

	entries := make([]models.Entry, 0, len(keys))
	for _, key := range keys {
		e, err := readEntry(d, key)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, "list entries", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *Store) Get(ctx context.Context, id int64) (models.Entry, error) {
	d, err := s.store("get entry")
	if err != nil {
		return models.Entry{}, err
	}

	key := entryKey(id)
	if !d.Has(key) {
		return models.Entry{}, apperrors.Wrap(apperrors.ErrNotFound, "get entry", fmt.Errorf("id %d", id))
	}
	e, err := readEntry(d, key)
	if err != nil {
		return models.Entry{}, apperrors.Wrap(apperrors.ErrStorageUnavailable, "get entry", err)
	}
	return e, nil
}

func (s *Store) Insert(ctx context.Context, draft models.Draft) (int64, error) {
	d, err := s.store("insert entry")
	if err != nil {
		return 0, err
	}

	id, err := nextID(d)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrWriteFailed, "insert entry", err)
	}
	if err := writeEntry(d, draft.WithID(id)); err != nil {
		return 0, apperrors.Wrap(apperrors.ErrWriteFailed, "insert entry", err)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, entry models.Entry) error {
	d, err := s.store("update entry")
	if err != nil {
		return err
	}

	if !d.Has(entryKey(entry.ID)) {
		return apperrors.Wrap(apperrors.ErrNotFound, "update entry", fmt.Errorf("id %d", entry.ID))
	}
	if err := writeEntry(d, entry); err != nil {
		return apperrors.Wrap(apperrors.ErrWriteFailed, "update entry", err)
	}
	return nil
}

// UpdateBatch writes every entry or none of them. diskv has no transactions,
// so records already rewritten are restored from their previous contents when
// a later write fails.
func (s *Store) UpdateBatch(ctx context.Context, entries []models.Entry) error {
	d, err := s.store("update entries")
	if err != nil {
		return err
	}

	previous := make([][]byte, len(entries))
	for i, e := range entries {
		key := entryKey(e.ID)
		if !d.Has(key) {
			return apperrors.Wrap(apperrors.ErrNotFound, "update entries", fmt.Errorf("id %d", e.ID))
		}
		raw, err := d.Read(key)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrWriteFailed, "update entries", err)
		}
		previous[i] = raw
	}

	for i, e := range entries {
		if err := writeEntry(d, e); err != nil {
			for j := i - 1; j >= 0; j-- {
				if rerr := d.Write(entryKey(entries[j].ID), previous[j]); rerr != nil {
					logger.Error("failed to restore entry after batch failure", "id", entries[j].ID, "error", rerr)
				}
			}
			return apperrors.Wrap(apperrors.ErrWriteFailed, "update entries", err)
		}
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	d, err := s.store("delete entry")
	if err != nil {
		return err
	}

	key := entryKey(id)
	if !d.Has(key) {
		return nil
	}
	if err := d.Erase(key); err != nil {
		return apperrors.Wrap(apperrors.ErrWriteFailed, "delete entry", err)
	}
	return nil
}

func (s *Store) GetSettings(ctx context.Context) (models.Settings, error) {
	d, err := s.store("get settings")
	if err != nil {
		return models.Settings{}, err
	}

	var settings models.Settings
	if !d.Has(keySettings) {
		return settings, nil
	}
	raw, err := d.Read(keySettings)
	if err != nil {
		return models.Settings{}, apperrors.Wrap(apperrors.ErrStorageUnavailable, "get settings", err)
	}
	if err := json.Unmarshal(raw, &settings); err != nil {
		return models.Settings{}, apperrors.Wrap(apperrors.ErrStorageUnavailable, "get settings", err)
	}
	return settings, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings models.Settings) error {
	d, err := s.store("save settings")
	if err != nil {
		return err
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrWriteFailed, "save settings", err)
	}
	if err := d.Write(keySettings, raw); err != nil {
		return apperrors.Wrap(apperrors.ErrWriteFailed, "save settings", err)
	}
	return nil
}

// nextID bumps the persisted counter before the id is handed out, so an id
// is never reused even when the entry write that follows fails.
func nextID(d *diskv.Diskv) (int64, error) {
	var last int64
	if d.Has(keyNextID) {
		raw, err := d.Read(keyNextID)
		if err != nil {
			return 0, err
		}
		last, err = strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("corrupt id counter: %w", err)
		}
	}
	id := last + 1
	if err := d.Write(keyNextID, []byte(strconv.FormatInt(id, 10))); err != nil {
		return 0, err
	}
	return id, nil
}

func readEntry(d *diskv.Diskv, key string) (models.Entry, error) {
	raw, err := d.Read(key)
	if err != nil {
		return models.Entry{}, err
	}
	var e models.Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return models.Entry{}, fmt.Errorf("%s: %w", key, err)
	}
	return e, nil
}

func writeEntry(d *diskv.Diskv, e models.Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return d.Write(entryKey(e.ID), raw)
}

func entryKey(id int64) string {
	return fmt.Sprintf("%s-%020d", entryCollection, id)
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
