package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/hourlog/internal/constants"
	apperrors "github.com/julianstephens/hourlog/internal/errors"
	"github.com/julianstephens/hourlog/internal/models"
)

const entryColumns = `id, activity, hours, timestamp, description, sort_order`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.Entry, error) {
	var e models.Entry
	var ts string
	var sortOrder sql.NullInt64

	if err := row.Scan(&e.ID, &e.Activity, &e.Hours, &ts, &e.Description, &sortOrder); err != nil {
		return models.Entry{}, err
	}

	parsed, err := time.Parse(constants.TimestampFormat, ts)
	if err != nil {
		return models.Entry{}, fmt.Errorf("entry %d has invalid timestamp %q: %w", e.ID, ts, err)
	}
	e.Timestamp = parsed

	if sortOrder.Valid {
		e.SortOrder = models.Int64Ptr(sortOrder.Int64)
	}
	return e, nil
}

func nullSortOrder(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(constants.TimestampFormat)
}

func (s *Store) ListAll(ctx context.Context) ([]models.Entry, error) {
	db, err := s.conn("list entries")
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT `+entryColumns+` FROM entries`)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, "list entries", err)
	}
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, "list entries", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, "list entries", err)
	}
	return entries, nil
}

func (s *Store) Get(ctx context.Context, id int64) (models.Entry, error) {
	db, err := s.conn("get entry")
	if err != nil {
		return models.Entry{}, err
	}

	e, err := scanEntry(db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Entry{}, apperrors.Wrap(apperrors.ErrNotFound, "get entry", fmt.Errorf("id %d", id))
	}
	if err != nil {
		return models.Entry{}, apperrors.Wrap(apperrors.ErrStorageUnavailable, "get entry", err)
	}
	return e, nil
}

func (s *Store) Insert(ctx context.Context, draft models.Draft) (int64, error) {
	db, err := s.conn("insert entry")
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx,
		`INSERT INTO entries (activity, hours, timestamp, description, sort_order) VALUES (?, ?, ?, ?, ?)`,
		draft.Activity, draft.Hours, formatTimestamp(draft.Timestamp), draft.Description, nullSortOrder(draft.SortOrder),
	)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrWriteFailed, "insert entry", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrWriteFailed, "insert entry", err)
	}
	return id, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func updateEntry(ctx context.Context, db execer, e models.Entry) error {
	res, err := db.ExecContext(ctx,
		`UPDATE entries SET activity = ?, hours = ?, timestamp = ?, description = ?, sort_order = ? WHERE id = ?`,
		e.Activity, e.Hours, formatTimestamp(e.Timestamp), e.Description, nullSortOrder(e.SortOrder), e.ID,
	)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrWriteFailed, "update entry", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrWriteFailed, "update entry", err)
	}
	if n == 0 {
		return apperrors.Wrap(apperrors.ErrNotFound, "update entry", fmt.Errorf("id %d", e.ID))
	}
	return nil
}

func (s *Store) Update(ctx context.Context, entry models.Entry) error {
	db, err := s.conn("update entry")
	if err != nil {
		return err
	}
	return updateEntry(ctx, db, entry)
}

func (s *Store) UpdateBatch(ctx context.Context, entries []models.Entry) error {
	db, err := s.conn("update entries")
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrWriteFailed, "update entries", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		if err := updateEntry(ctx, tx, e); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Wrap(apperrors.ErrWriteFailed, "update entries", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	db, err := s.conn("delete entry")
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id); err != nil {
		return apperrors.Wrap(apperrors.ErrWriteFailed, "delete entry", err)
	}
	return nil
}
