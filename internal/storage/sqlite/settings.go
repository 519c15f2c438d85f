package sqlite

import (
	"context"

	apperrors "github.com/julianstephens/hourlog/internal/errors"
	"github.com/julianstephens/hourlog/internal/models"
)

func (s *Store) GetSettings(ctx context.Context) (models.Settings, error) {
	db, err := s.conn("get settings")
	if err != nil {
		return models.Settings{}, err
	}

	rows, err := db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, apperrors.Wrap(apperrors.ErrStorageUnavailable, "get settings", err)
	}
	defer rows.Close()

	var settings models.Settings
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, apperrors.Wrap(apperrors.ErrStorageUnavailable, "get settings", err)
		}
		switch key {
		case "timezone":
			settings.Timezone = value
		}
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, apperrors.Wrap(apperrors.ErrStorageUnavailable, "get settings", err)
	}
	return settings, nil
}

func (s *Store) SaveSettings(ctx context.Context, settings models.Settings) error {
	db, err := s.conn("save settings")
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx,
		"INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", "timezone", settings.Timezone,
	); err != nil {
		return apperrors.Wrap(apperrors.ErrWriteFailed, "save settings", err)
	}
	return nil
}
