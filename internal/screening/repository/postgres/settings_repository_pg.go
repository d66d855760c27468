package postgres

import (
	"context"
	"log/slog"

	"github.com/treloarai/callscreen/internal/screening/domain"
)

// PgSettingsRepository stores the settings map as key-value rows.
type PgSettingsRepository struct {
	db     PgxIface
	logger *slog.Logger
}

func NewPgSettingsRepository(db PgxIface, logger *slog.Logger) *PgSettingsRepository {
	return &PgSettingsRepository{db: db, logger: logger.With("component", "settings_repository_pg")}
}

func (r *PgSettingsRepository) GetAll(ctx context.Context) (domain.Settings, error) {
	query := `SELECT key, value FROM settings`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error reading settings", "error", err)
		return nil, err
	}
	defer rows.Close()

	// Stored rows overlay the defaults, so a fresh database still serves the
	// full settings map and partial updates leave unseen keys at their
	// default values.
	settings := domain.DefaultSettings()
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			r.logger.ErrorContext(ctx, "Error scanning settings row", "error", err)
			return nil, err
		}
		settings[key] = value
	}
	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating settings rows", "error", err)
		return nil, err
	}
	return settings, nil
}

// Merge upserts each given key, leaving other keys untouched.
func (r *PgSettingsRepository) Merge(ctx context.Context, partial domain.Settings) error {
	query := `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	for key, value := range partial {
		if _, err := r.db.Exec(ctx, query, key, value); err != nil {
			r.logger.ErrorContext(ctx, "Error upserting setting", "error", err, "key", key)
			return err
		}
	}
	return nil
}
