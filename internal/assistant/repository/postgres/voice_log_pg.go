package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/treloarai/callscreen/internal/assistant/domain"
	screeningpg "github.com/treloarai/callscreen/internal/screening/repository/postgres"
)

// PgVoiceLogRepository is the durable backing for the voice command log.
type PgVoiceLogRepository struct {
	db     screeningpg.PgxIface
	logger *slog.Logger
}

func NewPgVoiceLogRepository(db screeningpg.PgxIface, logger *slog.Logger) *PgVoiceLogRepository {
	return &PgVoiceLogRepository{db: db, logger: logger.With("component", "voice_log_repository_pg")}
}

func (r *PgVoiceLogRepository) Create(ctx context.Context, entry *domain.VoiceCommandEntry) error {
	query := `
		INSERT INTO voice_commands (transcript, action, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := r.db.QueryRow(ctx, query, entry.Transcript, entry.Action, entry.CreatedAt).Scan(&entry.ID); err != nil {
		r.logger.ErrorContext(ctx, "Error logging voice command", "error", err)
		return err
	}
	return nil
}

func (r *PgVoiceLogRepository) List(ctx context.Context, limit int) ([]*domain.VoiceCommandEntry, error) {
	query := `
		SELECT id, transcript, action, created_at
		FROM voice_commands
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error listing voice commands", "error", err)
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.VoiceCommandEntry
	for rows.Next() {
		e := &domain.VoiceCommandEntry{}
		if err := rows.Scan(&e.ID, &e.Transcript, &e.Action, &e.CreatedAt); err != nil {
			r.logger.ErrorContext(ctx, "Error scanning voice command row", "error", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating voice command rows", "error", err)
		return nil, err
	}
	return entries, nil
}

// CountOnDay counts entries on the server-local calendar day of day.
// The day boundary is computed in Go so demo and durable backings agree on
// what "today" means.
func (r *PgVoiceLogRepository) CountOnDay(ctx context.Context, day time.Time) (int, error) {
	local := day.Local()
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
	end := start.Add(24 * time.Hour)

	query := `SELECT COUNT(*) FROM voice_commands WHERE created_at >= $1 AND created_at < $2`
	var count int
	if err := r.db.QueryRow(ctx, query, start.UTC(), end.UTC()).Scan(&count); err != nil {
		r.logger.ErrorContext(ctx, "Error counting voice commands", "error", err)
		return 0, err
	}
	return count, nil
}
