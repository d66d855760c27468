package postgres

import (
	"context"
	"log/slog"

	"github.com/treloarai/callscreen/internal/screening/domain"
)

// PgBlockedRepository is the durable backing for blocked numbers.
type PgBlockedRepository struct {
	db     PgxIface
	logger *slog.Logger
}

func NewPgBlockedRepository(db PgxIface, logger *slog.Logger) *PgBlockedRepository {
	return &PgBlockedRepository{db: db, logger: logger.With("component", "blocked_repository_pg")}
}

func (r *PgBlockedRepository) Create(ctx context.Context, bn *domain.BlockedNumber) error {
	query := `
		INSERT INTO blocked_numbers (phone_number, reason, attempts, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, bn.PhoneNumber, bn.Reason, bn.Attempts, bn.CreatedAt).Scan(&bn.ID)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.WarnContext(ctx, "Number already blocked", "phone_number", bn.PhoneNumber)
			return domain.ErrDuplicateEntry
		}
		r.logger.ErrorContext(ctx, "Error blocking number", "error", err, "phone_number", bn.PhoneNumber)
		return err
	}
	return nil
}

func (r *PgBlockedRepository) List(ctx context.Context) ([]*domain.BlockedNumber, error) {
	query := `
		SELECT id, phone_number, reason, attempts, created_at
		FROM blocked_numbers
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error listing blocked numbers", "error", err)
		return nil, err
	}
	defer rows.Close()

	var blocked []*domain.BlockedNumber
	for rows.Next() {
		bn := &domain.BlockedNumber{}
		if err := rows.Scan(&bn.ID, &bn.PhoneNumber, &bn.Reason, &bn.Attempts, &bn.CreatedAt); err != nil {
			r.logger.ErrorContext(ctx, "Error scanning blocked number row", "error", err)
			return nil, err
		}
		blocked = append(blocked, bn)
	}
	if err := rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating blocked number rows", "error", err)
		return nil, err
	}
	return blocked, nil
}

func (r *PgBlockedRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM blocked_numbers WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.logger.ErrorContext(ctx, "Error unblocking number", "error", err, "blocked_id", id)
		return err
	}
	return nil
}
