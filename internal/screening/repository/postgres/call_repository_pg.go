package postgres

import (
	"context"
	"log/slog"

	"github.com/treloarai/callscreen/internal/screening/domain"
)

// PgCallRepository is the durable backing for the append-only call history.
type PgCallRepository struct {
	db     PgxIface
	logger *slog.Logger
}

func NewPgCallRepository(db PgxIface, logger *slog.Logger) *PgCallRepository {
	return &PgCallRepository{db: db, logger: logger.With("component", "call_repository_pg")}
}

func (r *PgCallRepository) Create(ctx context.Context, call *domain.CallRecord) error {
	query := `
		INSERT INTO call_records (phone_number, caller_name, call_type, duration, urgency_level, status, ai_action, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		call.PhoneNumber, call.CallerName, call.CallType, call.Duration,
		call.UrgencyLevel, call.Status, call.AIAction, call.Timestamp,
	).Scan(&call.ID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error recording call", "error", err, "phone_number", call.PhoneNumber)
		return err
	}
	return nil
}

func (r *PgCallRepository) List(ctx context.Context, limit int) ([]*domain.CallRecord, error) {
	query := `
		SELECT id, phone_number, caller_name, call_type, duration, urgency_level, status, ai_action, recorded_at
		FROM call_records
		ORDER BY recorded_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error listing call records", "error", err)
		return nil, err
	}
	defer rows.Close()
	return scanCallRows(rows, r.logger)
}

func (r *PgCallRepository) ListAll(ctx context.Context) ([]*domain.CallRecord, error) {
	query := `
		SELECT id, phone_number, caller_name, call_type, duration, urgency_level, status, ai_action, recorded_at
		FROM call_records
		ORDER BY recorded_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error listing all call records", "error", err)
		return nil, err
	}
	defer rows.Close()
	return scanCallRows(rows, r.logger)
}

func scanCallRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}, logger *slog.Logger) ([]*domain.CallRecord, error) {
	var calls []*domain.CallRecord
	for rows.Next() {
		call := &domain.CallRecord{}
		if err := rows.Scan(
			&call.ID, &call.PhoneNumber, &call.CallerName, &call.CallType, &call.Duration,
			&call.UrgencyLevel, &call.Status, &call.AIAction, &call.Timestamp,
		); err != nil {
			logger.Error("Error scanning call record row", "error", err)
			return nil, err
		}
		calls = append(calls, call)
	}
	if err := rows.Err(); err != nil {
		logger.Error("Error iterating call record rows", "error", err)
		return nil, err
	}
	return calls, nil
}
