package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/treloarai/callscreen/internal/billing/domain"
	screeningpg "github.com/treloarai/callscreen/internal/screening/repository/postgres"
)

// PgUsageRepository is the durable backing for usage records.
type PgUsageRepository struct {
	db     screeningpg.PgxIface
	logger *slog.Logger
}

func NewPgUsageRepository(db screeningpg.PgxIface, logger *slog.Logger) *PgUsageRepository {
	return &PgUsageRepository{db: db, logger: logger.With("component", "usage_repository_pg")}
}

func (r *PgUsageRepository) Create(ctx context.Context, record *domain.UsageRecord) error {
	query := `
		INSERT INTO usage_records (id, user_id, usage_type, amount, cost, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		record.ID, record.UserID, string(record.UsageType),
		record.Amount, record.Cost, record.RecordedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error inserting usage record", "error", err, "usage_type", record.UsageType)
		return err
	}
	return nil
}

func (r *PgUsageRepository) List(ctx context.Context) ([]*domain.UsageRecord, error) {
	query := `
		SELECT id, user_id, usage_type, amount, cost, recorded_at
		FROM usage_records
		ORDER BY recorded_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error listing usage records", "error", err)
		return nil, err
	}
	defer rows.Close()
	return r.scanRows(rows)
}

func (r *PgUsageRepository) ListInRange(ctx context.Context, from, to time.Time) ([]*domain.UsageRecord, error) {
	query := `
		SELECT id, user_id, usage_type, amount, cost, recorded_at
		FROM usage_records
		WHERE recorded_at >= $1 AND recorded_at < $2
		ORDER BY recorded_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error listing usage records in range", "error", err)
		return nil, err
	}
	defer rows.Close()
	return r.scanRows(rows)
}

func (r *PgUsageRepository) scanRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*domain.UsageRecord, error) {
	var records []*domain.UsageRecord
	for rows.Next() {
		var (
			rec       domain.UsageRecord
			usageType string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &usageType, &rec.Amount, &rec.Cost, &rec.RecordedAt); err != nil {
			r.logger.Error("Error scanning usage record row", "error", err)
			return nil, err
		}
		rec.UsageType = domain.UsageType(usageType)
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating usage record rows", "error", err)
		return nil, err
	}
	return records, nil
}
