package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/treloarai/callscreen/internal/billing/domain"
)

// DemoUserID is the user all usage is attributed to; the demo deployment has
// a single account.
const DemoUserID = "demo-user"

// BillingService records metered assistant usage and produces the monthly
// mock summary.
type BillingService struct {
	usageRepo domain.UsageRepository
	logger    *slog.Logger
}

func NewBillingService(usageRepo domain.UsageRepository, logger *slog.Logger) *BillingService {
	return &BillingService{usageRepo: usageRepo, logger: logger}
}

// RecordUsage appends a usage record for units of the given type. It
// satisfies the assistant's UsageRecorder interface.
func (s *BillingService) RecordUsage(ctx context.Context, usageType string, units int) error {
	record := domain.NewUsageRecord(DemoUserID, domain.UsageType(usageType), decimal.NewFromInt(int64(units)))
	if err := s.usageRepo.Create(ctx, record); err != nil {
		s.logger.ErrorContext(ctx, "Failed to record usage", "usage_type", usageType, "error", err)
		return err
	}
	s.logger.DebugContext(ctx, "Usage recorded", "usage_type", usageType, "units", units, "cost", record.Cost.String())
	return nil
}

// ListUsage returns all usage records, newest first.
func (s *BillingService) ListUsage(ctx context.Context) ([]*domain.UsageRecord, error) {
	return s.usageRepo.List(ctx)
}

// MonthlySummary sums usage per type for the current server-local calendar
// month.
func (s *BillingService) MonthlySummary(ctx context.Context) (*domain.Summary, error) {
	now := time.Now().Local()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)

	records, err := s.usageRepo.ListInRange(ctx, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}

	summary := &domain.Summary{
		Period:    from.Format("2006-01"),
		ByType:    make(map[domain.UsageType]domain.TypeSummary),
		TotalCost: decimal.Zero,
	}
	for _, record := range records {
		entry := summary.ByType[record.UsageType]
		entry.Units = entry.Units.Add(record.Amount)
		entry.Cost = entry.Cost.Add(record.Cost)
		summary.ByType[record.UsageType] = entry
		summary.TotalCost = summary.TotalCost.Add(record.Cost)
	}
	return summary, nil
}
