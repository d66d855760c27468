package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UsageType classifies a metered assistant action.
type UsageType string

const (
	UsageTypeAIChat        UsageType = "ai_chat"
	UsageTypeVoiceCommand  UsageType = "voice_command"
	UsageTypeCallScreening UsageType = "call_screening"
)

// Rates is the fixed per-unit price table. There is no real invoicing behind
// it; cost is computed at record time as amount x rate and never re-derived.
var Rates = map[UsageType]decimal.Decimal{
	UsageTypeAIChat:        decimal.NewFromFloat(0.05),
	UsageTypeVoiceCommand:  decimal.NewFromFloat(0.10),
	UsageTypeCallScreening: decimal.NewFromFloat(0.02),
}

// RateFor returns the per-unit rate for a usage type, zero for unknown types.
func RateFor(usageType UsageType) decimal.Decimal {
	if rate, ok := Rates[usageType]; ok {
		return rate
	}
	return decimal.Zero
}

// UsageRecord is an append-only mock billing row.
type UsageRecord struct {
	ID         uuid.UUID       `json:"id"`
	UserID     string          `json:"user_id"`
	UsageType  UsageType       `json:"usage_type"`
	Amount     decimal.Decimal `json:"amount"`
	Cost       decimal.Decimal `json:"cost"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// NewUsageRecord creates a usage record with cost computed from the fixed
// rate table and a server-assigned timestamp.
func NewUsageRecord(userID string, usageType UsageType, amount decimal.Decimal) *UsageRecord {
	return &UsageRecord{
		ID:         uuid.New(),
		UserID:     userID,
		UsageType:  usageType,
		Amount:     amount,
		Cost:       amount.Mul(RateFor(usageType)),
		RecordedAt: time.Now().UTC(),
	}
}

// TypeSummary aggregates one usage type within a billing period.
type TypeSummary struct {
	Units decimal.Decimal `json:"units"`
	Cost  decimal.Decimal `json:"cost"`
}

// Summary is the per-type monthly rollup returned by the billing endpoint.
type Summary struct {
	Period    string                    `json:"period"` // YYYY-MM, server-local
	ByType    map[UsageType]TypeSummary `json:"by_type"`
	TotalCost decimal.Decimal           `json:"total_cost"`
}

// UsageRepository manages the append-only usage log.
type UsageRepository interface {
	Create(ctx context.Context, record *UsageRecord) error
	List(ctx context.Context) ([]*UsageRecord, error)
	// ListInRange returns records with RecordedAt in [from, to), newest first.
	ListInRange(ctx context.Context, from, to time.Time) ([]*UsageRecord, error)
}
