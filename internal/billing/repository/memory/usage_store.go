package memory

import (
	"context"
	"sync"
	"time"

	"github.com/treloarai/callscreen/internal/billing/domain"
)

// UsageStore is the demo-mode usage log: process-local, starts empty.
type UsageStore struct {
	mu      sync.Mutex
	records []*domain.UsageRecord
}

func NewUsageStore() *UsageStore {
	return &UsageStore{}
}

func (s *UsageStore) Create(ctx context.Context, record *domain.UsageRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *UsageStore) List(ctx context.Context) ([]*domain.UsageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.UsageRecord, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}

func (s *UsageStore) ListInRange(ctx context.Context, from, to time.Time) ([]*domain.UsageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.UsageRecord
	for i := len(s.records) - 1; i >= 0; i-- {
		r := s.records[i]
		if !r.RecordedAt.Before(from) && r.RecordedAt.Before(to) {
			out = append(out, r)
		}
	}
	return out, nil
}
