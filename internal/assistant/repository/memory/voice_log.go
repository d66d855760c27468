package memory

import (
	"context"
	"sync"
	"time"

	"github.com/treloarai/callscreen/internal/assistant/domain"
	screening "github.com/treloarai/callscreen/internal/screening/domain"
)

// VoiceLogStore is the demo-mode voice command log: process-local, reset on
// restart, starts empty.
type VoiceLogStore struct {
	mu      sync.Mutex
	entries []*domain.VoiceCommandEntry
	nextID  int64
}

func NewVoiceLogStore() *VoiceLogStore {
	return &VoiceLogStore{nextID: 1}
}

func (s *VoiceLogStore) Create(ctx context.Context, entry *domain.VoiceCommandEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry.ID = s.nextID
	s.nextID++
	s.entries = append(s.entries, entry)
	return nil
}

func (s *VoiceLogStore) List(ctx context.Context, limit int) ([]*domain.VoiceCommandEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Entries are appended in creation order; walk backwards for newest first.
	var out []*domain.VoiceCommandEntry
	for i := len(s.entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, s.entries[i])
	}
	return out, nil
}

func (s *VoiceLogStore) CountOnDay(ctx context.Context, day time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, e := range s.entries {
		if screening.SameLocalDay(e.CreatedAt, day) {
			count++
		}
	}
	return count, nil
}
