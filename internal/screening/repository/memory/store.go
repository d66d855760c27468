// Package memory holds the demo-mode storage backing: process-local,
// mutex-guarded collections seeded with demo data and reset on restart.
// It implements the same repository contracts as the postgres package so the
// transport layer never knows which backing is live.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/treloarai/callscreen/internal/screening/domain"
)

// ContactStore is an in-memory ContactRepository.
type ContactStore struct {
	mu       sync.Mutex
	contacts []*domain.Contact
	nextID   int64
}

// NewContactStore returns a ContactStore seeded with the demo contacts.
func NewContactStore() *ContactStore {
	now := time.Now().UTC()
	return &ContactStore{
		contacts: []*domain.Contact{
			{ID: 1, PhoneNumber: "+1234567890", ContactName: "Emergency Contact", Relationship: "Family", CreatedAt: now},
			{ID: 2, PhoneNumber: "+1987654321", ContactName: "Dr. Smith", Relationship: "Doctor", CreatedAt: now},
			{ID: 3, PhoneNumber: "+1555123456", ContactName: "Work Assistant", Relationship: "Professional", CreatedAt: now},
		},
		nextID: 4,
	}
}

func (s *ContactStore) Create(ctx context.Context, contact *domain.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	contact.ID = s.nextID
	s.nextID++
	s.contacts = append(s.contacts, contact)
	return nil
}

func (s *ContactStore) List(ctx context.Context) ([]*domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Contact, len(s.contacts))
	copy(out, s.contacts)
	sortByTimeDesc(out, func(c *domain.Contact) time.Time { return c.CreatedAt }, func(c *domain.Contact) int64 { return c.ID })
	return out, nil
}

func (s *ContactStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.contacts[:0]
	for _, c := range s.contacts {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.contacts = kept
	return nil
}

// BlockedStore is an in-memory BlockedNumberRepository.
type BlockedStore struct {
	mu      sync.Mutex
	blocked []*domain.BlockedNumber
	nextID  int64
}

// NewBlockedStore returns a BlockedStore seeded with the demo blocked numbers.
func NewBlockedStore() *BlockedStore {
	now := time.Now().UTC()
	return &BlockedStore{
		blocked: []*domain.BlockedNumber{
			{ID: 1, PhoneNumber: "+1800SPAM99", Reason: "Telemarketer", Attempts: 5, CreatedAt: now},
			{ID: 2, PhoneNumber: "+1999ROBO00", Reason: "Robocall", Attempts: 3, CreatedAt: now},
		},
		nextID: 3,
	}
}

func (s *BlockedStore) Create(ctx context.Context, blocked *domain.BlockedNumber) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	blocked.ID = s.nextID
	s.nextID++
	s.blocked = append(s.blocked, blocked)
	return nil
}

func (s *BlockedStore) List(ctx context.Context) ([]*domain.BlockedNumber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.BlockedNumber, len(s.blocked))
	copy(out, s.blocked)
	sortByTimeDesc(out, func(b *domain.BlockedNumber) time.Time { return b.CreatedAt }, func(b *domain.BlockedNumber) int64 { return b.ID })
	return out, nil
}

func (s *BlockedStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.blocked[:0]
	for _, b := range s.blocked {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.blocked = kept
	return nil
}

// CallStore is an in-memory CallRecordRepository.
type CallStore struct {
	mu     sync.Mutex
	calls  []*domain.CallRecord
	nextID int64
}

// NewCallStore returns a CallStore seeded with the demo call history.
func NewCallStore() *CallStore {
	now := time.Now().UTC()
	return &CallStore{
		calls: []*domain.CallRecord{
			{ID: 1, PhoneNumber: "+1234567890", CallerName: "Emergency Contact", CallType: "urgent", Duration: 120, UrgencyLevel: "high", Status: "answered", AIAction: "immediate_notify", Timestamp: now},
			{ID: 2, PhoneNumber: "+1555999888", CallerName: "Unknown Caller", CallType: "screening", Duration: 45, UrgencyLevel: "low", Status: "screened", AIAction: "ai_handled", Timestamp: now},
			{ID: 3, PhoneNumber: "+1800SPAM99", CallerName: "Telemarketer", CallType: "blocked", Duration: 0, UrgencyLevel: "none", Status: "blocked", AIAction: "auto_block", Timestamp: now},
		},
		nextID: 4,
	}
}

func (s *CallStore) Create(ctx context.Context, call *domain.CallRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	call.ID = s.nextID
	s.nextID++
	s.calls = append(s.calls, call)
	return nil
}

func (s *CallStore) List(ctx context.Context, limit int) ([]*domain.CallRecord, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *CallStore) ListAll(ctx context.Context) ([]*domain.CallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.CallRecord, len(s.calls))
	copy(out, s.calls)
	sortByTimeDesc(out, func(c *domain.CallRecord) time.Time { return c.Timestamp }, func(c *domain.CallRecord) int64 { return c.ID })
	return out, nil
}

// SettingsStore is an in-memory SettingsRepository.
type SettingsStore struct {
	mu       sync.Mutex
	settings domain.Settings
}

// NewSettingsStore returns a SettingsStore seeded with the default settings.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{settings: domain.DefaultSettings()}
}

func (s *SettingsStore) GetAll(ctx context.Context) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(domain.Settings, len(s.settings))
	for k, v := range s.settings {
		out[k] = v
	}
	return out, nil
}

func (s *SettingsStore) Merge(ctx context.Context, partial domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range partial {
		s.settings[k] = v
	}
	return nil
}
