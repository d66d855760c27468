package domain

import (
	"context"
)

// ContactRepository manages whitelisted contacts.
// List returns contacts newest first. Delete of an absent id is a no-op.
type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	List(ctx context.Context) ([]*Contact, error)
	Delete(ctx context.Context, id int64) error
}

// BlockedNumberRepository manages blocked numbers.
type BlockedNumberRepository interface {
	Create(ctx context.Context, blocked *BlockedNumber) error
	List(ctx context.Context) ([]*BlockedNumber, error)
	Delete(ctx context.Context, id int64) error
}

// CallRecordRepository manages the append-only call history.
// List returns at most limit records, newest first.
type CallRecordRepository interface {
	Create(ctx context.Context, call *CallRecord) error
	List(ctx context.Context, limit int) ([]*CallRecord, error)
	// ListAll returns every record; used by the stats aggregator, which must
	// not be subject to the read cap.
	ListAll(ctx context.Context) ([]*CallRecord, error)
}

// SettingsRepository manages the flat settings map.
type SettingsRepository interface {
	GetAll(ctx context.Context) (Settings, error)
	// Merge upserts the given keys into the stored map, leaving other keys
	// unchanged.
	Merge(ctx context.Context, partial Settings) error
}
