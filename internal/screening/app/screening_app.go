package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/treloarai/callscreen/internal/platform/messagebroker"
	"github.com/treloarai/callscreen/internal/screening/domain"
)

// CallHistoryLimit caps how many call records a history read returns.
const CallHistoryLimit = 50

// VoiceCommandCounter reports how many voice commands were logged on the
// given calendar day (server-local). Implemented by the assistant repository.
type VoiceCommandCounter interface {
	CountOnDay(ctx context.Context, day time.Time) (int, error)
}

// Application orchestrates contact, blocked-number, call-history and settings
// operations and computes dashboard stats.
type Application struct {
	contactRepo domain.ContactRepository
	blockedRepo domain.BlockedNumberRepository
	callRepo    domain.CallRecordRepository
	settings    domain.SettingsRepository
	voiceCmds   VoiceCommandCounter
	nats        *messagebroker.NatsClient
	logger      *slog.Logger
}

// NewApplication creates a new Application instance. nats may be nil when no
// broker is configured; voiceCmds may be nil when the assistant is disabled.
func NewApplication(
	contactRepo domain.ContactRepository,
	blockedRepo domain.BlockedNumberRepository,
	callRepo domain.CallRecordRepository,
	settings domain.SettingsRepository,
	voiceCmds VoiceCommandCounter,
	nats *messagebroker.NatsClient,
	logger *slog.Logger,
) *Application {
	return &Application{
		contactRepo: contactRepo,
		blockedRepo: blockedRepo,
		callRepo:    callRepo,
		settings:    settings,
		voiceCmds:   voiceCmds,
		nats:        nats,
		logger:      logger,
	}
}

// --- Whitelist ---

// AddContact adds a phone number to the whitelist.
func (a *Application) AddContact(ctx context.Context, phoneNumber, contactName, relationship string) (*domain.Contact, error) {
	contact := domain.NewContact(phoneNumber, contactName, relationship)
	if err := a.contactRepo.Create(ctx, contact); err != nil {
		a.logger.ErrorContext(ctx, "Failed to create whitelist contact", "error", err, "phone_number", phoneNumber)
		return nil, err
	}
	a.logger.InfoContext(ctx, "Contact added to whitelist", "contact_id", contact.ID, "phone_number", phoneNumber)
	return contact, nil
}

// ListContacts returns all whitelisted contacts, newest first.
func (a *Application) ListContacts(ctx context.Context) ([]*domain.Contact, error) {
	return a.contactRepo.List(ctx)
}

// RemoveContact removes a contact by id. Removing an absent id is a no-op,
// not an error.
func (a *Application) RemoveContact(ctx context.Context, id int64) error {
	if err := a.contactRepo.Delete(ctx, id); err != nil {
		a.logger.ErrorContext(ctx, "Failed to delete whitelist contact", "error", err, "contact_id", id)
		return err
	}
	return nil
}

// --- Blocked numbers ---

// BlockNumber adds a number to the block list with attempts initialized to 1.
func (a *Application) BlockNumber(ctx context.Context, phoneNumber, reason string) (*domain.BlockedNumber, error) {
	blocked := domain.NewBlockedNumber(phoneNumber, reason)
	if err := a.blockedRepo.Create(ctx, blocked); err != nil {
		a.logger.ErrorContext(ctx, "Failed to block number", "error", err, "phone_number", phoneNumber)
		return nil, err
	}
	a.logger.InfoContext(ctx, "Number blocked", "blocked_id", blocked.ID, "phone_number", phoneNumber)
	return blocked, nil
}

// ListBlocked returns all blocked numbers, newest first.
func (a *Application) ListBlocked(ctx context.Context) ([]*domain.BlockedNumber, error) {
	return a.blockedRepo.List(ctx)
}

// UnblockNumber removes a blocked number by id; no-op when absent.
func (a *Application) UnblockNumber(ctx context.Context, id int64) error {
	if err := a.blockedRepo.Delete(ctx, id); err != nil {
		a.logger.ErrorContext(ctx, "Failed to unblock number", "error", err, "blocked_id", id)
		return err
	}
	return nil
}

// --- Call history ---

// RecordCall appends a call record and publishes a best-effort event.
func (a *Application) RecordCall(ctx context.Context, phoneNumber, callerName, callType string, duration int, urgencyLevel, status, aiAction string) (*domain.CallRecord, error) {
	call := domain.NewCallRecord(phoneNumber, callerName, callType, duration, urgencyLevel, status, aiAction)
	if err := a.callRepo.Create(ctx, call); err != nil {
		a.logger.ErrorContext(ctx, "Failed to record call", "error", err, "phone_number", phoneNumber)
		return nil, err
	}
	a.nats.Publish(ctx, "callscreen.call.recorded", map[string]interface{}{
		"call_id":       call.ID,
		"phone_number":  call.PhoneNumber,
		"call_type":     call.CallType,
		"urgency_level": call.UrgencyLevel,
		"timestamp":     call.Timestamp,
	})
	return call, nil
}

// ListCallHistory returns the most recent call records, newest first, capped
// at CallHistoryLimit.
func (a *Application) ListCallHistory(ctx context.Context) ([]*domain.CallRecord, error) {
	return a.callRepo.List(ctx, CallHistoryLimit)
}

// --- Settings ---

// GetSettings returns the full settings map.
func (a *Application) GetSettings(ctx context.Context) (domain.Settings, error) {
	return a.settings.GetAll(ctx)
}

// UpdateSettings merges the given keys into the settings map.
func (a *Application) UpdateSettings(ctx context.Context, partial domain.Settings) error {
	if err := a.settings.Merge(ctx, partial); err != nil {
		a.logger.ErrorContext(ctx, "Failed to update settings", "error", err)
		return err
	}
	a.logger.InfoContext(ctx, "Settings updated", "keys", len(partial))
	return nil
}

// --- Stats ---

// ComputeStats recomputes the dashboard aggregate with linear scans.
// Acceptable at demo scale; no caching. "Today" is the server-local calendar
// day of now.
func (a *Application) ComputeStats(ctx context.Context) (*domain.Stats, error) {
	contacts, err := a.contactRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	blocked, err := a.blockedRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	calls, err := a.callRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	stats := &domain.Stats{
		WhitelistCount: len(contacts),
		BlockedCount:   len(blocked),
	}
	for _, call := range calls {
		if !domain.SameLocalDay(call.Timestamp, now) {
			continue
		}
		stats.TodaysCalls++
		if call.UrgencyLevel == "high" {
			stats.UrgentCalls++
		}
	}

	if a.voiceCmds != nil {
		count, err := a.voiceCmds.CountOnDay(ctx, now)
		if err != nil {
			a.logger.WarnContext(ctx, "Failed to count today's voice commands", "error", err)
		} else {
			stats.VoiceCommandsToday = count
		}
	}
	return stats, nil
}
