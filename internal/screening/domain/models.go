package domain

import (
	"time"
)

// Contact represents a whitelisted (trusted) phone number exempt from screening.
type Contact struct {
	ID           int64     `json:"id"`
	PhoneNumber  string    `json:"phone_number"`
	ContactName  string    `json:"contact_name"`
	Relationship string    `json:"relationship"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewContact creates a Contact with a server-assigned creation time.
// The ID is assigned by the repository on insert.
func NewContact(phoneNumber, contactName, relationship string) *Contact {
	return &Contact{
		PhoneNumber:  phoneNumber,
		ContactName:  contactName,
		Relationship: relationship,
		CreatedAt:    time.Now().UTC(),
	}
}

// BlockedNumber represents a phone number flagged to be auto-rejected.
// Attempts starts at 1 on creation; no code path increments it today
// (re-block accumulation is unconfirmed product intent).
type BlockedNumber struct {
	ID          int64     `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Reason      string    `json:"reason"`
	Attempts    int       `json:"attempts"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewBlockedNumber creates a BlockedNumber with attempts initialized to 1.
func NewBlockedNumber(phoneNumber, reason string) *BlockedNumber {
	return &BlockedNumber{
		PhoneNumber: phoneNumber,
		Reason:      reason,
		Attempts:    1,
		CreatedAt:   time.Now().UTC(),
	}
}

// CallRecord is an append-only call history entry. CallType, Status and
// AIAction are free-form strings driven by the client; UrgencyLevel is one of
// "high"/"medium"/"low"/"none" by convention but not enforced.
type CallRecord struct {
	ID           int64     `json:"id"`
	PhoneNumber  string    `json:"phone_number"`
	CallerName   string    `json:"caller_name"`
	CallType     string    `json:"call_type"`
	Duration     int       `json:"duration"`
	UrgencyLevel string    `json:"urgency_level"`
	Status       string    `json:"status"`
	AIAction     string    `json:"ai_action"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewCallRecord creates a CallRecord with a server-assigned timestamp.
func NewCallRecord(phoneNumber, callerName, callType string, duration int, urgencyLevel, status, aiAction string) *CallRecord {
	return &CallRecord{
		PhoneNumber:  phoneNumber,
		CallerName:   callerName,
		CallType:     callType,
		Duration:     duration,
		UrgencyLevel: urgencyLevel,
		Status:       status,
		AIAction:     aiAction,
		Timestamp:    time.Now().UTC(),
	}
}

// Settings is the flat key-value settings map. PUT merges into it; keys and
// values are not validated.
type Settings map[string]string

// DefaultSettings returns the seed settings every fresh deployment starts with.
func DefaultSettings() Settings {
	return Settings{
		"ai_enabled":         "true",
		"urgent_threshold":   "3",
		"screening_mode":     "intelligent",
		"notification_level": "high",
	}
}

// Stats is the dashboard aggregate recomputed on every request.
// "Today" is calendar-day equality in the server's local timezone, not a
// rolling 24h window; urgent = urgency_level "high" AND today.
type Stats struct {
	WhitelistCount     int `json:"whitelist_count"`
	BlockedCount       int `json:"blocked_count"`
	TodaysCalls        int `json:"todays_calls"`
	UrgentCalls        int `json:"urgent_calls"`
	VoiceCommandsToday int `json:"voice_commands_today"`
}

// SameLocalDay reports whether a and b fall on the same calendar day in the
// server's local timezone.
func SameLocalDay(a, b time.Time) bool {
	al := a.Local()
	bl := b.Local()
	ay, am, ad := al.Date()
	by, bm, bd := bl.Date()
	return ay == by && am == bm && ad == bd
}
