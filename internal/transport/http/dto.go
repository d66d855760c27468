package http

import "time"

// Create endpoints are deliberately permissive: absent fields decode to zero
// values and are stored as-is, matching the original API surface. Only the
// login DTO is validated.

type CreateContactRequestDTO struct {
	PhoneNumber  string `json:"phone_number"`
	ContactName  string `json:"contact_name"`
	Relationship string `json:"relationship"`
}

type BlockNumberRequestDTO struct {
	PhoneNumber string `json:"phone_number"`
	Reason      string `json:"reason"`
}

type RecordCallRequestDTO struct {
	PhoneNumber  string `json:"phone_number"`
	CallerName   string `json:"caller_name"`
	CallType     string `json:"call_type"`
	Duration     int    `json:"duration"`
	UrgencyLevel string `json:"urgency_level"`
	Status       string `json:"status"`
	AIAction     string `json:"ai_action"`
}

// CreatedResponseDTO is the {id, message} envelope returned by creates.
type CreatedResponseDTO struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// MessageResponseDTO is the {message} envelope returned by deletes and updates.
type MessageResponseDTO struct {
	Message string `json:"message"`
}

type ChatRequestDTO struct {
	Message string `json:"message"`
}

type VoiceCommandRequestDTO struct {
	Transcript string `json:"transcript"`
}

type LoginRequestDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponseDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type HealthResponseDTO struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Uptime      int64  `json:"uptime"`
	Environment string `json:"environment"`
	Database    string `json:"database"`
}
