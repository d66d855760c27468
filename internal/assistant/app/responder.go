package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/treloarai/callscreen/internal/assistant/domain"
	"github.com/treloarai/callscreen/internal/platform/messagebroker"
)

// UsageRecorder debits the mock credit balance for assistant invocations.
// Implemented by the billing application; recording is fire-and-forget
// bookkeeping, so the responder logs failures and moves on.
type UsageRecorder interface {
	RecordUsage(ctx context.Context, usageType string, units int) error
}

// ChatResponse is the ai-chat endpoint payload.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// VoiceResponse is the voice-command endpoint payload.
type VoiceResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Speak   string `json:"speak,omitempty"`
}

// Responder picks canned responses by first-match keyword lookup, simulating
// an assistant without any model inference.
type Responder struct {
	rules     []domain.Rule
	voiceRepo domain.VoiceCommandRepository
	usage     UsageRecorder
	nats      *messagebroker.NatsClient
	logger    *slog.Logger
}

// NewResponder creates a Responder over the fixed default rule table.
// usage and nats may be nil.
func NewResponder(voiceRepo domain.VoiceCommandRepository, usage UsageRecorder, nats *messagebroker.NatsClient, logger *slog.Logger) *Responder {
	return &Responder{
		rules:     domain.DefaultRules(),
		voiceRepo: voiceRepo,
		usage:     usage,
		nats:      nats,
		logger:    logger,
	}
}

// Chat answers a chat message with the first matching canned reply, falling
// back to a generic reply. Every invocation debits one ai_chat usage unit.
func (r *Responder) Chat(ctx context.Context, message string) *ChatResponse {
	reply := domain.FallbackReply
	if rule, ok := domain.Match(r.rules, message); ok {
		reply = rule.Reply
	}
	r.recordUsage(ctx, "ai_chat")
	return &ChatResponse{Reply: reply}
}

// VoiceCommand interprets a transcript with the same rule table, appends a
// log row and debits one voice_command usage unit. The log append is
// best-effort: a storage failure does not fail the command.
func (r *Responder) VoiceCommand(ctx context.Context, transcript string) *VoiceResponse {
	resp := &VoiceResponse{Success: true, Message: domain.FallbackReply}
	action := "none"
	if rule, ok := domain.Match(r.rules, transcript); ok {
		resp.Message = rule.Reply
		resp.Action = rule.Action
		resp.Speak = rule.Speak
		action = rule.Action
	}

	entry := &domain.VoiceCommandEntry{
		Transcript: transcript,
		Action:     action,
		CreatedAt:  time.Now().UTC(),
	}
	if err := r.voiceRepo.Create(ctx, entry); err != nil {
		r.logger.WarnContext(ctx, "Failed to log voice command", "error", err)
	}
	r.recordUsage(ctx, "voice_command")
	r.nats.Publish(ctx, "callscreen.voice.command", map[string]interface{}{
		"transcript": transcript,
		"action":     action,
		"created_at": entry.CreatedAt,
	})
	return resp
}

func (r *Responder) recordUsage(ctx context.Context, usageType string) {
	if r.usage == nil {
		return
	}
	if err := r.usage.RecordUsage(ctx, usageType, 1); err != nil {
		r.logger.WarnContext(ctx, "Failed to record usage", "usage_type", usageType, "error", err)
	}
}
