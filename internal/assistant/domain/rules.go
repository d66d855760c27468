package domain

import (
	"context"
	"strings"
	"time"
)

// Rule maps a keyword to a canned assistant response. Rules are evaluated in
// slice order and the first keyword found as a case-insensitive substring of
// the input wins; order is therefore behaviorally significant and must not be
// rearranged casually.
type Rule struct {
	Keyword string
	Reply   string
	Action  string
	Speak   string
}

// DefaultRules is the fixed, ordered response table shared by the AI chat and
// voice command endpoints.
func DefaultRules() []Rule {
	return []Rule{
		{
			Keyword: "hello",
			Reply:   "Hello! I'm your TreloarAI assistant. I'm screening your calls and keeping the spam away. How can I help?",
			Action:  "greet",
			Speak:   "Hello! Your assistant is active and screening calls.",
		},
		{
			Keyword: "status",
			Reply:   "All systems operational. Call screening is active and your preferences are being applied.",
			Action:  "report_status",
			Speak:   "All systems operational. Call screening is active.",
		},
		{
			Keyword: "block",
			Reply:   "You can block a number from the dashboard, or tell me the number and I'll add it to the block list.",
			Action:  "block_number",
			Speak:   "Opening block management.",
		},
		{
			Keyword: "contact",
			Reply:   "Your trusted contacts always ring through. Manage them from the Trusted Contacts panel.",
			Action:  "show_contacts",
			Speak:   "Showing your trusted contacts.",
		},
		{
			Keyword: "call",
			Reply:   "Recent call activity is on your dashboard. Urgent calls are flagged in red.",
			Action:  "show_calls",
			Speak:   "Showing recent call activity.",
		},
		{
			Keyword: "billing",
			Reply:   "Your usage summary for this month is available under billing. Each AI action is metered at a fixed rate.",
			Action:  "show_billing",
			Speak:   "Showing your billing summary.",
		},
		{
			Keyword: "help",
			Reply:   "You can ask me about your call status, trusted contacts, blocked numbers, or billing.",
			Action:  "show_help",
			Speak:   "You can ask about calls, contacts, blocking, or billing.",
		},
	}
}

// FallbackReply is returned when no keyword matches.
const FallbackReply = "I'm not sure how to help with that yet. Try asking about your call status, contacts, blocked numbers, or billing."

// Match returns the first rule whose keyword appears in input
// (case-insensitive substring), or false when none matches.
func Match(rules []Rule, input string) (Rule, bool) {
	lowered := strings.ToLower(input)
	for _, rule := range rules {
		if strings.Contains(lowered, rule.Keyword) {
			return rule, true
		}
	}
	return Rule{}, false
}

// VoiceCommandEntry is a log row appended for every voice command invocation.
type VoiceCommandEntry struct {
	ID         int64     `json:"id"`
	Transcript string    `json:"transcript"`
	Action     string    `json:"action"`
	CreatedAt  time.Time `json:"created_at"`
}

// VoiceCommandRepository manages the append-only voice command log.
type VoiceCommandRepository interface {
	Create(ctx context.Context, entry *VoiceCommandEntry) error
	List(ctx context.Context, limit int) ([]*VoiceCommandEntry, error)
	// CountOnDay counts entries whose creation time falls on the same
	// server-local calendar day as day.
	CountOnDay(ctx context.Context, day time.Time) (int, error)
}
