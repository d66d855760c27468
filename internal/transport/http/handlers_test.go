package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assistantApp "github.com/treloarai/callscreen/internal/assistant/app"
	assistantMem "github.com/treloarai/callscreen/internal/assistant/repository/memory"
	authApp "github.com/treloarai/callscreen/internal/auth/app"
	billingApp "github.com/treloarai/callscreen/internal/billing/app"
	billingMem "github.com/treloarai/callscreen/internal/billing/repository/memory"
	screeningApp "github.com/treloarai/callscreen/internal/screening/app"
	screeningMem "github.com/treloarai/callscreen/internal/screening/repository/memory"
)

// newTestServer builds the full router over the seeded in-memory backend,
// exactly as a zero-config deployment runs.
func newTestServer(t *testing.T, authRequired bool) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	voiceRepo := assistantMem.NewVoiceLogStore()
	billing := billingApp.NewBillingService(billingMem.NewUsageStore(), logger)
	responder := assistantApp.NewResponder(voiceRepo, billing, nil, logger)
	screening := screeningApp.NewApplication(
		screeningMem.NewContactStore(),
		screeningMem.NewBlockedStore(),
		screeningMem.NewCallStore(),
		screeningMem.NewSettingsStore(),
		voiceRepo,
		nil,
		logger,
	)

	authService, err := authApp.NewAuthService(authApp.AuthConfig{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
		DemoUsername:   "demo",
		DemoPassword:   "demo",
	}, logger)
	require.NoError(t, err)

	router := NewRouter(RouterDeps{
		Screening:    NewScreeningHandler(screening, logger),
		Assistant:    NewAssistantHandler(responder, logger),
		Billing:      NewBillingHandler(billing, logger),
		Auth:         NewAuthHandler(authService, logger, validator.New()),
		Dashboard:    NewDashboardHandler("test", "memory", logger),
		AuthService:  authService,
		AuthRequired: authRequired,
		Logger:       logger,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// --- Whitelist flow ---

func TestWhitelist_EndToEnd(t *testing.T) {
	server := newTestServer(t, false)

	// Seed state: three contacts.
	resp := doJSON(t, http.MethodGet, server.URL+"/api/whitelist", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var contacts []map[string]interface{}
	decodeBody(t, resp, &contacts)
	require.Len(t, contacts, 3)

	// Add a fourth.
	resp = doJSON(t, http.MethodPost, server.URL+"/api/whitelist", map[string]string{
		"phone_number": "+15551230000",
		"contact_name": "New Person",
		"relationship": "Friend",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created CreatedResponseDTO
	decodeBody(t, resp, &created)
	assert.Equal(t, "Contact added to whitelist", created.Message)
	assert.Equal(t, int64(4), created.ID)

	// The new contact lists first (created_at desc).
	resp = doJSON(t, http.MethodGet, server.URL+"/api/whitelist", nil)
	decodeBody(t, resp, &contacts)
	require.Len(t, contacts, 4)
	assert.Equal(t, "+15551230000", contacts[0]["phone_number"])

	// Delete it; back to the seed set.
	resp = doJSON(t, http.MethodDelete, server.URL+"/api/whitelist/4", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/api/whitelist", nil)
	decodeBody(t, resp, &contacts)
	assert.Len(t, contacts, 3)
}

func TestWhitelist_DeleteAbsentIDReturns200(t *testing.T) {
	server := newTestServer(t, false)

	resp := doJSON(t, http.MethodDelete, server.URL+"/api/whitelist/9999", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var msg MessageResponseDTO
	decodeBody(t, resp, &msg)
	assert.Equal(t, "Contact removed from whitelist", msg.Message)
}

func TestWhitelist_MissingFieldsAreStoredAsEmpty(t *testing.T) {
	server := newTestServer(t, false)

	// The create surface is permissive: absent fields become zero values.
	resp := doJSON(t, http.MethodPost, server.URL+"/api/whitelist", map[string]string{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created CreatedResponseDTO
	decodeBody(t, resp, &created)
	assert.NotZero(t, created.ID)
}

// --- Blocked numbers ---

func TestBlocked_CreateAndList(t *testing.T) {
	server := newTestServer(t, false)

	resp := doJSON(t, http.MethodPost, server.URL+"/api/blocked", map[string]string{
		"phone_number": "+1555000111",
		"reason":       "Spam",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created CreatedResponseDTO
	decodeBody(t, resp, &created)
	assert.Equal(t, "Number blocked successfully", created.Message)

	resp = doJSON(t, http.MethodGet, server.URL+"/api/blocked", nil)
	var blocked []map[string]interface{}
	decodeBody(t, resp, &blocked)
	require.Len(t, blocked, 3)
	assert.Equal(t, "+1555000111", blocked[0]["phone_number"])
	assert.Equal(t, float64(1), blocked[0]["attempts"])
}

// --- Call history ---

func TestCallHistory_CappedAtFifty(t *testing.T) {
	server := newTestServer(t, false)

	for i := 0; i < 60; i++ {
		resp := doJSON(t, http.MethodPost, server.URL+"/api/call-history", map[string]interface{}{
			"phone_number":  "+1555999000",
			"caller_name":   "Bulk Caller",
			"call_type":     "incoming",
			"duration":      5,
			"urgency_level": "low",
			"status":        "handled",
			"ai_action":     "processed",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, http.MethodGet, server.URL+"/api/call-history", nil)
	var calls []map[string]interface{}
	decodeBody(t, resp, &calls)
	assert.Len(t, calls, 50)
}

// --- Stats ---

func TestStats_ReflectsSeedsAndNewCalls(t *testing.T) {
	server := newTestServer(t, false)

	resp := doJSON(t, http.MethodGet, server.URL+"/api/stats", nil)
	var stats map[string]int
	decodeBody(t, resp, &stats)
	assert.Equal(t, 3, stats["whitelist_count"])
	assert.Equal(t, 2, stats["blocked_count"])
	assert.Equal(t, 3, stats["todays_calls"], "seed calls are stamped at startup, i.e. today")
	assert.Equal(t, 1, stats["urgent_calls"])
	assert.Equal(t, 0, stats["voice_commands_today"])

	// A high-urgency call recorded now moves both counters.
	doJSON(t, http.MethodPost, server.URL+"/api/call-history", map[string]interface{}{
		"phone_number":  "+1555111222",
		"urgency_level": "high",
	}).Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/api/stats", nil)
	decodeBody(t, resp, &stats)
	assert.Equal(t, 4, stats["todays_calls"])
	assert.Equal(t, 2, stats["urgent_calls"])
}

// --- Settings ---

func TestSettings_PutMergesNotReplaces(t *testing.T) {
	server := newTestServer(t, false)

	resp := doJSON(t, http.MethodPut, server.URL+"/api/settings", map[string]string{"ai_enabled": "false"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/api/settings", nil)
	var settings map[string]string
	decodeBody(t, resp, &settings)
	assert.Equal(t, "false", settings["ai_enabled"])
	assert.Equal(t, "intelligent", settings["screening_mode"])
	assert.Equal(t, "3", settings["urgent_threshold"])
}

// --- Health and static surface ---

func TestHealth(t *testing.T) {
	server := newTestServer(t, false)

	resp := doJSON(t, http.MethodGet, server.URL+"/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health HealthResponseDTO
	decodeBody(t, resp, &health)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "memory", health.Database)
	assert.Equal(t, "test", health.Environment)
}

func TestDashboardAndPWAShell(t *testing.T) {
	server := newTestServer(t, false)

	resp := doJSON(t, http.MethodGet, server.URL+"/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "TreloarAI")

	resp = doJSON(t, http.MethodGet, server.URL+"/manifest.json", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, server.URL+"/sw.js", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
