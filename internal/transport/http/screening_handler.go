package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	screeningApp "github.com/treloarai/callscreen/internal/screening/app"
	"github.com/treloarai/callscreen/internal/screening/domain"
)

// ScreeningHandler serves the stats, whitelist, blocked-number, call-history
// and settings endpoints.
type ScreeningHandler struct {
	app    *screeningApp.Application
	logger *slog.Logger
}

func NewScreeningHandler(app *screeningApp.Application, logger *slog.Logger) *ScreeningHandler {
	return &ScreeningHandler{app: app, logger: logger}
}

// RegisterRoutes sets up the screening routes on r.
func (h *ScreeningHandler) RegisterRoutes(r chi.Router) {
	r.Get("/stats", h.GetStats)

	r.Get("/whitelist", h.ListWhitelist)
	r.Post("/whitelist", h.AddToWhitelist)
	r.Delete("/whitelist/{id}", h.RemoveFromWhitelist)

	r.Get("/blocked", h.ListBlocked)
	r.Post("/blocked", h.BlockNumber)
	r.Delete("/blocked/{id}", h.UnblockNumber)

	r.Get("/call-history", h.ListCallHistory)
	r.Post("/call-history", h.RecordCall)

	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.UpdateSettings)
}

func (h *ScreeningHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.app.ComputeStats(r.Context())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}

// --- Whitelist ---

func (h *ScreeningHandler) ListWhitelist(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.app.ListContacts(r.Context())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if contacts == nil {
		contacts = []*domain.Contact{}
	}
	respondWithJSON(w, http.StatusOK, contacts)
}

func (h *ScreeningHandler) AddToWhitelist(w http.ResponseWriter, r *http.Request) {
	var reqDTO CreateContactRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	contact, err := h.app.AddContact(r.Context(), reqDTO.PhoneNumber, reqDTO.ContactName, reqDTO.Relationship)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, CreatedResponseDTO{ID: contact.ID, Message: "Contact added to whitelist"})
}

func (h *ScreeningHandler) RemoveFromWhitelist(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	// Delete is idempotent in effect: an absent id still returns 200.
	if err := h.app.RemoveContact(r.Context(), id); err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, MessageResponseDTO{Message: "Contact removed from whitelist"})
}

// --- Blocked numbers ---

func (h *ScreeningHandler) ListBlocked(w http.ResponseWriter, r *http.Request) {
	blocked, err := h.app.ListBlocked(r.Context())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if blocked == nil {
		blocked = []*domain.BlockedNumber{}
	}
	respondWithJSON(w, http.StatusOK, blocked)
}

func (h *ScreeningHandler) BlockNumber(w http.ResponseWriter, r *http.Request) {
	var reqDTO BlockNumberRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	blocked, err := h.app.BlockNumber(r.Context(), reqDTO.PhoneNumber, reqDTO.Reason)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, CreatedResponseDTO{ID: blocked.ID, Message: "Number blocked successfully"})
}

func (h *ScreeningHandler) UnblockNumber(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}
	if err := h.app.UnblockNumber(r.Context(), id); err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, MessageResponseDTO{Message: "Number unblocked successfully"})
}

// --- Call history ---

func (h *ScreeningHandler) ListCallHistory(w http.ResponseWriter, r *http.Request) {
	calls, err := h.app.ListCallHistory(r.Context())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if calls == nil {
		calls = []*domain.CallRecord{}
	}
	respondWithJSON(w, http.StatusOK, calls)
}

func (h *ScreeningHandler) RecordCall(w http.ResponseWriter, r *http.Request) {
	var reqDTO RecordCallRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	call, err := h.app.RecordCall(r.Context(),
		reqDTO.PhoneNumber, reqDTO.CallerName, reqDTO.CallType,
		reqDTO.Duration, reqDTO.UrgencyLevel, reqDTO.Status, reqDTO.AIAction,
	)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, CreatedResponseDTO{ID: call.ID, Message: "Call recorded successfully"})
}

// --- Settings ---

func (h *ScreeningHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.app.GetSettings(r.Context())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

func (h *ScreeningHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var partial domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.app.UpdateSettings(r.Context(), partial); err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, MessageResponseDTO{Message: "Settings updated successfully"})
}
