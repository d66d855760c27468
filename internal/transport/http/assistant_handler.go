package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	assistantApp "github.com/treloarai/callscreen/internal/assistant/app"
)

// AssistantHandler serves the mocked AI chat and voice command endpoints.
type AssistantHandler struct {
	responder *assistantApp.Responder
	logger    *slog.Logger
}

func NewAssistantHandler(responder *assistantApp.Responder, logger *slog.Logger) *AssistantHandler {
	return &AssistantHandler{responder: responder, logger: logger}
}

func (h *AssistantHandler) RegisterRoutes(r chi.Router) {
	r.Post("/ai-chat", h.Chat)
	r.Post("/voice-command", h.VoiceCommand)
}

func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var reqDTO ChatRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	respondWithJSON(w, http.StatusOK, h.responder.Chat(r.Context(), reqDTO.Message))
}

func (h *AssistantHandler) VoiceCommand(w http.ResponseWriter, r *http.Request) {
	var reqDTO VoiceCommandRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	respondWithJSON(w, http.StatusOK, h.responder.VoiceCommand(r.Context(), reqDTO.Transcript))
}
