package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	authApp "github.com/treloarai/callscreen/internal/auth/app"
)

// AuthHandler serves the demo login endpoint.
type AuthHandler struct {
	auth     *authApp.AuthService
	logger   *slog.Logger
	validate *validator.Validate
}

func NewAuthHandler(auth *authApp.AuthService, logger *slog.Logger, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger, validate: validate}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var reqDTO LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(reqDTO); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	token, expiresAt, err := h.auth.Login(r.Context(), reqDTO.Username, reqDTO.Password)
	if err != nil {
		if errors.Is(err, authApp.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		respondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, LoginResponseDTO{Token: token, ExpiresAt: expiresAt})
}
