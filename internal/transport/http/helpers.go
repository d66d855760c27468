package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/treloarai/callscreen/internal/screening/domain"
)

// respondWithJSON writes payload as a JSON response body.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Default().Error("Failed to write JSON response", "error", err)
		}
	}
}

// respondWithError writes a {"error": message} body.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithDomainError maps domain errors to HTTP status codes; anything
// unrecognized is a 500 with the error message, no structured codes.
func respondWithDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateEntry):
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, err.Error())
	}
}
