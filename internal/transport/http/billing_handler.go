package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	billingApp "github.com/treloarai/callscreen/internal/billing/app"
	"github.com/treloarai/callscreen/internal/billing/domain"
)

// BillingHandler serves the mock usage/billing endpoints.
type BillingHandler struct {
	billing *billingApp.BillingService
	logger  *slog.Logger
}

func NewBillingHandler(billing *billingApp.BillingService, logger *slog.Logger) *BillingHandler {
	return &BillingHandler{billing: billing, logger: logger}
}

func (h *BillingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/billing/usage", h.ListUsage)
	r.Get("/billing/summary", h.MonthlySummary)
}

func (h *BillingHandler) ListUsage(w http.ResponseWriter, r *http.Request) {
	records, err := h.billing.ListUsage(r.Context())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	if records == nil {
		records = []*domain.UsageRecord{}
	}
	respondWithJSON(w, http.StatusOK, records)
}

func (h *BillingHandler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.billing.MonthlySummary(r.Context())
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, summary)
}
