package http

import (
	_ "embed"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

//go:embed assets/dashboard.html
var dashboardHTML []byte

//go:embed assets/manifest.json
var manifestJSON []byte

//go:embed assets/sw.js
var serviceWorkerJS []byte

// DashboardHandler serves the embedded dashboard, the PWA shell and the
// health endpoint.
type DashboardHandler struct {
	startTime   time.Time
	environment string
	backend     string
	logger      *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler. backend names the active
// storage backing ("memory" or "postgres") for the health payload.
func NewDashboardHandler(environment, backend string, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		startTime:   time.Now(),
		environment: environment,
		backend:     backend,
		logger:      logger,
	}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Dashboard)
	r.Get("/health", h.Health)
	r.Get("/manifest.json", h.Manifest)
	r.Get("/sw.js", h.ServiceWorker)
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(dashboardHTML)
}

func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, HealthResponseDTO{
		Status:      "healthy",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Uptime:      int64(time.Since(h.startTime).Seconds()),
		Environment: h.environment,
		Database:    h.backend,
	})
}

func (h *DashboardHandler) Manifest(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(manifestJSON)
}

func (h *DashboardHandler) ServiceWorker(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	w.WriteHeader(http.StatusOK)
	w.Write(serviceWorkerJS)
}
