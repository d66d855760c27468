package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authApp "github.com/treloarai/callscreen/internal/auth/app"
)

// RouterDeps bundles the handlers and cross-cutting pieces the router mounts.
type RouterDeps struct {
	Screening *ScreeningHandler
	Assistant *AssistantHandler
	Billing   *BillingHandler
	Auth      *AuthHandler
	Dashboard *DashboardHandler

	AuthService  *authApp.AuthService
	AuthRequired bool
	Logger       *slog.Logger
}

// NewRouter builds the chi router with the full middleware stack. CORS allows
// any origin: the dashboard is a public demo surface.
func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(PrometheusMetricsMiddleware)

	deps.Dashboard.RegisterRoutes(r)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		deps.Auth.RegisterRoutes(api)

		api.Group(func(protected chi.Router) {
			if deps.AuthRequired {
				protected.Use(AuthMiddleware(deps.AuthService, deps.Logger))
			}
			deps.Screening.RegisterRoutes(protected)
			deps.Assistant.RegisterRoutes(protected)
			deps.Billing.RegisterRoutes(protected)
		})
	})

	return r
}
