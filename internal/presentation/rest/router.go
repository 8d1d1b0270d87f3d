// Package rest exposes the risk API over HTTP/JSON.
package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Khaja2988/AI-Driven-WAF/pkg/auth"
)

// RouterConfig wires the HTTP surface.
type RouterConfig struct {
	Health  *HealthHandler
	Risk    *RiskHandler
	Metrics http.Handler
	// JWT enables bearer authentication on /api when non-nil.
	JWT         *auth.JWTService
	Logger      *slog.Logger
	CORSOrigins []string
	Timeout     time.Duration
}

// NewRouter builds the chi router.
func NewRouter(cfg RouterConfig) http.Handler {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", cfg.Health.Healthz)
	r.Get("/readyz", cfg.Health.Readyz)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(timeout))
		if cfg.JWT != nil {
			r.Use(auth.HTTPMiddleware(cfg.JWT, nil))
		}

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRoleHTTP(auth.RoleAPIClient, auth.RoleAdmin))
			r.Post("/login-check", cfg.Risk.LoginCheck)
			r.Post("/analyze", cfg.Risk.Analyze)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRoleHTTP(auth.RoleAnalyst, auth.RoleAdmin))
			r.Get("/assessments", cfg.Risk.ListAssessments)
			r.Get("/assessments/{id}", cfg.Risk.GetAssessment)
		})
	})

	return r
}
