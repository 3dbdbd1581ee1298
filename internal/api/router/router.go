package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/pratik-mahalle/threatwatch/internal/api/handlers"
	"github.com/pratik-mahalle/threatwatch/internal/api/middleware"
	"github.com/pratik-mahalle/threatwatch/internal/config"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/errors"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/logger"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/metrics"
	"github.com/pratik-mahalle/threatwatch/internal/pkg/utils"

	_ "github.com/pratik-mahalle/threatwatch/docs"
)

type Handlers struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Threat      *handlers.ThreatHandler
	Alert       *handlers.AlertHandler
	Stats       *handlers.StatsHandler
	Remediation *handlers.RemediationHandler
	Newsletter  *handlers.NewsletterHandler
}

// New builds the HTTP handler. stop ends background middleware goroutines.
func New(cfg *config.Config, log *logger.Logger, h *Handlers, stop <-chan struct{}) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(metrics.Middleware)
	// Logger wraps the writer handlers see, so AddLogField reaches it
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders(cfg.Server.Environment == "production"))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst, stop))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, errors.NotFound("Route"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorMessage(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	// Operational endpoints
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		// Auth
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/refresh", h.Auth.RefreshToken)
		r.Post("/auth/logout", h.Auth.Logout)

		r.Post("/subscribe", h.Newsletter.Subscribe)

		// Global views
		r.Get("/alerts/summary", h.Alert.Summary)
		r.Get("/alerts/{id}", h.Alert.Get)
		r.Get("/logs", h.Alert.Logs)

		r.Route("/remediations", func(r chi.Router) {
			r.Get("/", h.Remediation.ListTasks)
			r.Post("/execute", h.Remediation.ExecutePlaybook)
			r.Post("/{id}/action", h.Remediation.PerformAction)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

			// Scoped to the caller
			r.Post("/analyze", h.Threat.Analyze)
			r.Get("/alerts", h.Alert.List)
			r.Get("/stats", h.Stats.Get)

			r.Get("/auth/me", h.Auth.Me)
			r.Get("/users/me/preferences", h.User.GetPreferences)
			r.Put("/users/me/preferences", h.User.UpdatePreferences)
		})
	})

	return r
}
