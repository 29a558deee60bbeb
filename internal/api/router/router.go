package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kreditline/leadbridge/internal/http/handlers"
	httpmiddleware "github.com/kreditline/leadbridge/internal/http/middleware"
	"github.com/kreditline/leadbridge/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	LeadForm           *handlers.LeadFormHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.LeadForm.HealthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/bitrix24", func(r chi.Router) {
		r.Post("/lead", cfg.LeadForm.SubmitLead)
		r.Options("/lead", cfg.LeadForm.Preflight)
	})

	// Legacy path still referenced by older embeds of the integration script.
	r.Post("/bitrix24_handler.php", cfg.LeadForm.SubmitLead)
	r.Options("/bitrix24_handler.php", cfg.LeadForm.Preflight)

	return r
}
