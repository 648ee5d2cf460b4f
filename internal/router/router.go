package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"portfolio-backend/internal/handlers"
	"portfolio-backend/internal/middleware"
)

// New wires the API routes. limiter may be nil to disable rate limiting.
// trustProxyHeaders lets X-Forwarded-For and X-Real-IP set the client address
// the limiter keys on; enable it only behind a proxy that overwrites them.
func New(
	chatHandler *handlers.ChatHandler,
	portfolioHandler *handlers.PortfolioHandler,
	assistHandler *handlers.AssistHandler,
	limiter *middleware.RateLimiter,
	frontendURL string,
	trustProxyHeaders bool,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	if trustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		// ──── Model-backed Routes ────
		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(limiter.Middleware)
			}
			r.Post("/test-key", chatHandler.TestKey)
			r.Post("/chat", chatHandler.Chat)
			r.Post("/generate-portfolio", portfolioHandler.Generate)
			r.Post("/assist", assistHandler.Assist)
		})
	})

	return r
}
