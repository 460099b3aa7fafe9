package api

import (
	"log"
	"net/http"
	"time"

	"rizzlet-backend/internal/config"
	"rizzlet-backend/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterDependencies holds all the dependencies required by the router setup,
// primarily handlers and configuration.
type RouterDependencies struct {
	AuthHandler  *handlers.AuthHandler
	ReplyHandler *handlers.ReplyHandlers
	OCRHandler   *handlers.OCRHandlers
	UsageHandler *handlers.UsageHandlers
	Config       *config.Config
}

// NewRouter creates and configures the main Chi router for the application.
func NewRouter(deps RouterDependencies) *chi.Mux {
	r := chi.NewRouter()

	// --- Base Middleware Stack ---
	r.Use(middleware.RequestID)                 // Inject request ID into context
	r.Use(middleware.RealIP)                    // Use X-Forwarded-For or X-Real-IP
	r.Use(middleware.Logger)                    // Log requests
	r.Use(middleware.Recoverer)                 // Recover from panics, return 500
	r.Use(middleware.Timeout(90 * time.Second)) // Provider fallback chains can be slow

	// General per-IP rate limit over the configured window
	r.Use(RateLimitMiddleware(deps.Config.RateLimitMax, deps.Config.RateLimitWindow))

	// --- CORS Configuration ---
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- Public Routes (No JWT Required) ---
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/v1/auth", func(r chi.Router) {
		if deps.AuthHandler == nil {
			panic("AuthHandler dependency is nil in router setup")
		}
		r.Post("/signup", deps.AuthHandler.HandleSignup)
		r.Post("/login", deps.AuthHandler.HandleLogin)
	})

	// --- Authenticated Routes (JWT Required) ---
	r.Route("/v1", func(r chi.Router) {
		r.Use(JwtAuthMiddleware(deps.Config.JWTSecret))

		// Stricter limit for endpoints that spend provider tokens
		aiLimiter := RateLimitMiddleware(deps.Config.AIRateLimitMax, deps.Config.RateLimitWindow)

		if deps.ReplyHandler != nil {
			r.Route("/replies", func(r chi.Router) {
				r.Use(aiLimiter)
				r.Post("/generate", deps.ReplyHandler.HandleGenerateReplies)
				r.Post("/analyze", deps.ReplyHandler.HandleAnalyzeConversation)
				r.Post("/starters", deps.ReplyHandler.HandleGenerateStarters)
			})
		} else {
			log.Println("WARN: ReplyHandler dependency is nil, skipping /v1/replies routes.")
		}

		if deps.OCRHandler != nil {
			r.Route("/ocr", func(r chi.Router) {
				r.Use(aiLimiter)
				r.Post("/extract", deps.OCRHandler.HandleExtract)
			})
		} else {
			log.Println("WARN: OCRHandler dependency is nil, skipping /v1/ocr routes.")
		}

		if deps.UsageHandler != nil {
			r.Route("/usage", func(r chi.Router) {
				r.Get("/stats", deps.UsageHandler.HandleGetStats)
			})
		} else {
			log.Println("WARN: UsageHandler dependency is nil, skipping /v1/usage routes.")
		}
	})

	return r
}
