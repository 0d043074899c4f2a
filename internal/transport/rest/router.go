package rest

import (
	"log/slog"
	"net/http"

	"github.com/llyli-app/llyli-backend/internal/config"
	"github.com/llyli-app/llyli-backend/internal/transport/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health  *HealthHandler
	Reviews *ReviewsHandler
	Words   *WordsHandler
}

// NewRouter builds the HTTP handler tree. Health probes are mounted
// outside the auth, CORS, and rate-limit chain so load balancers can
// hit them without credentials. limiter may be nil to disable rate
// limiting (tests).
func NewRouter(h Handlers, validator middleware.TokenValidator, corsCfg config.CORSConfig, limiter *middleware.RateLimiter, perMinute int, log *slog.Logger) http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("GET /api/reviews/queue", h.Reviews.Queue)
	api.HandleFunc("POST /api/reviews", h.Reviews.Submit)
	api.HandleFunc("POST /api/reviews/batch", h.Reviews.SubmitBatch)
	api.HandleFunc("POST /api/reviews/evaluate", h.Reviews.Evaluate)
	api.HandleFunc("POST /api/reviews/session/end", h.Reviews.EndSession)

	api.HandleFunc("POST /api/words", h.Words.Capture)
	api.HandleFunc("GET /api/words", h.Words.List)
	api.HandleFunc("GET /api/words/stats", h.Words.Stats)
	api.HandleFunc("GET /api/words/categories", h.Words.Categories)
	api.HandleFunc("GET /api/words/{id}", h.Words.Get)
	api.HandleFunc("DELETE /api/words/{id}", h.Words.Delete)

	apiMws := []middleware.Middleware{
		middleware.CORS(corsCfg),
		middleware.Auth(validator),
	}
	if limiter != nil && perMinute > 0 {
		apiMws = append([]middleware.Middleware{limiter.Limit(perMinute)}, apiMws...)
	}
	apiChain := middleware.Chain(apiMws...)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	mux.Handle("/api/", apiChain(api))

	outer := middleware.Chain(
		middleware.Recovery(log),
		middleware.RequestID,
		middleware.Logger(log),
	)
	return outer(mux)
}
