package httpapi

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"climate-api/internal/config"
)

// NewHandler wraps mux with, from the outside in: tracing, request IDs,
// access logging and, when configured, rate limiting.
func NewHandler(cfg config.Config, mux http.Handler) http.Handler {
	var h http.Handler = mux
	if cfg.RateLimitRPS > 0 {
		h = rateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst), h)
	}
	h = requestLogger(h)
	h = requestID(h)
	return otelhttp.NewHandler(h, "climate-api")
}

func NewServer(cfg config.Config, mux http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewHandler(cfg, mux),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
