// Package debugapi exposes a small HTTP surface for introspecting and
// operating a running ActionServer out of band from the action
// protocol itself: listing tracked goals, requesting a cancel, and
// liveness/metrics endpoints for operators and orchestrators.
package debugapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	applog "github.com/marmos91/actionlib/internal/logger"
	"github.com/marmos91/actionlib/pkg/actionlib"
	"github.com/marmos91/actionlib/pkg/metrics"
)

type handlers struct {
	server *actionlib.ActionServer
}

// Config configures the debug API router.
type Config struct {
	// JWTSecret, when non-empty, requires a valid HMAC bearer token on
	// the cancel route.
	JWTSecret string

	// MetricsEnabled exposes /metrics via the Prometheus registry
	// returned by metrics.GetRegistry.
	MetricsEnabled bool
}

// NewRouter builds the chi router for the debug API.
//
// Routes:
//   - GET  /health          - liveness probe, unauthenticated
//   - GET  /goals           - list tracked goals, unauthenticated
//   - POST /goals/{id}/cancel - request cancellation, bearer-token gated
//   - GET  /metrics         - Prometheus exposition, if enabled
func NewRouter(server *actionlib.ActionServer, cfg Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	h := &handlers{server: server}

	r.Get("/health", h.liveness)
	r.Get("/goals", h.listGoals)

	r.Group(func(r chi.Router) {
		r.Use(requireBearerToken(cfg.JWTSecret))
		r.Post("/goals/{id}/cancel", h.cancelGoal)
	})

	if cfg.MetricsEnabled && metrics.IsEnabled() {
		r.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	}

	return r
}

// isHealthPath reports whether path is a healthcheck endpoint.
func isHealthPath(path string) bool {
	return path == "/health"
}

// requestLogger logs requests using the internal structured logger,
// demoting healthcheck traffic to DEBUG to avoid drowning real activity.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		args := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
		}

		if isHealthPath(r.URL.Path) {
			applog.Debug("debug API request completed", args...)
		} else {
			applog.Info("debug API request completed", args...)
		}
	})
}
