package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/brenwarren/trivia-api/internal/api"
	"github.com/brenwarren/trivia-api/internal/config"
	"github.com/brenwarren/trivia-api/internal/metrics"
)

// Check is a named readiness probe for a backing dependency.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// Options carries the collaborators of the HTTP server.
type Options struct {
	Handlers *api.Handlers
	Metrics  *metrics.Registry
	// Gatherer serves /metrics. Defaults to the global Prometheus registry.
	Gatherer prometheus.Gatherer
	Checks   []Check
}

// NewHTTPServer wires the trivia endpoints and the operational routes
// behind the shared middleware chain.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, opts Options) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewHandler(cfg.CORS, logger, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewHandler builds the routed handler. Exposed separately so tests can
// drive it without a listener.
func NewHandler(corsCfg config.CORS, logger zerolog.Logger, opts Options) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, `{"status":"ok"}`)
	})
	mux.HandleFunc("GET /readyz", readiness(logger, opts.Checks))

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	if opts.Handlers != nil {
		opts.Handlers.Register(mux)
	}

	var handler http.Handler = jsonFallback(mux)
	if opts.Metrics != nil {
		handler = opts.Metrics.Middleware(handler)
	}
	handler = withCORS(corsCfg)(handler)
	return requestLogger(logger)(handler)
}

func readiness(logger zerolog.Logger, checks []Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		for _, check := range checks {
			if err := check.Ping(ctx); err != nil {
				logger.Error().Err(err).Str("dependency", check.Name).Msg("readiness check failed")
				writeStatus(w, http.StatusServiceUnavailable, `{"status":"unavailable","dependency":"`+check.Name+`"}`)
				return
			}
		}
		writeStatus(w, http.StatusOK, `{"status":"ready"}`)
	}
}

func writeStatus(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
