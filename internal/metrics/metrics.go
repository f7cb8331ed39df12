package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/brenwarren/trivia-api/internal/quiz"
)

// Registry holds the Prometheus collectors of the trivia API.
type Registry struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	inFlight  prometheus.Gauge
	quizDraws *prometheus.CounterVec
}

var _ quiz.Recorder = (*Registry)(nil)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Registry {
	r := &Registry{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "trivia",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "trivia",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		inFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "trivia",
				Subsystem: "http",
				Name:      "requests_in_flight",
				Help:      "Number of HTTP requests currently being served",
			},
		),
		quizDraws: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "trivia",
				Subsystem: "quiz",
				Name:      "draws_total",
				Help:      "Quiz question draws by outcome",
			},
			[]string{"outcome"},
		),
	}
	reg.MustRegister(r.requests, r.duration, r.inFlight, r.quizDraws)
	return r
}

// ObserveDraw counts one quiz draw.
func (r *Registry) ObserveDraw(outcome quiz.Outcome) {
	r.quizDraws.WithLabelValues(string(outcome)).Inc()
}

// Middleware records per-route request metrics. Routes are labelled by
// their ServeMux pattern to keep cardinality bounded.
func (r *Registry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.inFlight.Inc()
		defer r.inFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, req)

		route := req.Pattern
		if route == "" {
			route = "unmatched"
		}
		r.duration.WithLabelValues(route, req.Method).Observe(time.Since(start).Seconds())
		r.requests.WithLabelValues(route, req.Method, strconv.Itoa(rec.status)).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
