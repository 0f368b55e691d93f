package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels. They follow the failure classes of the error mapping so a
// dashboard can tell overload from a missing model without parsing bodies.
const (
	outcomeOK          = "ok"
	outcomeClientError = "client_error"
	outcomeTooBusy     = "too_busy"
	outcomeUnavailable = "unavailable"
	outcomeTimeout     = "timeout"
	outcomeServerError = "server_error"

	// unmatchedRoute labels requests no route claimed, keeping raw paths out
	// of the label set.
	unmatchedRoute = "unmatched"
)

var (
	apiRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auracore",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "API requests by route, method and outcome.",
	}, []string{"route", "method", "outcome"})

	apiLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "auracore",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "API request latency. Buckets reach a minute for generation.",
		Buckets:   []float64{.005, .025, .1, .25, 1, 2.5, 5, 10, 30, 60},
	}, []string{"route", "outcome"})

	apiInflight = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "auracore",
		Subsystem: "api",
		Name:      "inflight_requests",
		Help:      "API requests currently being served.",
	}, []string{"route"})

	generateFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auracore",
		Subsystem: "generate",
		Name:      "failures_total",
		Help:      "Failed generate calls by failure code.",
	}, []string{"code"})
)

func init() {
	prometheus.MustRegister(apiRequests, apiLatency, apiInflight, generateFailures)
}

// outcomeFor classifies an HTTP status.
func outcomeFor(status int) string {
	switch {
	case status < http.StatusBadRequest:
		return outcomeOK
	case status == http.StatusTooManyRequests:
		return outcomeTooBusy
	case status == http.StatusServiceUnavailable:
		return outcomeUnavailable
	case status == http.StatusGatewayTimeout:
		return outcomeTimeout
	case status < http.StatusInternalServerError:
		return outcomeClientError
	default:
		return outcomeServerError
	}
}

// MetricsMiddleware records one observation per request. The route label is
// the chi pattern, read after routing has run.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		inflight := apiInflight.WithLabelValues(inflightRoute(r))
		inflight.Inc()
		defer inflight.Dec()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route, outcome := routeLabel(r), outcomeFor(status)
		apiRequests.WithLabelValues(route, r.Method, outcome).Inc()
		apiLatency.WithLabelValues(route, outcome).Observe(time.Since(start).Seconds())
	})
}

func routeLabel(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return unmatchedRoute
}

// inflightRoute asks the router for the pattern before serving, since the
// request's own route context is only filled in while routing runs.
func inflightRoute(r *http.Request) string {
	rc := chi.RouteContext(r.Context())
	if rc == nil || rc.Routes == nil {
		return unmatchedRoute
	}
	if p := rc.Routes.Find(chi.NewRouteContext(), r.Method, r.URL.Path); p != "" {
		return p
	}
	return unmatchedRoute
}

// recordGenerateFailure counts a failed generate call under its failure code.
func recordGenerateFailure(code string) {
	if code == "" {
		code = "unknown"
	}
	generateFailures.WithLabelValues(code).Inc()
}
