package openapi_server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	producedRoutes     *prometheus.CounterVec
	skippedVessels     *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	responseStatusCode *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		producedRoutes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lanerouting",
			Name:      "routes_produced_total",
			Help:      "The total number of produced routes",
		}, []string{"route_type"}),
		skippedVessels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lanerouting",
			Name:      "vessels_skipped_total",
			Help:      "The total number of vessels without a route",
		}, []string{"reason"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lanerouting",
			Name:      "request_duration_seconds",
			Help:      "The duration of request",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"method", "path"}),
		responseStatusCode: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lanerouting",
			Name:      "response_status_code",
			Help:      "The status code of http response",
		}, []string{"status", "method", "path"}),
	}
	reg.MustRegister(m.producedRoutes, m.skippedVessels, m.httpDuration, m.responseStatusCode)
	return m
}

func (m *Metrics) observe(resp RoutesResponse) {
	if m == nil {
		return
	}
	for _, r := range resp.Routes {
		m.producedRoutes.WithLabelValues(r.RouteType).Inc()
	}
	for _, s := range resp.Skipped {
		m.skippedVessels.WithLabelValues(s.Reason).Inc()
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// PromeHttpMiddleware records duration and status per route template.
func PromeHttpMiddleware(m *Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					path = tpl
				}
			}
			rw := &responseWriter{w, http.StatusOK}
			start := time.Now()

			next.ServeHTTP(rw, r)

			m.httpDuration.With(prometheus.Labels{"method": r.Method, "path": path}).Observe(time.Since(start).Seconds())
			m.responseStatusCode.With(prometheus.Labels{"status": strconv.Itoa(rw.statusCode), "method": r.Method, "path": path}).Inc()
		})
	}
}
