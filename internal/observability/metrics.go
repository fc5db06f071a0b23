package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/movequote/movequote/internal/quote"
	"github.com/movequote/movequote/internal/snapshot"
)

// Metrics collects Prometheus metrics for the service.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	quotesTotal     *prometheus.CounterVec
	quoteFinalYen   prometheus.Histogram
	persistTotal    *prometheus.CounterVec
}

// NewMetrics initialises the registry and base metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "movequote_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "movequote_http_request_duration_seconds",
		Help:    "HTTP request duration per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "movequote_quotes_composed_total",
		Help: "Composed quotes, split by whether a season rule applied.",
	}, []string{"seasonal"})
	finalYen := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "movequote_quote_final_price_yen",
		Help:    "Distribution of final quoted prices.",
		Buckets: []float64{30000, 50000, 80000, 120000, 200000, 400000},
	})
	persist := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "movequote_snapshot_persist_total",
		Help: "Snapshot persistence attempts by collection and outcome.",
	}, []string{"collection", "outcome"})
	registry.MustRegister(requests, duration, quotes, finalYen, persist)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		quotesTotal:     quotes,
		quoteFinalYen:   finalYen,
		persistTotal:    persist,
	}
}

// Handler returns the http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records metrics for every HTTP request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveQuote implements quote.Recorder.
func (m *Metrics) ObserveQuote(res quote.Result, seasonal bool) {
	if m == nil {
		return
	}
	m.quotesTotal.WithLabelValues(strconv.FormatBool(seasonal)).Inc()
	m.quoteFinalYen.Observe(float64(res.FinalPrice))
}

// InstrumentPersister counts every Persist outcome of p.
func (m *Metrics) InstrumentPersister(p snapshot.Persister) snapshot.Persister {
	if m == nil || p == nil {
		return p
	}
	return instrumentedPersister{next: p, counter: m.persistTotal}
}

type instrumentedPersister struct {
	next    snapshot.Persister
	counter *prometheus.CounterVec
}

func (p instrumentedPersister) Persist(ctx context.Context, ks snapshot.Keyspace, v any) error {
	err := p.next.Persist(ctx, ks, v)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	p.counter.WithLabelValues(ks.Name, outcome).Inc()
	return err
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
