// internal/app/system/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Reorders = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mutuhub",
		Subsystem: "ordering",
		Name:      "reorders_total",
		Help:      "Reorder requests applied, by collection.",
	}, []string{"collection"})

	ReorderSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mutuhub",
		Subsystem: "ordering",
		Name:      "skipped_items_total",
		Help:      "Submitted ids skipped because they belong to another parent.",
	}, []string{"collection"})

	PeriodeActivations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "mutuhub",
		Subsystem: "periode",
		Name:      "activations_total",
		Help:      "Periode activations committed.",
	})

	HierarchyRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mutuhub",
		Subsystem: "hierarchy",
		Name:      "rejections_total",
		Help:      "Unit assignments rejected by the hierarchy validator, by field.",
	}, []string{"field"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mutuhub",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route pattern, method and status class.",
	}, []string{"route", "method", "result"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mutuhub",
		Subsystem: "http",
		Name:      "latency_seconds",
		Help:      "HTTP request latency by route pattern.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"route", "method"})
)

// RecordReorder counts one applied reorder and its skipped ids.
func RecordReorder(collection string, skipped int64) {
	Reorders.WithLabelValues(collection).Inc()
	if skipped > 0 {
		ReorderSkipped.WithLabelValues(collection).Add(float64(skipped))
	}
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Instrument records request count and latency, labelled by the chi route
// pattern so ids in paths do not explode cardinality.
func Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		httpRequests.WithLabelValues(route, r.Method, resultClass(rec.status)).Inc()
		httpLatency.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

func resultClass(status int) string {
	return strconv.Itoa(status/100) + "xx"
}
