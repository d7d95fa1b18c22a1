package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	leadsDistributed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_distributed_total",
			Help: "Total per-buyer distribution outcomes",
		},
		[]string{"status"}, // delivered | skipped
	)

	leadCharges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_charges_total",
			Help: "Total lead charges by kind",
		},
		[]string{"kind"}, // paid | free_lead
	)

	leadRefunds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_refunds_total",
			Help: "Total lead returns refunded",
		},
	)

	buyersAutoPaused = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "buyers_auto_paused_total",
			Help: "Total buyers automatically paused for low balance",
		},
	)

	notificationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_errors_total",
			Help: "Total notification dispatch errors by channel",
		},
		[]string{"channel"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordDistribution(status string) {
	leadsDistributed.WithLabelValues(status).Inc()
}

func RecordCharge(freeLead bool) {
	kind := "paid"
	if freeLead {
		kind = "free_lead"
	}
	leadCharges.WithLabelValues(kind).Inc()
}

func RecordRefund() {
	leadRefunds.Inc()
}

func RecordAutoPause() {
	buyersAutoPaused.Inc()
}

func RecordNotificationError(channel string) {
	notificationErrors.WithLabelValues(channel).Inc()
}
