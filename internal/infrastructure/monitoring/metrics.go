package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the refresh-rate engine and its
// HTTP control surface.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Arbitration metrics
	DecisionsTotal    *prometheus.CounterVec
	DecisionDuration  prometheus.Histogram
	TouchOverrides    prometheus.Counter
	IdleOverrides     prometheus.Counter
	MemoHits          prometheus.Counter
	MemoMisses        prometheus.Counter
	FrameRateOwners   prometheus.Gauge
	PolicyRejections  *prometheus.CounterVec
	CurrentRefreshFps prometheus.Gauge

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time

	registry *prometheus.Registry
	snapshot MetricsSnapshot
	mu       sync.RWMutex
}

// MetricsSnapshot holds current metric values for the JSON dashboard.
type MetricsSnapshot struct {
	TotalRequests int64
	TotalErrors   int64
	TotalDuration float64
	RequestCount  int64
	Decisions     int64
	TouchBoosts   int64
	IdleDrops     int64
}

// NewMetrics creates a new metrics collector bound to its own Prometheus
// registry. Each Engine/HTTP server pair owns one Metrics instance and
// exposes it via Handler(); a private registry (rather than the global
// DefaultRegisterer) lets tests construct multiple Metrics instances in
// the same process without a duplicate-registration panic.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),
		registry:  reg,

		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refreshrated_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "refreshrated_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		RequestSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "refreshrated_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "refreshrated_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000},
			},
			[]string{"method", "path"},
		),

		DecisionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refreshrated_decisions_total",
				Help: "Total number of BestRefreshRate arbitration decisions",
			},
			[]string{"chosen_mode"},
		),
		DecisionDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "refreshrated_decision_duration_seconds",
				Help:    "Time spent inside a single arbitration decision",
				Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
			},
		),
		TouchOverrides: f.NewCounter(
			prometheus.CounterOpts{
				Name: "refreshrated_touch_overrides_total",
				Help: "Number of decisions where the touch boost rule fired",
			},
		),
		IdleOverrides: f.NewCounter(
			prometheus.CounterOpts{
				Name: "refreshrated_idle_overrides_total",
				Help: "Number of decisions where the idle-drop rule fired",
			},
		),
		MemoHits: f.NewCounter(
			prometheus.CounterOpts{
				Name: "refreshrated_memo_hits_total",
				Help: "Number of BestRefreshRate calls served from the memo cache",
			},
		),
		MemoMisses: f.NewCounter(
			prometheus.CounterOpts{
				Name: "refreshrated_memo_misses_total",
				Help: "Number of BestRefreshRate calls that recomputed arbitration",
			},
		),
		FrameRateOwners: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "refreshrated_frame_rate_override_owners",
				Help: "Number of owner uids currently holding a frame-rate override",
			},
		),
		PolicyRejections: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "refreshrated_policy_rejections_total",
				Help: "Number of policy installs rejected by validation",
			},
			[]string{"reason"},
		),
		CurrentRefreshFps: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "refreshrated_current_refresh_fps",
				Help: "The display's current refresh rate in Hz",
			},
		),

		Uptime: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "refreshrated_uptime_seconds",
				Help: "Process uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

// Handler returns the Prometheus exposition handler for this Metrics
// instance's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if len(status) > 0 && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordDecision records the outcome of a single arbitration decision.
func (m *Metrics) RecordDecision(chosenMode string, duration time.Duration, touch, idle bool) {
	m.DecisionsTotal.WithLabelValues(chosenMode).Inc()
	m.DecisionDuration.Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.Decisions++
	if touch {
		m.snapshot.TouchBoosts++
	}
	if idle {
		m.snapshot.IdleDrops++
	}
	m.mu.Unlock()

	if touch {
		m.TouchOverrides.Inc()
	}
	if idle {
		m.IdleOverrides.Inc()
	}
}

// RecordMemoHit records whether a BestRefreshRate call was served from cache.
func (m *Metrics) RecordMemoHit(hit bool) {
	if hit {
		m.MemoHits.Inc()
		return
	}
	m.MemoMisses.Inc()
}

// SetFrameRateOwners sets the number of uids currently holding an override.
func (m *Metrics) SetFrameRateOwners(count int) {
	m.FrameRateOwners.Set(float64(count))
}

// RecordPolicyRejection records a rejected policy install by reason.
func (m *Metrics) RecordPolicyRejection(reason string) {
	m.PolicyRejections.WithLabelValues(reason).Inc()
}

// SetCurrentRefreshFps sets the current refresh rate gauge.
func (m *Metrics) SetCurrentRefreshFps(fps float64) {
	m.CurrentRefreshFps.Set(fps)
}

// Snapshot returns a copy of the current metrics snapshot for JSON APIs.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// UptimeDuration returns process uptime.
func (m *Metrics) UptimeDuration() time.Duration {
	return time.Since(m.startTime)
}
