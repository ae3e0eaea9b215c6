package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/griffincancode/refreshrated/internal/infrastructure/monitoring"
)

// MetricsAggregator serves the JSON and HTML views over the engine's
// Prometheus metrics.
type MetricsAggregator struct {
	metrics *monitoring.Metrics
}

// NewMetricsAggregator creates a metrics aggregator.
func NewMetricsAggregator(metrics *monitoring.Metrics) *MetricsAggregator {
	return &MetricsAggregator{metrics: metrics}
}

// AggregatedMetrics is the JSON shape returned by /metrics/json.
type AggregatedMetrics struct {
	Timestamp time.Time      `json:"timestamp"`
	Summary   MetricsSummary `json:"summary"`
}

// MetricsSummary provides high-level metrics for dashboards.
type MetricsSummary struct {
	TotalRequests    int64   `json:"total_requests"`
	TotalErrors      int64   `json:"total_errors"`
	AverageLatencyMs float64 `json:"average_latency_ms"`
	ErrorRate        float64 `json:"error_rate"`
	Decisions        int64   `json:"decisions"`
	TouchBoosts      int64   `json:"touch_boosts"`
	IdleDrops        int64   `json:"idle_drops"`
	UptimeSeconds    float64 `json:"uptime_seconds"`
}

// GetAggregatedMetrics returns the current metrics snapshot as JSON.
func (ma *MetricsAggregator) GetAggregatedMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, AggregatedMetrics{
		Timestamp: time.Now(),
		Summary:   ma.calculateSummary(),
	})
}

func (ma *MetricsAggregator) calculateSummary() MetricsSummary {
	snap := ma.metrics.Snapshot()
	avgLatencyMs := 0.0
	errorRate := 0.0
	if snap.RequestCount > 0 {
		avgLatencyMs = (snap.TotalDuration / float64(snap.RequestCount)) * 1000
		errorRate = float64(snap.TotalErrors) / float64(snap.RequestCount)
	}
	return MetricsSummary{
		TotalRequests:    snap.TotalRequests,
		TotalErrors:      snap.TotalErrors,
		AverageLatencyMs: avgLatencyMs,
		ErrorRate:        errorRate,
		Decisions:        snap.Decisions,
		TouchBoosts:      snap.TouchBoosts,
		IdleDrops:        snap.IdleDrops,
		UptimeSeconds:    ma.metrics.UptimeDuration().Seconds(),
	}
}

// GetMetricsDashboard returns a small HTML dashboard over the JSON summary.
func (ma *MetricsAggregator) GetMetricsDashboard(c *gin.Context) {
	html := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Refresh Rate Engine Dashboard</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
            background: #0a0a0a;
            color: #e0e0e0;
            padding: 20px;
        }
        .container { max-width: 900px; margin: 0 auto; }
        h1 {
            font-size: 1.8rem;
            margin-bottom: 10px;
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            -webkit-background-clip: text;
            -webkit-text-fill-color: transparent;
        }
        .subtitle { color: #888; margin-bottom: 30px; }
        .card {
            background: #1a1a1a;
            border-radius: 12px;
            padding: 20px;
            border: 1px solid #333;
            margin-bottom: 20px;
        }
        .metric {
            display: flex;
            justify-content: space-between;
            padding: 10px 0;
            border-bottom: 1px solid #2a2a2a;
        }
        .metric:last-child { border-bottom: none; }
        .metric-label { color: #999; }
        .metric-value { font-weight: 600; color: #fff; font-family: 'Courier New', monospace; }
        .endpoint-link {
            display: inline-block;
            margin: 10px 10px 20px 0;
            padding: 8px 16px;
            background: #2a2a2a;
            color: #667eea;
            text-decoration: none;
            border-radius: 6px;
            font-size: 0.9rem;
            border: 1px solid #333;
        }
        .timestamp { color: #666; text-align: center; margin-top: 20px; font-size: 0.9rem; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Refresh Rate Engine</h1>
        <p class="subtitle">Arbitration and HTTP metrics</p>
        <div>
            <a href="/metrics" class="endpoint-link">Prometheus Metrics</a>
            <a href="/metrics/json" class="endpoint-link">JSON Format</a>
            <a href="/health" class="endpoint-link">Health Check</a>
        </div>
        <div class="card" id="metrics-container">
            <p style="text-align: center; color: #666;">Loading metrics...</p>
        </div>
        <p class="timestamp" id="timestamp"></p>
    </div>
    <script>
        function renderMetrics(data) {
            const s = data.summary || {};
            const rows = [
                ['Total Requests', s.total_requests],
                ['Total Errors', s.total_errors],
                ['Avg Latency (ms)', (s.average_latency_ms || 0).toFixed(2)],
                ['Error Rate', ((s.error_rate || 0) * 100).toFixed(2) + '%'],
                ['Decisions', s.decisions],
                ['Touch Boosts', s.touch_boosts],
                ['Idle Drops', s.idle_drops],
                ['Uptime (s)', (s.uptime_seconds || 0).toFixed(0)],
            ];
            let html = '';
            for (const [label, value] of rows) {
                html += '<div class="metric"><span class="metric-label">' + label + '</span><span class="metric-value">' + value + '</span></div>';
            }
            document.getElementById('metrics-container').innerHTML = html;
            document.getElementById('timestamp').textContent = 'Last updated: ' + new Date(data.timestamp).toLocaleString();
        }
        function loadMetrics() {
            fetch('/metrics/json').then(r => r.json()).then(renderMetrics).catch(() => {
                document.getElementById('metrics-container').innerHTML = '<p style="color:#f87171;">Error loading metrics</p>';
            });
        }
        loadMetrics();
        setInterval(loadMetrics, 5000);
    </script>
</body>
</html>`
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, html)
}
