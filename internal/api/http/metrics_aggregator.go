package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mechdyane/desktop/internal/domain/desktop"
	"github.com/mechdyane/desktop/internal/domain/session"
	"github.com/mechdyane/desktop/internal/infrastructure/monitoring"
	"github.com/mechdyane/desktop/internal/infrastructure/resilience"
	"github.com/mechdyane/desktop/internal/shared/types"
)

// MetricsAggregator combines counters, registry statistics and breaker state
// into one JSON document for dashboards that do not scrape Prometheus.
type MetricsAggregator struct {
	metrics  *monitoring.Metrics
	engine   *desktop.Engine
	sessions *session.Manager
	breaker  *resilience.Breaker
}

// NewMetricsAggregator creates an aggregator. sessions and breaker may be nil.
func NewMetricsAggregator(metrics *monitoring.Metrics, engine *desktop.Engine, sessions *session.Manager, breaker *resilience.Breaker) *MetricsAggregator {
	return &MetricsAggregator{
		metrics:  metrics,
		engine:   engine,
		sessions: sessions,
		breaker:  breaker,
	}
}

// MetricsSnapshot represents a snapshot of all service metrics
type MetricsSnapshot struct {
	Timestamp time.Time                  `json:"timestamp"`
	Service   monitoring.MetricsSnapshot `json:"service"`
	Windows   *types.Stats               `json:"windows,omitempty"`
	Sessions  *session.Stats             `json:"sessions,omitempty"`
	Content   *BreakerSnapshot           `json:"content,omitempty"`
	Summary   MetricsSummary             `json:"summary"`
}

// BreakerSnapshot is the state of the content circuit breaker
type BreakerSnapshot struct {
	Name                string `json:"name"`
	State               string `json:"state"`
	ConsecutiveFailures uint32 `json:"consecutive_failures"`
	TotalFailures       uint32 `json:"total_failures"`
}

// MetricsSummary provides high-level metrics
type MetricsSummary struct {
	TotalRequests     int64   `json:"total_requests"`
	AverageLatencyMs  float64 `json:"average_latency_ms"`
	ErrorRate         float64 `json:"error_rate"`
	ActiveConnections int64   `json:"active_connections"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// GetAggregatedMetrics returns all metrics as JSON
func (ma *MetricsAggregator) GetAggregatedMetrics(c *gin.Context) {
	snap := MetricsSnapshot{Timestamp: time.Now()}
	if ma.metrics != nil {
		snap.Service = ma.metrics.Snapshot()
		snap.Summary = summarize(snap.Service)
	}

	// The engine may be stopping; the rest of the document is still useful
	if stats, err := ma.engine.Stats(c.Request.Context()); err == nil {
		snap.Windows = &stats
	}
	if ma.sessions != nil {
		stats := ma.sessions.Stats()
		snap.Sessions = &stats
	}
	if ma.breaker != nil {
		counts := ma.breaker.Counts()
		snap.Content = &BreakerSnapshot{
			Name:                ma.breaker.Name(),
			State:               ma.breaker.State().String(),
			ConsecutiveFailures: counts.ConsecutiveFailures,
			TotalFailures:       counts.TotalFailures,
		}
	}

	c.JSON(http.StatusOK, snap)
}

func summarize(s monitoring.MetricsSnapshot) MetricsSummary {
	var errorRate float64
	if s.TotalRequests > 0 {
		errorRate = float64(s.TotalErrors) / float64(s.TotalRequests)
	}
	return MetricsSummary{
		TotalRequests:     s.TotalRequests,
		AverageLatencyMs:  s.AvgDurationMs,
		ErrorRate:         errorRate,
		ActiveConnections: s.ActiveConnections,
		UptimeSeconds:     s.UptimeSeconds,
	}
}
