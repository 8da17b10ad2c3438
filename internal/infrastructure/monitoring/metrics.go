package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Window metrics
	WindowsOpen      prometheus.Gauge
	WindowsMinimized prometheus.Gauge
	WindowCommands   *prometheus.CounterVec
	CommandDuration  *prometheus.HistogramVec
	SidebarHidden    prometheus.Gauge

	// Gesture metrics
	Gestures     *prometheus.CounterVec
	GestureMoves prometheus.Counter

	// Content metrics
	ContentLoads    *prometheus.CounterVec
	ContentDuration *prometheus.HistogramVec

	// Session metrics
	SessionsStored   prometheus.Gauge
	SessionsSaved    prometheus.Counter
	SessionsRestored prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec
	WSThrottled   prometheus.Counter

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	OpenWindows       int64   `json:"open_windows"`
	ActiveConnections int64   `json:"active_connections"`
	TotalCommands     int64   `json:"total_commands"`
	AvgDurationMs     float64 `json:"avg_duration_ms"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
	totalDuration     float64
}

// NewMetrics creates the collectors and registers them on reg. Passing a
// fresh prometheus.NewRegistry() keeps tests independent of each other.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "desktop_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "desktop_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "desktop_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		// Window metrics
		WindowsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_windows_open",
				Help: "Number of open windows",
			},
		),
		WindowsMinimized: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_windows_minimized",
				Help: "Number of open windows that are minimized",
			},
		),
		WindowCommands: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_window_commands_total",
				Help: "Registry commands by command and outcome",
			},
			[]string{"command", "outcome"},
		),
		CommandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "desktop_command_duration_seconds",
				Help:    "Time from submission to completion on the engine loop",
				Buckets: []float64{.00005, .0001, .0005, .001, .005, .01, .05, .1},
			},
			[]string{"command"},
		),
		SidebarHidden: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_sidebar_hidden",
				Help: "1 when the sidebar is hidden",
			},
		),

		// Gesture metrics
		Gestures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_gestures_total",
				Help: "Gesture lifecycle events by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		GestureMoves: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_gesture_moves_total",
				Help: "Pointer moves applied to a window",
			},
		),

		// Content metrics
		ContentLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_content_loads_total",
				Help: "Panel content loads by loader and outcome",
			},
			[]string{"source", "outcome"},
		),
		ContentDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "desktop_content_load_duration_seconds",
				Help:    "Panel content load duration in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"source"},
		),

		// Session metrics
		SessionsStored: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_sessions_stored",
				Help: "Number of stored desktop sessions",
			},
		),
		SessionsSaved: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_sessions_saved_total",
				Help: "Total number of sessions saved",
			},
		),
		SessionsRestored: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_sessions_restored_total",
				Help: "Total number of sessions restored",
			},
		),

		// WebSocket metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
		WSThrottled: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_ws_throttled_total",
				Help: "Inbound WebSocket messages dropped by the rate limiter",
			},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "desktop_uptime_seconds",
			Help: "Service uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordCommand records one registry command
func (m *Metrics) RecordCommand(command, outcome string, duration time.Duration) {
	m.WindowCommands.WithLabelValues(command, outcome).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalCommands++
	m.mu.Unlock()
}

// RecordGesture records a gesture begin, end or rejection
func (m *Metrics) RecordGesture(kind, outcome string) {
	m.Gestures.WithLabelValues(kind, outcome).Inc()
}

// IncGestureMoves counts an applied pointer move
func (m *Metrics) IncGestureMoves() {
	m.GestureMoves.Inc()
}

// RecordContentLoad records a panel load
func (m *Metrics) RecordContentLoad(source, outcome string, duration time.Duration) {
	m.ContentLoads.WithLabelValues(source, outcome).Inc()
	m.ContentDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// SetWindows sets the open and minimized window gauges
func (m *Metrics) SetWindows(open, minimized int) {
	m.WindowsOpen.Set(float64(open))
	m.WindowsMinimized.Set(float64(minimized))

	m.mu.Lock()
	m.snapshot.OpenWindows = int64(open)
	m.mu.Unlock()
}

// SetSidebarHidden records the sidebar visibility
func (m *Metrics) SetSidebarHidden(hidden bool) {
	if hidden {
		m.SidebarHidden.Set(1)
		return
	}
	m.SidebarHidden.Set(0)
}

// SetSessionsStored sets the number of stored sessions
func (m *Metrics) SetSessionsStored(count int) {
	m.SessionsStored.Set(float64(count))
}

// IncSessionsSaved increments the sessions saved counter
func (m *Metrics) IncSessionsSaved() {
	m.SessionsSaved.Inc()
}

// IncSessionsRestored increments the sessions restored counter
func (m *Metrics) IncSessionsRestored() {
	m.SessionsRestored.Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSThrottled counts an inbound message dropped by the rate limiter
func (m *Metrics) IncWSThrottled() {
	m.WSThrottled.Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns the current values for the JSON stats endpoint
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	if s.TotalRequests > 0 {
		s.AvgDurationMs = s.totalDuration / float64(s.TotalRequests) * 1000
	}
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
