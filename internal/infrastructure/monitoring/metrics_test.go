package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsIsolatedRegistries(t *testing.T) {
	a := NewMetrics(prometheus.NewRegistry())
	b := NewMetrics(prometheus.NewRegistry())

	a.RecordCommand("open", "opened", time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(a.WindowCommands.WithLabelValues("open", "opened")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.WindowCommands.WithLabelValues("open", "opened")))
}

func TestSnapshot(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordHTTPRequest("GET", "/windows", "200", 10*time.Millisecond, 0, 100)
	m.RecordHTTPRequest("POST", "/windows/:id/open", "400", 30*time.Millisecond, 10, 20)
	m.SetWindows(3, 1)
	m.IncWSConnections()

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.TotalRequests)
	assert.Equal(t, int64(1), s.TotalErrors)
	assert.Equal(t, int64(3), s.OpenWindows)
	assert.Equal(t, int64(1), s.ActiveConnections)
	assert.InDelta(t, 20.0, s.AvgDurationMs, 0.001)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WindowsMinimized))
}

func TestMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics(prometheus.NewRegistry())

	r := gin.New()
	r.Use(Middleware(m))
	r.POST("/windows/:id/open", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/windows/calc/open", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST", "/windows/:id/open", "200")))
}

func TestTimerNilMetrics(t *testing.T) {
	assert.NotPanics(t, func() { NewTimer(nil, "open").Stop("opened") })
}
