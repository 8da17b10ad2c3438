package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mechdyane/desktop/internal/domain/desktop"
	"github.com/mechdyane/desktop/internal/domain/session"
	"github.com/mechdyane/desktop/internal/domain/window"
	"github.com/mechdyane/desktop/internal/infrastructure/logging"
	"github.com/mechdyane/desktop/internal/infrastructure/monitoring"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	engine   *desktop.Engine
	sessions *session.Manager
	logger   *logging.Logger
	log      *zap.Logger
	metrics  *monitoring.Metrics
}

// NewHandlers creates a new handler set. metrics may be nil.
func NewHandlers(engine *desktop.Engine, sessions *session.Manager, logger *logging.Logger, metrics *monitoring.Metrics) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		engine:   engine,
		sessions: sessions,
		logger:   logger,
		log:      logger.Component("http"),
		metrics:  metrics,
	}
}

// Register adds every route to r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)

	r.GET("/windows", h.ListWindows)
	r.GET("/windows/:id", h.GetWindow)
	r.GET("/windows/:id/content", h.GetContent)
	r.POST("/windows/:id/open", h.OpenWindow)
	r.POST("/windows/:id/close", h.windowCommand("close", h.engine.Close))
	r.POST("/windows/:id/minimize", h.windowCommand("minimize", h.engine.Minimize))
	r.POST("/windows/:id/maximize", h.windowCommand("toggle_maximize", h.engine.ToggleMaximize))
	r.POST("/windows/:id/focus", h.windowCommand("focus", h.engine.Focus))
	r.POST("/windows/:id/reset-scale", h.windowCommand("reset_scale", h.engine.ResetScale))
	r.PUT("/windows/:id/scale", h.SetScale)

	r.PUT("/viewport", h.SetViewport)
	r.GET("/shell", h.Shell)
	r.POST("/shell/click", h.Click)
	r.GET("/desktop/icons", h.DesktopIcons)
	r.GET("/stats", h.Stats)

	r.GET("/catalog", h.ListCatalog)
	r.GET("/catalog/search", h.SearchCatalog)

	if h.sessions != nil {
		r.POST("/sessions", h.SaveSession)
		r.GET("/sessions", h.ListSessions)
		r.GET("/sessions/:id", h.GetSession)
		r.POST("/sessions/:id/restore", h.RestoreSession)
		r.DELETE("/sessions/:id", h.DeleteSession)
	}

	r.POST("/logs", h.StreamLogs)
	r.GET("/logs/level", h.GetLogLevel)
	r.PUT("/logs/level", h.SetLogLevel)
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Desktop Engine (Go)",
		"version": "0.3.0",
	})
}

// Health reports whether the engine loop is responsive
func (h *Handlers) Health(c *gin.Context) {
	stats, err := h.engine.Stats(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}

	resp := gin.H{
		"status":  "healthy",
		"windows": stats,
	}
	if h.sessions != nil {
		resp["sessions"] = h.sessions.Stats()
	}
	c.JSON(http.StatusOK, resp)
}

// ListWindows lists open windows by z order or taskbar order
func (h *Handlers) ListWindows(c *gin.Context) {
	order := desktop.Order(c.DefaultQuery("order", string(desktop.OrderZ)))
	if order != desktop.OrderZ && order != desktop.OrderTaskbar {
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must be z or taskbar"})
		return
	}

	windows, err := h.engine.Windows(c.Request.Context(), order)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":   order,
		"windows": windows,
	})
}

// GetWindow returns one window record, including closed windows
func (h *Handlers) GetWindow(c *gin.Context) {
	id := c.Param("id")
	if err := validateID(id, "window_id"); err != nil {
		badRequest(c, err)
		return
	}

	w, ok, err := h.engine.Window(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "window not found", "id": id})
		return
	}
	c.JSON(http.StatusOK, w)
}

// GetContent returns the loaded panel of an open window
func (h *Handlers) GetContent(c *gin.Context) {
	id := c.Param("id")
	if err := validateID(id, "window_id"); err != nil {
		badRequest(c, err)
		return
	}

	panel, ok, err := h.engine.Panel(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "content not loaded", "id": id})
		return
	}
	c.JSON(http.StatusOK, panel)
}

// OpenRequest carries optional open hints
type OpenRequest struct {
	Title  string `json:"title"`
	Icon   string `json:"icon"`
	Source string `json:"source"`
}

// OpenWindow opens, restores, focuses or toggles a window
func (h *Handlers) OpenWindow(c *gin.Context) {
	id := c.Param("id")
	if err := validateID(id, "window_id"); err != nil {
		badRequest(c, err)
		return
	}

	var req OpenRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	source, err := window.ParseSource(req.Source)
	if err != nil {
		badRequest(c, err)
		return
	}

	timer := monitoring.NewTimer(h.metrics, "open")
	outcome, err := h.engine.Open(c.Request.Context(), id, window.OpenOptions{
		Title:  req.Title,
		Icon:   req.Icon,
		Source: source,
	})
	if err != nil {
		timer.Stop("error")
		respondError(c, err)
		return
	}
	timer.Stop(string(outcome))

	h.respondWithState(c, gin.H{
		"success": outcome != window.OutcomeRejected,
		"id":      id,
		"outcome": outcome,
	})
}

// windowCommand builds a handler for a boolean registry command
func (h *Handlers) windowCommand(name string, run func(context.Context, string) (bool, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if err := validateID(id, "window_id"); err != nil {
			badRequest(c, err)
			return
		}

		timer := monitoring.NewTimer(h.metrics, name)
		ok, err := run(c.Request.Context(), id)
		if err != nil {
			timer.Stop("error")
			respondError(c, err)
			return
		}
		timer.Stop(outcomeLabel(ok))

		h.respondWithState(c, gin.H{
			"success": ok,
			"id":      id,
		})
	}
}

// ScaleRequest sets a content scale
type ScaleRequest struct {
	Scale float64 `json:"scale" binding:"required,gt=0"`
}

// SetScale sets a window's content scale, clamped to the allowed range
func (h *Handlers) SetScale(c *gin.Context) {
	id := c.Param("id")
	if err := validateID(id, "window_id"); err != nil {
		badRequest(c, err)
		return
	}
	var req ScaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	timer := monitoring.NewTimer(h.metrics, "set_scale")
	scale, ok, err := h.engine.SetScale(c.Request.Context(), id, req.Scale)
	if err != nil {
		timer.Stop("error")
		respondError(c, err)
		return
	}
	timer.Stop(outcomeLabel(ok))

	h.respondWithState(c, gin.H{
		"success": ok,
		"id":      id,
		"scale":   scale,
	})
}

// ViewportRequest reports the display size
type ViewportRequest struct {
	Width  int `json:"width" binding:"required,gt=0"`
	Height int `json:"height" binding:"required,gt=0"`
}

// SetViewport records a new display size and refits windows when needed
func (h *Handlers) SetViewport(c *gin.Context) {
	var req ViewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	timer := monitoring.NewTimer(h.metrics, "set_viewport")
	vp, err := h.engine.SetViewport(c.Request.Context(), req.Width, req.Height)
	if err != nil {
		timer.Stop("error")
		respondError(c, err)
		return
	}
	timer.Stop("ok")

	h.respondWithState(c, gin.H{
		"success":  true,
		"viewport": vp,
	})
}

// Shell returns the sidebar, taskbar and render frames
func (h *Handlers) Shell(c *gin.Context) {
	state, err := h.engine.State(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ClickRequest describes a click on a shell element
type ClickRequest struct {
	Target string `json:"target" binding:"required"`
	ID     string `json:"id" binding:"required"`
}

// Click routes a taskbar, sidebar, desktop, search or shortcut click
func (h *Handlers) Click(c *gin.Context) {
	var req ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := validateID(req.ID, "id"); err != nil {
		badRequest(c, err)
		return
	}

	timer := monitoring.NewTimer(h.metrics, "click_"+req.Target)
	outcome, known, err := h.engine.HandleClick(c.Request.Context(), desktop.Click(req.Target), req.ID)
	if err != nil {
		timer.Stop("error")
		respondError(c, err)
		return
	}
	if !known {
		timer.Stop("unknown")
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown click target", "target": req.Target, "id": req.ID})
		return
	}
	timer.Stop(string(outcome))

	h.respondWithState(c, gin.H{
		"success": outcome != window.OutcomeRejected,
		"id":      req.ID,
		"outcome": outcome,
	})
}

// DesktopIcons lists launchable desktop icons
func (h *Handlers) DesktopIcons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"icons": h.engine.DesktopIcons()})
}

// Stats returns registry statistics
func (h *Handlers) Stats(c *gin.Context) {
	stats, err := h.engine.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListCatalog lists every catalog entry
func (h *Handlers) ListCatalog(c *gin.Context) {
	entries := h.engine.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"apps":  entries,
		"count": len(entries),
	})
}

// SearchCatalog runs the launcher search
func (h *Handlers) SearchCatalog(c *gin.Context) {
	q := c.Query("q")
	c.JSON(http.StatusOK, gin.H{
		"query":   q,
		"results": h.engine.Search(q),
	})
}

// respondWithState adds the current shell state to a command response
func (h *Handlers) respondWithState(c *gin.Context, body gin.H) {
	state, err := h.engine.State(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	body["state"] = state
	c.JSON(http.StatusOK, body)
}

func outcomeLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "rejected"
}
