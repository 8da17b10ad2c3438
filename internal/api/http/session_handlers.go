package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mechdyane/desktop/internal/infrastructure/monitoring"
)

// SaveSessionRequest names a session to save
type SaveSessionRequest struct {
	Name string `json:"name"`
}

// SaveSession captures the current desktop layout
func (h *Handlers) SaveSession(c *gin.Context) {
	var req SaveSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}

	timer := monitoring.NewTimer(h.metrics, "session_save")
	sess, err := h.sessions.Save(c.Request.Context(), req.Name)
	if err != nil {
		timer.Stop("error")
		h.log.Error("Failed to save session", zap.Error(err))
		respondError(c, err)
		return
	}
	timer.Stop("ok")

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"session": sess.ToMetadata(),
	})
}

// ListSessions lists stored sessions, newest first
func (h *Handlers) ListSessions(c *gin.Context) {
	sessions, err := h.sessions.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"stats":    h.sessions.Stats(),
	})
}

// GetSession returns a stored session with its snapshot
func (h *Handlers) GetSession(c *gin.Context) {
	id := c.Param("id")
	if err := validateID(id, "session_id"); err != nil {
		badRequest(c, err)
		return
	}

	sess, err := h.sessions.Load(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// RestoreSession applies a stored session to the desktop
func (h *Handlers) RestoreSession(c *gin.Context) {
	id := c.Param("id")
	if err := validateID(id, "session_id"); err != nil {
		badRequest(c, err)
		return
	}

	timer := monitoring.NewTimer(h.metrics, "session_restore")
	sess, err := h.sessions.Restore(c.Request.Context(), id)
	if err != nil {
		timer.Stop("error")
		h.log.Warn("Failed to restore session", zap.String("id", id), zap.Error(err))
		respondError(c, err)
		return
	}
	timer.Stop("ok")

	h.respondWithState(c, gin.H{
		"success": true,
		"session": sess.ToMetadata(),
	})
}

// DeleteSession removes a stored session
func (h *Handlers) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if err := validateID(id, "session_id"); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.sessions.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      id,
	})
}
