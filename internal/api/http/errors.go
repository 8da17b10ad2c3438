package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"

	"github.com/mechdyane/desktop/internal/domain/desktop"
	"github.com/mechdyane/desktop/internal/domain/session"
	"github.com/mechdyane/desktop/internal/domain/window"
)

const maxIDLength = 128

// validateID rejects ids that cannot name a window or session
func validateID(value, field string) error {
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	if len(value) > maxIDLength {
		return fmt.Errorf("%s exceeds %d characters", field, maxIDLength)
	}
	if strings.IndexFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r) || r == '/'
	}) >= 0 {
		return fmt.Errorf("%s contains invalid characters", field)
	}
	return nil
}

// statusFor maps transport and storage errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, desktop.ErrStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, window.ErrInvalidSnapshot):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
