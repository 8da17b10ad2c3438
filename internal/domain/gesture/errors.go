package gesture

import (
	"errors"
	"fmt"

	"github.com/mechdyane/desktop/internal/domain/geometry"
)

// ErrIntegrity is the parent of every gesture sequencing error
var ErrIntegrity = errors.New("gesture integrity")

var (
	ErrNoSession        = fmt.Errorf("%w: no active session", ErrIntegrity)
	ErrSessionActive    = fmt.Errorf("%w: session already active", ErrIntegrity)
	ErrNotEligible      = fmt.Errorf("%w: window not eligible", ErrIntegrity)
	ErrInvalidDirection = fmt.Errorf("%w: %w", ErrIntegrity, geometry.ErrInvalidDirection)
)
