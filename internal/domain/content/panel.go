package content

import (
	"context"
	"errors"
)

// ErrNoContent means a loader has nothing for the window
var ErrNoContent = errors.New("no content for window")

// Panel describes what a window renders
type Panel struct {
	WindowID string         `json:"window_id" yaml:"window_id"`
	Kind     string         `json:"kind" yaml:"kind"`
	Title    string         `json:"title" yaml:"title"`
	Props    map[string]any `json:"props,omitempty" yaml:"props"`
	Source   string         `json:"source" yaml:"-"`
}

// Loader produces a window's panel
type Loader interface {
	Load(ctx context.Context, windowID string) (Panel, error)
}

// LoaderFunc adapts a function to Loader
type LoaderFunc func(ctx context.Context, windowID string) (Panel, error)

// Load calls f
func (f LoaderFunc) Load(ctx context.Context, windowID string) (Panel, error) {
	return f(ctx, windowID)
}
