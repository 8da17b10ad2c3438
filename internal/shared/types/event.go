package types

// ChangeKind identifies what a registry mutation did
type ChangeKind string

const (
	ChangeOpened      ChangeKind = "opened"
	ChangeClosed      ChangeKind = "closed"
	ChangeMinimized   ChangeKind = "minimized"
	ChangeRestored    ChangeKind = "restored"
	ChangeFocused     ChangeKind = "focused"
	ChangeMaximized   ChangeKind = "maximized"
	ChangeUnmaximized ChangeKind = "unmaximized"
	ChangeGeometry    ChangeKind = "geometry"
	ChangeScaled      ChangeKind = "scaled"
	ChangeViewport    ChangeKind = "viewport"
	ChangeReplaced    ChangeKind = "replaced" // Whole registry restored from a snapshot
)

// ChangeEvent is delivered to registry listeners after a mutation
type ChangeEvent struct {
	Kind     ChangeKind `json:"kind"`
	WindowID string     `json:"window_id,omitempty"`
}

// ViewportClass selects the geometry defaults for a display
type ViewportClass string

const (
	ViewportDesktop ViewportClass = "desktop"
	ViewportMobile  ViewportClass = "mobile"
)

// Viewport describes the display the desktop is rendered into
type Viewport struct {
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Class  ViewportClass `json:"class"`
}
