package types

// Position represents window position on screen
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size represents window dimensions
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect is a position and size pair
type Rect struct {
	Position
	Size
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() int { return r.Y + r.Height }

// WindowState is the registry record for one application window
type WindowState struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Icon        string   `json:"icon"`
	IsOpen      bool     `json:"is_open"`
	IsMinimized bool     `json:"is_minimized"`
	IsMaximized bool     `json:"is_maximized"`
	ZIndex      int      `json:"z_index"`
	Position    Position `json:"position"`
	Size        Size     `json:"size"`
	Scale       float64  `json:"scale"` // Content scale, visual only
}

// Rect returns the window's remembered geometry
func (w WindowState) Rect() Rect {
	return Rect{Position: w.Position, Size: w.Size}
}

// Visible reports whether the window is open and not minimized
func (w WindowState) Visible() bool {
	return w.IsOpen && !w.IsMinimized
}

// RegistrySnapshot is a full serializable copy of the registry
type RegistrySnapshot struct {
	Windows  []WindowState `json:"windows"` // Insertion order
	Focus    *string       `json:"focus,omitempty"`
	ZCounter int           `json:"z_counter"`
}

// Stats contains registry statistics
type Stats struct {
	TotalWindows     int     `json:"total_windows"`
	OpenWindows      int     `json:"open_windows"`
	MinimizedWindows int     `json:"minimized_windows"`
	MaximizedWindows int     `json:"maximized_windows"`
	FocusedWindowID  *string `json:"focused_window_id,omitempty"`
	ZCounter         int     `json:"z_counter"`
}
