package types

// TaskbarItem is one entry in the taskbar's open-window list
type TaskbarItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Icon      string `json:"icon"`
	Active    bool   `json:"active"`
	Minimized bool   `json:"minimized"`
}

// DesktopIcon is a launchable catalog entry shown on the desktop
type DesktopIcon struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// RenderFrame is what the content renderer receives for one window
type RenderFrame struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Icon           string  `json:"icon"`
	Geometry       Rect    `json:"geometry"`
	ZIndex         int     `json:"z_index"`
	Active         bool    `json:"active"`
	Minimized      bool    `json:"minimized"`
	Maximized      bool    `json:"maximized"`
	Scale          float64 `json:"scale"`
	ShowScaleReset bool    `json:"show_scale_reset"`
	Content        string  `json:"content,omitempty"` // Panel kind once content has loaded
}

// SearchResult is one hit from the global launcher search
type SearchResult struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// ShellState is the full redraw payload sent to clients
type ShellState struct {
	SidebarHidden bool          `json:"sidebar_hidden"`
	Focus         *string       `json:"focus,omitempty"`
	Viewport      Viewport      `json:"viewport"`
	Taskbar       []TaskbarItem `json:"taskbar"`
	Frames        []RenderFrame `json:"frames"`
	Gesture       string        `json:"gesture"`
}
