package shell

import (
	"github.com/mechdyane/desktop/internal/domain/geometry"
	"github.com/mechdyane/desktop/internal/shared/types"
)

// DefaultTaskbarHeight is the height reserved below maximized windows
const DefaultTaskbarHeight = 56

// Taskbar builds taskbar items from windows in taskbar order
func Taskbar(open []types.WindowState, focus *string) []types.TaskbarItem {
	items := make([]types.TaskbarItem, 0, len(open))
	for _, w := range open {
		items = append(items, types.TaskbarItem{
			ID:        w.ID,
			Title:     w.Title,
			Icon:      w.Icon,
			Active:    isFocus(focus, w.ID),
			Minimized: w.IsMinimized,
		})
	}
	return items
}

// Frames builds render frames from windows in z order. Maximized windows get
// the viewport-derived rect instead of their remembered geometry.
func Frames(byZ []types.WindowState, focus *string, vp types.Viewport, taskbarHeight int) []types.RenderFrame {
	frames := make([]types.RenderFrame, 0, len(byZ))
	for _, w := range byZ {
		rect := w.Rect()
		if w.IsMaximized {
			rect = geometry.MaximizedRect(vp, taskbarHeight)
		}
		frames = append(frames, types.RenderFrame{
			ID:             w.ID,
			Title:          w.Title,
			Icon:           w.Icon,
			Geometry:       rect,
			ZIndex:         w.ZIndex,
			Active:         isFocus(focus, w.ID),
			Minimized:      w.IsMinimized,
			Maximized:      w.IsMaximized,
			Scale:          w.Scale,
			ShowScaleReset: w.Scale != 1,
		})
	}
	return frames
}

// DesktopIcons lists installed catalog entries in catalog order
func DesktopIcons(entries []types.CatalogEntry, installed []string) []types.DesktopIcon {
	set := make(map[string]struct{}, len(installed))
	for _, id := range installed {
		set[id] = struct{}{}
	}

	icons := make([]types.DesktopIcon, 0, len(entries))
	for _, e := range entries {
		if _, ok := set[e.ID]; !ok && !e.IsSystem {
			continue
		}
		icons = append(icons, types.DesktopIcon{ID: e.ID, Name: e.Name, Icon: e.Icon})
	}
	return icons
}

func isFocus(focus *string, id string) bool {
	return focus != nil && *focus == id
}
