package catalog

import "github.com/mechdyane/desktop/internal/shared/types"

// Builtin returns the apps that ship with the desktop
func Builtin() []types.CatalogEntry {
	return []types.CatalogEntry{
		{ID: "dashboard", Name: "Dashboard", Icon: "fa-chart-pie", Category: "System", Description: "Learning overview and active quests", IsSystem: true},
		{ID: "profile", Name: "Profile", Icon: "fa-user-circle", Category: "System", Description: "Level, badges and learning history", IsSystem: true},
		{ID: "assistant", Name: "Core AI", Icon: "fa-robot", Category: "Intelligence", Description: "Conversational study assistant", IsSystem: true},
		{ID: "settings", Name: "Settings", Icon: "fa-gear", Category: "System", Description: "Wallpaper, focus mode and pulse speed", IsSystem: true},
		{ID: "control-panel", Name: "Control Panel", Icon: "fa-sliders", Category: "System", Description: "Quick toggles for the desktop", IsSystem: true},
		{ID: "appmanager", Name: "App Manager", Icon: "fa-store", Category: "System", Description: "Install and remove desktop apps", IsSystem: true},
		{ID: "calendar", Name: "Calendar", Icon: "fa-calendar-days", Category: "Productivity", Description: "Study schedule and reminders", IsSystem: true},
		{ID: "calc", Name: "Smart Calc", Icon: "fa-calculator", Category: "Tools", Description: "Scientific calculator"},
		{ID: "mindmap", Name: "Mind Mapper", Icon: "fa-diagram-project", Category: "Tools", Description: "Visual concept canvas"},
		{ID: "timer", Name: "Focus Timer", Icon: "fa-stopwatch", Category: "Productivity", Description: "Pomodoro style focus sessions"},
		{ID: "journal", Name: "Emotions", Icon: "fa-heart-pulse", Category: "Wellbeing", Description: "Mood journal"},
		{ID: "armory", Name: "Armory", Icon: "fa-shield-halved", Category: "Rewards", Description: "Spend credits on equipment"},
		{ID: "trophy-room", Name: "Trophy Room", Icon: "fa-trophy", Category: "Rewards", Description: "Unlocked achievements"},
		{ID: "bounty-board", Name: "Bounty Board", Icon: "fa-scroll", Category: "Rewards", Description: "Daily challenges for bonus XP"},
		{ID: "neural-stream", Name: "Neural Stream", Icon: "fa-wave-square", Category: "Intelligence", Description: "Generated study feed"},
		{ID: "course-creator", Name: "Course Creator", Icon: "fa-wand-magic-sparkles", Category: "Intelligence", Description: "Build custom learning modules"},
		{ID: "os-helper", Name: "OS Helper", Icon: "fa-circle-question", Category: "System", Description: "Desktop tips and shortcuts"},
	}
}
