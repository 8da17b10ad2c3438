// Package types provides shared data structures for the desktop backend.
//
// This package defines the plain data exchanged between the windowing
// engine, its shell adapters and the API layer. It holds no behavior that
// mutates state; the registry in internal/domain/window is the only writer.
//
// Core Types:
//   - WindowState: One application window (lifecycle flags, z-order, geometry)
//   - RegistrySnapshot: Serializable copy of the whole window registry
//   - ChangeEvent: Notification emitted after every registry mutation
//   - Viewport: Current display size and its class (desktop or mobile)
//
// Shell Types:
//   - TaskbarItem, DesktopIcon, RenderFrame: Read-only views for the UI
//   - ShellState: Everything a client needs to redraw the desktop
//
// Example Usage:
//
//	win := types.WindowState{
//	    ID:       "calc",
//	    Title:    "Smart Calc",
//	    IsOpen:   true,
//	    Position: types.Position{X: 100, Y: 60},
//	    Size:     types.Size{Width: 800, Height: 550},
//	    Scale:    1,
//	}
package types
