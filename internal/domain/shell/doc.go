// Package shell derives the desktop chrome from registry state: taskbar
// items, desktop icons, render frames, launcher search and the sidebar
// visibility policy. Everything here reads registry views; clicks are routed
// back as registry commands through Router.
package shell
