package ws

import (
	"github.com/mechdyane/desktop/internal/shared/types"
)

// Inbound message types
const (
	TypePointerDown   = "pointer_down"
	TypePointerMove   = "pointer_move"
	TypePointerUp     = "pointer_up"
	TypePointerCancel = "pointer_cancel"
	TypeLostCapture   = "lost_capture"
	TypeWheel         = "wheel"
	TypeCommand       = "command"
	TypeViewport      = "viewport"
	TypePing          = "ping"
)

// Outbound message types
const (
	TypeWelcome = "welcome"
	TypeState   = "state"
	TypeResult  = "result"
	TypePong    = "pong"
	TypeError   = "error"
)

// Message is a client message. Which fields are read depends on Type.
type Message struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`

	// Pointer and wheel events
	WindowID  string  `json:"window_id,omitempty"`
	PointerID int64   `json:"pointer_id,omitempty"`
	X         int     `json:"x,omitempty"`
	Y         int     `json:"y,omitempty"`
	Region    string  `json:"region,omitempty"`
	Direction string  `json:"direction,omitempty"`
	DeltaY    float64 `json:"delta_y,omitempty"`
	Ctrl      bool    `json:"ctrl,omitempty"`

	// Commands
	Command string `json:"command,omitempty"`
	Target  string `json:"target,omitempty"` // Click target for the click command
	Title   string `json:"title,omitempty"`
	Icon    string `json:"icon,omitempty"`
	Source  string `json:"source,omitempty"`

	// Viewport
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

func (m Message) position() types.Position {
	return types.Position{X: m.X, Y: m.Y}
}

// Reply is a server message
type Reply struct {
	Type         string            `json:"type"`
	RequestID    string            `json:"request_id,omitempty"`
	ConnectionID string            `json:"connection_id,omitempty"`
	Command      string            `json:"command,omitempty"`
	WindowID     string            `json:"window_id,omitempty"`
	Success      bool              `json:"success,omitempty"`
	Outcome      string            `json:"outcome,omitempty"`
	Scale        float64           `json:"scale,omitempty"`
	Viewport     *types.Viewport   `json:"viewport,omitempty"`
	State        *types.ShellState `json:"state,omitempty"`
	Message      string            `json:"message,omitempty"`
	Timestamp    int64             `json:"timestamp"`
}
