package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mechdyane/desktop/internal/domain/desktop"
	"github.com/mechdyane/desktop/internal/domain/window"
	"github.com/mechdyane/desktop/internal/infrastructure/monitoring"
	"github.com/mechdyane/desktop/internal/shared/id"
	"github.com/mechdyane/desktop/internal/shared/types"
)

const (
	defaultWriteTimeout = 10 * time.Second
	defaultPingInterval = 30 * time.Second
	maxMessageSize      = 64 * 1024
	replyBuffer         = 32
)

// Config configures WebSocket connections
type Config struct {
	EventsPerSecond int // Pointer moves per second per connection
	Burst           int
	WriteTimeout    time.Duration
	PingInterval    time.Duration
	AllowOrigins    []string // "*" allows any origin
}

// Handler manages WebSocket connections
type Handler struct {
	engine   *desktop.Engine
	cfg      Config
	upgrader websocket.Upgrader
	logger   *zap.Logger
	metrics  *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler. metrics may be nil.
func NewHandler(engine *desktop.Engine, cfg Config, logger *zap.Logger, metrics *monitoring.Metrics) *Handler {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = defaultPingInterval
	}
	if cfg.EventsPerSecond <= 0 {
		cfg.EventsPerSecond = 240
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 60
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &Handler{
		engine:  engine,
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

// checkOrigin accepts non-browser clients and the configured origins
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.cfg.AllowOrigins) == 0 || slices.Contains(h.cfg.AllowOrigins, "*") {
		return true
	}
	if slices.Contains(h.cfg.AllowOrigins, origin) {
		return true
	}
	if u, err := url.Parse(origin); err == nil && u.Host == r.Host {
		return true
	}
	return false
}

// conn is the per-connection state
type conn struct {
	id      string
	ws      *websocket.Conn
	limiter *rate.Limiter
	replies chan Reply
	logger  *zap.Logger
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	connID := string(id.NewConnectionID())
	cn := &conn{
		id:      connID,
		ws:      ws,
		limiter: rate.NewLimiter(rate.Limit(h.cfg.EventsPerSecond), h.cfg.Burst),
		replies: make(chan Reply, replyBuffer),
		logger:  h.logger.With(zap.String("conn", connID)),
	}

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}
	cn.logger.Info("Stream connected", zap.String("remote", c.ClientIP()))

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	states, unsubscribe := h.engine.Subscribe()
	defer unsubscribe()

	// The first state is written before the writer starts so that later
	// broadcasts can never overtake it
	if err := h.write(cn, Reply{Type: TypeWelcome, ConnectionID: connID}); err != nil {
		return
	}
	if state, err := h.engine.State(ctx); err == nil {
		if err := h.write(cn, Reply{Type: TypeState, State: &state}); err != nil {
			return
		}
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		defer cancel()
		h.writeLoop(ctx, cn, states)
	}()

	h.readLoop(ctx, cn)
	cancel()
	<-writerDone

	cn.logger.Info("Stream disconnected")
}

// readLoop decodes client messages until the connection fails
func (h *Handler) readLoop(ctx context.Context, cn *conn) {
	readTimeout := 2 * h.cfg.PingInterval
	cn.ws.SetReadLimit(maxMessageSize)
	_ = cn.ws.SetReadDeadline(time.Now().Add(readTimeout))
	cn.ws.SetPongHandler(func(string) error {
		return cn.ws.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		_, data, err := cn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				cn.logger.Debug("WebSocket read error", zap.Error(err))
			}
			return
		}
		_ = cn.ws.SetReadDeadline(time.Now().Add(readTimeout))

		var msg Message
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.enqueue(ctx, cn, errorReply("", "malformed message"))
			continue
		}
		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", msg.Type)
		}

		if msg.Type == TypePointerMove && !cn.limiter.Allow() {
			if h.metrics != nil {
				h.metrics.IncWSThrottled()
			}
			continue
		}

		reply, ok := h.handle(ctx, msg)
		if !ok {
			continue
		}
		if !h.enqueue(ctx, cn, reply) {
			return
		}
	}
}

// writeLoop is the only goroutine writing to the connection
func (h *Handler) writeLoop(ctx context.Context, cn *conn, states <-chan types.ShellState) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = cn.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(h.cfg.WriteTimeout))
			return

		case state, ok := <-states:
			if !ok {
				// Engine stopped
				_ = cn.ws.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "desktop stopped"),
					time.Now().Add(h.cfg.WriteTimeout))
				return
			}
			if err := h.write(cn, Reply{Type: TypeState, State: &state}); err != nil {
				cn.logger.Debug("State write failed", zap.Error(err))
				return
			}

		case reply := <-cn.replies:
			if err := h.write(cn, reply); err != nil {
				cn.logger.Debug("Reply write failed", zap.Error(err))
				return
			}

		case <-ticker.C:
			if err := cn.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(h.cfg.WriteTimeout)); err != nil {
				return
			}
		}
	}
}

func (h *Handler) write(cn *conn, reply Reply) error {
	reply.Timestamp = time.Now().Unix()
	data, err := sonic.Marshal(reply)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", reply.Type, err)
	}

	_ = cn.ws.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
	if err := cn.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	if h.metrics != nil {
		h.metrics.RecordWSMessage("out", reply.Type)
	}
	return nil
}

// enqueue hands a reply to the writer. It reports false once the
// connection is shutting down.
func (h *Handler) enqueue(ctx context.Context, cn *conn, reply Reply) bool {
	select {
	case cn.replies <- reply:
		return true
	case <-ctx.Done():
		return false
	}
}

// handle runs one client message against the engine. ok is false when the
// message produces no reply.
func (h *Handler) handle(ctx context.Context, msg Message) (Reply, bool) {
	var err error
	switch msg.Type {
	case TypePointerDown:
		err = h.engine.PointerDown(ctx, desktop.PointerDown{
			WindowID:  msg.WindowID,
			PointerID: msg.PointerID,
			At:        msg.position(),
			Region:    desktop.Region(msg.Region),
			Direction: msg.Direction,
		})
	case TypePointerMove:
		err = h.engine.PointerMove(ctx, msg.PointerID, msg.position())
	case TypePointerUp:
		err = h.engine.PointerUp(ctx, msg.PointerID, msg.position())
	case TypePointerCancel:
		err = h.engine.PointerCancel(ctx, msg.PointerID)
	case TypeLostCapture:
		err = h.engine.LostCapture(ctx, msg.PointerID)

	case TypeWheel:
		scale, ok, werr := h.engine.Wheel(ctx, msg.WindowID, msg.DeltaY, msg.Ctrl)
		if werr != nil {
			return h.failure(msg, werr), true
		}
		return Reply{Type: TypeResult, RequestID: msg.RequestID, Command: TypeWheel, WindowID: msg.WindowID, Success: ok, Scale: scale}, true

	case TypeViewport:
		if msg.Width <= 0 || msg.Height <= 0 {
			return errorReply(msg.RequestID, "viewport width and height must be positive"), true
		}
		vp, verr := h.engine.SetViewport(ctx, msg.Width, msg.Height)
		if verr != nil {
			return h.failure(msg, verr), true
		}
		return Reply{Type: TypeResult, RequestID: msg.RequestID, Command: TypeViewport, Success: true, Viewport: &vp}, true

	case TypeCommand:
		return h.command(ctx, msg), true

	case TypePing:
		return Reply{Type: TypePong, RequestID: msg.RequestID}, true

	default:
		return errorReply(msg.RequestID, fmt.Sprintf("unknown message type %q", msg.Type)), true
	}

	if err != nil {
		return h.failure(msg, err), true
	}
	return Reply{}, false
}

// command runs a window or shell command and reports its outcome
func (h *Handler) command(ctx context.Context, msg Message) Reply {
	reply := Reply{Type: TypeResult, RequestID: msg.RequestID, Command: msg.Command, WindowID: msg.WindowID}
	if msg.WindowID == "" {
		return errorReply(msg.RequestID, "window_id is required")
	}

	timer := monitoring.NewTimer(h.metrics, msg.Command)
	var (
		ok  bool
		err error
	)
	switch msg.Command {
	case "open":
		source, perr := window.ParseSource(msg.Source)
		if perr != nil {
			timer.Stop("invalid")
			return errorReply(msg.RequestID, perr.Error())
		}
		var outcome window.Outcome
		outcome, err = h.engine.Open(ctx, msg.WindowID, window.OpenOptions{Title: msg.Title, Icon: msg.Icon, Source: source})
		ok = outcome != window.OutcomeRejected
		reply.Outcome = string(outcome)
	case "close":
		ok, err = h.engine.Close(ctx, msg.WindowID)
	case "minimize":
		ok, err = h.engine.Minimize(ctx, msg.WindowID)
	case "maximize":
		ok, err = h.engine.ToggleMaximize(ctx, msg.WindowID)
	case "focus":
		ok, err = h.engine.Focus(ctx, msg.WindowID)
	case "reset_scale":
		ok, err = h.engine.ResetScale(ctx, msg.WindowID)
	case "click":
		var (
			outcome window.Outcome
			known   bool
		)
		outcome, known, err = h.engine.HandleClick(ctx, desktop.Click(msg.Target), msg.WindowID)
		if err == nil && !known {
			timer.Stop("unknown")
			return errorReply(msg.RequestID, fmt.Sprintf("unknown click target %q", msg.Target))
		}
		ok = outcome != window.OutcomeRejected
		reply.Outcome = string(outcome)
	default:
		timer.Stop("unknown")
		return errorReply(msg.RequestID, fmt.Sprintf("unknown command %q", msg.Command))
	}

	if err != nil {
		timer.Stop("error")
		return h.failure(msg, err)
	}
	if reply.Outcome != "" {
		timer.Stop(reply.Outcome)
	} else if ok {
		timer.Stop("ok")
	} else {
		timer.Stop("rejected")
	}
	reply.Success = ok
	return reply
}

func (h *Handler) failure(msg Message, err error) Reply {
	if !errors.Is(err, context.Canceled) {
		h.logger.Warn("Stream message failed", zap.String("type", msg.Type), zap.Error(err))
	}
	return errorReply(msg.RequestID, err.Error())
}

func errorReply(requestID, message string) Reply {
	return Reply{Type: TypeError, RequestID: requestID, Message: message}
}
