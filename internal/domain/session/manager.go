package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/mechdyane/desktop/internal/shared/id"
	"github.com/mechdyane/desktop/internal/shared/types"
)

// Desktop is the running engine as seen by the session manager. Both calls
// are executed on the engine's goroutine.
type Desktop interface {
	Snapshot(ctx context.Context) (types.RegistrySnapshot, error)
	Restore(ctx context.Context, snap types.RegistrySnapshot) error
}

// Recorder receives session metrics
type Recorder interface {
	IncSessionsSaved()
	IncSessionsRestored()
	SetSessionsStored(count int)
}

// Stats contains session statistics
type Stats struct {
	Cached       int        `json:"cached"`
	LastSaved    *time.Time `json:"last_saved,omitempty"`
	LastRestored *time.Time `json:"last_restored,omitempty"`
}

// Manager handles session persistence
type Manager struct {
	sessions sync.Map // id -> *types.Session
	desktop  Desktop
	store    Store
	logger   *zap.Logger
	metrics  Recorder

	mu           sync.RWMutex
	lastSaved    *time.Time // Protected by mu
	lastRestored *time.Time // Protected by mu
}

// NewManager creates a new session manager
func NewManager(desktop Desktop, store Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		desktop: desktop,
		store:   store,
		logger:  logger,
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics Recorder) *Manager {
	m.metrics = metrics
	return m
}

// Save captures the current desktop under a name
func (m *Manager) Save(ctx context.Context, name string) (*types.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Untitled session"
	}

	snap, err := m.desktop.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to capture desktop: %w", err)
	}

	now := time.Now().UTC()
	session := &types.Session{
		ID:        id.NewSessionID().String(),
		Name:      name,
		CreatedAt: now,
		Snapshot:  snap,
	}

	data, err := sonic.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	meta := session.ToMetadata()
	rec := Record{
		ID:          session.ID,
		Name:        session.Name,
		CreatedAt:   now,
		WindowCount: meta.WindowCount,
		OpenCount:   meta.OpenCount,
		Data:        data,
	}
	if err := m.store.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to write session: %w", err)
	}

	m.sessions.Store(session.ID, session)

	m.mu.Lock()
	m.lastSaved = &now
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.IncSessionsSaved()
	}
	m.refreshStored(ctx)

	m.logger.Info("Session saved",
		zap.String("id", session.ID),
		zap.String("name", session.Name),
		zap.Int("windows", meta.WindowCount))
	return session, nil
}

// Load returns a stored session
func (m *Manager) Load(ctx context.Context, sessionID string) (*types.Session, error) {
	if cached, ok := m.sessions.Load(sessionID); ok {
		return cached.(*types.Session), nil
	}

	rec, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var snap types.RegistrySnapshot
	if err := sonic.Unmarshal(rec.Data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", sessionID, err)
	}

	session := &types.Session{
		ID:        rec.ID,
		Name:      rec.Name,
		CreatedAt: rec.CreatedAt,
		Snapshot:  snap,
	}
	m.sessions.Store(sessionID, session)
	return session, nil
}

// Restore applies a stored session to the desktop
func (m *Manager) Restore(ctx context.Context, sessionID string) (*types.Session, error) {
	session, err := m.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if err := m.desktop.Restore(ctx, session.Snapshot); err != nil {
		return nil, fmt.Errorf("failed to restore session %s: %w", sessionID, err)
	}

	now := time.Now().UTC()
	m.mu.Lock()
	m.lastRestored = &now
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.IncSessionsRestored()
	}

	m.logger.Info("Session restored", zap.String("id", sessionID), zap.String("name", session.Name))
	return session, nil
}

// List returns metadata for every stored session, newest first
func (m *Manager) List(ctx context.Context) ([]types.SessionMetadata, error) {
	recs, err := m.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	out := make([]types.SessionMetadata, 0, len(recs))
	for _, rec := range recs {
		out = append(out, types.SessionMetadata{
			ID:          rec.ID,
			Name:        rec.Name,
			CreatedAt:   rec.CreatedAt,
			WindowCount: rec.WindowCount,
			OpenCount:   rec.OpenCount,
		})
	}
	return out, nil
}

// Delete removes a stored session
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	if err := m.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	m.sessions.Delete(sessionID)
	m.refreshStored(ctx)
	return nil
}

// Stats returns session statistics
func (m *Manager) Stats() Stats {
	cached := 0
	m.sessions.Range(func(_, _ any) bool {
		cached++
		return true
	})

	m.mu.RLock()
	defer m.mu.RUnlock()

	return Stats{
		Cached:       cached,
		LastSaved:    m.lastSaved,
		LastRestored: m.lastRestored,
	}
}

func (m *Manager) refreshStored(ctx context.Context) {
	if m.metrics == nil {
		return
	}
	recs, err := m.store.List(ctx)
	if err != nil {
		m.logger.Warn("Failed to count sessions", zap.Error(err))
		return
	}
	m.metrics.SetSessionsStored(len(recs))
}
