package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mechdyane/desktop/internal/shared/types"
)

type fakeDesktop struct {
	current  types.RegistrySnapshot
	restored []types.RegistrySnapshot
	err      error
}

func (f *fakeDesktop) Snapshot(context.Context) (types.RegistrySnapshot, error) {
	return f.current, f.err
}

func (f *fakeDesktop) Restore(_ context.Context, snap types.RegistrySnapshot) error {
	if f.err != nil {
		return f.err
	}
	f.restored = append(f.restored, snap)
	return nil
}

type counters struct {
	saved, restored, stored int
}

func (c *counters) IncSessionsSaved()       { c.saved++ }
func (c *counters) IncSessionsRestored()    { c.restored++ }
func (c *counters) SetSessionsStored(n int) { c.stored = n }

func sampleSnapshot() types.RegistrySnapshot {
	focus := "calc"
	return types.RegistrySnapshot{
		Windows: []types.WindowState{
			{ID: "calc", Title: "Smart Calc", IsOpen: true, ZIndex: 102, Scale: 1.2,
				Position: types.Position{X: 115, Y: 75}, Size: types.Size{Width: 800, Height: 550}},
			{ID: "timer", Title: "Timer", IsOpen: true, IsMinimized: true, ZIndex: 101, Scale: 1},
			{ID: "journal", Title: "Journal", ZIndex: 90, Scale: 1},
		},
		Focus:    &focus,
		ZCounter: 102,
	}
}

func TestSaveAndRestore(t *testing.T) {
	desk := &fakeDesktop{current: sampleSnapshot()}
	metrics := &counters{}
	m := NewManager(desk, NewMemoryStore(), nil).WithMetrics(metrics)
	ctx := context.Background()

	sess, err := m.Save(ctx, "  Study  ")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sess.ID, "sess_"))
	assert.Equal(t, "Study", sess.Name)
	assert.Equal(t, 1, metrics.saved)
	assert.Equal(t, 1, metrics.stored)

	restored, err := m.Restore(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, restored.ID)
	require.Len(t, desk.restored, 1)
	assert.Equal(t, sampleSnapshot(), desk.restored[0])
	assert.Equal(t, 1, metrics.restored)

	stats := m.Stats()
	assert.Equal(t, 1, stats.Cached)
	assert.NotNil(t, stats.LastSaved)
	assert.NotNil(t, stats.LastRestored)
}

func TestLoadDecodesFromStore(t *testing.T) {
	store := NewMemoryStore()
	desk := &fakeDesktop{current: sampleSnapshot()}
	ctx := context.Background()

	sess, err := NewManager(desk, store, nil).Save(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "Untitled session", sess.Name)

	// A fresh manager has an empty cache and must decode the stored bytes
	loaded, err := NewManager(desk, store, nil).Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sampleSnapshot(), loaded.Snapshot)
}

func TestListAndDelete(t *testing.T) {
	desk := &fakeDesktop{current: sampleSnapshot()}
	metrics := &counters{}
	m := NewManager(desk, NewMemoryStore(), nil).WithMetrics(metrics)
	ctx := context.Background()

	first, err := m.Save(ctx, "one")
	require.NoError(t, err)
	_, err = m.Save(ctx, "two")
	require.NoError(t, err)

	list, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 3, list[0].WindowCount)
	assert.Equal(t, 2, list[0].OpenCount)

	require.NoError(t, m.Delete(ctx, first.ID))
	assert.Equal(t, 1, metrics.stored)

	_, err = m.Restore(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Delete(ctx, first.ID), ErrNotFound)
}

func TestDesktopErrorsPropagate(t *testing.T) {
	boom := errors.New("engine stopped")
	desk := &fakeDesktop{current: sampleSnapshot()}
	store := NewMemoryStore()
	m := NewManager(desk, store, nil)
	ctx := context.Background()

	sess, err := m.Save(ctx, "ok")
	require.NoError(t, err)

	desk.err = boom
	_, err = m.Save(ctx, "fails")
	assert.ErrorIs(t, err, boom)

	_, err = m.Restore(ctx, sess.ID)
	assert.ErrorIs(t, err, boom)

	list, err := m.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
