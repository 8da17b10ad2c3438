package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mechdyane/desktop/internal/domain/session"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "sessions.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStore(openTestDB(t))
	ctx := context.Background()

	created := time.UnixMilli(1_700_000_000_000).UTC()
	rec := session.Record{
		ID:          "sess_a",
		Name:        "Morning",
		CreatedAt:   created,
		WindowCount: 3,
		OpenCount:   2,
		Data:        []byte(`{"z_counter":104}`),
	}
	require.NoError(t, store.Put(ctx, rec))

	got, err := store.Get(ctx, "sess_a")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	rec.Name = "Morning v2"
	require.NoError(t, store.Put(ctx, rec))
	got, err = store.Get(ctx, "sess_a")
	require.NoError(t, err)
	assert.Equal(t, "Morning v2", got.Name)
}

func TestSessionStoreListNewestFirst(t *testing.T) {
	store := NewSessionStore(openTestDB(t))
	ctx := context.Background()

	base := time.UnixMilli(1_700_000_000_000).UTC()
	for i, id := range []string{"sess_1", "sess_2", "sess_3"} {
		require.NoError(t, store.Put(ctx, session.Record{
			ID:        id,
			Name:      id,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Data:      []byte("{}"),
		}))
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "sess_3", list[0].ID)
	assert.Equal(t, "sess_1", list[2].ID)
	assert.Nil(t, list[0].Data)
}

func TestSessionStoreNotFound(t *testing.T) {
	store := NewSessionStore(openTestDB(t))
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "missing"), session.ErrNotFound)

	require.NoError(t, store.Put(ctx, session.Record{ID: "sess_x", Name: "x", CreatedAt: time.Now()}))
	require.NoError(t, store.Delete(ctx, "sess_x"))
	_, err = store.Get(ctx, "sess_x")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestOpenRejectsEmptyDSN(t *testing.T) {
	_, err := Open("sqlite://", nil)
	assert.Error(t, err)
}
