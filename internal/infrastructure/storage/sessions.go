package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mechdyane/desktop/internal/domain/session"
)

// sessionRecord is the table row for one saved session
type sessionRecord struct {
	ID          string `gorm:"primaryKey;size:64"`
	Name        string `gorm:"size:255;not null"`
	CreatedAt   int64  `gorm:"index;not null"` // Unix milliseconds
	WindowCount int
	OpenCount   int
	Data        []byte
}

func (sessionRecord) TableName() string {
	return "sessions"
}

// SessionStore implements session.Store on top of DB
type SessionStore struct {
	db *DB
}

// NewSessionStore creates a store backed by db
func NewSessionStore(db *DB) *SessionStore {
	return &SessionStore{db: db}
}

// Put inserts or replaces a session
func (s *SessionStore) Put(ctx context.Context, rec session.Record) error {
	row := toRow(rec)
	if err := s.db.gorm.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save session %s: %w", rec.ID, err)
	}
	return nil
}

// Get loads one session including its snapshot data
func (s *SessionStore) Get(ctx context.Context, id string) (session.Record, error) {
	var row sessionRecord
	err := s.db.gorm.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return session.Record{}, fmt.Errorf("%w: %s", session.ErrNotFound, id)
	}
	if err != nil {
		return session.Record{}, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	return fromRow(row), nil
}

// List returns all sessions newest first without snapshot data
func (s *SessionStore) List(ctx context.Context) ([]session.Record, error) {
	var rows []sessionRecord
	err := s.db.gorm.WithContext(ctx).
		Select("id", "name", "created_at", "window_count", "open_count").
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	out := make([]session.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromRow(row))
	}
	return out, nil
}

// Delete removes a session
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	res := s.db.gorm.WithContext(ctx).Delete(&sessionRecord{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", session.ErrNotFound, id)
	}
	return nil
}

func toRow(rec session.Record) sessionRecord {
	return sessionRecord{
		ID:          rec.ID,
		Name:        rec.Name,
		CreatedAt:   toTimestamp(rec.CreatedAt),
		WindowCount: rec.WindowCount,
		OpenCount:   rec.OpenCount,
		Data:        rec.Data,
	}
}

func fromRow(row sessionRecord) session.Record {
	return session.Record{
		ID:          row.ID,
		Name:        row.Name,
		CreatedAt:   fromTimestamp(row.CreatedAt),
		WindowCount: row.WindowCount,
		OpenCount:   row.OpenCount,
		Data:        row.Data,
	}
}

func toTimestamp(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromTimestamp(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
