package types

import "time"

// Session is a named, stored registry snapshot
type Session struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	CreatedAt time.Time        `json:"created_at"`
	Snapshot  RegistrySnapshot `json:"snapshot"`
}

// SessionMetadata contains summary information
type SessionMetadata struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
	WindowCount int       `json:"window_count"`
	OpenCount   int       `json:"open_count"`
}

// ToMetadata extracts metadata from session
func (s *Session) ToMetadata() SessionMetadata {
	open := 0
	for _, w := range s.Snapshot.Windows {
		if w.IsOpen {
			open++
		}
	}
	return SessionMetadata{
		ID:          s.ID,
		Name:        s.Name,
		CreatedAt:   s.CreatedAt,
		WindowCount: len(s.Snapshot.Windows),
		OpenCount:   open,
	}
}
