package store

import (
	"errors"
	"sync"

	"github.com/i474232898/status-dashboard/internal/dashboard"
)

var (
	// ErrNotFound is returned before the first frame has been rendered.
	ErrNotFound = errors.New("no frame rendered yet")
)

// MemoryStore is a concurrency-safe holder for the most recent frame. Older
// frames are dropped as soon as a new one arrives.
type MemoryStore struct {
	mu     sync.RWMutex
	latest *dashboard.Frame
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveFrame replaces the held frame.
func (s *MemoryStore) SaveFrame(frame dashboard.Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = &frame
}

// Latest returns the most recent frame.
func (s *MemoryStore) Latest() (dashboard.Frame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return dashboard.Frame{}, ErrNotFound
	}
	return *s.latest, nil
}
