package player

import (
	"context"
	"errors"
	"sync"
)

var ErrSessionNotFound = errors.New("player session not found")

// Manager owns the live player sessions, constructed once in main. Each
// session holds its own task list and answer map; sessions never share state.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Runtime

	feed TaskFeed
	sink AnnotationSink
}

func NewManager(feed TaskFeed, sink AnnotationSink) *Manager {
	return &Manager{
		sessions: map[string]*Runtime{},
		feed:     feed,
		sink:     sink,
	}
}

// Open creates a session and loads its first page.
func (m *Manager) Open(ctx context.Context, templateID, userID, mode string, pageSize int) (*Runtime, error) {
	r := newRuntime(templateID, userID, mode, pageSize, m.feed, m.sink)
	if err := r.Start(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[r.ID] = r
	m.mu.Unlock()
	return r, nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Runtime, error) {
	m.mu.RLock()
	r, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return r, nil
}

// Close tears a session down. Collected answers are in-memory only and are
// dropped with it - per-task drafts are deliberately not persisted.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

// Count is used by the health endpoint.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
