package builder

import (
	"errors"
	"sync"
)

var ErrSessionNotFound = errors.New("builder session not found")

// Manager owns the live builder sessions. It is constructed once in main and
// handed to the controllers - sessions are created and torn down explicitly,
// and separate sessions (e.g. two browser tabs) never share editing state.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: map[string]*Session{}}
}

// Create opens a fresh editing session for a project.
func (m *Manager) Create(projectID, name string) *Session {
	s := newSession(projectID, name)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with the given id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close tears a session down, dropping any in-progress gesture with it.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.CancelGesture()
	return nil
}

// Count is used by the health endpoint.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
