package session

import (
	"context"
	"sync"
	"time"

	"PAIBot/internal/model"
)

// MemoryStore keeps sessions in process. It is used when no database is
// configured; sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session), now: time.Now}
}

func (m *MemoryStore) Create(_ context.Context, userID string, history ...model.Message) (*Session, error) {
	s := newSession(userID, m.now(), history)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s.clone(), nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s.clone(), nil
}

func (m *MemoryStore) Update(_ context.Context, id string, u Update) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.apply(u, m.now())
	return nil
}

func (m *MemoryStore) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.sessions {
		if s.CompletedAt == nil && s.UpdatedAt.Before(before) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) Close() error { return nil }
