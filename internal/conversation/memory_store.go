package conversation

import (
	"context"
	"sync"
)

// MemoryStore implements PersistenceStore in process memory. Useful for
// tests and for running the service without Redis.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*State)}
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return cloneState(state), nil
}

func (m *MemoryStore) Create(_ context.Context, state *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[state.SessionID]; ok {
		return nil
	}
	m.sessions[state.SessionID] = cloneState(state)
	return nil
}

func (m *MemoryStore) Append(_ context.Context, sessionID string, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	state.Messages = append(state.Messages, msg)
	state.UpdatedAt = msg.Timestamp
	return nil
}

func (m *MemoryStore) SetStatus(_ context.Context, sessionID string, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	state.Status = status
	return nil
}

func (m *MemoryStore) Reset(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	state.Messages = []Message{}
	state.Status = StatusActive
	return nil
}

func (m *MemoryStore) Exists(_ context.Context, sessionID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[sessionID]
	return ok, nil
}

func cloneState(state *State) *State {
	copied := *state
	copied.Messages = make([]Message, len(state.Messages))
	copy(copied.Messages, state.Messages)
	return &copied
}
