package conversation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/primes-services/primes-intent/internal/logger"
)

// ErrNotFound is returned when an operation targets an unknown session.
var ErrNotFound = errors.New("conversation not found")

// Store owns per-session conversation state. All writes for one session are
// serialized through a per-session lock, so concurrent appends never
// interleave or lose entries; sessions never contend with each other.
type Store struct {
	persistence PersistenceStore
	logger      logger.Logger

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock serializes writers for one session. refs counts the holders
// and waiters, guarded by Store.mu.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewStore wraps the injected persistence collaborator.
func NewStore(persistence PersistenceStore, log logger.Logger) *Store {
	return &Store{
		persistence: persistence,
		logger:      log.With(map[string]interface{}{"component": "conversation"}),
		locks:       make(map[string]*sessionLock),
	}
}

// acquire takes the write lock for one session. Each acquire must be paired
// with a release of the same lock.
func (s *Store) acquire(sessionID string) *sessionLock {
	s.mu.Lock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sessionLock{}
		s.locks[sessionID] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.mu.Lock()
	return lock
}

// release drops the write lock; the map entry is evicted once the last
// holder is gone, so the lock table stays bounded by in-flight sessions.
func (s *Store) release(sessionID string, lock *sessionLock) {
	lock.mu.Unlock()

	s.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(s.locks, sessionID)
	}
	s.mu.Unlock()
}

// GetOrCreate returns the conversation for sessionID, creating it when
// absent. Creation is idempotent: an existing session is returned as-is,
// never duplicated. An empty sessionID gets a freshly generated identifier
// from a cryptographically strong source.
func (s *Store) GetOrCreate(ctx context.Context, sessionID, userType, userRegion string) (*State, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	lock := s.acquire(sessionID)
	defer s.release(sessionID, lock)

	state, err := s.persistence.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if state != nil {
		return state, nil
	}

	now := time.Now().UTC()
	state = &State{
		SessionID:  sessionID,
		Messages:   []Message{},
		Status:     StatusActive,
		UserType:   userType,
		UserRegion: userRegion,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.persistence.Create(ctx, state); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}

	s.logger.Info("conversation created", map[string]interface{}{
		"sessionId":  sessionID,
		"userType":   userType,
		"userRegion": userRegion,
	})

	return state, nil
}

// AppendMessage adds one message to the session log. Appends for the same
// session are serialized; a read after this call observes the new entry.
func (s *Store) AppendMessage(ctx context.Context, sessionID string, role Role, content string, metadata map[string]interface{}) error {
	lock := s.acquire(sessionID)
	defer s.release(sessionID, lock)

	exists, err := s.persistence.Exists(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("check conversation: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	msg := Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
		Metadata:  metadata,
	}
	if err := s.persistence.Append(ctx, sessionID, msg); err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// Get returns the current conversation state.
func (s *Store) Get(ctx context.Context, sessionID string) (*State, error) {
	state, err := s.persistence.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if state == nil {
		return nil, ErrNotFound
	}
	return state, nil
}

// History returns the full message log.
func (s *Store) History(ctx context.Context, sessionID string) ([]Message, error) {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return state.Messages, nil
}

// Reset clears the message log and returns the conversation to active. This
// is an explicit operator action, not a natural lifecycle transition.
func (s *Store) Reset(ctx context.Context, sessionID string) error {
	lock := s.acquire(sessionID)
	defer s.release(sessionID, lock)

	exists, err := s.persistence.Exists(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("check conversation: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	if err := s.persistence.Reset(ctx, sessionID); err != nil {
		return fmt.Errorf("reset conversation: %w", err)
	}

	s.logger.Info("conversation reset", map[string]interface{}{"sessionId": sessionID})
	return nil
}

// Complete marks the conversation completed.
func (s *Store) Complete(ctx context.Context, sessionID string) error {
	return s.transition(ctx, sessionID, StatusCompleted)
}

// Archive marks the conversation archived.
func (s *Store) Archive(ctx context.Context, sessionID string) error {
	return s.transition(ctx, sessionID, StatusArchived)
}

// transition applies a monotone status change; only active conversations may
// move to a terminal status.
func (s *Store) transition(ctx context.Context, sessionID string, target Status) error {
	lock := s.acquire(sessionID)
	defer s.release(sessionID, lock)

	state, err := s.persistence.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load conversation: %w", err)
	}
	if state == nil {
		return ErrNotFound
	}
	if state.Status != StatusActive {
		return fmt.Errorf("invalid transition from %s to %s", state.Status, target)
	}

	if err := s.persistence.SetStatus(ctx, sessionID, target); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	return nil
}

// Stats summarizes the conversation for the backend.
func (s *Store) Stats(ctx context.Context, sessionID string) (Stats, error) {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		SessionID:       state.SessionID,
		MessageCount:    state.MessageCount(),
		DurationMinutes: state.DurationMinutes(),
		UserType:        state.UserType,
		UserRegion:      state.UserRegion,
		Status:          state.Status,
	}, nil
}
