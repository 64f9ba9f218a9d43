package conversation

import "context"

// PersistenceStore is the injected persistence collaborator. Implementations
// must treat the message log as append-only: messages are added through
// Append, never rewritten in place, and are dropped only by Reset.
//
// This allows swapping between Redis, SQL or in-memory backends without the
// core knowing the serialization format.
type PersistenceStore interface {
	// Load returns the full conversation record, or nil when absent.
	Load(ctx context.Context, sessionID string) (*State, error)

	// Create persists a new, empty conversation record.
	Create(ctx context.Context, state *State) error

	// Append adds one message to the session's log.
	Append(ctx context.Context, sessionID string, msg Message) error

	// SetStatus updates the lifecycle status.
	SetStatus(ctx context.Context, sessionID string, status Status) error

	// Reset clears the message log and returns the status to active.
	Reset(ctx context.Context, sessionID string) error

	// Exists reports whether a record exists for the session.
	Exists(ctx context.Context, sessionID string) (bool, error)
}
