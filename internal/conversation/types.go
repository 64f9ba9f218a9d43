package conversation

import (
	"time"

	"github.com/primes-services/primes-intent/internal/nlp"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Status is the conversation lifecycle state. Transitions are monotone
// (active → completed or active → archived); only an explicit reset returns
// a conversation to active.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// Message is one entry in a conversation's append-only log.
type Message struct {
	Role      Role                   `json:"role"`
	Content   string                 `json:"content"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// State is a session's conversation record. SessionID is generated once and
// never reassigned; Messages only grows except on reset.
type State struct {
	SessionID  string    `json:"session_id"`
	Messages   []Message `json:"messages"`
	Status     Status    `json:"status"`
	UserType   string    `json:"user_type,omitempty"`
	UserRegion string    `json:"user_region,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MessageCount returns the number of stored messages.
func (s *State) MessageCount() int {
	return len(s.Messages)
}

// LastMessage returns the most recent message, or nil when the log is empty.
func (s *State) LastMessage() *Message {
	if len(s.Messages) == 0 {
		return nil
	}
	return &s.Messages[len(s.Messages)-1]
}

// DurationMinutes is the elapsed time between the first and last activity.
func (s *State) DurationMinutes() float64 {
	if s.CreatedAt.IsZero() || s.UpdatedAt.IsZero() {
		return 0
	}
	return s.UpdatedAt.Sub(s.CreatedAt).Minutes()
}

// Profile derives the caller profile handed to the analysis pipeline. Prior
// interactions are counted as the user messages already in the log.
func (s *State) Profile() nlp.UserProfile {
	interactions := 0
	for _, msg := range s.Messages {
		if msg.Role == RoleUser {
			interactions++
		}
	}
	return nlp.UserProfile{
		UserType:         nlp.UserType(s.UserType),
		Region:           nlp.Region(s.UserRegion),
		InteractionCount: interactions,
	}
}

// Stats summarizes one conversation for the backend.
type Stats struct {
	SessionID       string  `json:"session_id"`
	MessageCount    int     `json:"message_count"`
	DurationMinutes float64 `json:"duration_minutes"`
	UserType        string  `json:"user_type,omitempty"`
	UserRegion      string  `json:"user_region,omitempty"`
	Status          Status  `json:"status"`
}
