package memory

import (
	"context"
	"time"
)

// Message is a single exchange entry in a support session transcript.
type Message struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Transcript is the stored history of one support session.
type Transcript struct {
	SessionID    string    `json:"session_id"`
	Messages     []Message `json:"messages"`
	StartedAt    time.Time `json:"started_at"`
	LastActivity time.Time `json:"last_activity"`
}

// Store defines the interface for transcript storage. This allows swapping
// between Redis, in-memory, etc.
type Store interface {
	// LoadTranscript loads a session transcript; a missing session yields an
	// empty transcript, not an error.
	LoadTranscript(ctx context.Context, sessionID string) (*Transcript, error)

	// AppendMessage appends a message to a session transcript.
	AppendMessage(ctx context.Context, sessionID string, msg Message) error

	// ClearTranscript removes a session transcript.
	ClearTranscript(ctx context.Context, sessionID string) error
}
