package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tmc/langchaingo/llms"
	lcmemory "github.com/tmc/langchaingo/memory"
)

// session is one cached conversation. Its mutex is held across every read
// or mutation of the buffer AND the matching store writes, so concurrent
// requests sharing a session ID serialize the whole exchange: the
// langchaingo chat history is not safe for concurrent use, and the store's
// load-modify-save append would otherwise lose messages.
type session struct {
	mu     sync.Mutex
	buf    *lcmemory.ConversationBuffer
	loaded bool
}

// Manager keeps per-session conversation buffers backed by the transcript
// store. The manager mutex guards only the session map; each session
// carries its own lock.
type Manager struct {
	store Store

	mu       sync.Mutex
	sessions map[string]*session
}

func NewManager(store Store) *Manager {
	return &Manager{
		store:    store,
		sessions: make(map[string]*session),
	}
}

func (m *Manager) getSession(sessionID string) *session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		s = &session{buf: lcmemory.NewConversationBuffer()}
		m.sessions[sessionID] = s
	}
	return s
}

// load fills the buffer from the store on first use. Callers hold s.mu.
func (m *Manager) load(ctx context.Context, sessionID string, s *session) error {
	if s.loaded {
		return nil
	}

	transcript, err := m.store.LoadTranscript(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to load transcript: %w", err)
	}

	for _, msg := range transcript.Messages {
		var chatMsg llms.ChatMessage
		switch msg.Role {
		case "user":
			chatMsg = llms.HumanChatMessage{Content: msg.Content}
		case "assistant":
			chatMsg = llms.AIChatMessage{Content: msg.Content}
		default:
			continue
		}
		if err := s.buf.ChatHistory.AddMessage(ctx, chatMsg); err != nil {
			return fmt.Errorf("failed to add message to buffer: %w", err)
		}
	}

	s.loaded = true
	return nil
}

// RecordExchange appends a query and its resolved answer to the session,
// in both the conversation buffer and the store.
func (m *Manager) RecordExchange(ctx context.Context, sessionID, query, answer string) error {
	s := m.getSession(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := m.load(ctx, sessionID, s); err != nil {
		return err
	}

	if err := s.buf.ChatHistory.AddUserMessage(ctx, query); err != nil {
		return fmt.Errorf("failed to buffer user message: %w", err)
	}
	if err := s.buf.ChatHistory.AddAIMessage(ctx, answer); err != nil {
		return fmt.Errorf("failed to buffer assistant message: %w", err)
	}

	now := time.Now()
	if err := m.store.AppendMessage(ctx, sessionID, Message{Role: "user", Content: query, Timestamp: now}); err != nil {
		return err
	}
	return m.store.AppendMessage(ctx, sessionID, Message{Role: "assistant", Content: answer, Timestamp: now})
}

// History returns the session conversation as a formatted string.
func (m *Manager) History(ctx context.Context, sessionID string) (string, error) {
	s := m.getSession(sessionID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := m.load(ctx, sessionID, s); err != nil {
		return "", err
	}

	messages, err := s.buf.ChatHistory.Messages(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read buffer: %w", err)
	}
	if len(messages) == 0 {
		return "No previous conversation.", nil
	}

	var b strings.Builder
	for _, msg := range messages {
		switch m := msg.(type) {
		case llms.HumanChatMessage:
			fmt.Fprintf(&b, "User: %s\n", m.Content)
		case llms.AIChatMessage:
			fmt.Fprintf(&b, "Assistant: %s\n", m.Content)
		}
	}
	return b.String(), nil
}

// ClearSession drops a session from both the cache and the store.
func (m *Manager) ClearSession(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	return m.store.ClearTranscript(ctx, sessionID)
}

// ActiveSessions returns the number of cached session buffers.
func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Close closes the underlying store.
func (m *Manager) Close() error {
	if closer, ok := m.store.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
