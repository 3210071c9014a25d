// Package domain defines the core domain models for the chat server.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a referenced conversation does not exist.
	ErrNotFound = errors.New("conversation not found")
	// ErrInvalidRequest is returned when a chat request is rejected before any work is done.
	ErrInvalidRequest = errors.New("invalid request")
)

// Role is the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Conversation is a titled thread of messages.
type Conversation struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is a single immutable entry of a conversation.
type Message struct {
	ID             string    `json:"_id"`
	ConversationID string    `json:"conversation_id"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	ModelUsed      string    `json:"model_used,omitempty"`
}

// HistoryEntry is the provider-facing view of a prior message.
type HistoryEntry struct {
	Role    Role
	Content string
}

// History converts stored messages into history entries, preserving order.
func History(messages []Message) []HistoryEntry {
	history := make([]HistoryEntry, 0, len(messages))
	for _, m := range messages {
		history = append(history, HistoryEntry{Role: m.Role, Content: m.Content})
	}
	return history
}
