// Package store defines the storage interface and implementations.
package store

import (
	"context"

	"github.com/tanka-roy/c-hx-V01/internal/domain"
)

// Store defines the interface for conversation persistence.
type Store interface {
	// Conversation operations
	CreateConversation(ctx context.Context, title string) (string, error)
	GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error)
	ListConversations(ctx context.Context) ([]domain.Conversation, error)
	TouchConversation(ctx context.Context, conversationID string) error
	DeleteConversation(ctx context.Context, conversationID string) (int64, error)
	DeleteAllConversations(ctx context.Context) (int64, error)
	SearchConversations(ctx context.Context, query string) ([]domain.Conversation, error)

	// Message operations
	AppendMessage(ctx context.Context, conversationID string, role domain.Role, content, modelUsed string) (string, error)
	ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error)

	// Lifecycle
	Close() error
}
