package service

import (
	"context"
	"fmt"

	"github.com/tanka-roy/c-hx-V01/internal/domain"
)

func (s *Service) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	conversations, err := s.store.ListConversations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

// GetMessages returns the ordered history of a conversation.
func (s *Service) GetMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	if _, err := s.store.GetConversation(ctx, conversationID); err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	messages, err := s.store.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	return messages, nil
}

func (s *Service) DeleteConversation(ctx context.Context, conversationID string) error {
	deleted, err := s.store.DeleteConversation(ctx, conversationID)
	if err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	if deleted == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) DeleteAllConversations(ctx context.Context) (int64, error) {
	deleted, err := s.store.DeleteAllConversations(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete conversations: %w", err)
	}
	return deleted, nil
}

func (s *Service) SearchConversations(ctx context.Context, query string) ([]domain.Conversation, error) {
	conversations, err := s.store.SearchConversations(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search conversations: %w", err)
	}
	return conversations, nil
}

// ListModels describes the registered models in registry order.
func (s *Service) ListModels() []domain.ModelInfo {
	def := s.registry.Default().Key
	entries := s.registry.List()
	models := make([]domain.ModelInfo, 0, len(entries))
	for _, e := range entries {
		models = append(models, domain.ModelInfo{
			Key:         e.Key,
			Provider:    e.ProviderID,
			Model:       e.WireModel,
			DisplayName: e.DisplayName,
			Default:     e.Key == def,
		})
	}
	return models
}
