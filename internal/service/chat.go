package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"unicode/utf8"

	"github.com/tanka-roy/c-hx-V01/internal/domain"
	"github.com/tanka-roy/c-hx-V01/internal/metrics"
	"github.com/tanka-roy/c-hx-V01/internal/policy"
)

// Chat handles one chat turn: it resolves or creates the conversation, asks the
// provider for a reply and persists both sides of the exchange.
//
// Provider failures do not fail the call; their description is stored and
// returned as the assistant reply.
func (s *Service) Chat(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	resp, err := s.chat(ctx, req)
	switch {
	case err == nil:
		s.metrics.ObserveChat(metrics.OutcomeOK)
	case errors.Is(err, domain.ErrNotFound):
		s.metrics.ObserveChat(metrics.OutcomeNotFound)
	case errors.Is(err, domain.ErrInvalidRequest):
		s.metrics.ObserveChat(metrics.OutcomeRejected)
	default:
		s.metrics.ObserveChat(metrics.OutcomeError)
	}
	return resp, err
}

func (s *Service) chat(ctx context.Context, req *domain.ChatRequest) (*domain.ChatResponse, error) {
	if err := s.admit(ctx, req); err != nil {
		return nil, err
	}

	conversationID := req.ConversationID
	if conversationID != "" {
		if _, err := s.store.GetConversation(ctx, conversationID); err != nil {
			return nil, fmt.Errorf("failed to get conversation: %w", err)
		}
	} else {
		id, err := s.store.CreateConversation(ctx, domain.TitleFromMessage(req.Message))
		if err != nil {
			return nil, fmt.Errorf("failed to create conversation: %w", err)
		}
		conversationID = id
	}

	history, err := s.store.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	modelKey := req.Model
	if modelKey == "" {
		modelKey = s.registry.Default().Key
	}
	result := s.llmClient.Send(ctx, modelKey, req.Message, domain.History(history))
	if result.Err != nil {
		log.Printf("WARN: conversation %s: provider reply replaced by error text: %v", conversationID, result.Err)
	}

	if _, err := s.store.AppendMessage(ctx, conversationID, domain.RoleUser, req.Message, ""); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}
	messageID, err := s.store.AppendMessage(ctx, conversationID, domain.RoleAssistant, result.Text, result.ModelUsed)
	if err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	if err := s.store.TouchConversation(ctx, conversationID); err != nil {
		return nil, fmt.Errorf("failed to update conversation: %w", err)
	}

	return &domain.ChatResponse{
		Response:       result.Text,
		ConversationID: conversationID,
		MessageID:      messageID,
		ModelUsed:      result.ModelUsed,
	}, nil
}

// admit runs the request through the admission policy.
func (s *Service) admit(ctx context.Context, req *domain.ChatRequest) error {
	if s.policyEngine == nil {
		return nil
	}

	maxLen := 0
	if s.config != nil {
		maxLen = s.config.MaxMessageLength
	}
	decision, err := s.policyEngine.Evaluate(ctx, policy.Input{
		Message:          req.Message,
		MessageLength:    utf8.RuneCountInString(req.Message),
		MaxMessageLength: maxLen,
		Model:            req.Model,
		HasConversation:  req.ConversationID != "",
	})
	if err != nil {
		return fmt.Errorf("failed to evaluate chat policy: %w", err)
	}
	if !decision.Allow {
		return fmt.Errorf("%w: %s", domain.ErrInvalidRequest, decision.Reason)
	}
	return nil
}
