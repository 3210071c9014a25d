package llm

import (
	"context"
	"fmt"

	"github.com/tanka-roy/c-hx-V01/internal/domain"
	"github.com/tanka-roy/c-hx-V01/internal/registry"
)

// MockClient is a mock implementation of LLMClient for local runs and tests.
type MockClient struct {
	registry *registry.Registry
}

// NewMockClient creates a new mock LLM client.
func NewMockClient(reg *registry.Registry) *MockClient {
	return &MockClient{registry: reg}
}

// Ensure MockClient implements LLMClient interface.
var _ LLMClient = (*MockClient)(nil)

// Send echoes the prompt back and reports the resolved wire model.
func (m *MockClient) Send(ctx context.Context, modelKey, prompt string, history []domain.HistoryEntry) Result {
	model := m.registry.Resolve(modelKey)
	return Result{
		Text: fmt.Sprintf("[MOCK] Received your message: %q (%d prior messages). This is a mock response.",
			truncate(prompt, 100), len(history)),
		ModelUsed: model.WireModel,
	}
}

// truncate truncates a string to the given number of characters.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
