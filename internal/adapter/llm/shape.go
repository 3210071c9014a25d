package llm

import (
	"context"
	"net/http"

	"github.com/tanka-roy/c-hx-V01/internal/domain"
)

// Generation settings sent with every request.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 4096
)

// ChatMessage represents a role-tagged chat message.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Target is everything a Shape needs to address one provider call.
type Target struct {
	URL     string
	APIKey  string
	Model   string
	Headers map[string]string
}

// Shape builds provider-specific requests and extracts reply text from
// provider-specific responses. One implementation exists per provider family.
type Shape interface {
	BuildRequest(ctx context.Context, target Target, messages []ChatMessage) (*http.Request, error)
	ParseResponse(body []byte) (string, error)
}

// BuildMessages assembles the system prompt, the newest window history
// entries and the new user prompt.
func BuildMessages(systemPrompt string, history []domain.HistoryEntry, prompt string, window int) []ChatMessage {
	if window < 0 {
		window = 0
	}
	if len(history) > window {
		history = history[len(history)-window:]
	}

	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, ChatMessage{Role: string(domain.RoleSystem), Content: systemPrompt})
	for _, h := range history {
		messages = append(messages, ChatMessage{Role: string(h.Role), Content: h.Content})
	}
	messages = append(messages, ChatMessage{Role: string(domain.RoleUser), Content: prompt})
	return messages
}
