// Package llm provides the provider adapter that turns a chat turn into an
// outbound LLM call and normalizes the answer.
package llm

import (
	"context"

	"github.com/tanka-roy/c-hx-V01/internal/domain"
)

// LLMClient defines the interface for generating assistant replies.
type LLMClient interface {
	// Send generates a reply to prompt given the prior conversation history.
	// It never fails: provider problems are reported in Result.Text with
	// Result.Err set.
	Send(ctx context.Context, modelKey, prompt string, history []domain.HistoryEntry) Result
}

// Result is the normalized outcome of a provider call.
type Result struct {
	// Text is the assistant reply, or a human-readable error description.
	Text string
	// ModelUsed is the wire model name on success and the requested model
	// key on failure.
	ModelUsed string
	// Err is non-nil when Text describes a failure.
	Err error
}

// Ensure Client implements LLMClient interface.
var _ LLMClient = (*Client)(nil)
