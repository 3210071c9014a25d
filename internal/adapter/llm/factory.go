package llm

import (
	"log"

	"github.com/tanka-roy/c-hx-V01/internal/config"
	"github.com/tanka-roy/c-hx-V01/internal/metrics"
	"github.com/tanka-roy/c-hx-V01/internal/registry"
)

// ModeMock indicates the mock client should be used.
const ModeMock = "MOCK"

// NewLLMClient creates an LLM client based on cfg.Mode.
// If CHAT_MODE=MOCK, returns a MockClient; otherwise returns a real Client.
func NewLLMClient(cfg *config.Config, reg *registry.Registry, m *metrics.Metrics) LLMClient {
	if cfg.Mode == ModeMock {
		log.Println("CHAT_MODE=MOCK detected, using mock LLM client")
		return NewMockClient(reg)
	}

	for id, p := range cfg.Providers {
		if p.APIKey == "" {
			log.Printf("WARN: %s is not set; %s models will answer with an error", p.APIKeyEnv, id)
		}
	}
	return NewClient(reg, cfg.Providers, cfg.LLMTimeout, cfg.HistoryWindow, m)
}
