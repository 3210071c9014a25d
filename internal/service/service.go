package service

import (
	"github.com/tanka-roy/c-hx-V01/internal/adapter/llm"
	"github.com/tanka-roy/c-hx-V01/internal/config"
	"github.com/tanka-roy/c-hx-V01/internal/metrics"
	"github.com/tanka-roy/c-hx-V01/internal/policy"
	"github.com/tanka-roy/c-hx-V01/internal/registry"
	"github.com/tanka-roy/c-hx-V01/internal/repository"
)

type Service struct {
	store        store.Store
	llmClient    llm.LLMClient
	registry     *registry.Registry
	config       *config.Config
	policyEngine *policy.Engine
	metrics      *metrics.Metrics
}

func New(store store.Store, llmClient llm.LLMClient, reg *registry.Registry, cfg *config.Config, policyEngine *policy.Engine, m *metrics.Metrics) *Service {
	return &Service{
		store:        store,
		llmClient:    llmClient,
		registry:     reg,
		config:       cfg,
		policyEngine: policyEngine,
		metrics:      m,
	}
}
