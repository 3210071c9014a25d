package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("LLM_TIMEOUT_MS", "")

	cfg := Load()
	assert.Equal(t, 8000, cfg.HTTPPort)
	assert.Equal(t, 120*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 10, cfg.HistoryWindow)
	assert.Empty(t, cfg.Providers["groq"].APIKey)
	assert.Equal(t, FamilyGemini, cfg.Providers["gemini"].Family)
}

func TestLoadReadsCredentialsAndOverrides(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("GROQ_BASE_URL", "http://localhost:9999/chat")
	t.Setenv("HISTORY_WINDOW", "4")
	t.Setenv("DEFAULT_MODEL", "OpenRouter")
	t.Setenv("HTTP_PORT", "not-a-number")

	cfg := Load()
	assert.Equal(t, "gsk-test", cfg.Providers["groq"].APIKey)
	assert.Equal(t, "http://localhost:9999/chat", cfg.Providers["groq"].BaseURL)
	assert.Equal(t, 4, cfg.HistoryWindow)
	assert.Equal(t, "openrouter", cfg.DefaultModel)
	assert.Equal(t, 8000, cfg.HTTPPort)
}
