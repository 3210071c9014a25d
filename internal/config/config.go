// Package config provides configuration for the chat server.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider families understood by the LLM adapter.
const (
	FamilyOpenAI = "openai"
	FamilyGemini = "gemini"
)

// ProviderEndpoint describes how to reach one LLM provider.
type ProviderEndpoint struct {
	// Family selects the request/response shape (openai or gemini).
	Family string
	// BaseURL is the full completion URL for openai-family providers and the
	// models root for gemini.
	BaseURL string
	// APIKeyEnv names the environment variable holding the credential.
	APIKeyEnv string
	// APIKey is the credential read at startup. Empty means not configured.
	APIKey string
	// Headers are sent in addition to the family defaults.
	Headers map[string]string
}

// Config holds the server configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// LLM settings
	LLMTimeout       time.Duration
	HistoryWindow    int
	MaxMessageLength int
	DefaultModel     string
	ModelsFile       string
	Mode             string
	Providers        map[string]ProviderEndpoint

	// WebSocket settings
	WSReadLimit    int64
	WSPingInterval time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:         getEnvInt("HTTP_PORT", 8000),
		DatabaseURL:      getEnv("DATABASE_URL", "file:chat.db?cache=shared&mode=rwc"),
		LLMTimeout:       time.Duration(getEnvInt("LLM_TIMEOUT_MS", 120000)) * time.Millisecond,
		HistoryWindow:    getEnvInt("HISTORY_WINDOW", 10),
		MaxMessageLength: getEnvInt("MAX_MESSAGE_LENGTH", 32000),
		DefaultModel:     strings.ToLower(getEnv("DEFAULT_MODEL", "")),
		ModelsFile:       getEnv("MODELS_FILE", ""),
		Mode:             getEnv("CHAT_MODE", ""),
		Providers:        DefaultProviders(),
		WSReadLimit:      int64(getEnvInt("WS_READ_LIMIT", 65536)),
		WSPingInterval:   time.Duration(getEnvInt("WS_PING_INTERVAL_MS", 30000)) * time.Millisecond,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	for id, p := range cfg.Providers {
		p.APIKey = os.Getenv(p.APIKeyEnv)
		p.BaseURL = getEnv(strings.ToUpper(id)+"_BASE_URL", p.BaseURL)
		cfg.Providers[id] = p
	}
	return cfg
}

// DefaultProviders returns the built-in provider endpoints without credentials.
func DefaultProviders() map[string]ProviderEndpoint {
	return map[string]ProviderEndpoint{
		"groq": {
			Family:    FamilyOpenAI,
			BaseURL:   "https://api.groq.com/openai/v1/chat/completions",
			APIKeyEnv: "GROQ_API_KEY",
		},
		"openrouter": {
			Family:    FamilyOpenAI,
			BaseURL:   "https://openrouter.ai/api/v1/chat/completions",
			APIKeyEnv: "OPENROUTER_API_KEY",
			Headers: map[string]string{
				"HTTP-Referer": "https://chat-hx.com",
				"X-Title":      "Chat HX",
			},
		},
		"gemini": {
			Family:    FamilyGemini,
			BaseURL:   "https://generativelanguage.googleapis.com/v1beta/models",
			APIKeyEnv: "GEMINI_API_KEY",
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
