// Package registry maps client-facing model keys to provider models.
package registry

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	developerPrompt = "You are an expert full-stack developer and coding assistant. You excel at writing clean, efficient code and explaining technical concepts clearly."
	designerPrompt  = "You are an expert in modern UI/UX design and web development. You excel at creating beautiful, user-friendly interfaces and providing thoughtful design advice."
	assistantPrompt = "You are a helpful AI assistant."
)

// ProviderConfig is the resolved provider selection for a model key.
type ProviderConfig struct {
	Key          string `yaml:"key"`
	ProviderID   string `yaml:"provider"`
	WireModel    string `yaml:"model"`
	SystemPrompt string `yaml:"system_prompt"`
	DisplayName  string `yaml:"display_name"`
}

// Registry is an ordered, read-only table of models.
type Registry struct {
	entries    []ProviderConfig
	index      map[string]int
	defaultIdx int
}

// DefaultEntries returns the built-in model table.
func DefaultEntries() []ProviderConfig {
	return []ProviderConfig{
		{Key: "groq", ProviderID: "groq", WireModel: "llama-3.3-70b-versatile", SystemPrompt: developerPrompt, DisplayName: "Groq Llama 3.3"},
		{Key: "openrouter", ProviderID: "openrouter", WireModel: "anthropic/claude-3.5-haiku", SystemPrompt: designerPrompt, DisplayName: "Claude 3.5 Haiku"},
		{Key: "glm", ProviderID: "openrouter", WireModel: "z-ai/glm-4.5-air:free", SystemPrompt: assistantPrompt, DisplayName: "GLM 4.5 Air"},
		{Key: "arcee", ProviderID: "openrouter", WireModel: "arcee-ai/trinity-large-preview:free", SystemPrompt: assistantPrompt, DisplayName: "Arcee Trinity"},
		{Key: "stepfun", ProviderID: "openrouter", WireModel: "stepfun/step-3.5-flash:free", SystemPrompt: assistantPrompt, DisplayName: "StepFun 3.5 Flash"},
		{Key: "gemini", ProviderID: "gemini", WireModel: "gemini-1.5-flash", SystemPrompt: assistantPrompt, DisplayName: "Gemini 1.5 Flash"},
	}
}

// New builds a registry. defaultKey selects the fallback entry; when empty
// the first entry is used.
func New(entries []ProviderConfig, defaultKey string) (*Registry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("registry requires at least one model")
	}

	r := &Registry{
		entries: make([]ProviderConfig, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		e.Key = strings.ToLower(strings.TrimSpace(e.Key))
		if e.Key == "" || e.ProviderID == "" || e.WireModel == "" {
			return nil, fmt.Errorf("model entry %q requires key, provider and model", e.Key)
		}
		if _, dup := r.index[e.Key]; dup {
			return nil, fmt.Errorf("duplicate model key %q", e.Key)
		}
		if e.DisplayName == "" {
			e.DisplayName = e.WireModel
		}
		r.index[e.Key] = len(r.entries)
		r.entries = append(r.entries, e)
	}

	if defaultKey != "" {
		idx, ok := r.index[strings.ToLower(defaultKey)]
		if !ok {
			return nil, fmt.Errorf("default model %q is not registered", defaultKey)
		}
		r.defaultIdx = idx
	}
	return r, nil
}

// fileFormat is the YAML layout accepted by LoadFile.
type fileFormat struct {
	Default string           `yaml:"default"`
	Models  []ProviderConfig `yaml:"models"`
}

// LoadFile builds a registry from a YAML file. A default key in the file is
// used unless defaultKey overrides it.
func LoadFile(path, defaultKey string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read models file %q: %w", path, err)
	}

	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse models file %q: %w", path, err)
	}
	if defaultKey == "" {
		defaultKey = f.Default
	}
	return New(f.Models, defaultKey)
}

// Resolve returns the entry for modelKey, falling back to the default entry
// when the key is empty or unknown.
func (r *Registry) Resolve(modelKey string) ProviderConfig {
	if idx, ok := r.index[strings.ToLower(strings.TrimSpace(modelKey))]; ok {
		return r.entries[idx]
	}
	return r.entries[r.defaultIdx]
}

// Lookup returns the entry for modelKey without falling back.
func (r *Registry) Lookup(modelKey string) (ProviderConfig, bool) {
	idx, ok := r.index[strings.ToLower(strings.TrimSpace(modelKey))]
	if !ok {
		return ProviderConfig{}, false
	}
	return r.entries[idx], true
}

// Default returns the fallback entry.
func (r *Registry) Default() ProviderConfig {
	return r.entries[r.defaultIdx]
}

// List returns all entries in registration order.
func (r *Registry) List() []ProviderConfig {
	out := make([]ProviderConfig, len(r.entries))
	copy(out, r.entries)
	return out
}
