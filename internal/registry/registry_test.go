package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFallsBackToFirstEntry(t *testing.T) {
	r, err := New(DefaultEntries(), "")
	require.NoError(t, err)

	assert.Equal(t, "groq", r.Resolve("").Key)
	assert.Equal(t, "groq", r.Resolve("does-not-exist").Key)
	assert.Equal(t, "llama-3.3-70b-versatile", r.Default().WireModel)
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	r, err := New(DefaultEntries(), "")
	require.NoError(t, err)

	got := r.Resolve("  OpenRouter ")
	assert.Equal(t, "openrouter", got.ProviderID)
	assert.Equal(t, "anthropic/claude-3.5-haiku", got.WireModel)

	gemini, ok := r.Lookup("GEMINI")
	assert.True(t, ok)
	assert.Equal(t, "gemini", gemini.ProviderID)
}

func TestNewWithConfiguredDefault(t *testing.T) {
	r, err := New(DefaultEntries(), "glm")
	require.NoError(t, err)
	assert.Equal(t, "z-ai/glm-4.5-air:free", r.Resolve("unknown").WireModel)

	_, err = New(DefaultEntries(), "missing")
	assert.Error(t, err)
}

func TestNewRejectsInvalidEntries(t *testing.T) {
	_, err := New(nil, "")
	assert.Error(t, err)

	_, err = New([]ProviderConfig{{Key: "a", ProviderID: "groq"}}, "")
	assert.Error(t, err)

	_, err = New([]ProviderConfig{
		{Key: "a", ProviderID: "groq", WireModel: "m"},
		{Key: "A", ProviderID: "groq", WireModel: "m"},
	}, "")
	assert.Error(t, err)
}

func TestListIsACopy(t *testing.T) {
	r, err := New(DefaultEntries(), "")
	require.NoError(t, err)

	list := r.List()
	list[0].WireModel = "changed"
	assert.Equal(t, "llama-3.3-70b-versatile", r.Resolve("groq").WireModel)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	content := `default: fast
models:
  - key: slow
    provider: openrouter
    model: vendor/slow
    system_prompt: be thorough
  - key: fast
    provider: groq
    model: vendor/fast
    display_name: Fast one
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	r, err := LoadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, "fast", r.Default().Key)
	assert.Equal(t, "vendor/slow", r.Resolve("slow").WireModel)
	assert.Equal(t, "vendor/slow", r.Resolve("slow").DisplayName)

	r, err = LoadFile(path, "slow")
	require.NoError(t, err)
	assert.Equal(t, "slow", r.Default().Key)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.Error(t, err)
}
