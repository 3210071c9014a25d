package policy

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(context.Background(), DefaultPolicy)
	require.NoError(t, err)
	return engine
}

func TestEvaluateAllowsOrdinaryMessage(t *testing.T) {
	engine := newTestEngine(t)
	decision, err := engine.Evaluate(context.Background(), Input{
		Message:          "Explain recursion",
		MessageLength:    17,
		MaxMessageLength: 100,
	})
	require.NoError(t, err)
	assert.True(t, decision.Allow)
}

func TestEvaluateRejectsBlankMessage(t *testing.T) {
	engine := newTestEngine(t)
	decision, err := engine.Evaluate(context.Background(), Input{Message: "   ", MessageLength: 3, MaxMessageLength: 100})
	require.NoError(t, err)
	assert.False(t, decision.Allow)
	assert.Equal(t, "message is required", decision.Reason)
}

func TestEvaluateRejectsLongMessage(t *testing.T) {
	engine := newTestEngine(t)
	msg := strings.Repeat("a", 11)
	decision, err := engine.Evaluate(context.Background(), Input{Message: msg, MessageLength: 11, MaxMessageLength: 10})
	require.NoError(t, err)
	assert.False(t, decision.Allow)
	assert.Equal(t, "message is too long", decision.Reason)

	decision, err = engine.Evaluate(context.Background(), Input{Message: msg, MessageLength: 11})
	require.NoError(t, err)
	assert.True(t, decision.Allow, "zero limit disables the length check")
}

func TestNewEngineRejectsInvalidPolicy(t *testing.T) {
	_, err := NewEngine(context.Background(), "package chat_policy\ndecision = {")
	assert.Error(t, err)
}

func TestEvaluateCustomPolicy(t *testing.T) {
	engine, err := NewEngine(context.Background(), `
package chat_policy

decision = {"allow": false, "reason": "model disabled"} {
	input.model == "gemini"
}
`)
	require.NoError(t, err)

	decision, err := engine.Evaluate(context.Background(), Input{Message: "hi", Model: "gemini"})
	require.NoError(t, err)
	assert.False(t, decision.Allow)

	decision, err = engine.Evaluate(context.Background(), Input{Message: "hi", Model: "groq"})
	require.NoError(t, err)
	assert.True(t, decision.Allow)
}
