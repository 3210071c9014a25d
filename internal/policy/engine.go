// Package policy evaluates chat admission rules with OPA.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Decision is the outcome of evaluating a chat request.
type Decision struct {
	Allow  bool
	Reason string
}

// Input is the document the policy sees.
type Input struct {
	Message          string `json:"message"`
	MessageLength    int    `json:"message_length"`
	MaxMessageLength int    `json:"max_message_length"`
	Model            string `json:"model"`
	HasConversation  bool   `json:"has_conversation"`
}

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.chat_policy.decision"),
		rego.Module("chat_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks a chat request against the policy.
// An undefined decision allows the request.
func (e *Engine) Evaluate(ctx context.Context, input Input) (Decision, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return Decision{}, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return Decision{Allow: true}, nil
	}

	obj, ok := results[0].Expressions[0].Value.(map[string]interface{})
	if !ok {
		return Decision{}, fmt.Errorf("unexpected policy result type %T", results[0].Expressions[0].Value)
	}
	allow, ok := obj["allow"].(bool)
	if !ok {
		return Decision{}, fmt.Errorf("policy result is missing allow")
	}
	reason, _ := obj["reason"].(string)
	return Decision{Allow: allow, Reason: reason}, nil
}

// DefaultPolicy is the default policy content.
const DefaultPolicy = `
package chat_policy

default decision = {"allow": true, "reason": ""}

decision = {"allow": false, "reason": "message is required"} {
	trim_space(input.message) == ""
}

decision = {"allow": false, "reason": "message is too long"} {
	trim_space(input.message) != ""
	input.max_message_length > 0
	input.message_length > input.max_message_length
}
`
