package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// GenerateContentRequest is the body of a generateContent call.
type GenerateContentRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

// GenerateContentResponse is the subset of the generateContent response we read.
type GenerateContentResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason,omitempty"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
}

// geminiShape speaks the generateContent dialect. The credential travels as
// the key query parameter and assistant turns are sent with role "model".
type geminiShape struct{}

func (geminiShape) BuildRequest(ctx context.Context, target Target, messages []ChatMessage) (*http.Request, error) {
	payload := GenerateContentRequest{
		GenerationConfig: geminiGenerationConfig{
			Temperature:     DefaultTemperature,
			MaxOutputTokens: DefaultMaxTokens,
		},
	}
	for _, m := range messages {
		part := []geminiPart{{Text: m.Content}}
		switch m.Role {
		case "system":
			payload.SystemInstruction = &geminiContent{Parts: part}
		case "assistant":
			payload.Contents = append(payload.Contents, geminiContent{Role: "model", Parts: part})
		default:
			payload.Contents = append(payload.Contents, geminiContent{Role: "user", Parts: part})
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	u, err := url.Parse(strings.TrimSuffix(target.URL, "/") + "/" + target.Model + ":generateContent")
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	q := u.Query()
	q.Set("key", target.APIKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range target.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

func (geminiShape) ParseResponse(body []byte) (string, error) {
	var result GenerateContentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(result.Candidates) == 0 {
		if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", result.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("response has no candidates")
	}

	parts := result.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", fmt.Errorf("candidate has no parts")
	}
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
