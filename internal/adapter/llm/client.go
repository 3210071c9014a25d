package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/tanka-roy/c-hx-V01/internal/config"
	"github.com/tanka-roy/c-hx-V01/internal/domain"
	"github.com/tanka-roy/c-hx-V01/internal/metrics"
	"github.com/tanka-roy/c-hx-V01/internal/registry"
)

// Client is the provider adapter backed by real HTTP calls.
type Client struct {
	registry      *registry.Registry
	providers     map[string]config.ProviderEndpoint
	shapes        map[string]Shape
	httpClient    *http.Client
	timeout       time.Duration
	historyWindow int
	metrics       *metrics.Metrics
}

// NewClient creates a new provider adapter. m may be nil.
func NewClient(reg *registry.Registry, providers map[string]config.ProviderEndpoint, timeout time.Duration, historyWindow int, m *metrics.Metrics) *Client {
	return &Client{
		registry:  reg,
		providers: providers,
		shapes: map[string]Shape{
			config.FamilyOpenAI: openAIShape{},
			config.FamilyGemini: geminiShape{},
		},
		httpClient: &http.Client{
			Timeout: timeout,
		},
		timeout:       timeout,
		historyWindow: historyWindow,
		metrics:       m,
	}
}

// Send resolves modelKey, calls the provider once and normalizes the reply.
func (c *Client) Send(ctx context.Context, modelKey, prompt string, history []domain.HistoryEntry) Result {
	model := c.registry.Resolve(modelKey)
	if modelKey == "" {
		modelKey = model.Key
	}

	fail := func(perr *ProviderError) Result {
		log.Printf("WARN: %v", perr)
		return Result{Text: perr.Message, ModelUsed: modelKey, Err: perr}
	}

	endpoint, ok := c.providers[model.ProviderID]
	if !ok {
		return fail(&ProviderError{
			Provider: model.ProviderID,
			Kind:     ErrorKindUnknownProvider,
			Message:  fmt.Sprintf("Error: Unknown provider '%s'", model.ProviderID),
		})
	}
	shape, ok := c.shapes[endpoint.Family]
	if !ok {
		return fail(&ProviderError{
			Provider: model.ProviderID,
			Kind:     ErrorKindUnknownProvider,
			Message:  fmt.Sprintf("Error: Unknown provider '%s'", model.ProviderID),
		})
	}
	if endpoint.APIKey == "" {
		return fail(&ProviderError{
			Provider: model.ProviderID,
			Kind:     ErrorKindMissingCredential,
			Message: fmt.Sprintf("Error: API key not configured for %s. Please set %s in your environment.",
				model.ProviderID, endpoint.APIKeyEnv),
		})
	}

	messages := BuildMessages(model.SystemPrompt, history, prompt, c.historyWindow)

	// The call outlives the inbound request; only the fixed timeout bounds it.
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	log.Printf("INFO: calling %s model=%s messages=%d", model.ProviderID, model.WireModel, len(messages))
	start := time.Now()
	text, perr := c.call(callCtx, shape, Target{
		URL:     endpoint.BaseURL,
		APIKey:  endpoint.APIKey,
		Model:   model.WireModel,
		Headers: endpoint.Headers,
	}, messages)
	latency := time.Since(start)

	if perr != nil {
		perr.Provider = model.ProviderID
		c.metrics.ObserveProvider(model.ProviderID, model.WireModel, metrics.OutcomeError, latency)
		return fail(perr)
	}

	c.metrics.ObserveProvider(model.ProviderID, model.WireModel, metrics.OutcomeOK, latency)
	return Result{Text: strings.TrimSpace(text), ModelUsed: model.WireModel}
}

func (c *Client) call(ctx context.Context, shape Shape, target Target, messages []ChatMessage) (string, *ProviderError) {
	httpReq, err := shape.BuildRequest(ctx, target, messages)
	if err != nil {
		return "", &ProviderError{Kind: ErrorKindNetwork, Message: "Error: Network error - " + err.Error(), Cause: err}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &ProviderError{
			Kind:       ErrorKindStatus,
			StatusCode: resp.StatusCode,
			Message:    describeStatusError(resp.StatusCode, respBody),
		}
	}

	text, err := shape.ParseResponse(respBody)
	if err != nil {
		return "", &ProviderError{Kind: ErrorKindParse, Message: "Error: Unexpected response format from API", Cause: err}
	}
	return text, nil
}

func classifyTransportError(err error) *ProviderError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &ProviderError{Kind: ErrorKindTimeout, Message: "Error: Request timed out. Please try again.", Cause: err}
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) || (errors.As(err, &opErr) && opErr.Op == "dial") {
		return &ProviderError{Kind: ErrorKindConnection, Message: "Error: Could not connect to API. Check your internet connection.", Cause: err}
	}

	return &ProviderError{Kind: ErrorKindNetwork, Message: "Error: Network error - " + err.Error(), Cause: err}
}
