package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorKind classifies provider failures.
type ErrorKind string

const (
	ErrorKindUnknownProvider   ErrorKind = "unknown_provider"
	ErrorKindMissingCredential ErrorKind = "missing_credential"
	ErrorKindTimeout           ErrorKind = "timeout"
	ErrorKindConnection        ErrorKind = "connection"
	ErrorKindNetwork           ErrorKind = "network"
	ErrorKindStatus            ErrorKind = "status"
	ErrorKindParse             ErrorKind = "parse"
)

// ProviderError describes a failed provider call.
type ProviderError struct {
	Provider   string
	Kind       ErrorKind
	StatusCode int
	// Message is the text shown to the user in place of a reply.
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %q %s error (status %d): %s", e.Provider, e.Kind, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("provider %q %s error: %s: %v", e.Provider, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider %q %s error: %s", e.Provider, e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// maxErrorBody caps how much of an unparseable error body is echoed back.
const maxErrorBody = 200

// describeStatusError renders a non-success response the way the user sees it.
func describeStatusError(statusCode int, body []byte) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Error) > 0 {
		var detail struct {
			Message string `json:"message"`
			Type    string `json:"type"`
			Status  string `json:"status"`
		}
		if err := json.Unmarshal(envelope.Error, &detail); err == nil && detail.Message != "" {
			errType := detail.Type
			if errType == "" {
				errType = detail.Status
			}
			if errType == "" {
				errType = "unknown"
			}
			return fmt.Sprintf("API Error (%s): %s", errType, detail.Message)
		}
		var text string
		if err := json.Unmarshal(envelope.Error, &text); err == nil && text != "" {
			return fmt.Sprintf("API Error: %s", text)
		}
	}

	snippet := string(body)
	if len(snippet) > maxErrorBody {
		snippet = strings.ToValidUTF8(snippet[:maxErrorBody], "")
	}
	return fmt.Sprintf("API Error: HTTP %d - %s", statusCode, snippet)
}
