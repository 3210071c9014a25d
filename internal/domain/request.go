package domain

// ChatRequest represents a chat request from the client.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
	Model          string `json:"model,omitempty"`
}

// ChatResponse represents the unified response for a chat request.
type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
	ModelUsed      string `json:"model_used"`
}

// DeleteResponse reports how many conversations were removed.
type DeleteResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deleted_count"`
}

// ModelInfo describes a selectable model for clients.
type ModelInfo struct {
	Key         string `json:"key"`
	Provider    string `json:"provider"`
	Model       string `json:"model"`
	DisplayName string `json:"display_name"`
	Default     bool   `json:"default"`
}
