package ws

// Message types from client to server
const (
	TypeChat = "chat"
)

// Message types from server to client
const (
	TypeChatResult = "chat_result"
	TypeError      = "error"
)

// BaseMessage contains common fields for all frames.
type BaseMessage struct {
	Type      string `json:"type"`
	Ts        int64  `json:"ts,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ChatMessage asks for one chat turn.
type ChatMessage struct {
	BaseMessage
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
	Model          string `json:"model,omitempty"`
}

// ChatResultMessage carries the reply to a ChatMessage.
type ChatResultMessage struct {
	BaseMessage
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
	ModelUsed      string `json:"model_used"`
}

// ErrorMessage is sent when a frame cannot be served.
type ErrorMessage struct {
	BaseMessage
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrorCodeInvalidMessage = "invalid_message"
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeInternalError  = "internal_error"
)
