package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanka-roy/c-hx-V01/internal/adapter/llm"
	"github.com/tanka-roy/c-hx-V01/internal/config"
	"github.com/tanka-roy/c-hx-V01/internal/metrics"
	"github.com/tanka-roy/c-hx-V01/internal/policy"
	"github.com/tanka-roy/c-hx-V01/internal/registry"
	"github.com/tanka-roy/c-hx-V01/internal/repository"
	"github.com/tanka-roy/c-hx-V01/internal/service"
	"github.com/tanka-roy/c-hx-V01/tests/helpers"
)

func newTestServer(t *testing.T) (*websocket.Conn, store.Store) {
	t.Helper()
	cfg := &config.Config{
		MaxMessageLength: 1000,
		HistoryWindow:    10,
		WSReadLimit:      4096,
		WSPingInterval:   time.Second,
	}
	db := helpers.NewTestSQLiteStore(t)
	reg, err := registry.New(registry.DefaultEntries(), "")
	require.NoError(t, err)
	policyEngine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	require.NoError(t, err)
	svc := service.New(db, llm.NewMockClient(reg), reg, cfg, policyEngine, metrics.New())

	e := echo.New()
	NewServer(cfg, svc).RegisterRoutes(e)
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn, db
}

func exchange(t *testing.T, conn *websocket.Conn, frame interface{}, reply interface{}) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(frame))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(reply))
}

func TestWebSocketChatTurns(t *testing.T) {
	conn, db := newTestServer(t)

	var first ChatResultMessage
	exchange(t, conn, ChatMessage{
		BaseMessage: BaseMessage{Type: TypeChat, RequestID: "r1"},
		Message:     "hello over ws",
	}, &first)
	assert.Equal(t, TypeChatResult, first.Type)
	assert.Equal(t, "r1", first.RequestID)
	assert.NotEmpty(t, first.ConversationID)
	assert.Equal(t, "llama-3.3-70b-versatile", first.ModelUsed)

	var second ChatResultMessage
	exchange(t, conn, ChatMessage{
		BaseMessage:    BaseMessage{Type: TypeChat, RequestID: "r2"},
		Message:        "and again",
		ConversationID: first.ConversationID,
		Model:          "glm",
	}, &second)
	assert.Equal(t, "r2", second.RequestID)
	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Equal(t, "z-ai/glm-4.5-air:free", second.ModelUsed)
	assert.Contains(t, second.Response, "(2 prior messages)")

	messages, err := db.ListMessages(context.Background(), first.ConversationID)
	require.NoError(t, err)
	assert.Len(t, messages, 4)
}

func TestWebSocketErrors(t *testing.T) {
	conn, _ := newTestServer(t)

	cases := []struct {
		name  string
		frame interface{}
		code  string
	}{
		{"unknown type", BaseMessage{Type: "subscribe", RequestID: "r1"}, ErrorCodeInvalidMessage},
		{"empty message", ChatMessage{BaseMessage: BaseMessage{Type: TypeChat, RequestID: "r2"}}, ErrorCodeInvalidRequest},
		{"unknown conversation", ChatMessage{BaseMessage: BaseMessage{Type: TypeChat, RequestID: "r3"}, Message: "hi", ConversationID: "missing"}, ErrorCodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var reply ErrorMessage
			exchange(t, conn, tc.frame, &reply)
			assert.Equal(t, TypeError, reply.Type)
			assert.Equal(t, tc.code, reply.Code)
			assert.NotEmpty(t, reply.Message)
		})
	}
}

func TestWebSocketInvalidJSON(t *testing.T) {
	conn, _ := newTestServer(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var reply ErrorMessage
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, ErrorCodeInvalidMessage, reply.Code)
}
