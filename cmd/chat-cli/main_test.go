package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanka-roy/c-hx-V01/internal/transport/ws"
)

func TestParseCommand(t *testing.T) {
	cmd, ok := parseCommand("/Model  gemini ")
	require.True(t, ok)
	assert.Equal(t, command{name: "model", arg: "gemini"}, cmd)

	_, ok = parseCommand("hello /new")
	assert.False(t, ok)
}

func TestApplyCommands(t *testing.T) {
	c := &Client{conversationID: "abc"}

	quit, _ := c.apply(command{name: "new"})
	assert.False(t, quit)
	assert.Empty(t, c.conversationID)

	_, reply := c.apply(command{name: "model", arg: "GLM"})
	assert.Equal(t, "glm", c.model)
	assert.Contains(t, reply, "glm")

	quit, _ = c.apply(command{name: "quit"})
	assert.True(t, quit)
}

// echoServer answers each chat frame with a fixed conversation id.
func echoServer(t *testing.T) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		for {
			var msg ws.ChatMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			if msg.Message == "fail" {
				conn.WriteJSON(ws.ErrorMessage{
					BaseMessage: ws.BaseMessage{Type: ws.TypeError, RequestID: msg.RequestID},
					Code:        ws.ErrorCodeNotFound,
					Message:     "Conversation not found",
				})
				continue
			}
			conn.WriteJSON(ws.ChatResultMessage{
				BaseMessage:    ws.BaseMessage{Type: ws.TypeChatResult, RequestID: msg.RequestID},
				Response:       "echo: " + msg.Message + " in " + msg.ConversationID,
				ConversationID: "conv-1",
				ModelUsed:      msg.Model,
			})
		}
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestClientChatTracksConversation(t *testing.T) {
	client, err := NewClient(echoServer(t), "groq", time.Second)
	require.NoError(t, err)
	defer client.Close()

	result, err := client.Chat("first")
	require.NoError(t, err)
	assert.Equal(t, "conv-1", result.ConversationID)
	assert.Equal(t, "groq", result.ModelUsed)

	result, err = client.Chat("second")
	require.NoError(t, err)
	assert.Equal(t, "echo: second in conv-1", result.Response)

	_, err = client.Chat("fail")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ws.ErrorCodeNotFound)
}
