// Package ws serves chat turns over WebSocket connections.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/tanka-roy/c-hx-V01/internal/config"
	"github.com/tanka-roy/c-hx-V01/internal/domain"
	"github.com/tanka-roy/c-hx-V01/internal/service"
)

const (
	writeTimeout = 10 * time.Second
	sendBuffer   = 16
)

// Server handles WebSocket connections.
type Server struct {
	service      *service.Service
	readLimit    int64
	pingInterval time.Duration
	upgrader     websocket.Upgrader
}

// NewServer creates a new WebSocket server.
func NewServer(cfg *config.Config, svc *service.Service) *Server {
	pingInterval := cfg.WSPingInterval
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &Server{
		service:      svc,
		readLimit:    cfg.WSReadLimit,
		pingInterval: pingInterval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The HTTP API allows every origin as well.
				return true
			},
		},
	}
}

// RegisterRoutes registers the upgrade endpoint.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws", s.HandleWebSocket)
}

// connection is one client socket. Only writePump writes to ws.
type connection struct {
	id        string
	ws        *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func (c *connection) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.ws.Close()
	})
}

// HandleWebSocket handles WebSocket upgrade and connection lifecycle.
func (s *Server) HandleWebSocket(c echo.Context) error {
	ws, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("WARN: failed to upgrade WebSocket: %v", err)
		return err
	}

	conn := &connection{
		id:   "conn_" + uuid.New().String()[:8],
		ws:   ws,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
	if s.readLimit > 0 {
		ws.SetReadLimit(s.readLimit)
	}
	log.Printf("INFO: websocket %s connected from %s", conn.id, c.RealIP())

	go s.writePump(conn)
	go s.readPump(conn)

	return nil
}

// readPump reads frames and serves them one at a time.
func (s *Server) readPump(conn *connection) {
	defer func() {
		conn.close()
		log.Printf("INFO: websocket %s disconnected", conn.id)
	}()

	readTimeout := 2 * s.pingInterval
	conn.ws.SetReadDeadline(time.Now().Add(readTimeout))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		_, message, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WARN: websocket %s read error: %v", conn.id, err)
			}
			return
		}

		s.handleMessage(conn, message)
		// A chat turn may outlast the deadline set before it started.
		conn.ws.SetReadDeadline(time.Now().Add(readTimeout))
	}
}

// writePump writes queued frames and keeps the connection alive with pings.
func (s *Server) writePump(conn *connection) {
	ticker := time.NewTicker(s.pingInterval)
	defer func() {
		ticker.Stop()
		conn.close()
	}()

	for {
		select {
		case message := <-conn.send:
			conn.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WARN: websocket %s write failed: %v", conn.id, err)
				return
			}

		case <-ticker.C:
			conn.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-conn.done:
			return
		}
	}
}

// handleMessage dispatches incoming frames by type.
func (s *Server) handleMessage(conn *connection, data []byte) {
	var base BaseMessage
	if err := json.Unmarshal(data, &base); err != nil {
		s.sendError(conn, "", ErrorCodeInvalidMessage, "invalid JSON message")
		return
	}

	switch base.Type {
	case TypeChat:
		s.handleChat(conn, data)
	default:
		s.sendError(conn, base.RequestID, ErrorCodeInvalidMessage, "unknown message type: "+base.Type)
	}
}

func (s *Server) handleChat(conn *connection, data []byte) {
	var msg ChatMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(conn, "", ErrorCodeInvalidMessage, "invalid chat message")
		return
	}

	requestID := msg.RequestID
	if requestID == "" {
		requestID = "req_" + uuid.New().String()[:8]
	}

	resp, err := s.service.Chat(context.Background(), &domain.ChatRequest{
		Message:        msg.Message,
		ConversationID: msg.ConversationID,
		Model:          msg.Model,
	})
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidRequest):
		s.sendError(conn, requestID, ErrorCodeInvalidRequest,
			strings.TrimPrefix(err.Error(), domain.ErrInvalidRequest.Error()+": "))
		return
	case errors.Is(err, domain.ErrNotFound):
		s.sendError(conn, requestID, ErrorCodeNotFound, "Conversation not found")
		return
	default:
		log.Printf("ERROR: websocket %s chat failed: %v", conn.id, err)
		s.sendError(conn, requestID, ErrorCodeInternalError, "internal server error")
		return
	}

	s.sendJSON(conn, ChatResultMessage{
		BaseMessage: BaseMessage{
			Type:      TypeChatResult,
			Ts:        time.Now().UnixMilli(),
			RequestID: requestID,
		},
		Response:       resp.Response,
		ConversationID: resp.ConversationID,
		MessageID:      resp.MessageID,
		ModelUsed:      resp.ModelUsed,
	})
}

func (s *Server) sendError(conn *connection, requestID, code, message string) {
	s.sendJSON(conn, ErrorMessage{
		BaseMessage: BaseMessage{
			Type:      TypeError,
			Ts:        time.Now().UnixMilli(),
			RequestID: requestID,
		},
		Code:    code,
		Message: message,
	})
}

func (s *Server) sendJSON(conn *connection, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("ERROR: failed to marshal websocket frame: %v", err)
		return
	}
	select {
	case conn.send <- data:
	case <-conn.done:
	}
}
