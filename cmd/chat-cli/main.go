// Package main provides a terminal chat client for the WebSocket endpoint.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tanka-roy/c-hx-V01/internal/transport/ws"
)

// Client is a WebSocket chat client that remembers the active conversation.
type Client struct {
	conn           *websocket.Conn
	conversationID string
	model          string
	timeout        time.Duration
	seq            int
}

// NewClient creates a new client and connects to the server.
func NewClient(addr, model string, timeout time.Duration) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	return &Client{
		conn:    conn,
		model:   model,
		timeout: timeout,
	}, nil
}

// Close closes the client connection.
func (c *Client) Close() error {
	c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}

// Chat sends one message and waits for its reply.
func (c *Client) Chat(message string) (*ws.ChatResultMessage, error) {
	c.seq++
	requestID := fmt.Sprintf("cli_%d", c.seq)

	msg := ws.ChatMessage{
		BaseMessage: ws.BaseMessage{
			Type:      ws.TypeChat,
			Ts:        time.Now().UnixMilli(),
			RequestID: requestID,
		},
		Message:        message,
		ConversationID: c.conversationID,
		Model:          c.model,
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		return nil, fmt.Errorf("write chat: %w", err)
	}

	c.conn.SetReadDeadline(time.Now().Add(c.timeout))
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("read reply: %w", err)
		}

		var base ws.BaseMessage
		if err := json.Unmarshal(data, &base); err != nil {
			return nil, fmt.Errorf("unmarshal reply: %w", err)
		}
		if base.RequestID != "" && base.RequestID != requestID {
			continue
		}

		switch base.Type {
		case ws.TypeError:
			var errMsg ws.ErrorMessage
			json.Unmarshal(data, &errMsg)
			return nil, fmt.Errorf("%s: %s", errMsg.Code, errMsg.Message)
		case ws.TypeChatResult:
			var result ws.ChatResultMessage
			if err := json.Unmarshal(data, &result); err != nil {
				return nil, fmt.Errorf("unmarshal chat_result: %w", err)
			}
			c.conversationID = result.ConversationID
			return &result, nil
		default:
			return nil, fmt.Errorf("unexpected message type: %s", base.Type)
		}
	}
}

// command is a parsed line of user input.
type command struct {
	name string
	arg  string
}

// parseCommand recognizes slash commands. ok is false for chat text.
func parseCommand(input string) (command, bool) {
	if !strings.HasPrefix(input, "/") {
		return command{}, false
	}
	name, arg, _ := strings.Cut(strings.TrimPrefix(input, "/"), " ")
	return command{name: strings.ToLower(name), arg: strings.TrimSpace(arg)}, true
}

// apply runs a command against the client. It reports whether to exit.
func (c *Client) apply(cmd command) (quit bool, reply string) {
	switch cmd.name {
	case "quit", "exit":
		return true, "Bye!"
	case "new":
		c.conversationID = ""
		return false, "Started a new conversation."
	case "model":
		if cmd.arg == "" {
			if c.model == "" {
				return false, "Using the server default model."
			}
			return false, "Using model " + c.model + "."
		}
		c.model = strings.ToLower(cmd.arg)
		return false, "Switched to model " + c.model + "."
	default:
		return false, "Unknown command /" + cmd.name + ". Commands: /new, /model [key], /quit"
	}
}

func main() {
	addr := flag.String("addr", "ws://localhost:8000/ws", "WebSocket server address")
	model := flag.String("model", "", "Model key to use (server default when empty)")
	timeout := flag.Duration("timeout", 150*time.Second, "How long to wait for each reply")
	flag.Parse()

	log.SetFlags(log.Ltime)

	fmt.Printf("Connecting to %s...\n", *addr)

	client, err := NewClient(*addr, *model, *timeout)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Close()

	fmt.Println("Connected.")
	fmt.Println("\nType a message and press Enter to send.")
	fmt.Println("Commands: /new, /model [key], /quit")
	fmt.Println()

	// Handle Ctrl+C
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		fmt.Println("\nInterrupted")
		client.Close()
		os.Exit(0)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if cmd, ok := parseCommand(input); ok {
			quit, reply := client.apply(cmd)
			fmt.Println(reply)
			if quit {
				return
			}
			continue
		}

		result, err := client.Chat(input)
		if err != nil {
			log.Printf("Chat error: %v", err)
			continue
		}
		fmt.Printf("\n[%s] %s\n\n", result.ModelUsed, result.Response)
	}
}
