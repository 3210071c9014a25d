package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/tanka-roy/c-hx-V01/internal/domain"
)

// driverName is go-sqlite3 with a Unicode-aware fold() function registered
// on every connection. The built-in lower() and LIKE fold ASCII only.
const driverName = "sqlite3_fold"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("fold", strings.ToLower, true)
		},
	})
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &SQLiteStore{db: db, now: func() time.Time { return time.Now().UTC() }}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_updated ON conversations(updated_at DESC)`,
		`CREATE TABLE IF NOT EXISTS messages (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			conversation_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			model_used TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, timestamp, seq)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_timestamp ON messages(timestamp DESC)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// parseID converts an opaque identifier into the native key form.
func parseID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

func toTime(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}

// CreateConversation creates a new conversation and returns its identifier.
func (s *SQLiteStore) CreateConversation(ctx context.Context, title string) (string, error) {
	id := uuid.New().String()
	now := s.now().UnixNano()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, title, now, now)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetConversation retrieves a conversation by ID.
func (s *SQLiteStore) GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	key, ok := parseID(conversationID)
	if !ok {
		return nil, domain.ErrNotFound
	}

	var conv domain.Conversation
	var createdAt, updatedAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, created_at, updated_at FROM conversations WHERE id = ?`,
		key).Scan(&conv.ID, &conv.Title, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	conv.CreatedAt = toTime(createdAt)
	conv.UpdatedAt = toTime(updatedAt)
	return &conv, nil
}

// ListConversations lists all conversations, most recently updated first.
func (s *SQLiteStore) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	return s.queryConversations(ctx,
		`SELECT id, title, created_at, updated_at FROM conversations ORDER BY updated_at DESC, created_at DESC`)
}

// TouchConversation sets updated_at to the current time.
func (s *SQLiteStore) TouchConversation(ctx context.Context, conversationID string) error {
	key, ok := parseID(conversationID)
	if !ok {
		return domain.ErrNotFound
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE conversations SET updated_at = ? WHERE id = ?`,
		s.now().UnixNano(), key)
	return err
}

// DeleteConversation removes a conversation and its messages.
// It returns the number of conversations removed (0 or 1).
func (s *SQLiteStore) DeleteConversation(ctx context.Context, conversationID string) (int64, error) {
	key, ok := parseID(conversationID)
	if !ok {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE conversation_id = ?`, key); err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, key)
	if err != nil {
		return 0, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return deleted, tx.Commit()
}

// DeleteAllConversations removes every conversation and message.
func (s *SQLiteStore) DeleteAllConversations(ctx context.Context) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages`); err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM conversations`)
	if err != nil {
		return 0, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return deleted, tx.Commit()
}

// SearchConversations finds conversations whose title or any message content
// contains query, ignoring case.
func (s *SQLiteStore) SearchConversations(ctx context.Context, query string) ([]domain.Conversation, error) {
	// instr matches literally, so % and _ in query need no escaping.
	needle := strings.ToLower(query)
	return s.queryConversations(ctx,
		`SELECT c.id, c.title, c.created_at, c.updated_at FROM conversations c
		WHERE instr(fold(c.title), ?) > 0
			OR EXISTS (
				SELECT 1 FROM messages m
				WHERE m.conversation_id = c.id AND instr(fold(m.content), ?) > 0
			)
		ORDER BY c.updated_at DESC, c.created_at DESC`,
		needle, needle)
}

func (s *SQLiteStore) queryConversations(ctx context.Context, query string, args ...interface{}) ([]domain.Conversation, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := []domain.Conversation{}
	for rows.Next() {
		var conv domain.Conversation
		var createdAt, updatedAt int64
		if err := rows.Scan(&conv.ID, &conv.Title, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		conv.CreatedAt = toTime(createdAt)
		conv.UpdatedAt = toTime(updatedAt)
		conversations = append(conversations, conv)
	}
	return conversations, rows.Err()
}

// AppendMessage stores a message and returns its identifier.
// The conversation is not checked for existence.
func (s *SQLiteStore) AppendMessage(ctx context.Context, conversationID string, role domain.Role, content, modelUsed string) (string, error) {
	key, ok := parseID(conversationID)
	if !ok {
		return "", domain.ErrNotFound
	}

	var model sql.NullString
	if modelUsed != "" {
		model = sql.NullString{String: modelUsed, Valid: true}
	}

	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (id, conversation_id, role, content, timestamp, model_used) VALUES (?, ?, ?, ?, ?, ?)`,
		id, key, string(role), content, s.now().UnixNano(), model)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListMessages retrieves the messages of a conversation, oldest first.
func (s *SQLiteStore) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	messages := []domain.Message{}
	key, ok := parseID(conversationID)
	if !ok {
		return messages, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, conversation_id, role, content, timestamp, model_used FROM messages
		WHERE conversation_id = ? ORDER BY timestamp ASC, seq ASC`,
		key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var msg domain.Message
		var role string
		var ts int64
		var model sql.NullString
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &role, &msg.Content, &ts, &model); err != nil {
			return nil, err
		}
		msg.Role = domain.Role(role)
		msg.Timestamp = toTime(ts)
		if model.Valid {
			msg.ModelUsed = model.String
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
