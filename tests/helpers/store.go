// Package helpers holds fixtures shared by package tests.
package helpers

import (
	"context"
	"testing"

	"github.com/tanka-roy/c-hx-V01/internal/domain"
	"github.com/tanka-roy/c-hx-V01/internal/repository"
)

// NewTestSQLiteStore opens an in-memory store closed at test cleanup.
func NewTestSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create sqlite store: %v", err)
	}

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

// NewTestConversation creates a conversation holding the given exchange.
// Contents alternate user and assistant roles starting with user.
func NewTestConversation(t *testing.T, s store.Store, title string, contents ...string) string {
	t.Helper()
	ctx := context.Background()

	id, err := s.CreateConversation(ctx, title)
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	for i, content := range contents {
		role, model := domain.RoleUser, ""
		if i%2 == 1 {
			role, model = domain.RoleAssistant, "test-model"
		}
		if _, err := s.AppendMessage(ctx, id, role, content, model); err != nil {
			t.Fatalf("AppendMessage: %v", err)
		}
	}
	return id
}
