package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitleFromMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"short", "Explain recursion", "Explain recursion"},
		{"exactly fifty", strings.Repeat("a", 50), strings.Repeat("a", 50)},
		{"fifty one", strings.Repeat("a", 51), strings.Repeat("a", 50) + "..."},
		{"multibyte", strings.Repeat("é", 60), strings.Repeat("é", 50) + "..."},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TitleFromMessage(tt.message))
		})
	}
}

func TestHistoryPreservesOrder(t *testing.T) {
	history := History([]Message{
		{Role: RoleUser, Content: "one"},
		{Role: RoleAssistant, Content: "two"},
	})
	assert.Equal(t, []HistoryEntry{
		{Role: RoleUser, Content: "one"},
		{Role: RoleAssistant, Content: "two"},
	}, history)
}
