package model

import (
	"testing"

	"github.com/pushpitasaha/thinkbot-AI/api"
)

func TestFromWireMessages(t *testing.T) {
	tests := []struct {
		name     string
		input    []api.Message
		expected []string // roles in order
	}{
		{
			name:     "empty slice",
			input:    []api.Message{},
			expected: []string{},
		},
		{
			name: "user and ai types",
			input: []api.Message{
				{Type: "user", Text: "What is R?"},
				{Type: "ai", Text: "R is a language."},
			},
			expected: []string{RoleUser, RoleAssistant},
		},
		{
			name: "unknown type renders as assistant",
			input: []api.Message{
				{Type: "system", Text: "notice"},
			},
			expected: []string{RoleAssistant},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FromWireMessages(tt.input)

			if len(result) != len(tt.expected) {
				t.Fatalf("length mismatch: got %d, want %d", len(result), len(tt.expected))
			}
			for i, msg := range result {
				if msg.Role != tt.expected[i] {
					t.Errorf("message %d role: got %q, want %q", i, msg.Role, tt.expected[i])
				}
				if msg.Text != tt.input[i].Text {
					t.Errorf("message %d text: got %q, want %q", i, msg.Text, tt.input[i].Text)
				}
			}
		})
	}
}

func TestFromWireHistory(t *testing.T) {
	wire := []api.HistorySummary{
		{ID: "2", Title: "What is a p-value?"},
		{ID: "1", Title: "ggplot2 basics"},
	}

	history := FromWireHistory(wire)

	if len(history) != 2 {
		t.Fatalf("got %d entries, want 2", len(history))
	}
	if history[0].ID != "2" || history[0].Title != "What is a p-value?" {
		t.Errorf("entry 0 = %+v", history[0])
	}
}
