package model

import (
	"testing"
	"time"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "short text unchanged",
			input:    "What is a p-value?",
			expected: "What is a p-value?",
		},
		{
			name:     "exactly fifty characters unchanged",
			input:    "12345678901234567890123456789012345678901234567890",
			expected: "12345678901234567890123456789012345678901234567890",
		},
		{
			name:     "long text truncated with ellipsis",
			input:    "Explain recursion in depth beyond fifty characters of content",
			expected: "Explain recursion in depth beyond fifty characters...",
		},
		{
			name:     "surrounding whitespace trimmed first",
			input:    "  How do I assign a variable in R?  ",
			expected: "How do I assign a variable in R?",
		},
		{
			name:     "empty text",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DeriveTitle(tt.input)
			if result != tt.expected {
				t.Errorf("got %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestConversationIdentityConfirm(t *testing.T) {
	t.Run("pending to confirmed", func(t *testing.T) {
		identity := PendingIdentity()
		if identity.Confirmed() {
			t.Fatal("new identity should not be confirmed")
		}
		if err := identity.Confirm("42"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !identity.Confirmed() || identity.ID() != "42" {
			t.Errorf("got confirmed=%v id=%q, want confirmed=true id=%q", identity.Confirmed(), identity.ID(), "42")
		}
	})

	t.Run("reconfirming same id is a no-op", func(t *testing.T) {
		identity := ConfirmedIdentity("42")
		if err := identity.Confirm("42"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if identity.ID() != "42" {
			t.Errorf("id changed to %q", identity.ID())
		}
	})

	t.Run("different id rejected", func(t *testing.T) {
		identity := ConfirmedIdentity("42")
		if err := identity.Confirm("99"); err == nil {
			t.Fatal("expected error confirming a different id")
		}
		if identity.ID() != "42" {
			t.Errorf("id changed to %q", identity.ID())
		}
	})

	t.Run("empty id rejected", func(t *testing.T) {
		identity := PendingIdentity()
		if err := identity.Confirm(""); err == nil {
			t.Fatal("expected error confirming an empty id")
		}
		if identity.Confirmed() {
			t.Error("identity should still be pending")
		}
	})
}

func TestFilterHistory(t *testing.T) {
	history := []HistorySummary{
		{ID: "1", Title: "Statistics basics"},
		{ID: "2", Title: "R vs RStudio"},
		{ID: "3", Title: "ggplot2"},
	}

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{
			name:     "empty query returns everything",
			query:    "",
			expected: []string{"1", "2", "3"},
		},
		{
			name:     "case-insensitive substring",
			query:    "stat",
			expected: []string{"1"},
		},
		{
			name:     "uppercase query",
			query:    "GGPLOT",
			expected: []string{"3"},
		},
		{
			name:     "no matches",
			query:    "python",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilterHistory(history, tt.query)
			if len(result) != len(tt.expected) {
				t.Fatalf("got %d results, want %d", len(result), len(tt.expected))
			}
			for i, summary := range result {
				if summary.ID != tt.expected[i] {
					t.Errorf("result %d: got id %q, want %q", i, summary.ID, tt.expected[i])
				}
			}
		})
	}
}

func TestNewDraftConversation(t *testing.T) {
	msg := NewUserMessage("Tell me about the ggplot2 package.", nil)
	conv := NewDraftConversation(msg)

	if conv.Identity.Confirmed() {
		t.Error("draft conversation should be pending")
	}
	if conv.ID() != "" {
		t.Errorf("draft conversation id should be empty, got %q", conv.ID())
	}
	if conv.Title != "Tell me about the ggplot2 package." {
		t.Errorf("unexpected title %q", conv.Title)
	}
	if len(conv.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(conv.Messages))
	}
}

func TestRehydratedConversation(t *testing.T) {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	messages := []Message{
		{Role: RoleUser, Text: "What is bibliometrics?"},
		{Role: RoleAssistant, Text: "Bibliometrics is..."},
	}

	conv := RehydratedConversation("7", "What is bibliometrics?", messages, ts)

	if !conv.Identity.Confirmed() || conv.ID() != "7" {
		t.Errorf("got confirmed=%v id=%q, want confirmed id 7", conv.Identity.Confirmed(), conv.ID())
	}
	if !conv.Timestamp.Equal(ts) {
		t.Errorf("timestamp not preserved: %v", conv.Timestamp)
	}
	if len(conv.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(conv.Messages))
	}
}
