package ui

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	appmodel "github.com/pushpitasaha/thinkbot-AI/model"
)

func TestSuggestedPromptsViewTruncatesOnRuneBoundaries(t *testing.T) {
	session := appmodel.NewSession(nil, nil)
	session.Active = appmodel.RehydratedConversation("1", "chat", nil, time.Now())
	session.SuggestedPrompts = []string{
		strings.Repeat("日本語のプロンプト", 10),
		"short prompt",
	}

	view := NewAppView(session, "")
	row := view.suggestedPromptsView()

	if !utf8.ValidString(row) {
		t.Fatal("prompt row contains invalid UTF-8 after truncation")
	}
	if !strings.Contains(row, "[1]") || !strings.Contains(row, "[2]") {
		t.Errorf("hotkey labels missing: %q", row)
	}
	if !strings.Contains(row, "short prompt") {
		t.Errorf("untruncated prompt should render whole: %q", row)
	}
	if !strings.Contains(row, "...") {
		t.Errorf("long prompt should be truncated with ellipsis: %q", row)
	}
}

func TestSuggestedPromptsViewEmptyWithoutPrompts(t *testing.T) {
	session := appmodel.NewSession(nil, nil)
	view := NewAppView(session, "")

	if row := view.suggestedPromptsView(); row != "" {
		t.Errorf("welcome state should render no prompt row, got %q", row)
	}
}
