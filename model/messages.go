package model

import (
	"github.com/pushpitasaha/thinkbot-AI/api"
)

// Turn, history, and deletion results carry the session generation
// they were issued under; responses from a stale generation are
// discarded instead of applied (see Session.Generation).

type TurnResultMsg struct {
	Generation int
	Result     *api.ChatResult
	Err        error
}

type HistoryFetchedMsg struct {
	History []HistorySummary
	Err     error
}

type ConversationLoadedMsg struct {
	Generation int
	ID         string
	Title      string
	Messages   []Message
	Err        error
}

type ConversationsDeletedMsg struct {
	IDs []string
	Err error
}

type AttachmentLoadedMsg struct {
	Attachment Attachment
	Err        error
}

type MarkdownRenderedMsg struct {
	MessageIndex int
	Rendered     string
}
