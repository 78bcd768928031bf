package model

import (
	"time"

	"github.com/pushpitasaha/thinkbot-AI/api"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents one chat turn half in the conversation.
type Message struct {
	// ID is a locally-generated token: creation time in milliseconds.
	// Server-stored messages keep the server's id instead.
	ID          int64
	Role        string
	Text        string
	Attachments []Attachment
	Sources     []api.Source
	Rendered    string // Cached rendered markdown
	Timestamp   time.Time
}

// NewUserMessage synthesizes the optimistic local message for one
// outgoing turn.
func NewUserMessage(text string, attachments []Attachment) Message {
	now := time.Now()
	return Message{
		ID:          now.UnixMilli(),
		Role:        RoleUser,
		Text:        text,
		Attachments: attachments,
		Timestamp:   now,
	}
}

// NewAssistantMessage builds the assistant half of a turn, including
// server-provided sources. Error notices are assistant messages too,
// with no sources.
func NewAssistantMessage(text string, sources []api.Source) Message {
	now := time.Now()
	return Message{
		ID:        now.UnixMilli() + 1,
		Role:      RoleAssistant,
		Text:      text,
		Sources:   sources,
		Timestamp: now,
	}
}
