package model

import (
	"fmt"
	"strings"
	"time"
)

const titleRuneLimit = 50

// ConversationIdentity is the two-phase identity of a conversation:
// Pending until the backend's first successful response assigns an id,
// Confirmed afterwards. A Pending identity transitions to Confirmed
// exactly once and the id never changes again.
type ConversationIdentity struct {
	confirmed bool
	id        string
}

func PendingIdentity() ConversationIdentity {
	return ConversationIdentity{}
}

func ConfirmedIdentity(id string) ConversationIdentity {
	return ConversationIdentity{confirmed: true, id: id}
}

func (ci ConversationIdentity) Confirmed() bool {
	return ci.confirmed
}

// ID returns the server id, or "" while pending.
func (ci ConversationIdentity) ID() string {
	return ci.id
}

// Confirm applies the server-assigned id. Re-confirming with the same
// id is a no-op; a different id is an invariant violation.
func (ci *ConversationIdentity) Confirm(id string) error {
	if id == "" {
		return fmt.Errorf("cannot confirm conversation with empty id")
	}
	if ci.confirmed {
		if ci.id != id {
			return fmt.Errorf("conversation id already confirmed as %s, server returned %s", ci.id, id)
		}
		return nil
	}
	ci.confirmed = true
	ci.id = id
	return nil
}

// Conversation is one chat session: a two-phase identity, a derived
// title, and the ordered message list.
type Conversation struct {
	Identity  ConversationIdentity
	Title     string
	Messages  []Message
	Timestamp time.Time
}

// NewDraftConversation opens a Pending conversation around the first
// user message. The title is derived from that message's text.
func NewDraftConversation(first Message) *Conversation {
	return &Conversation{
		Identity:  PendingIdentity(),
		Title:     DeriveTitle(first.Text),
		Messages:  []Message{first},
		Timestamp: time.Now(),
	}
}

// RehydratedConversation wraps a server-fetched message list under a
// known identity, used when a history entry is opened.
func RehydratedConversation(id, title string, messages []Message, timestamp time.Time) *Conversation {
	return &Conversation{
		Identity:  ConfirmedIdentity(id),
		Title:     title,
		Messages:  messages,
		Timestamp: timestamp,
	}
}

// ID returns the server-assigned id, or "" while the first turn is
// still unconfirmed.
func (c *Conversation) ID() string {
	return c.Identity.ID()
}

func (c *Conversation) Append(msg Message) {
	c.Messages = append(c.Messages, msg)
}

// DeriveTitle produces a conversation title from the first user
// message: the first 50 characters, with "..." appended when the text
// was longer.
func DeriveTitle(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= titleRuneLimit {
		return text
	}
	return string(runes[:titleRuneLimit]) + "..."
}

// HistorySummary is one row of the history panel: the server's
// metadata for a past conversation, no message bodies.
type HistorySummary struct {
	ID        string
	Title     string
	Timestamp time.Time
}

// FilterHistory returns the summaries whose title contains the query,
// case-insensitively. An empty query returns the input unchanged.
func FilterHistory(history []HistorySummary, query string) []HistorySummary {
	if query == "" {
		return history
	}

	queryLower := strings.ToLower(query)
	var matches []HistorySummary
	for _, summary := range history {
		if strings.Contains(strings.ToLower(summary.Title), queryLower) {
			matches = append(matches, summary)
		}
	}
	return matches
}
