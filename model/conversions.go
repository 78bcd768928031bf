package model

import (
	"github.com/pushpitasaha/thinkbot-AI/api"
)

// FromWireMessages converts server-stored messages to domain messages.
// The backend stores "user"/"ai" in its type column; everything that
// is not a user message renders as an assistant turn.
func FromWireMessages(wire []api.Message) []Message {
	messages := make([]Message, 0, len(wire))
	for _, m := range wire {
		role := RoleAssistant
		if m.Type == "user" {
			role = RoleUser
		}
		messages = append(messages, Message{
			Role:      role,
			Text:      m.Text,
			Sources:   m.Sources,
			Timestamp: m.Timestamp.Time,
		})
	}
	return messages
}

// FromWireHistory converts the server's summary list.
func FromWireHistory(wire []api.HistorySummary) []HistorySummary {
	history := make([]HistorySummary, 0, len(wire))
	for _, h := range wire {
		history = append(history, HistorySummary{
			ID:        string(h.ID),
			Title:     h.Title,
			Timestamp: h.Timestamp.Time,
		})
	}
	return history
}
