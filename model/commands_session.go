package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pushpitasaha/thinkbot-AI/config"
)

// SubmitTurn issues the network half of one turn. BeginTurn must have
// run first; the command is stamped with the current generation so a
// response arriving after the session moved on is discarded.
func (s *Session) SubmitTurn(text string) tea.Cmd {
	if s.Transport == nil {
		return nil
	}

	transport := s.Transport
	generation := s.generation
	chatID := ""
	if s.Active != nil {
		chatID = s.Active.ID()
	}

	return func() tea.Msg {
		result, err := transport.Chat(context.Background(), text, chatID)
		return TurnResultMsg{
			Generation: generation,
			Result:     result,
			Err:        err,
		}
	}
}

// FetchHistory loads the summary list from the backend.
func (s *Session) FetchHistory() tea.Cmd {
	if s.Transport == nil {
		return nil
	}

	transport := s.Transport
	return func() tea.Msg {
		wire, err := transport.History(context.Background())
		if err != nil {
			return HistoryFetchedMsg{Err: err}
		}
		return HistoryFetchedMsg{History: FromWireHistory(wire)}
	}
}

// LoadConversation fetches the full message list for a history entry.
// An id absent from the history list is a log-only no-op: no network
// call is made and no state changes.
//
// Issuing a load bumps the generation immediately, so anything still
// in flight for the previous session is discarded on arrival and the
// latest of several racing loads is the one that applies.
func (s *Session) LoadConversation(id string) tea.Cmd {
	if s.Transport == nil {
		return nil
	}

	summary, ok := s.FindSummary(id)
	if !ok {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Session] Chat not found: %s", id)
		}
		return nil
	}

	transport := s.Transport
	s.generation++
	generation := s.generation
	return func() tea.Msg {
		wire, err := transport.Messages(context.Background(), id)
		if err != nil {
			return ConversationLoadedMsg{Generation: generation, ID: id, Title: summary.Title, Err: err}
		}
		return ConversationLoadedMsg{
			Generation: generation,
			ID:         id,
			Title:      summary.Title,
			Messages:   FromWireMessages(wire),
		}
	}
}

// DeleteConversations issues one batched delete for the given ids.
// The caller is responsible for the count-sensitive confirmation; the
// session is only mutated when the ConversationsDeletedMsg comes back
// without an error.
func (s *Session) DeleteConversations(ids []string) tea.Cmd {
	if s.Transport == nil || len(ids) == 0 {
		return nil
	}

	transport := s.Transport
	return func() tea.Msg {
		err := transport.DeleteChats(context.Background(), ids)
		return ConversationsDeletedMsg{IDs: ids, Err: err}
	}
}

// ReadAttachment stages a file from disk for the next turn.
func (s *Session) ReadAttachment(path string) tea.Cmd {
	return func() tea.Msg {
		att, err := LoadAttachment(path)
		return AttachmentLoadedMsg{Attachment: att, Err: err}
	}
}
