// Package model holds the domain types and the chat session
// controller: the one piece of state that must stay consistent across
// asynchronous request/response cycles. The controller owns the
// active conversation, the history summary list, staged attachments,
// and the multi-select set; the ui package only renders what it finds
// here and feeds results back through the Apply* transitions.
package model

import (
	"context"
	"time"

	"github.com/pushpitasaha/thinkbot-AI/api"
	"github.com/pushpitasaha/thinkbot-AI/config"
)

// Displayable failure texts, rendered as assistant turns (the session
// stays interactive through every error class).
const (
	ConnectivityErrorText = "Sorry, I am having trouble connecting to the server."
	LoadChatErrorText     = "Sorry, there was an error loading this chat."
)

// Transport is the backend API surface the controller depends on.
// api.Client implements it; tests inject fakes.
type Transport interface {
	Chat(ctx context.Context, question string, chatID string) (*api.ChatResult, error)
	History(ctx context.Context) ([]api.HistorySummary, error)
	Messages(ctx context.Context, chatID string) ([]api.Message, error)
	DeleteChats(ctx context.Context, chatIDs []string) error
}

// Session is the chat session controller.
type Session struct {
	Config    *config.Config
	Transport Transport

	// Active is the open conversation, nil in the welcome state.
	Active *Conversation

	// History holds the server's summaries, newest first.
	History []HistorySummary

	// PendingAttachments are staged for the next outgoing turn only.
	PendingAttachments []Attachment

	// Selected is the multi-select set of the history panel. It is
	// kept a subset of History's ids at all times.
	Selected map[string]struct{}

	// SuggestedPrompts is the follow-up row, replaced wholesale by
	// each successful turn.
	SuggestedPrompts []string

	// generation stamps outgoing requests. Navigation (new chat,
	// switching or deleting the active conversation) bumps it, so
	// responses issued under an abandoned session are discarded on
	// arrival instead of mutating the new one.
	generation int
}

// NewSession creates a controller with its collaborators injected.
func NewSession(cfg *config.Config, transport Transport) *Session {
	return &Session{
		Config:    cfg,
		Transport: transport,
		Selected:  make(map[string]struct{}),
	}
}

// Generation returns the current session generation.
func (s *Session) Generation() int {
	return s.generation
}

// Stale reports whether a response generation no longer matches the
// session it would be applied to.
func (s *Session) Stale(gen int) bool {
	return gen != s.generation
}

// BeginTurn runs the synchronous half of SubmitTurn: it validates the
// precondition, synthesizes and appends the optimistic user message
// (opening a Pending conversation when none is active), and clears the
// staged attachments. This happens before the network call so the
// user always sees their own message, whatever the outcome. Returns
// false without side effects when both text and attachments are empty.
func (s *Session) BeginTurn(text string, attachments []Attachment) (Message, bool) {
	if text == "" && len(attachments) == 0 {
		return Message{}, false
	}

	userMsg := NewUserMessage(text, attachments)
	if s.Active == nil {
		s.Active = NewDraftConversation(userMsg)
	} else {
		s.Active.Append(userMsg)
	}
	s.PendingAttachments = nil
	s.SuggestedPrompts = nil

	return userMsg, true
}

// ApplyTurnResult reconciles one turn's outcome into the session.
// Failed results append exactly one assistant-style notice and leave
// identity, history, and prompts untouched. Success confirms the
// conversation id (Pending transitions to Confirmed exactly once),
// prepends a synthesized summary when the conversation was new,
// appends the assistant message, and replaces the suggested prompts.
func (s *Session) ApplyTurnResult(result *api.ChatResult, err error) {
	if s.Active == nil {
		// New-chat was pressed while the turn was in flight and the
		// generation check let it through: same generation, so the
		// draft it belongs to is gone. Nothing to reconcile.
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Session] Turn result with no active conversation, dropping")
		}
		return
	}

	if err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Session] Turn transport failure: %v", err)
		}
		s.Active.Append(NewAssistantMessage(ConnectivityErrorText, nil))
		return
	}

	if result.Failed {
		s.Active.Append(NewAssistantMessage(result.Answer, nil))
		return
	}

	wasNew := !s.Active.Identity.Confirmed()
	if confirmErr := s.Active.Identity.Confirm(result.ChatID); confirmErr != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Session] %v", confirmErr)
		}
		s.Active.Append(NewAssistantMessage(ConnectivityErrorText, nil))
		return
	}

	if wasNew {
		// Prepend the synthesized summary instead of re-fetching the
		// whole history.
		s.History = append([]HistorySummary{{
			ID:        result.ChatID,
			Title:     s.Active.Title,
			Timestamp: s.Active.Timestamp,
		}}, s.History...)
	}

	s.Active.Append(NewAssistantMessage(result.Answer, result.Sources))
	s.SuggestedPrompts = result.SuggestedPrompts
}

// StartNewConversation resets to the welcome state. No backend call:
// nothing server-side exists to abandon until a turn succeeds.
func (s *Session) StartNewConversation() {
	s.Active = nil
	s.PendingAttachments = nil
	s.SuggestedPrompts = nil
	s.generation++
}

// ApplyLoadedConversation installs a rehydrated conversation fetched
// for a history entry. A fetch error renders as one inline notice in
// place of the conversation and leaves history and the previously
// active conversation alone.
func (s *Session) ApplyLoadedConversation(msg ConversationLoadedMsg) {
	if msg.Err != nil {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Session] Failed to load conversation %s: %v", msg.ID, msg.Err)
		}
		return
	}

	timestamp := time.Now()
	if summary, ok := s.FindSummary(msg.ID); ok {
		timestamp = summary.Timestamp
	}

	s.Active = RehydratedConversation(msg.ID, msg.Title, msg.Messages, timestamp)
	s.SuggestedPrompts = nil
}

// FindSummary looks an id up in the history list.
func (s *Session) FindSummary(id string) (HistorySummary, bool) {
	for _, summary := range s.History {
		if summary.ID == id {
			return summary, true
		}
	}
	return HistorySummary{}, false
}

// ApplyHistory replaces the summary list with the server's view and
// prunes the selection set down to ids that still exist.
func (s *Session) ApplyHistory(history []HistorySummary) {
	s.History = history
	s.pruneSelection()
}

// ApplyDeletion removes the deleted conversations after a successful
// backend delete: prunes matching summaries, clears the selection,
// and resets to the welcome state when the active conversation was
// among the deleted set.
func (s *Session) ApplyDeletion(ids []string) {
	deleted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		deleted[id] = struct{}{}
	}

	kept := s.History[:0]
	for _, summary := range s.History {
		if _, ok := deleted[summary.ID]; !ok {
			kept = append(kept, summary)
		}
	}
	s.History = kept
	s.Selected = make(map[string]struct{})

	if s.Active != nil {
		if _, ok := deleted[s.Active.ID()]; ok {
			s.StartNewConversation()
		}
	}
}

// ToggleSelected flips one history entry in the multi-select set.
// Unknown ids are ignored, preserving the subset invariant.
func (s *Session) ToggleSelected(id string) {
	if _, ok := s.FindSummary(id); !ok {
		return
	}
	if _, ok := s.Selected[id]; ok {
		delete(s.Selected, id)
	} else {
		s.Selected[id] = struct{}{}
	}
}

// ToggleSelectAll selects every history entry, or clears the
// selection when everything is already selected.
func (s *Session) ToggleSelectAll() {
	if len(s.Selected) == len(s.History) && len(s.History) > 0 {
		s.Selected = make(map[string]struct{})
		return
	}
	s.Selected = make(map[string]struct{}, len(s.History))
	for _, summary := range s.History {
		s.Selected[summary.ID] = struct{}{}
	}
}

// SelectedIDs returns the selection in history order, which keeps the
// batched delete request deterministic.
func (s *Session) SelectedIDs() []string {
	ids := make([]string, 0, len(s.Selected))
	for _, summary := range s.History {
		if _, ok := s.Selected[summary.ID]; ok {
			ids = append(ids, summary.ID)
		}
	}
	return ids
}

// StageAttachment adds a loaded attachment to the pending set.
func (s *Session) StageAttachment(att Attachment) {
	s.PendingAttachments = append(s.PendingAttachments, att)
}

// RemoveAttachment drops one staged attachment by id.
func (s *Session) RemoveAttachment(id string) {
	kept := s.PendingAttachments[:0]
	for _, att := range s.PendingAttachments {
		if att.ID != id {
			kept = append(kept, att)
		}
	}
	s.PendingAttachments = kept
}

func (s *Session) pruneSelection() {
	for id := range s.Selected {
		if _, ok := s.FindSummary(id); !ok {
			delete(s.Selected, id)
		}
	}
}
