package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	appmodel "github.com/pushpitasaha/thinkbot-AI/model"
)

// handleSessionMessage applies controller results arriving from
// completed commands. Results stamped with a stale generation are
// logged and dropped: they belong to a session the user already left.
func (a AppView) handleSessionMessage(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case turnResultMsg:
		if a.session.Stale(msg.Generation) {
			debugf("[UI] Discarding stale turn result (generation %d, now %d)", msg.Generation, a.session.Generation())
			return a, nil
		}

		a.waiting = false
		a.session.ApplyTurnResult(msg.Result, msg.Err)
		a.updateViewportContent(true)
		return a, a.renderPendingMarkdown()

	case historyFetchedMsg:
		if msg.Err != nil {
			debugf("[UI] Error fetching history: %v", msg.Err)
			a.historyError = "Error loading history."
			a.initialLoad = false
			return a, nil
		}

		a.historyError = ""
		a.session.ApplyHistory(msg.History)

		// On startup, open the most recent conversation when one
		// exists; otherwise the welcome screen stays up.
		if a.initialLoad {
			a.initialLoad = false
			if len(msg.History) > 0 {
				return a, a.session.LoadConversation(msg.History[0].ID)
			}
		}
		return a, nil

	case conversationLoadedMsg:
		if a.session.Stale(msg.Generation) {
			debugf("[UI] Discarding stale conversation load for %s", msg.ID)
			return a, nil
		}

		if msg.Err != nil {
			debugf("[UI] Error loading chat %s: %v", msg.ID, msg.Err)
			a.loadError = appmodel.LoadChatErrorText
			a.showHistoryPanel = false
			a.updateViewportContent(false)
			return a, nil
		}

		a.session.ApplyLoadedConversation(msg)
		a.loadError = ""
		a.showHistoryPanel = false
		a.showSearch = false
		a.updateViewportContent(true)
		debugf("[UI] Loaded chat %s with %d messages", msg.ID, len(msg.Messages))
		return a, a.renderPendingMarkdown()

	case conversationsDeletedMsg:
		if msg.Err != nil {
			debugf("[UI] Error deleting chats: %v", msg.Err)
			a.showAcknowledgeModal = true
			a.acknowledgeModalTitle = "Delete Failed"
			a.acknowledgeModalMsg = "Could not delete chats. Please try again."
			return a, nil
		}

		a.session.ApplyDeletion(msg.IDs)
		if a.selectedHistoryIdx >= len(a.session.History) && len(a.session.History) > 0 {
			a.selectedHistoryIdx = len(a.session.History) - 1
		}
		a.updateViewportContent(false)
		return a, nil

	case attachmentLoadedMsg:
		if msg.Err != nil {
			debugf("[UI] Error staging attachment: %v", msg.Err)
			a.showAcknowledgeModal = true
			a.acknowledgeModalTitle = "Attachment Failed"
			a.acknowledgeModalMsg = "Could not read the selected file."
			return a, nil
		}

		a.session.StageAttachment(msg.Attachment)
		return a, nil
	}

	return a, nil
}
