package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	appmodel "github.com/pushpitasaha/thinkbot-AI/model"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a.handleResize(msg)

	case spinner.TickMsg:
		if !a.waiting {
			return a, nil
		}
		var cmd tea.Cmd
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		a.updateViewportContent(true)
		return a, cmd

	case turnResultMsg, historyFetchedMsg, conversationLoadedMsg, conversationsDeletedMsg, attachmentLoadedMsg:
		return a.handleSessionMessage(msg)

	case markdownRenderedMsg:
		if a.session.Active != nil && msg.MessageIndex >= 0 && msg.MessageIndex < len(a.session.Active.Messages) {
			a.session.Active.Messages[msg.MessageIndex].Rendered = msg.Rendered
			a.updateViewportContent(false)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.updateComponents(msg)
}

func (a AppView) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.width = msg.Width
	a.height = msg.Height

	chromeHeight := a.textarea.Height() + 2 // composer + status bar + spacing
	if !a.ready {
		a.viewport = viewport.New(msg.Width, msg.Height-chromeHeight)
		a.ready = true
	} else {
		a.viewport.Width = msg.Width
		a.viewport.Height = msg.Height - chromeHeight
	}
	a.textarea.SetWidth(msg.Width - 2)

	// Width changed: cached renders wrapped for the old width are stale.
	if a.session.Active != nil {
		for i := range a.session.Active.Messages {
			a.session.Active.Messages[i].Rendered = ""
		}
	}
	a.updateViewportContent(false)
	return a, a.renderPendingMarkdown()
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Modal surfaces capture all keys while open.
	switch {
	case a.showAcknowledgeModal:
		switch msg.String() {
		case "enter", "esc":
			a.showAcknowledgeModal = false
		}
		return a, nil

	case len(a.confirmDeleteIDs) > 0:
		return a.handleDeleteConfirmation(msg)

	case a.attachmentPicker.Active:
		return a.handleAttachmentPicker(msg)

	case a.showSearch:
		return a.handleSearchKey(msg)

	case a.showHistoryPanel:
		return a.handleHistoryPanelKey(msg)
	}

	return a.handleMainKey(msg)
}

func (a AppView) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.statusFlash = ""

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit

	case "enter":
		return a.submitComposer()

	case "alt+n":
		a.session.StartNewConversation()
		a.loadError = ""
		a.waiting = false
		a.textarea.Reset()
		a.updateViewportContent(false)
		return a, nil

	case "alt+h":
		a.showHistoryPanel = true
		a.selectedHistoryIdx = 0
		a.historyFilterMode = false
		a.historyFilterInput.SetValue("")
		return a, a.session.FetchHistory()

	case "alt+s":
		a.showSearch = true
		a.searchInput.SetValue("")
		a.searchInput.Focus()
		a.searchResults = nil
		a.selectedSearchIdx = 0
		return a, nil

	case "alt+a":
		a.attachmentPicker.Activate()
		return a, a.attachmentPicker.Picker.Init()

	case "alt+d":
		// Unstage the most recently added attachment
		if n := len(a.session.PendingAttachments); n > 0 {
			a.session.RemoveAttachment(a.session.PendingAttachments[n-1].ID)
		}
		return a, nil

	case "alt+c":
		// Copy the last assistant message
		if text, ok := a.lastAssistantText(); ok {
			clipboard.WriteAll(text)
			a.statusFlash = "Copied answer to clipboard"
		}
		return a, nil

	case "alt+x":
		// Copy the whole conversation
		if a.session.Active != nil && len(a.session.Active.Messages) > 0 {
			var allText strings.Builder
			for _, m := range a.session.Active.Messages {
				role := "ThinkBot"
				if m.Role == appmodel.RoleUser {
					role = "You"
				}
				allText.WriteString(fmt.Sprintf("%s: %s\n\n", role, m.Text))
			}
			clipboard.WriteAll(allText.String())
			a.statusFlash = "Copied conversation to clipboard"
		}
		return a, nil

	case "alt+j", "alt+down":
		a.viewport.HalfPageDown()
		return a, nil

	case "alt+k", "alt+up":
		a.viewport.HalfPageUp()
		return a, nil
	}

	// Suggested prompt hotkeys: alt+1..alt+9
	if key := msg.String(); strings.HasPrefix(key, "alt+") && len(key) == 5 {
		if n, err := strconv.Atoi(key[4:]); err == nil {
			return a.submitSuggestedPrompt(n - 1)
		}
	}

	var taCmd tea.Cmd
	a.textarea, taCmd = a.textarea.Update(msg)
	var vpCmd tea.Cmd
	a.viewport, vpCmd = a.viewport.Update(msg)
	return a, tea.Batch(taCmd, vpCmd)
}

// submitComposer runs the synchronous half of a turn, then issues the
// network command. The optimistic user message is visible before the
// request leaves.
func (a AppView) submitComposer() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(a.textarea.Value())
	attachments := a.session.PendingAttachments

	userMsg, ok := a.session.BeginTurn(text, attachments)
	if !ok {
		return a, nil
	}
	debugf("[UI] Submitting turn: %d chars, %d attachments", len(userMsg.Text), len(userMsg.Attachments))

	a.textarea.Reset()
	a.loadError = ""
	a.waiting = true
	a.updateViewportContent(true)

	return a, tea.Batch(
		a.session.SubmitTurn(text),
		a.loadingSpinner.Tick,
	)
}

func (a AppView) submitSuggestedPrompt(idx int) (tea.Model, tea.Cmd) {
	prompts := a.availablePrompts()
	if idx < 0 || idx >= len(prompts) {
		return a, nil
	}
	prompt := prompts[idx]

	if _, ok := a.session.BeginTurn(prompt, nil); !ok {
		return a, nil
	}
	a.waiting = true
	a.updateViewportContent(true)

	return a, tea.Batch(
		a.session.SubmitTurn(prompt),
		a.loadingSpinner.Tick,
	)
}

func (a AppView) handleDeleteConfirmation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		ids := a.confirmDeleteIDs
		a.confirmDeleteIDs = nil
		return a, a.session.DeleteConversations(ids)
	case "n", "esc":
		a.confirmDeleteIDs = nil
	}
	return a, nil
}

func (a AppView) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.textarea, cmd = a.textarea.Update(msg)
	cmds = append(cmds, cmd)
	a.viewport, cmd = a.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

func (a AppView) lastAssistantText() (string, bool) {
	if a.session.Active == nil {
		return "", false
	}
	messages := a.session.Active.Messages
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == appmodel.RoleAssistant {
			return messages[i].Text, true
		}
	}
	return "", false
}
