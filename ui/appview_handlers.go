package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	appmodel "github.com/pushpitasaha/thinkbot-AI/model"
)

func (a AppView) handleHistoryPanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.historyFilterMode {
		return a.handleHistoryFilterKey(msg)
	}

	visible := a.visibleHistory()

	switch msg.String() {
	case "esc", "q":
		a.showHistoryPanel = false
		return a, nil

	case "j", "down":
		if a.selectedHistoryIdx < len(visible)-1 {
			a.selectedHistoryIdx++
		}
		return a, nil

	case "k", "up":
		if a.selectedHistoryIdx > 0 {
			a.selectedHistoryIdx--
		}
		return a, nil

	case " ":
		// Checkbox toggle only: the row stays unloaded.
		if a.selectedHistoryIdx < len(visible) {
			a.session.ToggleSelected(visible[a.selectedHistoryIdx].ID)
		}
		return a, nil

	case "a":
		a.session.ToggleSelectAll()
		return a, nil

	case "enter":
		if a.selectedHistoryIdx < len(visible) {
			return a, a.session.LoadConversation(visible[a.selectedHistoryIdx].ID)
		}
		return a, nil

	case "r":
		return a, a.session.FetchHistory()

	case "/":
		a.historyFilterMode = true
		a.historyFilterInput.SetValue("")
		a.historyFilterInput.Focus()
		a.selectedHistoryIdx = 0
		return a, nil

	case "d":
		ids := a.session.SelectedIDs()
		if len(ids) == 0 && a.selectedHistoryIdx < len(visible) {
			ids = []string{visible[a.selectedHistoryIdx].ID}
		}
		if len(ids) > 0 {
			a.confirmDeleteIDs = ids
		}
		return a, nil
	}

	return a, nil
}

func (a AppView) handleHistoryFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.historyFilterMode = false
		a.historyFilterInput.Blur()
		a.historyFilterInput.SetValue("")
		a.selectedHistoryIdx = 0
		return a, nil

	case "enter":
		visible := a.visibleHistory()
		if a.selectedHistoryIdx < len(visible) {
			return a, a.session.LoadConversation(visible[a.selectedHistoryIdx].ID)
		}
		return a, nil

	case "alt+j", "alt+down":
		if a.selectedHistoryIdx < len(a.visibleHistory())-1 {
			a.selectedHistoryIdx++
		}
		return a, nil

	case "alt+k", "alt+up":
		if a.selectedHistoryIdx > 0 {
			a.selectedHistoryIdx--
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.historyFilterInput, cmd = a.historyFilterInput.Update(msg)
	if a.selectedHistoryIdx >= len(a.visibleHistory()) {
		a.selectedHistoryIdx = 0
	}
	return a, cmd
}

// handleSearchKey drives the title search modal. Unlike the history
// panel's substring filter, search ranks titles fuzzily so a few
// remembered characters are enough to jump to an old conversation.
func (a AppView) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.showSearch = false
		a.searchInput.Blur()
		return a, nil

	case "enter":
		if a.selectedSearchIdx < len(a.searchResults) {
			return a, a.session.LoadConversation(a.searchResults[a.selectedSearchIdx].ID)
		}
		return a, nil

	case "alt+j", "alt+down":
		if a.selectedSearchIdx < len(a.searchResults)-1 {
			a.selectedSearchIdx++
		}
		return a, nil

	case "alt+k", "alt+up":
		if a.selectedSearchIdx > 0 {
			a.selectedSearchIdx--
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.searchResults = searchHistoryTitles(a.session.History, a.searchInput.Value())
	a.selectedSearchIdx = 0
	return a, cmd
}

func searchHistoryTitles(history []appmodel.HistorySummary, query string) []appmodel.HistorySummary {
	if query == "" {
		return nil
	}

	titles := make([]string, len(history))
	for i, summary := range history {
		titles[i] = summary.Title
	}

	matches := fuzzy.Find(query, titles)
	results := make([]appmodel.HistorySummary, len(matches))
	for i, match := range matches {
		results[i] = history[match.Index]
	}
	return results
}

func (a AppView) handleAttachmentPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		a.attachmentPicker.Reset()
		return a, nil
	}

	var cmd tea.Cmd
	a.attachmentPicker.Picker, cmd = a.attachmentPicker.Picker.Update(msg)

	if didSelect, path := a.attachmentPicker.Picker.DidSelectFile(msg); didSelect {
		a.attachmentPicker.Reset()
		return a, a.session.ReadAttachment(path)
	}

	return a, cmd
}
