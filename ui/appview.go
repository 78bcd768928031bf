package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pushpitasaha/thinkbot-AI/config"
	appmodel "github.com/pushpitasaha/thinkbot-AI/model"
)

type AppView struct {
	// The chat session controller; all conversation/history state
	// lives there, the view only renders it.
	session *appmodel.Session

	// UI components
	viewport viewport.Model
	textarea textarea.Model

	// Window state
	width  int
	height int
	ready  bool

	// Turn in flight: show the typing indicator
	waiting        bool
	loadingSpinner spinner.Model

	// Set when opening a history entry failed; rendered inline in
	// place of the conversation.
	loadError string

	// First history fetch opens the most recent conversation.
	initialLoad bool

	// Error string shown inside the history panel when the fetch failed.
	historyError string

	// History panel state
	showHistoryPanel   bool
	selectedHistoryIdx int
	historyFilterMode  bool
	historyFilterInput textinput.Model

	// Pending deletion: ids waiting on the confirmation modal.
	confirmDeleteIDs []string

	// Title search modal
	showSearch        bool
	searchInput       textinput.Model
	searchResults     []appmodel.HistorySummary
	selectedSearchIdx int

	// Attachment picker
	attachmentPicker FilePickerState

	// Acknowledge modal (delete failures, attachment errors)
	showAcknowledgeModal  bool
	acknowledgeModalTitle string
	acknowledgeModalMsg   string

	// Transient status-bar note (clipboard copies)
	statusFlash string

	version string
}

// NewAppView wires the root view around an injected session
// controller.
func NewAppView(session *appmodel.Session, version string) AppView {
	ta := textarea.New()
	ta.Placeholder = "Ask me anything about R programming..."
	ta.Prompt = "┃ "
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	filterInput := textinput.New()
	filterInput.Placeholder = "Filter by title..."
	filterInput.CharLimit = 100

	searchInput := textinput.New()
	searchInput.Placeholder = "Search conversations..."
	searchInput.CharLimit = 100

	return AppView{
		session:            session,
		textarea:           ta,
		loadingSpinner:     sp,
		historyFilterInput: filterInput,
		searchInput:        searchInput,
		initialLoad:        true,
		attachmentPicker: NewFilePickerState(FilePickerConfig{
			Title: "Attach File",
		}),
		version: version,
	}
}

func (a AppView) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		a.session.FetchHistory(),
	)
}

func (a AppView) View() string {
	if !a.ready {
		return "\n  Initializing..."
	}

	// Modal surfaces replace the main layout entirely.
	switch {
	case a.showAcknowledgeModal:
		return RenderAcknowledgeModal(a.acknowledgeModalTitle, a.acknowledgeModalMsg, a.width, a.height)
	case len(a.confirmDeleteIDs) > 0:
		return RenderConfirmationModal(ConfirmationState{
			Active:  true,
			Title:   "⚠ Delete Chats",
			Message: deleteConfirmMessage(len(a.confirmDeleteIDs)),
		}, a.width, a.height)
	case a.attachmentPicker.Active:
		return RenderFilePickerModal(a.attachmentPicker, a.width, a.height)
	case a.showSearch:
		return renderHistorySearch(a.searchInput, a.searchResults, a.selectedSearchIdx, a.width, a.height)
	case a.showHistoryPanel:
		return renderHistoryPanel(historyPanelView{
			History:     a.visibleHistory(),
			Total:       len(a.session.History),
			SelectedIdx: a.selectedHistoryIdx,
			ActiveID:    a.activeConversationID(),
			Checked:     a.session.Selected,
			FilterMode:  a.historyFilterMode,
			FilterInput: a.historyFilterInput,
			Error:       a.historyError,
		}, a.width, a.height)
	}

	var sections []string
	sections = append(sections, a.viewport.View())

	if prompts := a.suggestedPromptsView(); prompts != "" {
		sections = append(sections, prompts)
	}
	if bar := a.attachmentsBarView(); bar != "" {
		sections = append(sections, bar)
	}
	sections = append(sections, a.textarea.View())
	sections = append(sections, a.statusBarView())

	return strings.Join(sections, "\n")
}

// visibleHistory applies the panel filter: a case-insensitive
// substring match over titles, since the history list carries titles
// only and no message bodies to search.
func (a AppView) visibleHistory() []appmodel.HistorySummary {
	if a.historyFilterMode {
		return appmodel.FilterHistory(a.session.History, a.historyFilterInput.Value())
	}
	return a.session.History
}

func (a AppView) activeConversationID() string {
	if a.session.Active == nil {
		return ""
	}
	return a.session.Active.ID()
}

func debugf(format string, args ...interface{}) {
	if config.DebugLog != nil {
		config.DebugLog.Printf(format, args...)
	}
}
