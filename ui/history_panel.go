package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	appmodel "github.com/pushpitasaha/thinkbot-AI/model"
)

// historyPanelView carries everything the panel needs to draw one
// frame; the AppView assembles it from session state.
type historyPanelView struct {
	History     []appmodel.HistorySummary
	Total       int
	SelectedIdx int
	ActiveID    string
	Checked     map[string]struct{}
	FilterMode  bool
	FilterInput textinput.Model
	Error       string
}

func renderHistoryPanel(view historyPanelView, width, height int) string {
	modalWidth := width - 10
	if modalWidth > 110 {
		modalWidth = 110
	}
	modalHeight := height - 6

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Chat History")

	// Header: filter input while filtering, counts otherwise
	var header string
	switch {
	case view.FilterMode:
		header = view.FilterInput.View()
	case len(view.History) == view.Total:
		header = fmt.Sprintf("%d chats", view.Total)
	default:
		header = fmt.Sprintf("%d of %d chats", len(view.History), view.Total)
	}

	headerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(header)

	var rows []string
	maxLines := modalHeight - 8

	switch {
	case view.Error != "":
		rows = append(rows, lipgloss.NewStyle().
			Foreground(dangerColor).
			Align(lipgloss.Center).
			Width(modalWidth).
			Render(view.Error))

	case len(view.History) == 0:
		emptyMsg := "No chats yet. Start chatting to create one!"
		if view.FilterMode {
			emptyMsg = "No matches found"
		}
		rows = append(rows, lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true).
			Align(lipgloss.Center).
			Width(modalWidth).
			Render(emptyMsg))

	default:
		startIdx, endIdx := scrollWindow(len(view.History), view.SelectedIdx, maxLines)

		for i := startIdx; i < endIdx; i++ {
			rows = append(rows, renderHistoryRow(view, i, modalWidth))
		}
	}

	listSection := strings.Join(rows, "\n")

	footer := FormatFooter(
		"j/k", "Navigate",
		"Space", "Select",
		"a", "All",
		"Enter", "Open",
		"d", "Delete",
		"r", "Refresh",
		"/", "Filter",
		"Esc", "Close",
	)
	footerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(footer)

	content := strings.Join([]string{titleSection, headerSection, listSection, footerSection}, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderHistoryRow(view historyPanelView, i, modalWidth int) string {
	summary := view.History[i]

	indicator := "  "
	if i == view.SelectedIdx {
		indicator = "▶ "
	}

	checkbox := "[ ]"
	if _, ok := view.Checked[summary.ID]; ok {
		checkbox = "[x]"
	}

	timeAgo := formatTimeAgo(summary.Timestamp)
	rightSide := fmt.Sprintf("%8s", timeAgo)

	title := summary.Title
	maxTitleWidth := modalWidth - 4 - len(indicator) - len(checkbox) - 1 - len(rightSide) - 2
	if runewidth.StringWidth(title) > maxTitleWidth {
		title = runewidth.Truncate(title, maxTitleWidth, "...")
	}

	hasCurrentMarker := summary.ID == view.ActiveID && view.ActiveID != ""

	titleStyled := title
	if i == view.SelectedIdx {
		titleStyled = lipgloss.NewStyle().Foreground(successColor).Bold(true).Render(title)
	} else if hasCurrentMarker {
		titleStyled = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Render(title)
	}

	checkboxStyled := checkbox
	if checkbox == "[x]" {
		checkboxStyled = SelectedStyle.Render(checkbox)
	}

	// Spacing from visual widths, not styled strings
	leftVisualWidth := len(indicator) + len(checkbox) + 1 + runewidth.StringWidth(title)
	spacing := modalWidth - 4 - leftVisualWidth - len(rightSide)
	if hasCurrentMarker {
		spacing -= 10 // " (current)"
	}
	if spacing < 1 {
		spacing = 1
	}

	line := indicator + checkboxStyled + " " + titleStyled
	if hasCurrentMarker {
		line += lipgloss.NewStyle().Foreground(accentColor).Render(" (current)")
	}
	line += strings.Repeat(" ", spacing) + DimStyle.Render(rightSide)

	return "  " + line
}

// scrollWindow keeps the selection centered once the list outgrows
// the panel.
func scrollWindow(total, selectedIdx, maxLines int) (int, int) {
	if total <= maxLines || maxLines <= 0 {
		return 0, total
	}
	if selectedIdx < maxLines/2 {
		return 0, maxLines
	}
	if selectedIdx >= total-maxLines/2 {
		return total - maxLines, total
	}
	start := selectedIdx - maxLines/2
	return start, start + maxLines
}

// formatTimeAgo formats a time as a relative string (e.g., "2h ago", "3d ago")
func formatTimeAgo(t time.Time) string {
	duration := time.Since(t)

	if duration < time.Minute {
		return "just now"
	} else if duration < time.Hour {
		return fmt.Sprintf("%dm ago", int(duration.Minutes()))
	} else if duration < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(duration.Hours()))
	} else if duration < 7*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(duration.Hours()/24))
	} else if duration < 30*24*time.Hour {
		return fmt.Sprintf("%dw ago", int(duration.Hours()/24/7))
	}
	return fmt.Sprintf("%dmo ago", int(duration.Hours()/24/30))
}
