package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	appmodel "github.com/pushpitasaha/thinkbot-AI/model"
)

// renderHistorySearch draws the fuzzy title search modal.
func renderHistorySearch(searchInput textinput.Model, results []appmodel.HistorySummary, selectedIdx, width, height int) string {
	modalWidth := width - 4
	if modalWidth > 100 {
		modalWidth = 100
	}

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimColor).
		Padding(1, 2)

	title := TitleStyle.Render("🔍 Search Chats")
	searchView := searchInput.View()

	resultsView := ""
	if len(results) == 0 {
		if searchInput.Value() == "" {
			resultsView = DimStyle.Render("Type to search your chat history...")
		} else {
			resultsView = DimStyle.Render("No matches found")
		}
	} else {
		maxVisible := height - 14
		if maxVisible < 3 {
			maxVisible = 3
		}

		resultsView = fmt.Sprintf("Found %d matches:\n\n", len(results))

		shown := 0
		for i, summary := range results {
			if shown >= maxVisible {
				resultsView += DimStyle.Render(fmt.Sprintf("↓ %d more below", len(results)-shown))
				break
			}

			line := fmt.Sprintf("%s  %s",
				summary.Title,
				DimStyle.Render(formatTimeAgo(summary.Timestamp)))

			if i == selectedIdx {
				line = SelectedStyle.Render("> ") + line
			} else {
				line = "  " + line
			}

			resultsView += line + "\n"
			shown++
		}
	}

	footer := FormatFooter(
		"Type", "to search",
		"Alt+J/K", "Navigate",
		"Enter", "Open",
		"Esc", "Close",
	)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		searchView,
		"",
		resultsView,
		"",
		footer,
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		modalStyle.Width(modalWidth).Render(content))
}
