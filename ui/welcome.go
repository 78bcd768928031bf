package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const asciiArt = ` _____ _     _       _    ____        _
|_   _| |__ (_)_ __ | | _| __ )  ___ | |_
  | | | '_ \| | '_ \| |/ /  _ \ / _ \| __|
  | | | | | | | | | |   <| |_) | (_) | |_
  |_| |_| |_|_|_| |_|_|\_\____/ \___/ \__|`

// starterPrompts mirror the welcome suggestion cards; alt+1..4 sends
// one as the first turn.
var starterPrompts = []string{
	"I'm new to R programming. Can you teach me the basics?",
	"I need help with data analysis in R. Where should I start?",
	"I want to create charts and graphs in R. Can you help?",
	"I have some R code that's not working. Can you review it?",
}

var starterCardLabels = []string{
	"📚 Learn the basics",
	"📊 Analyze data",
	"📈 Create visualizations",
	"🔍 Review my code",
}

func welcomeContent(width int) string {
	var sb strings.Builder

	sb.WriteString("\n")
	for _, line := range strings.Split(asciiArt, "\n") {
		sb.WriteString(centerText(TitleStyle.Render(line), width))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(centerText("Hello! I'm ThinkBot, your R programming assistant.", width))
	sb.WriteString("\n")
	sb.WriteString(centerText(DimStyle.Render("Ask me anything, or pick a starting point:"), width))
	sb.WriteString("\n\n")

	for i, label := range starterCardLabels {
		card := fmt.Sprintf("%s %s",
			SelectedStyle.Render(fmt.Sprintf("[Alt+%d]", i+1)),
			label)
		sb.WriteString(centerText(card, width))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(centerText(DimStyle.Render("Alt+H History  Alt+S Search  Alt+A Attach"), width))
	sb.WriteString("\n")

	return sb.String()
}

func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
