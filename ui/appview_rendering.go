package ui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"
	"github.com/mattn/go-runewidth"

	"github.com/pushpitasaha/thinkbot-AI/api"
	appmodel "github.com/pushpitasaha/thinkbot-AI/model"
)

// Pre-compiled regex patterns for better performance
var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
	urlRegex        = regexp.MustCompile(`(https?://[^\s]+)`)
)

func (a *AppView) updateViewportContent(gotoBottom bool) {
	if a.loadError != "" {
		a.viewport.SetContent("\n" + AssistantStyle.Render("ThinkBot") + "\n" + a.loadError + "\n")
		return
	}

	if a.session.Active == nil || len(a.session.Active.Messages) == 0 {
		a.viewport.SetContent(welcomeContent(a.viewport.Width))
		return
	}

	var content strings.Builder

	for _, msg := range a.session.Active.Messages {
		timestamp := DimStyle.Render(msg.Timestamp.Format("[15:04]"))

		rendered := msg.Rendered
		if rendered == "" {
			rendered = msg.Text
		}

		if msg.Role == appmodel.RoleUser {
			role := UserStyle.Render("You")
			content.WriteString(formatUserMessage(timestamp, role, rendered))
			if len(msg.Attachments) > 0 {
				content.WriteString(formatAttachmentList(msg.Attachments))
			}
			continue
		}

		role := AssistantStyle.Render("ThinkBot")
		content.WriteString(fmt.Sprintf("%s %s\n%s\n", timestamp, role, rendered))
		if len(msg.Sources) > 0 {
			content.WriteString(formatSources(msg.Sources))
		}
		content.WriteString("\n")
	}

	// Typing indicator while a turn is in flight
	if a.waiting {
		timestamp := DimStyle.Render(time.Now().Format("[15:04]"))
		role := AssistantStyle.Render("ThinkBot")
		content.WriteString(fmt.Sprintf("%s %s\n%s Thinking...\n\n", timestamp, role, a.loadingSpinner.View()))
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

func formatUserMessage(timestamp, role, content string) string {
	greenBold := "\x1b[32;1m"
	reset := "\x1b[0m"
	bar := greenBold + "┃" + reset

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s %s\n", bar, timestamp, role))
	for _, line := range strings.Split(content, "\n") {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}
	result.WriteString("\n")
	return result.String()
}

func formatAttachmentList(attachments []appmodel.Attachment) string {
	var result strings.Builder
	for _, att := range attachments {
		icon := "📄"
		switch att.Kind {
		case appmodel.AttachmentKindImage:
			icon = "🖼"
		case appmodel.AttachmentKindAudio:
			icon = "🎤"
		}
		result.WriteString(DimStyle.Render(fmt.Sprintf("  %s %s (%s)", icon, att.Name, att.FormatSize())))
		result.WriteString("\n")
	}
	result.WriteString("\n")
	return result.String()
}

// formatSources renders the retrieval citations under an answer.
// Module citations carry a source_module and timestamp; document
// citations carry a filename and a zero-based page index, shown
// one-based.
func formatSources(sources []api.Source) string {
	var result strings.Builder
	result.WriteString(SourceStyle.Render("Sources:"))
	result.WriteString("\n")
	for _, src := range sources {
		if src.SourceModule != "" {
			line := src.SourceModule
			if src.Timestamp != "" {
				line += " @ " + src.Timestamp
			}
			result.WriteString(DimStyle.Render("  • " + line))
		} else {
			line := src.Source
			if src.Page != nil {
				line += fmt.Sprintf(", Page %d", *src.Page+1)
			}
			result.WriteString(DimStyle.Render("  • " + line))
		}
		result.WriteString("\n")
	}
	return result.String()
}

// renderPendingMarkdown issues async render commands for assistant
// messages with no cached render yet. User messages stay plain text.
func (a AppView) renderPendingMarkdown() tea.Cmd {
	if a.session.Active == nil {
		return nil
	}

	var cmds []tea.Cmd
	for i, msg := range a.session.Active.Messages {
		if msg.Role == appmodel.RoleAssistant && msg.Rendered == "" {
			cmds = append(cmds, a.renderMarkdownAsync(i, msg.Text))
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (a AppView) renderMarkdownAsync(messageIndex int, content string) tea.Cmd {
	width := a.width
	return func() tea.Msg {
		startTime := time.Now()

		// Strip markdown link syntax [text](url) → url so terminal
		// emulators handle URL detection
		content = preprocessLinks(content)

		// Disable autolink so plain URLs stay plain text
		defaultExt := markdown.Extensions()
		customExt := defaultExt &^ parser.Autolink
		p := parser.NewWithExtensions(customExt)
		r := markdown.NewRenderer(width-4, 0)
		doc := p.Parse([]byte(content))
		rendered := gomarkdown.Render(doc, r)

		processed := postProcessMarkdown(string(rendered), width)

		debugf("[UI] Markdown rendered for message %d in %v", messageIndex, time.Since(startTime))

		return markdownRenderedMsg{
			MessageIndex: messageIndex,
			Rendered:     strings.TrimRight(processed, "\n"),
		}
	}
}

func postProcessMarkdown(rendered string, width int) string {
	rendered = fixInlineCode(rendered)
	rendered = fixMarkdownLinks(rendered)
	rendered = frameCodeBlocks(rendered, width)
	return rendered
}

func preprocessLinks(content string) string {
	return mdLinkRegex.ReplaceAllString(content, "$2")
}

func fixInlineCode(s string) string {
	// Blue background + italic from the renderer reads badly on most
	// terminals; re-color as plain red text instead.
	return inlineCodeRegex.ReplaceAllString(s, "\x1b[31m$1\x1b[0m")
}

func fixMarkdownLinks(s string) string {
	redColor := "\x1b[31m"
	reset := "\x1b[0m"

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		// Skip code block lines (┃ prefix from the renderer)
		if !strings.Contains(line, "┃") {
			lines[i] = urlRegex.ReplaceAllString(line, redColor+"$1"+reset)
		}
	}
	return strings.Join(lines, "\n")
}

func frameCodeBlocks(s string, width int) string {
	lines := strings.Split(s, "\n")
	var result []string
	var codeBlockLines []string
	inCodeBlock := false

	darkGray := "\x1b[90m"
	reset := "\x1b[0m"

	appendBottom := func() {
		result = append(result, codeBlockLines...)
		result = append(result, "")
		result = append(result, darkGray+strings.Repeat("━", width-4)+reset)
		result = append(result, "")
		codeBlockLines = nil
	}

	for _, line := range lines {
		if strings.Contains(line, "┃") {
			if !inCodeBlock {
				inCodeBlock = true
				codeBlockLines = []string{}
				result = append(result, "")

				label := "[code]"
				lineLen := width - 4
				leftLen := (lineLen - len(label)) / 2
				if leftLen < 0 {
					leftLen = 0
				}
				rightLen := lineLen - len(label) - leftLen
				if rightLen < 0 {
					rightLen = 0
				}
				border := darkGray + strings.Repeat("━", leftLen) + reset + label + darkGray + strings.Repeat("━", rightLen) + reset
				result = append(result, border, "")
			}
			codeBlockLines = append(codeBlockLines, stripCodeBlockPrefix(line))
		} else {
			if inCodeBlock {
				appendBottom()
				inCodeBlock = false
			}
			result = append(result, line)
		}
	}

	if inCodeBlock && len(codeBlockLines) > 0 {
		appendBottom()
	}

	return strings.Join(result, "\n")
}

func stripCodeBlockPrefix(line string) string {
	idx := strings.Index(line, "┃")
	if idx < 0 {
		return line
	}
	after := idx + len("┃")
	if after < len(line) && line[after] == ' ' {
		after++
	}
	if after < len(line) {
		return line[after:]
	}
	return ""
}

// availablePrompts is what alt+1..9 and the prompt row draw from:
// the server's follow-ups after a turn, the starter prompts on the
// welcome screen.
func (a AppView) availablePrompts() []string {
	if len(a.session.SuggestedPrompts) > 0 {
		return a.session.SuggestedPrompts
	}
	if a.session.Active == nil {
		return starterPrompts
	}
	return nil
}

// suggestedPromptsView is the follow-up row under the viewport. The
// welcome screen shows its own cards, so nothing renders here until a
// turn has produced prompts.
func (a AppView) suggestedPromptsView() string {
	prompts := a.session.SuggestedPrompts
	if len(prompts) == 0 {
		return ""
	}

	var parts []string
	for i, prompt := range prompts {
		if i >= 9 {
			break
		}
		label := runewidth.Truncate(prompt, 40, "...")
		parts = append(parts, fmt.Sprintf("%s %s",
			SelectedStyle.Render(fmt.Sprintf("[%d]", i+1)),
			DimStyle.Render(label)))
	}
	return "  " + strings.Join(parts, "  ")
}

func (a AppView) attachmentsBarView() string {
	if len(a.session.PendingAttachments) == 0 {
		return ""
	}

	var parts []string
	for _, att := range a.session.PendingAttachments {
		parts = append(parts, fmt.Sprintf("📎 %s (%s)", att.Name, att.FormatSize()))
	}
	return "  " + DimStyle.Render(strings.Join(parts, "  ")+"  Alt+D remove")
}

func (a AppView) statusBarView() string {
	if a.statusFlash != "" {
		return "  " + SelectedStyle.Render(a.statusFlash)
	}

	status := FormatFooter(
		"Enter", "Send",
		"Alt+N", "New",
		"Alt+H", "History",
		"Alt+S", "Search",
		"Alt+A", "Attach",
		"Ctrl+C", "Quit",
	)

	left := "  " + status
	if a.version != "" {
		left += "  " + DimStyle.Render("thinkbot "+a.version)
	}
	return StatusStyle.Render(left)
}
