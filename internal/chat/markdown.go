package chat

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	boldStyle   = lipgloss.NewStyle().Bold(true)
	italicStyle = lipgloss.NewStyle().Italic(true)

	boldItemRe = regexp.MustCompile(`^(\d+)\.\s+\*\*(.*?)\*\*(.*)$`)
	itemRe     = regexp.MustCompile(`^(\d+)\.\s+(.*)$`)
	boldRe     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe   = regexp.MustCompile(`\*(.*?)\*`)
)

// RenderMarkdown renders the subset of markdown the assistant emits
// (bold, italic and numbered lists) for the terminal.
func RenderMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = renderLine(line)
	}
	return strings.Join(lines, "\n")
}

func renderLine(line string) string {
	if m := boldItemRe.FindStringSubmatch(line); m != nil {
		return "  " + boldStyle.Render(m[1]+". "+m[2]) + renderInline(m[3])
	}
	if m := itemRe.FindStringSubmatch(line); m != nil {
		return "  " + boldStyle.Render(m[1]+".") + " " + renderInline(m[2])
	}
	return renderInline(line)
}

func renderInline(s string) string {
	s = boldRe.ReplaceAllStringFunc(s, func(match string) string {
		return boldStyle.Render(boldRe.FindStringSubmatch(match)[1])
	})
	return italicRe.ReplaceAllStringFunc(s, func(match string) string {
		return italicStyle.Render(italicRe.FindStringSubmatch(match)[1])
	})
}
