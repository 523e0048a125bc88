// Package styles contains Lip Gloss style definitions.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded)
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// panelEllipsis marks truncated titles.
const panelEllipsis = "…"

// TitledPanel renders content inside a rounded border with the title
// embedded in the top edge: ╭─ Title ─────╮
// The border uses BorderFocusColor when focused, BorderDefaultColor
// otherwise. Content is constrained to the inner width and padded so the
// right border stays aligned.
func TitledPanel(content, title string, width, height int, focused bool) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = BorderFocusColor
	}

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Foreground(OverlayTitleColor)
	if focused {
		titleStyle = titleStyle.Bold(true)
	}

	innerWidth := width - 2
	if innerWidth < 1 {
		innerWidth = 1
	}
	innerHeight := height - 2
	if innerHeight < 1 {
		innerHeight = 1
	}

	top := panelTopEdge(title, innerWidth, borderStyle, titleStyle)
	bottom := borderStyle.Render(borderBottomLeft + strings.Repeat(borderHorizontal, innerWidth) + borderBottomRight)

	// Constrain content so long lines wrap instead of pushing the border out
	body := lipgloss.NewStyle().Width(innerWidth).Height(innerHeight).Render(content)

	bodyLines := strings.Split(body, "\n")
	rows := make([]string, innerHeight)
	for i := range rows {
		var line string
		if i < len(bodyLines) {
			line = bodyLines[i]
		}
		if gap := innerWidth - lipgloss.Width(line); gap > 0 {
			line += strings.Repeat(" ", gap)
		}
		rows[i] = borderStyle.Render(borderVertical) + line + borderStyle.Render(borderVertical)
	}

	var b strings.Builder
	b.WriteString(top)
	b.WriteString("\n")
	b.WriteString(strings.Join(rows, "\n"))
	b.WriteString("\n")
	b.WriteString(bottom)
	return b.String()
}

// panelTopEdge builds the top border line with the title embedded:
// ╭─ Title ──────╮. Titles that do not fit are truncated; edges too
// narrow for any title render plain.
func panelTopEdge(title string, innerWidth int, borderStyle, titleStyle lipgloss.Style) string {
	if title == "" || innerWidth < 5 {
		return borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	}

	// "─ " before the title and " " after it are fixed
	room := innerWidth - 4
	shown := truncateTitle(title, room)

	trailing := innerWidth - 3 - lipgloss.Width(shown)
	if trailing < 0 {
		trailing = 0
	}

	return borderStyle.Render(borderTopLeft+borderHorizontal+" ") +
		titleStyle.Render(shown) +
		borderStyle.Render(" "+strings.Repeat(borderHorizontal, trailing)+borderTopRight)
}

// truncateTitle trims a title to maxWidth terminal cells, ending with an
// ellipsis when anything was cut.
func truncateTitle(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return panelEllipsis
	}

	var kept string
	for _, r := range s {
		next := kept + string(r)
		if lipgloss.Width(next) > maxWidth-1 {
			break
		}
		kept = next
	}
	return kept + panelEllipsis
}
