package browse

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/strand/internal/ui/styles"
)

const helpKeyWidth = 10

// renderHelp renders the keybinding reference shown centered over the
// browser while the help overlay is open.
func (m Model) renderHelp() string {
	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Navigation", []key.Binding{m.keys.Up, m.keys.Down, m.keys.Top, m.keys.Bottom}},
		{"Panes", []key.Binding{m.keys.Inspect, m.keys.SwitchPane, m.keys.Back}},
		{"General", []key.Binding{m.keys.ToggleKeys, m.keys.ToggleStatus, m.keys.Help, m.keys.Quit}},
	}

	cols := make([]string, 0, len(sections)*2)
	for i, s := range sections {
		if i > 0 {
			cols = append(cols, "    ")
		}
		cols = append(cols, renderHelpSection(s.title, s.bindings))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	footer := styles.TextMutedStyle.Render("Press ? or esc to close")
	content := lipgloss.JoinVertical(lipgloss.Left, body, "", footer)

	return styles.HelpBoxStyle.Render(content)
}

// renderHelpSection renders one titled column of key/description rows.
func renderHelpSection(title string, bindings []key.Binding) string {
	var b strings.Builder
	b.WriteString(styles.OverlayTitleStyle.Render(title))
	for _, bind := range bindings {
		b.WriteByte('\n')
		b.WriteString(renderBinding(bind))
	}
	return b.String()
}

// renderBinding renders one "key  description" help row.
func renderBinding(b key.Binding) string {
	h := b.Help()
	return styles.HelpKeyStyle.Render(cell(h.Key, helpKeyWidth)) + styles.HelpDescStyle.Render(h.Desc)
}
