// Package browse implements the interactive kind browser. The left pane
// lists the registered kinds with their canonical entry counts; the right
// pane renders the selected kind's documentation as markdown. Rows are
// clickable and both panes respond to the mouse wheel.
package browse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/strand/internal/config"
	"github.com/zjrosen/strand/internal/keys"
	"github.com/zjrosen/strand/internal/log"
	"github.com/zjrosen/strand/internal/presentation"
	"github.com/zjrosen/strand/internal/ui/markdown"
	"github.com/zjrosen/strand/internal/ui/overlay"
	"github.com/zjrosen/strand/internal/ui/styles"
)

// Focus identifies which pane receives key input.
type Focus int

const (
	FocusList Focus = iota
	FocusDetail
)

// Layout bounds, in terminal cells.
const (
	minListWidth   = 24
	maxListWidth   = 44
	minDetailWidth = 24

	indicatorWidth  = 2
	entriesColWidth = 7
	keyColWidth     = 10
	minNameWidth    = 4
)

// Model is the root Bubble Tea model for the kind browser.
type Model struct {
	kinds   []presentation.KindDTO
	keys    keys.BrowseKeyMap
	helpBar help.Model
	detail  viewport.Model
	md      *markdown.Renderer
	mdStyle string

	cursor int
	offset int
	focus  Focus

	showKeys   bool
	showStatus bool
	showHelp   bool

	width  int
	height int
	ready  bool
}

// New builds a browser over the given kinds. Callers pass the output of
// presentation.FromKinds; the model never reads the registry itself.
func New(kinds []presentation.KindDTO, ui config.UIConfig) Model {
	return Model{
		kinds:      kinds,
		keys:       keys.DefaultBrowseKeyMap(),
		helpBar:    help.New(),
		detail:     viewport.New(0, 0),
		mdStyle:    ui.MarkdownStyle,
		showKeys:   ui.ShowKeys,
		showStatus: ui.ShowStatusBar,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m = m.layout()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

// handleKey dispatches key presses. The help overlay swallows everything
// except close and quit while it is open.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Back):
			m.showHelp = false
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.ToggleKeys):
		m.showKeys = !m.showKeys
		return m, nil
	case key.Matches(msg, m.keys.ToggleStatus):
		m.showStatus = !m.showStatus
		return m.layout(), nil
	case key.Matches(msg, m.keys.SwitchPane):
		return m.switchPane(), nil
	}

	if m.focus == FocusDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		return m.moveCursor(m.cursor - 1), nil
	case key.Matches(msg, m.keys.Down):
		return m.moveCursor(m.cursor + 1), nil
	case key.Matches(msg, m.keys.Top):
		return m.moveCursor(0), nil
	case key.Matches(msg, m.keys.Bottom):
		return m.moveCursor(len(m.kinds) - 1), nil
	case key.Matches(msg, m.keys.Inspect):
		if m.detailVisible() && len(m.kinds) > 0 {
			m.focus = FocusDetail
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		return m, tea.Quit
	}
	return m, nil
}

// handleDetailKey forwards scrolling to the viewport; esc returns focus
// to the list.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.focus = FocusList
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// handleMouse routes clicks to kind rows and wheel events to the pane
// under the pointer.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionRelease {
			return m, nil
		}
		for i := range m.kinds {
			if zone.Get(kindZoneID(i)).InBounds(msg) {
				m.focus = FocusList
				return m.moveCursor(i), nil
			}
		}
		if m.detailVisible() && zone.Get(zoneDetailPane).InBounds(msg) {
			m.focus = FocusDetail
		} else if zone.Get(zoneListPane).InBounds(msg) {
			m.focus = FocusList
		}
		return m, nil

	case tea.MouseButtonWheelUp:
		if zone.Get(zoneListPane).InBounds(msg) {
			return m.moveCursor(m.cursor - 1), nil
		}
	case tea.MouseButtonWheelDown:
		if zone.Get(zoneListPane).InBounds(msg) {
			return m.moveCursor(m.cursor + 1), nil
		}
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) switchPane() Model {
	if m.focus == FocusList && m.detailVisible() {
		m.focus = FocusDetail
	} else {
		m.focus = FocusList
	}
	return m
}

// moveCursor clamps the cursor, keeps it on screen, and re-renders the
// detail pane for the newly selected kind.
func (m Model) moveCursor(to int) Model {
	if len(m.kinds) == 0 {
		return m
	}
	if to < 0 {
		to = 0
	}
	if to >= len(m.kinds) {
		to = len(m.kinds) - 1
	}
	if to == m.cursor {
		return m
	}
	m.cursor = to
	m = m.ensureVisible()
	return m.renderDetail()
}

// ensureVisible scrolls the list window so the cursor row stays on
// screen.
func (m Model) ensureVisible() Model {
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
	return m
}

// layout recomputes pane geometry after a resize or status bar toggle.
func (m Model) layout() Model {
	if m.width <= 0 || m.height <= 0 {
		return m
	}

	// Account for the status bar's horizontal padding.
	m.helpBar.Width = m.width - 2

	if !m.detailVisible() {
		m.focus = FocusList
		return m.ensureVisible()
	}

	panesH := m.panesHeight()
	detailW := m.detailWidth()

	vw := detailW - 2
	if vw < 1 {
		vw = 1
	}
	vh := panesH - 2
	if vh < 1 {
		vh = 1
	}
	m.detail.Width = vw
	m.detail.Height = vh

	wrap := detailW - 4
	if wrap < 10 {
		wrap = 10
	}
	if m.md == nil {
		md, err := markdown.New(wrap, m.mdStyle)
		if err != nil {
			log.Warn(log.CatUI, "markdown renderer unavailable", "error", err)
		} else {
			m.md = md
		}
	} else if err := m.md.Resize(wrap); err != nil {
		log.Warn(log.CatUI, "markdown renderer resize failed", "error", err)
	}

	m = m.ensureVisible()
	return m.renderDetail()
}

// renderDetail fills the detail viewport with the selected kind's
// document and resets its scroll position. Falls back to word-wrapped
// plain markdown when the renderer is unavailable.
func (m Model) renderDetail() Model {
	if len(m.kinds) == 0 || m.cursor >= len(m.kinds) {
		return m
	}
	doc := presentation.KindMarkdown(m.kinds[m.cursor])
	body := ""
	if m.md != nil {
		out, err := m.md.Render(doc)
		if err != nil {
			log.Warn(log.CatUI, "kind doc render failed", "kind", m.kinds[m.cursor].Name, "error", err)
		} else {
			body = out
		}
	}
	if body == "" {
		width := m.detailWidth() - 4
		if width < 10 {
			width = 10
		}
		body = wordwrap.String(doc, width)
	}
	m.detail.SetContent(body)
	m.detail.GotoTop()
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return ""
	}

	view := m.renderPanes()
	if m.showStatus {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.renderStatusBar())
	}
	if m.showHelp {
		view = overlay.Compose(m.renderHelp(), view, m.width, m.height, overlay.AnchorCenter, 0)
	}
	return zone.Scan(view)
}

// renderPanes renders the kind list and, when the terminal is wide
// enough, the detail pane beside it.
func (m Model) renderPanes() string {
	panesH := m.panesHeight()
	title := fmt.Sprintf("Kinds (%d)", len(m.kinds))
	list := zone.Mark(zoneListPane,
		styles.TitledPanel(m.renderList(), title, m.listWidth(), panesH, m.focus == FocusList))
	if !m.detailVisible() {
		return list
	}

	detailTitle := ""
	if len(m.kinds) > 0 {
		detailTitle = m.kinds[m.cursor].Name
	}
	detail := zone.Mark(zoneDetailPane,
		styles.TitledPanel(m.detail.View(), detailTitle, m.detailWidth(), panesH, m.focus == FocusDetail))
	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

// renderList renders the column header and the visible window of kinds.
func (m Model) renderList() string {
	if len(m.kinds) == 0 {
		return styles.TextMutedStyle.Render("No kinds registered.")
	}

	innerW := m.listWidth() - 2
	withKey := m.keyColumnVisible(innerW)
	nameW := nameColumnWidth(innerW, withKey)

	var b strings.Builder
	b.WriteString(m.renderListHeader(nameW, withKey))

	end := m.offset + m.visibleRows()
	if end > len(m.kinds) {
		end = len(m.kinds)
	}
	for i := m.offset; i < end; i++ {
		b.WriteByte('\n')
		b.WriteString(zone.Mark(kindZoneID(i), m.renderListRow(i, nameW, withKey)))
	}
	return b.String()
}

func (m Model) renderListHeader(nameW int, withKey bool) string {
	header := strings.Repeat(" ", indicatorWidth) + cell("NAME", nameW) + "  " + cell("ENTRIES", entriesColWidth)
	if withKey {
		header += "  " + cell("KEY", keyColWidth)
	}
	return styles.ListHeaderStyle.Render(header)
}

// renderListRow renders one kind row. The selected row carries the
// indicator and a bold name; derived kinds are tinted.
func (m Model) renderListRow(i int, nameW int, withKey bool) string {
	dto := m.kinds[i]

	indicator := strings.Repeat(" ", indicatorWidth)
	nameStyle := styles.ListNameStyle
	if dto.Parent != "" {
		nameStyle = styles.ListDerivedNameStyle
	}
	if i == m.cursor {
		indicator = styles.SelectionIndicatorStyle.Render("> ")
		nameStyle = nameStyle.Bold(true)
	}

	row := indicator +
		nameStyle.Render(cell(dto.Name, nameW)) + "  " +
		styles.ListCountStyle.Render(cell(strconv.Itoa(len(dto.Entries)), entriesColWidth))
	if withKey {
		row += "  " + styles.ListKeyStyle.Render(cell(keyCell(dto), keyColWidth))
	}
	return row
}

// renderStatusBar renders the key hint line at the bottom of the screen.
func (m Model) renderStatusBar() string {
	return styles.StatusBarStyle.Render(m.helpBar.View(m.keys))
}

// keyCell returns the KEY column value for a kind: "(default)" for kinds
// whose default entry uses the empty key, "-" for kinds that publish no
// entries, otherwise the kind's first lookup key.
func keyCell(dto presentation.KindDTO) string {
	if dto.SuppressDefault && len(dto.Entries) == 0 {
		return "-"
	}
	for _, e := range dto.Entries {
		if e.Key == "" {
			return "(default)"
		}
	}
	if len(dto.Entries) > 0 {
		return dto.Entries[0].Key
	}
	return "-"
}

// cell truncates s to width display cells and right-pads it with spaces.
func cell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = truncate.StringWithTail(s, uint(width), "…")
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// nameColumnWidth returns the NAME column width for the given list
// interior; the fixed trailing columns take the rest.
func nameColumnWidth(innerW int, withKey bool) int {
	w := innerW - indicatorWidth - entriesColWidth - 2
	if withKey {
		w -= keyColWidth + 2
	}
	if w < minNameWidth {
		w = minNameWidth
	}
	return w
}

// keyColumnVisible reports whether the lookup key column is enabled and
// fits the list interior.
func (m Model) keyColumnVisible(innerW int) bool {
	return m.showKeys && innerW >= indicatorWidth+minNameWidth+entriesColWidth+keyColWidth+4
}

// visibleRows is how many kind rows fit under the list header.
func (m Model) visibleRows() int {
	rows := m.panesHeight() - 3
	if rows < 1 {
		rows = 1
	}
	return rows
}

// panesHeight is the vertical space available to the two panes.
func (m Model) panesHeight() int {
	h := m.height
	if m.showStatus {
		h--
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) rawListWidth() int {
	w := m.width * 2 / 5
	if w < minListWidth {
		w = minListWidth
	}
	if w > maxListWidth {
		w = maxListWidth
	}
	if w > m.width {
		w = m.width
	}
	return w
}

// detailVisible reports whether the terminal is wide enough to show the
// detail pane beside the list.
func (m Model) detailVisible() bool {
	return m.width-m.rawListWidth() >= minDetailWidth
}

// listWidth is the list pane width; the list takes the full terminal
// when the detail pane is hidden.
func (m Model) listWidth() int {
	if m.detailVisible() {
		return m.rawListWidth()
	}
	return m.width
}

func (m Model) detailWidth() int {
	if !m.detailVisible() {
		return 0
	}
	return m.width - m.rawListWidth()
}
