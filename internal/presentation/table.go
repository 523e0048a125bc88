package presentation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const ellipsis = "…"

// Column describes one table column.
type Column struct {
	Title string
	Width int
}

// FormatTable renders rows under a header in fixed-width columns. Cells
// are measured in display cells and truncated on grapheme boundaries, so
// CJK and emoji content never overflows a column.
func (f *Formatter) FormatTable(columns []Column, rows [][]string) error {
	var b strings.Builder

	for i, col := range columns {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(pad(col.Title, col.Width))
	}
	b.WriteByte('\n')

	for i, col := range columns {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", col.Width))
	}
	b.WriteByte('\n')

	for _, row := range rows {
		for i, col := range columns {
			if i > 0 {
				b.WriteString("  ")
			}
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(pad(cell, col.Width))
		}
		b.WriteByte('\n')
	}

	_, err := fmt.Fprint(f.writer, b.String())
	return err
}

// KindTableColumns returns the columns for the kinds table view.
func KindTableColumns() []Column {
	return []Column{
		{Title: "NAME", Width: 20},
		{Title: "ENTRIES", Width: 7},
		{Title: "PARAMS", Width: 12},
		{Title: "DOC", Width: 40},
	}
}

// KindTableRow renders one kind as a table row. Only the first doc line
// is shown.
func KindTableRow(dto KindDTO) []string {
	params := make([]string, len(dto.Params))
	for i, p := range dto.Params {
		params[i] = strconv.Itoa(p)
	}
	doc := dto.Doc
	if i := strings.IndexByte(doc, '\n'); i >= 0 {
		doc = doc[:i]
	}
	return []string{
		dto.Name,
		strconv.Itoa(len(dto.Entries)),
		strings.Join(params, ","),
		doc,
	}
}

// ProgramTableColumns returns the columns for the programs table view.
func ProgramTableColumns() []Column {
	return []Column{
		{Title: "NAME", Width: 24},
		{Title: "OPS", Width: 5},
		{Title: "UPDATED", Width: 16},
		{Title: "DESCRIPTION", Width: 32},
	}
}

// ProgramTableRow renders one program as a table row.
func ProgramTableRow(dto ProgramDTO) []string {
	return []string{
		dto.Name,
		strconv.Itoa(dto.Ops),
		dto.UpdatedAt.Format("2006-01-02 15:04"),
		dto.Description,
	}
}

// pad truncates s to width display cells and right-pads with spaces.
func pad(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = truncate(s, width-1) + ellipsis
	}
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}

// truncate returns the widest prefix of s that fits maxWidth display
// cells without splitting a grapheme cluster.
func truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	var b strings.Builder
	width := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		w := runewidth.StringWidth(cluster)
		if width+w > maxWidth {
			break
		}
		b.WriteString(cluster)
		width += w
		s = rest
		state = newState
	}
	return b.String()
}
