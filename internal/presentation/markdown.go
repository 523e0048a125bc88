package presentation

import (
	"fmt"
	"strconv"
	"strings"
)

// KindMarkdown builds a markdown document describing a kind. The kind
// browser and the describe command both render it through glamour.
func KindMarkdown(dto KindDTO) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", dto.Name)

	if dto.Doc != "" {
		b.WriteString("\n")
		b.WriteString(dto.Doc)
		b.WriteString("\n")
	}

	if dto.Parent != "" {
		fmt.Fprintf(&b, "\nDerived from `%s`.\n", dto.Parent)
	}

	if len(dto.Params) > 0 {
		fmt.Fprintf(&b, "\n**Params:** %s\n", joinParams(dto.Params))
	}

	if dto.SuppressDefault {
		b.WriteString("\nThis kind publishes no default entry.\n")
	}

	if len(dto.Entries) > 0 {
		b.WriteString("\n## Entries\n\n")
		for _, e := range dto.Entries {
			b.WriteString("- ")
			b.WriteString(entryLine(e))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// entryLine formats one canonical entry as a markdown list item. The
// default entry has an empty key and is labeled instead of quoted.
func entryLine(e EntryDTO) string {
	name := "`" + e.Key + "`"
	if e.Key == "" {
		name = "**default**"
	}

	var parts []string
	if len(e.Params) > 0 {
		parts = append(parts, "params "+joinParams(e.Params))
	}
	if e.Label != "" {
		parts = append(parts, fmt.Sprintf("label %q", e.Label))
	}
	if e.Duration != 0 {
		if e.Unit != "" {
			parts = append(parts, fmt.Sprintf("duration %g%s", e.Duration, e.Unit))
		} else {
			parts = append(parts, fmt.Sprintf("duration %g ticks", e.Duration))
		}
	}

	if len(parts) == 0 {
		return name
	}
	return name + ": " + strings.Join(parts, ", ")
}

func joinParams(params []int) string {
	out := make([]string, len(params))
	for i, p := range params {
		out[i] = strconv.Itoa(p)
	}
	return strings.Join(out, ", ")
}
