// Package markdown provides styled markdown rendering for the TUI.
package markdown

import (
	"github.com/charmbracelet/glamour"
)

// noMarginStyle strips document margins so rendered output can be
// embedded in panes without leading gutters.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with strand-specific configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
	style    string
}

// New creates a markdown renderer with the given wrap width and style.
// style should be "dark" or "light"; empty defaults to "dark".
// The style is fixed rather than auto-detected: WithAutoStyle() queries
// the terminal background with an OSC sequence whose response can leak
// into the input stream.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}

	tr, err := build(width, style)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: tr, width: width, style: style}, nil
}

func build(width int, style string) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Style returns the configured style name.
func (r *Renderer) Style() string {
	return r.style
}

// Resize rebuilds the renderer at a new wrap width. Glamour bakes the
// width into the renderer, so pane resizes need a fresh one.
func (r *Renderer) Resize(width int) error {
	if width == r.width {
		return nil
	}
	tr, err := build(width, r.style)
	if err != nil {
		return err
	}
	r.renderer = tr
	r.width = width
	return nil
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}
