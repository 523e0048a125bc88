// Package overlay composes foreground content over a background view
// without clearing the screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Anchor selects where the foreground is placed on the canvas.
type Anchor int

const (
	// AnchorCenter places the foreground in the middle of the canvas.
	AnchorCenter Anchor = iota
	// AnchorTop places it top center, pad rows from the top edge.
	AnchorTop
	// AnchorBottom places it bottom center, pad rows from the bottom edge.
	AnchorBottom
)

// Compose draws fg over bg on a width x height canvas. Both strings may
// carry ANSI styling; background styling on either side of the
// foreground survives. pad only applies to AnchorTop and AnchorBottom.
func Compose(fg, bg string, width, height int, at Anchor, pad int) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	// Short backgrounds grow to fill the canvas
	for len(bgLines) < height {
		bgLines = append(bgLines, strings.Repeat(" ", width))
	}

	fgWidth := lipgloss.Width(fg)
	startX, startY := origin(width, height, fgWidth, len(fgLines), at, pad)

	for i, fgLine := range fgLines {
		y := startY + i
		if y >= len(bgLines) {
			break
		}
		bgLines[y] = splice(bgLines[y], fgLine, startX)
	}

	return strings.Join(bgLines, "\n")
}

// splice overlays fgLine onto bgLine starting at column x, keeping the
// background visible on both sides. All measurement and cutting is
// ANSI-aware so styled backgrounds are not corrupted.
func splice(bgLine, fgLine string, x int) string {
	left := ansi.Truncate(bgLine, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	end := x + ansi.StringWidth(fgLine)
	var right string
	if end < ansi.StringWidth(bgLine) {
		right = ansi.TruncateLeft(bgLine, end, "")
	}

	return left + fgLine + right
}

// origin computes the top-left cell of the foreground, clamped to the
// canvas.
func origin(width, height, fgWidth, fgHeight int, at Anchor, pad int) (x, y int) {
	x = (width - fgWidth) / 2

	switch at {
	case AnchorTop:
		y = pad
	case AnchorBottom:
		y = height - fgHeight - pad
	default:
		y = (height - fgHeight) / 2
	}

	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
