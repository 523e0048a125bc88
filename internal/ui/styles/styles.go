// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#CCCCCC"} // Kind names, primary text
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#BBBBBB"} // Lookup keys, counts
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Hints, help text, footers
	TextDescriptionColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"} // Doc text

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused panes
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"} // Focused pane

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Kind accents
	DerivedKindColor    = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"} // Kinds derived from a parent
	DefaultEntryColor   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // The default-arguments entry
	SuppressedHintColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Kinds with no default entry

	// Overlay colors
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}

	// Selection indicator color (used for ">" prefix in lists)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

	// Selection indicator style
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// Kind list
	ListHeaderStyle      = lipgloss.NewStyle().Foreground(TextMutedColor).Bold(true)
	ListNameStyle        = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	ListDerivedNameStyle = lipgloss.NewStyle().Foreground(DerivedKindColor)
	ListCountStyle       = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	ListKeyStyle         = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Muted text (empty states, overlay footers)
	TextMutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Help overlay
	OverlayTitleStyle = lipgloss.NewStyle().Foreground(OverlayTitleColor).Bold(true)
	HelpKeyStyle      = lipgloss.NewStyle().Foreground(BorderFocusColor)
	HelpDescStyle     = lipgloss.NewStyle().Foreground(TextDescriptionColor)
	HelpBoxStyle      = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(OverlayBorderColor).
				Padding(1, 2)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)
)
