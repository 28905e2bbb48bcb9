package util

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// NoColor returns true if color output should be disabled.
func NoColor(explicit bool) bool {
	if explicit {
		return true
	}
	return os.Getenv("NO_COLOR") != ""
}

// Palette defines a small set of colors used across widgets.
type Palette struct {
	Primary   lipgloss.Color
	Success   lipgloss.Color
	Danger    lipgloss.Color
	Warning   lipgloss.Color
	Muted     lipgloss.Color
	MutedDark lipgloss.Color
	Highlight lipgloss.Color
}

// DefaultPalette returns the default palette.
func DefaultPalette() Palette {
	return Palette{
		Primary:   lipgloss.Color("#3D6DFF"),
		Success:   lipgloss.Color("#2AA876"),
		Danger:    lipgloss.Color("#D9534F"),
		Warning:   lipgloss.Color("#F0AD4E"),
		Muted:     lipgloss.Color("#6C757D"),
		MutedDark: lipgloss.Color("#5A5A5A"),
		Highlight: lipgloss.Color("#FFE066"),
	}
}

// Styles are the text styles shared by the diff and editor panes.
type Styles struct {
	Removed lipgloss.Style
	Added   lipgloss.Style
	Match   lipgloss.Style
	Faint   lipgloss.Style
	Title   lipgloss.Style
	Focused lipgloss.Style
	Plain   bool
}

// NewStyles builds Styles from p. With noColor every style is empty and
// Plain is set so renderers switch to text markers.
func NewStyles(p Palette, noColor bool) Styles {
	if noColor {
		none := lipgloss.NewStyle()
		return Styles{Removed: none, Added: none, Match: none, Faint: none, Title: none, Focused: none, Plain: true}
	}
	return Styles{
		Removed: lipgloss.NewStyle().Foreground(p.Danger).Strikethrough(true),
		Added:   lipgloss.NewStyle().Foreground(p.Success).Underline(true),
		Match:   lipgloss.NewStyle().Background(p.Highlight).Foreground(lipgloss.Color("#111111")),
		Faint:   lipgloss.NewStyle().Foreground(p.Muted),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(p.Primary),
		Focused: lipgloss.NewStyle().Bold(true).Foreground(p.Warning),
	}
}
