package tagchips

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"textify/internal/tui/state"
	"textify/internal/tui/util"
)

// View renders summary tags in a stable order using colored chips when
// possible and ASCII fallbacks when color is disabled or not desired.
func View(tags []state.Tag, noColor bool) string {
	if len(tags) == 0 {
		return ""
	}
	// Honor NO_COLOR env var in addition to explicit param
	if !noColor && os.Getenv("NO_COLOR") != "" {
		noColor = true
	}

	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, renderChip(t, noColor))
	}
	return strings.Join(parts, " ")
}

func renderChip(t state.Tag, noColor bool) string {
	label := chipLabel(t)
	if noColor {
		return fmt.Sprintf("[%s]", label)
	}
	return chipStyle(t, util.DefaultPalette()).Render(label)
}

func chipLabel(t state.Tag) string {
	switch t.Kind {
	case state.REMOVED:
		return fmt.Sprintf("-%d", t.Value)
	case state.ADDED:
		return fmt.Sprintf("+%d", t.Value)
	case state.UNCHANGED:
		return fmt.Sprintf("=%d", t.Value)
	case state.MATCHES:
		if t.Value == 1 {
			return "1 match"
		}
		return fmt.Sprintf("%d matches", t.Value)
	case state.BAD_PATTERN:
		return "Invalid pattern"
	default:
		return "Tag"
	}
}

func chipStyle(t state.Tag, p util.Palette) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	white := lipgloss.Color("#FFFFFF")
	switch t.Kind {
	case state.REMOVED:
		return base.Background(p.Danger).Foreground(white)
	case state.ADDED:
		return base.Background(p.Success).Foreground(white)
	case state.UNCHANGED:
		return base.Background(p.Muted).Foreground(white)
	case state.MATCHES:
		return base.Background(p.Primary).Foreground(white)
	case state.BAD_PATTERN:
		return base.Background(p.Warning).Foreground(lipgloss.Color("#111111"))
	default:
		return base
	}
}
