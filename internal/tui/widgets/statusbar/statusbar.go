package statusbar

import (
	"fmt"
	"strings"

	"textify/internal/tui/state"
)

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// View composes a concise status line reflecting key UI state. spin is the
// spinner frame shown while an operation is in flight.
func (StatusBar) View(s state.UIState, spin string) string {
	mode := "[CMD]"
	if s.Mode == state.INSERT {
		mode = "[INSERT]"
	}
	wrap := "Wrap: Off"
	if s.Wrap {
		wrap = "Wrap: On"
	}
	view := "Unified"
	if s.View == state.SideBySide {
		view = "Side-by-side"
	}
	sync := "Sync: Off"
	if s.SyncScroll {
		sync = "Sync: On"
	}
	pos := fmt.Sprintf("V:%d", s.ScrollV)

	parts := []string{mode, wrap, view, sync, pos}
	if s.RegexOpen {
		parts = append(parts, "[REGEX]")
	}
	if s.Busy {
		parts = append(parts, strings.TrimSpace(spin+" Cleaning…"))
	}
	if s.Notice != "" {
		parts = append(parts, s.Notice)
	}
	return strings.Join(parts, "  ")
}
