package helpoverlay

import (
	"fmt"
	"strings"

	"textify/internal/tui/state"
)

type HelpOverlay struct{}

func NewHelpOverlay() HelpOverlay { return HelpOverlay{} }

// View returns grouped keys help with the current mode indicated.
func (HelpOverlay) View(s state.UIState) string {
	mode := "CMD"
	if s.Mode == state.INSERT {
		mode = "INSERT"
	}
	sections := []struct {
		title string
		keys  []string
	}{
		{"Actions", []string{"ctrl+s: clean", "ctrl+z: undo", "ctrl+y: copy cleaned text", "ctrl+e: export", "ctrl+l: copy share link"}},
		{"Regex", []string{"ctrl+f: open find/replace", "tab/shift+tab: next/prev field", "space/enter: toggle case or replace", "ctrl+r: replace all", "esc: close"}},
		{"View", []string{"v: unified/side-by-side", "w: wrap on/off", "S: sync scroll", "j/k or ↑/↓: scroll", "1-7: toggle cleanup option"}},
		{"General", []string{"ctrl+k: command palette", "esc: INSERT/CMD", "?: this help", "ctrl+c or q: quit"}},
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Help (Mode: %s)\n", mode)
	for _, sec := range sections {
		fmt.Fprintf(&b, "\n%s:\n", sec.title)
		for _, k := range sec.keys {
			fmt.Fprintf(&b, "  %s\n", k)
		}
	}
	return b.String()
}
