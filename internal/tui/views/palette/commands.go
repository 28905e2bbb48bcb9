package palette

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ID names a palette action.
type ID string

const (
	Clean        ID = "clean"
	ReplaceAll   ID = "replace_all"
	Undo         ID = "undo"
	Copy         ID = "copy"
	ExportText   ID = "export_txt"
	ExportMD     ID = "export_md"
	ShareLink    ID = "share_link"
	OpenShare    ID = "open_share"
	ToggleRegex  ID = "toggle_regex"
	ToggleView   ID = "toggle_view"
	ToggleWrap   ID = "toggle_wrap"
	ToggleSync   ID = "toggle_sync"
	ToggleAuto   ID = "toggle_autoclean"
	SaveDefaults ID = "save_defaults"
	Help         ID = "help"
	Quit         ID = "quit"
)

// Command is one palette entry.
type Command struct {
	ID       ID
	Title    string
	Shortcut string
}

// Commands returns the fixed palette entries. Flag toggles are appended by
// the caller since their labels depend on the current config.
func Commands() []Command {
	return []Command{
		{Clean, "Clean text", "ctrl+s"},
		{ReplaceAll, "Replace all matches", "ctrl+r"},
		{Undo, "Undo", "ctrl+z"},
		{Copy, "Copy cleaned text", "ctrl+y"},
		{ExportText, "Export as cleaned-text.txt", "ctrl+e"},
		{ExportMD, "Export as cleaned-text.md", ""},
		{ShareLink, "Copy share link", "ctrl+l"},
		{OpenShare, "Open share link from clipboard", ""},
		{ToggleRegex, "Find and replace", "ctrl+f"},
		{ToggleView, "Toggle unified/side-by-side", "v"},
		{ToggleWrap, "Toggle wrap", "w"},
		{ToggleSync, "Toggle scroll sync", "S"},
		{ToggleAuto, "Toggle auto-clean on paste", ""},
		{SaveDefaults, "Save options as defaults", ""},
		{Help, "Keyboard help", "?"},
		{Quit, "Quit", "ctrl+c"},
	}
}

// Filter keeps commands whose title or ID contains every word of query,
// ignoring case. An empty query keeps everything.
func Filter(cmds []Command, query string) []Command {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return cmds
	}
	out := make([]Command, 0, len(cmds))
	for _, c := range cmds {
		hay := strings.ToLower(c.Title + " " + string(c.ID))
		ok := true
		for _, w := range words {
			if !strings.Contains(hay, w) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, c)
		}
	}
	return out
}

// Render draws the palette box: the filter input line followed by the
// matches, with the cursor row highlighted.
func Render(input string, matches []Command, cursor int, sel, faint lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(input + "\n\n")
	if len(matches) == 0 {
		b.WriteString(faint.Render("No matching commands") + "\n")
	}
	for i, c := range matches {
		line := fmt.Sprintf("  %s", c.Title)
		if c.Shortcut != "" {
			line += "  " + faint.Render(c.Shortcut)
		}
		if i == cursor {
			line = sel.Render("> " + c.Title)
			if c.Shortcut != "" {
				line += "  " + faint.Render(c.Shortcut)
			}
		}
		b.WriteString(line + "\n")
	}
	return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Render(strings.TrimRight(b.String(), "\n"))
}
