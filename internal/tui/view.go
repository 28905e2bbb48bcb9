package tui

import (
	"fmt"
	"strings"

	"textify/internal/revision"
	"textify/internal/tui/state"
	"textify/internal/tui/views/palette"
	"textify/internal/tui/views/summary"
	"textify/internal/tui/widgets/diff"
)

// layout sizes the input and panes from the terminal size.
func (m *Model) layout() {
	w, h := m.ui.Width, m.ui.Height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	inputH := h / 4
	if inputH < 3 {
		inputH = 3
	}
	m.input.SetWidth(w)
	m.input.SetHeight(inputH)
	m.pattern.Width = w / 3
	m.replacement.Width = w / 3
	m.paletteIn.Width = w / 2

	// flags, pane title, chips and status lines
	rest := h - inputH - 4
	if m.ui.RegexOpen {
		rest--
	}
	if rest < 3 {
		rest = 3
	}
	half := (w - 3) / 2
	m.before.vp.Width, m.before.vp.Height = half, rest
	m.after.vp.Width, m.after.vp.Height = w-3-half, rest
	m.unified.vp.Width, m.unified.vp.Height = w, rest
	m.refreshPanes()
}

// refreshPanes re-renders pane contents from the session.
func (m *Model) refreshPanes() {
	segs := m.session.Diff()
	wrap := m.ui.Wrap

	var before, after, inline string
	switch {
	case m.ui.Busy:
		before = m.session.Original()
		after = m.skeleton()
		inline = after
	case len(segs) > 0:
		before = m.dv.Before(segs)
		after = m.dv.After(segs)
		inline = m.dv.Inline(segs)
	default:
		before = m.session.Original()
		after = m.session.Cleaned()
		inline = after
		if after == "" {
			after = m.styles.Faint.Render("Cleaned text appears here")
			inline = after
		}
	}
	if m.ui.RegexOpen {
		before = m.ed.Highlight(m.session.Highlight())
	}

	m.before.vp.SetContent(diff.Fit(before, m.before.vp.Width, wrap))
	m.after.vp.SetContent(diff.Fit(after, m.after.vp.Width, wrap))
	m.unified.vp.SetContent(diff.Fit(inline, m.unified.vp.Width, wrap))
}

// skeleton is the placeholder shown in the cleaned pane while waiting.
func (m *Model) skeleton() string {
	w := m.after.vp.Width
	if w <= 0 {
		w = 40
	}
	lines := []string{
		strings.TrimSpace(m.spin.View() + " Cleaning…"),
		strings.Repeat("░", w*3/4),
		strings.Repeat("░", w/2),
		strings.Repeat("░", w*2/3),
	}
	return m.styles.Faint.Render(strings.Join(lines, "\n"))
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.flagsLine() + "\n")
	b.WriteString(m.input.View() + "\n")
	if m.ui.RegexOpen {
		b.WriteString(m.regexRow() + "\n")
	}

	switch {
	case m.ui.PaletteOpen:
		b.WriteString(palette.Render(m.paletteIn.View(), m.paletteMatches, m.paletteCursor, m.styles.Focused, m.styles.Faint) + "\n")
	case m.ui.HelpOpen:
		b.WriteString(m.help.View(m.ui))
	case m.ui.View == state.SideBySide:
		b.WriteString(m.styles.Title.Render(diff.Pad("ORIGINAL", m.before.vp.Width)) + diff.Separator + m.styles.Title.Render("CLEANED") + "\n")
		b.WriteString(diff.Columns(m.before.vp.View(), m.after.vp.View(), m.before.vp.Width) + "\n")
	default:
		b.WriteString(m.styles.Title.Render("ORIGINAL → CLEANED") + "\n")
		b.WriteString(m.unified.vp.View() + "\n")
	}

	rx := m.session.Config().Regex
	valid := revision.Matcher{}.Valid(rx.Pattern, rx.CaseSensitive)
	b.WriteString(summary.Render(m.session.Diff(), m.ui.RegexOpen, rx.Pattern, m.session.Highlight(), valid, m.styles.Plain) + "\n")
	b.WriteString(m.bar.View(m.ui, m.spin.View()))
	return b.String()
}

// flagsLine lists the cleanup toggles with their number keys.
func (m *Model) flagsLine() string {
	parts := []string{m.styles.Title.Render("textify")}
	for i, f := range m.session.Config().Flags() {
		box := "[ ]"
		if f.On {
			box = "[x]"
		}
		parts = append(parts, fmt.Sprintf("%d%s %s", i+1, box, f.Label))
	}
	if m.auto {
		parts = append(parts, "auto")
	}
	return diff.Fit(strings.Join(parts, "  "), m.widthOr(80), false)
}

func (m *Model) regexRow() string {
	rx := m.session.Config().Regex
	box := "[ ] Case sensitive"
	if rx.CaseSensitive {
		box = "[x] Case sensitive"
	}
	btn := "[Replace all]"
	switch m.ui.Focus {
	case state.FocusCase:
		box = m.styles.Focused.Render(box)
	case state.FocusReplaceAll:
		btn = m.styles.Focused.Render(btn)
	}
	return strings.Join([]string{m.pattern.View(), m.replacement.View(), box, btn}, "  ")
}

func (m *Model) widthOr(def int) int {
	if m.ui.Width > 0 {
		return m.ui.Width
	}
	return def
}
