package diff

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"textify/internal/revision"
	"textify/internal/tui/state"
	"textify/internal/tui/util"
)

// Plain-mode markers, in the style of a word diff.
const (
	delOpen  = "[-"
	delClose = "-]"
	addOpen  = "{+"
	addClose = "+}"
)

type DiffView struct {
	st util.Styles
}

func NewDiffView(st util.Styles) DiffView { return DiffView{st: st} }

// View renders the whole diff as one block. SideBySide puts the original
// on the left and the cleaned text on the right; Unified shows both edits
// inline.
func (v DiffView) View(s state.UIState, segs []revision.TextSegment) string {
	width := s.Width
	if width <= 0 {
		width = 80
	}
	if s.View == state.SideBySide {
		return v.sideBySide(segs, s, width)
	}
	var b strings.Builder
	b.WriteString("ORIGINAL → CLEANED (Unified)\n")
	b.WriteString(Fit(v.Inline(segs), width, s.Wrap))
	b.WriteString("\n")
	return b.String()
}

// Inline renders removed and added runs in one stream.
func (v DiffView) Inline(segs []revision.TextSegment) string {
	var b strings.Builder
	for _, sg := range segs {
		switch {
		case sg.Removed:
			b.WriteString(v.mark(v.st.Removed, sg.Value, delOpen, delClose))
		case sg.Added:
			b.WriteString(v.mark(v.st.Added, sg.Value, addOpen, addClose))
		default:
			b.WriteString(sg.Value)
		}
	}
	return b.String()
}

// Before renders the original text with removed runs marked.
func (v DiffView) Before(segs []revision.TextSegment) string {
	var b strings.Builder
	for _, sg := range segs {
		switch {
		case sg.Added:
		case sg.Removed:
			b.WriteString(v.mark(v.st.Removed, sg.Value, delOpen, delClose))
		default:
			b.WriteString(sg.Value)
		}
	}
	return b.String()
}

// After renders the cleaned text with added runs marked.
func (v DiffView) After(segs []revision.TextSegment) string {
	var b strings.Builder
	for _, sg := range segs {
		switch {
		case sg.Removed:
		case sg.Added:
			b.WriteString(v.mark(v.st.Added, sg.Value, addOpen, addClose))
		default:
			b.WriteString(sg.Value)
		}
	}
	return b.String()
}

func (v DiffView) mark(style lipgloss.Style, text, open, close string) string {
	if v.st.Plain {
		return open + text + close
	}
	return Paint(style, text)
}

// Paint styles text line by line so lipgloss does not pad short lines to
// the width of the longest one.
func Paint(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = style.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

// Fit wraps content to width, or truncates each line when wrap is off.
func Fit(content string, width int, wrapOn bool) string {
	if width <= 0 {
		return content
	}
	if wrapOn {
		return wrap.String(wordwrap.String(content, width), width)
	}
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = truncate.StringWithTail(l, uint(width), "…")
	}
	return strings.Join(lines, "\n")
}

// Separator divides the two columns of a side-by-side view.
const Separator = " │ "

func (v DiffView) sideBySide(segs []revision.TextSegment, s state.UIState, width int) string {
	colWidth := (width - lipgloss.Width(Separator)) / 2
	if colWidth < 10 {
		colWidth = 10
	}
	left := Fit(v.Before(segs), colWidth, s.Wrap)
	right := Fit(v.After(segs), colWidth, s.Wrap)
	return Pad("ORIGINAL", colWidth) + Separator + "CLEANED\n" + Columns(left, right, colWidth) + "\n"
}

// Columns sets two blocks next to each other, padding the left one to
// width. The shorter block is extended with empty lines.
func Columns(left, right string, width int) string {
	l := strings.Split(left, "\n")
	r := strings.Split(right, "\n")
	n := max(len(l), len(r))
	var b strings.Builder
	for i := range n {
		var a, c string
		if i < len(l) {
			a = l[i]
		}
		if i < len(r) {
			c = r[i]
		}
		b.WriteString(Pad(a, width) + Separator + c)
		if i < n-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Pad right-pads s with spaces to width display cells.
func Pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
