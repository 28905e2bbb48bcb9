package editor

import (
	"fmt"
	"strings"

	"textify/internal/revision"
	"textify/internal/tui/state"
	"textify/internal/tui/util"
	"textify/internal/tui/widgets/diff"
)

type Editor struct {
	st util.Styles
}

func NewEditor(st util.Styles) Editor { return Editor{st: st} }

// Header is the one-line mode and wrap indicator shown above the input.
func (Editor) Header(s state.UIState) string {
	header := "[CMD]"
	if s.Mode == state.INSERT {
		header = "[INSERT]"
	}
	wrap := "Wrap: Off"
	if s.Wrap {
		wrap = "Wrap: On"
	}
	return fmt.Sprintf("%s  %s", header, wrap)
}

// Highlight renders the subject with every regex match marked. Plain mode
// wraps matches in «».
func (e Editor) Highlight(r revision.MatchResult) string {
	var b strings.Builder
	for _, sp := range r.Spans {
		if !sp.IsMatch {
			b.WriteString(sp.Text)
			continue
		}
		if e.st.Plain {
			b.WriteString("«" + sp.Text + "»")
			continue
		}
		b.WriteString(diff.Paint(e.st.Match, sp.Text))
	}
	return b.String()
}

// View renders the header and the highlighted buffer.
func (e Editor) View(s state.UIState, r revision.MatchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", e.Header(s))
	fmt.Fprintf(&b, "%s\n", e.Highlight(r))
	return b.String()
}
