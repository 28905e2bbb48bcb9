package editor

import (
	"strings"
	"testing"

	"textify/internal/revision"
	"textify/internal/tui/state"
	"textify/internal/tui/util"
)

func TestHighlightPlain(t *testing.T) {
	e := NewEditor(util.NewStyles(util.DefaultPalette(), true))
	r := revision.Matcher{}.Match("an", false, "Banana")
	if got := e.Highlight(r); got != "B«an»«an»a" {
		t.Fatalf("got %q", got)
	}
}

func TestViewHeader(t *testing.T) {
	e := NewEditor(util.NewStyles(util.DefaultPalette(), true))
	out := e.View(state.UIState{Mode: state.INSERT, Wrap: true}, revision.MatchResult{Spans: []revision.Span{{Text: "x"}}})
	if !strings.HasPrefix(out, "[INSERT]  Wrap: On\n") || !strings.HasSuffix(out, "x\n") {
		t.Fatalf("unexpected view %q", out)
	}
}
