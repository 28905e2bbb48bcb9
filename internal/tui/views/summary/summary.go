package summary

import (
	"textify/internal/revision"
	"textify/internal/tui/util"
	chips "textify/internal/tui/widgets/tagchips"
)

// Render is a thin adapter from diff and match state to the TagChips widget.
func Render(segs []revision.TextSegment, regexOpen bool, pattern string, match revision.MatchResult, valid, noColor bool) string {
	return chips.View(util.ComputeTags(segs, regexOpen, pattern, match, valid), noColor)
}
