package util

import (
	"textify/internal/revision"
	"textify/internal/tui/state"
)

// ComputeTags builds the summary chips for the current diff and, when the
// regex row is open, its match state.
//
// The returned slice preserves a stable order:
//
//	Removed, Added, Unchanged, Matches, Bad Pattern
//
// Rules:
//   - Removed, Added and Unchanged are rune counts and appear only when there
//     is a diff to summarise.
//   - Matches appears while the regex row is open and the pattern compiles.
//   - Bad Pattern replaces Matches when a non-empty pattern fails to compile.
func ComputeTags(segs []revision.TextSegment, regexOpen bool, pattern string, match revision.MatchResult, valid bool) []state.Tag {
	tags := make([]state.Tag, 0, 4)
	if len(segs) > 0 {
		st := revision.Summarize(segs)
		tags = append(tags,
			state.Tag{Kind: state.REMOVED, Value: st.Removed},
			state.Tag{Kind: state.ADDED, Value: st.Added},
			state.Tag{Kind: state.UNCHANGED, Value: st.Unchanged},
		)
	}
	if !regexOpen {
		return tags
	}
	switch {
	case valid:
		tags = append(tags, state.Tag{Kind: state.MATCHES, Value: match.MatchCount})
	case pattern != "":
		tags = append(tags, state.Tag{Kind: state.BAD_PATTERN})
	}
	return tags
}
