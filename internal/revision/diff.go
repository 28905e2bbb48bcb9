package revision

import (
	"strings"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

// TextSegment is a maximal run of characters sharing one edit status.
// At most one of Added and Removed is set; neither means unchanged.
type TextSegment struct {
	Value   string `json:"value"`
	Added   bool   `json:"added,omitempty"`
	Removed bool   `json:"removed,omitempty"`
}

// Unchanged reports whether the segment is common to both sides.
func (s TextSegment) Unchanged() bool { return !s.Added && !s.Removed }

func (s TextSegment) sameStatus(o TextSegment) bool {
	return s.Added == o.Added && s.Removed == o.Removed
}

// DiffEngine computes rune-level shortest edit scripts.
type DiffEngine struct {
	d *dmp.DiffMatchPatch
}

// NewDiffEngine returns an engine with the diff deadline disabled, so every
// result is a minimal edit script and identical inputs give identical output.
func NewDiffEngine() *DiffEngine {
	d := dmp.New()
	d.DiffTimeout = 0
	return &DiffEngine{d: d}
}

// Diff returns the ordered segments turning original into cleaned.
// Within a changed run, the removed segment precedes the added one.
func (e *DiffEngine) Diff(original, cleaned string) []TextSegment {
	if original == "" && cleaned == "" {
		return []TextSegment{}
	}
	diffs := e.d.DiffMain(original, cleaned, false)
	out := make([]TextSegment, 0, len(diffs))
	for _, df := range diffs {
		if df.Text == "" {
			continue
		}
		seg := TextSegment{Value: df.Text}
		switch df.Type {
		case dmp.DiffInsert:
			seg.Added = true
		case dmp.DiffDelete:
			seg.Removed = true
		}
		out = appendCoalesced(out, seg)
	}
	return out
}

func appendCoalesced(segs []TextSegment, seg TextSegment) []TextSegment {
	if n := len(segs); n > 0 && segs[n-1].sameStatus(seg) {
		segs[n-1].Value += seg.Value
		return segs
	}
	return append(segs, seg)
}

// Original rebuilds the left-hand text from a segment sequence.
func Original(segs []TextSegment) string {
	var b strings.Builder
	for _, s := range segs {
		if !s.Added {
			b.WriteString(s.Value)
		}
	}
	return b.String()
}

// Cleaned rebuilds the right-hand text from a segment sequence.
func Cleaned(segs []TextSegment) string {
	var b strings.Builder
	for _, s := range segs {
		if !s.Removed {
			b.WriteString(s.Value)
		}
	}
	return b.String()
}

// Stats counts runes per edit status.
type Stats struct {
	Added     int
	Removed   int
	Unchanged int
}

// Changed reports whether the diff contains any edit.
func (s Stats) Changed() bool { return s.Added > 0 || s.Removed > 0 }

// Summarize counts the runes in each kind of segment.
func Summarize(segs []TextSegment) Stats {
	var st Stats
	for _, s := range segs {
		n := len([]rune(s.Value))
		switch {
		case s.Added:
			st.Added += n
		case s.Removed:
			st.Removed += n
		default:
			st.Unchanged += n
		}
	}
	return st
}
