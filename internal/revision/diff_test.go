package revision

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var diffPairs = []struct{ a, b string }{
	{"", ""},
	{"", "hello"},
	{"hello", ""},
	{"same", "same"},
	{"# Hello *world*\n", "Hello world"},
	{"1. first\n2. second\n", "first\nsecond\n"},
	{"“quoted” text", "\"quoted\" text"},
	{"abcabba", "cbabac"},
	{"Visit https://example.com now 🎉", "Visit now"},
	{"trailing   \nspaces\t\n", "trailing\nspaces\n"},
	{"日本語のテキスト", "日本語テキスト"},
	{"kitten", "sitting"},
}

func TestDiffCompleteness(t *testing.T) {
	e := NewDiffEngine()
	for _, p := range diffPairs {
		segs := e.Diff(p.a, p.b)
		if got := Original(segs); got != p.a {
			t.Fatalf("Original(%q,%q) = %q", p.a, p.b, got)
		}
		if got := Cleaned(segs); got != p.b {
			t.Fatalf("Cleaned(%q,%q) = %q", p.a, p.b, got)
		}
	}
}

func TestDiffCoalescing(t *testing.T) {
	e := NewDiffEngine()
	for _, p := range diffPairs {
		segs := e.Diff(p.a, p.b)
		for i, s := range segs {
			if s.Value == "" {
				t.Fatalf("empty segment at %d for %q -> %q", i, p.a, p.b)
			}
			if s.Added && s.Removed {
				t.Fatalf("segment %d both added and removed", i)
			}
			if i > 0 && segs[i-1].sameStatus(s) {
				t.Fatalf("segments %d and %d share status for %q -> %q: %+v", i-1, i, p.a, p.b, segs)
			}
		}
	}
}

func TestDiffDeterministic(t *testing.T) {
	for _, p := range diffPairs {
		first := NewDiffEngine().Diff(p.a, p.b)
		second := NewDiffEngine().Diff(p.a, p.b)
		if d := cmp.Diff(first, second); d != "" {
			t.Fatalf("diff(%q,%q) not deterministic (-first +second):\n%s", p.a, p.b, d)
		}
	}
}

func TestDiffEmptyInputs(t *testing.T) {
	e := NewDiffEngine()
	if segs := e.Diff("", ""); len(segs) != 0 {
		t.Fatalf("expected empty sequence, got %+v", segs)
	}
	want := []TextSegment{{Value: "new text", Added: true}}
	if d := cmp.Diff(want, e.Diff("", "new text")); d != "" {
		t.Fatalf("insert-only mismatch:\n%s", d)
	}
	want = []TextSegment{{Value: "old text", Removed: true}}
	if d := cmp.Diff(want, e.Diff("old text", "")); d != "" {
		t.Fatalf("delete-only mismatch:\n%s", d)
	}
}

func TestDiffMarkdownExample(t *testing.T) {
	got := NewDiffEngine().Diff("# Hello *world*\n", "Hello world")
	want := []TextSegment{
		{Value: "# ", Removed: true},
		{Value: "Hello "},
		{Value: "*", Removed: true},
		{Value: "world"},
		{Value: "*\n", Removed: true},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Fatalf("unexpected segments (-want +got):\n%s", d)
	}
}

func TestDiffIsMinimal(t *testing.T) {
	got := NewDiffEngine().Diff("kitten", "sitting")
	st := Summarize(got)
	// LCS of kitten/sitting is "ittn" (4 runes).
	if st.Unchanged != 4 || st.Removed != 2 || st.Added != 3 {
		t.Fatalf("unexpected stats %+v for %+v", st, got)
	}
}

func TestDiffLargeInput(t *testing.T) {
	a := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 200)
	b := strings.ReplaceAll(a, "lazy ", "")
	segs := NewDiffEngine().Diff(a, b)
	if Cleaned(segs) != b || Original(segs) != a {
		t.Fatalf("large diff does not reconstruct inputs")
	}
	if st := Summarize(segs); st.Added != 0 || st.Removed != 5*200 {
		t.Fatalf("unexpected stats %+v", st)
	}
}

func TestSummarizeCountsRunes(t *testing.T) {
	st := Summarize([]TextSegment{{Value: "日本"}, {Value: "語", Removed: true}, {Value: "ab", Added: true}})
	if st.Unchanged != 2 || st.Removed != 1 || st.Added != 2 || !st.Changed() {
		t.Fatalf("unexpected stats %+v", st)
	}
}
