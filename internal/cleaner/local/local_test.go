package local

import (
	"context"
	"testing"

	"textify/internal/revision"
)

func TestApply(t *testing.T) {
	c := New()
	cases := []struct {
		name string
		req  revision.Request
		want string
	}{
		{"markdown", revision.Request{Text: "# Hello *world*\n"}, "Hello world\n"},
		{"list and bold", revision.Request{Text: "- **one**\n- two"}, "one\ntwo"},
		{"links", revision.Request{Text: "see [docs](https://x.dev) and `code`"}, "see docs and code"},
		{"html", revision.Request{Text: "<p>Tom &amp; Jerry</p>"}, "Tom & Jerry"},
		{"invisible", revision.Request{Text: "a\u200bb\ufeff"}, "ab"},
		{"urls", revision.Request{Text: "Visit https://example.com/x now", RemoveURLs: true}, "Visit now"},
		{"urls off", revision.Request{Text: "Visit www.example.com"}, "Visit www.example.com"},
		{"line numbers", revision.Request{Text: "1. a\n2) b\n  3. c", RemoveLineNumbers: true}, "a\nb\n  c"},
		{"quotes", revision.Request{Text: "“hi” ‘x’", NormalizeQuotes: true}, `"hi" 'x'`},
		{"trailing", revision.Request{Text: "a  \nb\t\n", TrimTrailingSpaces: true}, "a\nb\n"},
		{"lowercase", revision.Request{Text: "HeLLo ÉCOLE", ConvertToLowercase: true}, "hello école"},
		{
			"sentence case",
			revision.Request{Text: "HELLO WORLD. this is fine! ok?\nnext", ConvertToSentenceCase: true},
			"Hello world. This is fine! Ok?\nNext",
		},
		{
			"both case flags",
			revision.Request{Text: "ONE. TWO", ConvertToLowercase: true, ConvertToSentenceCase: true},
			"One. Two",
		},
		{
			"emoji and trim",
			revision.Request{Text: "party 🎉 time 👍🏽", RemoveEmojis: true, TrimTrailingSpaces: true},
			"party time",
		},
	}
	for _, tc := range cases {
		if got := c.Apply(tc.req); got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestRemoveEmojisKeepsClustersWhole(t *testing.T) {
	cases := map[string]string{
		"🇺🇸 flag":       "flag",
		"👩‍💻ok":         "ok",
		"a ✅ b":         "a b",
		"no emoji here": "no emoji here",
		"日本語":           "日本語",
	}
	for in, want := range cases {
		if got := RemoveEmojis(in); got != want {
			t.Fatalf("RemoveEmojis(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanAppliesRegex(t *testing.T) {
	c := New()
	out, err := c.Clean(context.Background(), revision.Request{
		Text:         "the cat sat",
		RegexPattern: "CAT",
		RegexReplace: "dog",
	})
	if err != nil {
		t.Fatalf("Clean: %v", err)
	}
	if out != "the dog sat" {
		t.Fatalf("got %q", out)
	}
}

func TestCleanHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().Clean(ctx, revision.Request{Text: "x"}); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
