// Package local is an offline cleaner. It applies the same toggles the
// remote cleaners are asked for, using fixed rules instead of a model.
package local

import (
	"context"
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"textify/internal/revision"
)

// Cleaner implements revision.Cleaner without any network access.
type Cleaner struct {
	html *bluemonday.Policy
}

func New() *Cleaner {
	return &Cleaner{html: bluemonday.StrictPolicy()}
}

// Clean applies req to req.Text. It only fails when ctx is done or the
// regex substitution has an invalid pattern.
func (c *Cleaner) Clean(ctx context.Context, req revision.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	out := c.Apply(req)
	if req.HasRegex() {
		return revision.Matcher{}.ReplaceAll(req.RegexPattern, req.RegexReplace, req.CaseSensitive, out)
	}
	return out, nil
}

// Apply runs the formatting strip and every enabled toggle, in a fixed order.
// When both case flags are set, lowercase runs first and sentence case last.
func (c *Cleaner) Apply(req revision.Request) string {
	text := req.Text
	text = normalize(text)
	if htmlTag.MatchString(text) {
		text = html.UnescapeString(c.html.Sanitize(text))
	}
	text = StripMarkdown(text)
	if req.RemoveURLs {
		text = RemoveURLs(text)
	}
	if req.RemoveLineNumbers {
		text = RemoveLineNumbers(text)
	}
	if req.RemoveEmojis {
		text = RemoveEmojis(text)
	}
	if req.NormalizeQuotes {
		text = NormalizeQuotes(text)
	}
	if req.ConvertToLowercase {
		text = cases.Lower(language.Und).String(text)
	}
	if req.ConvertToSentenceCase {
		text = SentenceCase(text)
	}
	if req.TrimTrailingSpaces {
		text = TrimTrailingSpaces(text)
	}
	return text
}

var htmlTag = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*(\s[^<>]*)?/?>`)

// zero-width and bidi control characters that AI output tends to carry
func isInvisible(r rune) bool {
	switch r {
	case '\u200b', '\u200c', '\u200d', '\u200e', '\u200f', '\ufeff',
		'\u202a', '\u202b', '\u202c', '\u202d', '\u202e', '\u2060':
		return true
	}
	return false
}

// normalize composes to NFC and drops invisible characters. A ZWJ inside an
// emoji sequence is kept so multi-person emoji survive until RemoveEmojis.
func normalize(s string) string {
	t := transform.Chain(norm.NFC, runes.Remove(runes.Predicate(func(r rune) bool {
		return isInvisible(r) && r != '\u200d'
	})))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

var markdownRules = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile("(?s)```[a-zA-Z0-9_-]*\n(.*?)```"), "$1"},
	{regexp.MustCompile("`([^`\n]+)`"), "$1"},
	{regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`), "$1"},
	{regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`), "$1"},
	{regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]+`), ""},
	{regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`), ""},
	{regexp.MustCompile(`(?m)^[ \t]*([-*_][ \t]*){3,}$`), ""},
	{regexp.MustCompile(`(?m)^([ \t]*)[-*+][ \t]+\[[ xX]\][ \t]+`), "$1"},
	{regexp.MustCompile(`(?m)^([ \t]*)[-*+][ \t]+`), "$1"},
	{regexp.MustCompile(`\*\*([^*\n]+)\*\*`), "$1"},
	{regexp.MustCompile(`(^|[^\w])__([^_\n]+)__`), "$1$2"},
	{regexp.MustCompile(`\*([^*\n]+)\*`), "$1"},
	{regexp.MustCompile(`~~([^~\n]+)~~`), "$1"},
	{regexp.MustCompile(`\*+`), ""},
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
}

// StripMarkdown removes markdown markup and stray '#'/'*' symbols while
// keeping the text content and line breaks.
func StripMarkdown(s string) string {
	for _, r := range markdownRules {
		s = r.re.ReplaceAllString(s, r.repl)
	}
	return s
}

var urlPattern = regexp.MustCompile(`(?i)[ \t]?\b(?:https?://|www\.)[^\s<>"]+`)

// RemoveURLs drops http(s) and www. URLs together with one leading space.
func RemoveURLs(s string) string {
	return urlPattern.ReplaceAllString(s, "")
}

var lineNumberPattern = regexp.MustCompile(`(?m)^([ \t]*)\d+[.)][ \t]+`)

// RemoveLineNumbers strips "1. " and "1) " prefixes.
func RemoveLineNumbers(s string) string {
	return lineNumberPattern.ReplaceAllString(s, "$1")
}

var quoteReplacer = strings.NewReplacer(
	"“", `"`, "”", `"`, "„", `"`, "‟", `"`, "«", `"`, "»", `"`, "″", `"`,
	"‘", "'", "’", "'", "‚", "'", "‛", "'", "′", "'",
)

// NormalizeQuotes turns curly quotes into straight ones.
func NormalizeQuotes(s string) string {
	return quoteReplacer.Replace(s)
}

// TrimTrailingSpaces removes trailing blanks from every line.
func TrimTrailingSpaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\r")
	}
	return strings.Join(lines, "\n")
}

// RemoveEmojis drops whole grapheme clusters that start with an emoji, so
// skin tones, flags and ZWJ sequences go in one piece. The space left
// between two words is collapsed.
func RemoveEmojis(s string) string {
	var b strings.Builder
	dropped := false
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		rs := gr.Runes()
		if len(rs) > 0 && isEmoji(rs[0]) {
			dropped = true
			continue
		}
		if dropped && gr.Str() == " " {
			out := b.String()
			if out == "" || strings.HasSuffix(out, " ") || strings.HasSuffix(out, "\n") {
				continue
			}
		}
		dropped = false
		b.WriteString(gr.Str())
	}
	return b.String()
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF: // pictographs, emoticons, transport, flags
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0x2B00 && r <= 0x2BFF && unicode.Is(unicode.So, r):
		return true
	case r == 0x2122 || r == 0x2139 || (r >= 0x2194 && r <= 0x21AA) || r == 0x231A || r == 0x231B ||
		r == 0x2328 || r == 0x23CF || (r >= 0x23E9 && r <= 0x23FA) || r == 0x24C2 || r == 0x3030 ||
		r == 0x303D || r == 0x3297 || r == 0x3299:
		return true
	}
	return false
}

// SentenceCase lowercases s and capitalises the first letter of each
// sentence and each line.
func SentenceCase(s string) string {
	lower := cases.Lower(language.Und).String(s)
	var b strings.Builder
	b.Grow(len(lower))
	capNext := true
	for _, r := range lower {
		switch {
		case capNext && unicode.IsLetter(r):
			b.WriteRune(unicode.ToUpper(r))
			capNext = false
			continue
		case capNext && unicode.IsDigit(r):
			capNext = false
		case r == '.' || r == '!' || r == '?' || r == '\n':
			capNext = true
		}
		b.WriteRune(r)
	}
	return b.String()
}
