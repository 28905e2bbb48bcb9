package revision

import (
	"fmt"
	"regexp"
)

// Span is one piece of the highlighted subject.
type Span struct {
	Text    string `json:"text"`
	IsMatch bool   `json:"isMatch"`
}

// MatchResult is the live-highlight view of a pattern over a subject.
// Joining every Span.Text reproduces the subject.
type MatchResult struct {
	MatchCount int
	Spans      []Span
}

// Matcher compiles find/replace patterns. It holds no state between calls;
// every call compiles its own regexp.
type Matcher struct{}

// Compile validates pattern. Unless caseSensitive is set the pattern is
// matched case-insensitively.
func (Matcher) Compile(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	expr := pattern
	if !caseSensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return re, nil
}

// Valid reports whether pattern compiles.
func (m Matcher) Valid(pattern string, caseSensitive bool) bool {
	_, err := m.Compile(pattern, caseSensitive)
	return err == nil
}

// Match counts global non-overlapping matches and splits subject into
// tagged spans. An empty or invalid pattern yields zero matches and a single
// untagged span. Empty matches are skipped.
func (m Matcher) Match(pattern string, caseSensitive bool, subject string) MatchResult {
	passthrough := MatchResult{Spans: []Span{{Text: subject}}}
	re, err := m.Compile(pattern, caseSensitive)
	if err != nil {
		return passthrough
	}
	var (
		res  MatchResult
		last int
	)
	for _, loc := range re.FindAllStringIndex(subject, -1) {
		if loc[0] == loc[1] {
			continue
		}
		if loc[0] > last {
			res.Spans = append(res.Spans, Span{Text: subject[last:loc[0]]})
		}
		res.Spans = append(res.Spans, Span{Text: subject[loc[0]:loc[1]], IsMatch: true})
		res.MatchCount++
		last = loc[1]
	}
	if res.MatchCount == 0 {
		return passthrough
	}
	if last < len(subject) {
		res.Spans = append(res.Spans, Span{Text: subject[last:]})
	}
	return res
}

// ReplaceAll substitutes every match of pattern in subject. The replacement
// uses regexp template syntax ($1, ${name}).
func (m Matcher) ReplaceAll(pattern, replacement string, caseSensitive bool, subject string) (string, error) {
	re, err := m.Compile(pattern, caseSensitive)
	if err != nil {
		return "", err
	}
	return re.ReplaceAllString(subject, replacement), nil
}
