package revision

import "strings"

// RegexConfig holds the find/replace sub-mode parameters.
type RegexConfig struct {
	Enabled       bool   `json:"enabled" mapstructure:"enabled"`
	Pattern       string `json:"pattern" mapstructure:"pattern"`
	Replacement   string `json:"replacement" mapstructure:"replacement"`
	CaseSensitive bool   `json:"caseSensitive" mapstructure:"case_sensitive"`
}

// CleaningConfig is the set of cleanup toggles sent with every clean.
// All fields are independent. ConvertToLowercase and ConvertToSentenceCase
// may both be set; they are forwarded as-is and the cleaner decides.
type CleaningConfig struct {
	RemoveEmojis          bool `json:"removeEmojis" mapstructure:"remove_emojis"`
	NormalizeQuotes       bool `json:"normalizeQuotes" mapstructure:"normalize_quotes"`
	TrimTrailingSpaces    bool `json:"trimTrailingSpaces" mapstructure:"trim_trailing_spaces"`
	ConvertToLowercase    bool `json:"convertToLowercase" mapstructure:"convert_to_lowercase"`
	ConvertToSentenceCase bool `json:"convertToSentenceCase" mapstructure:"convert_to_sentence_case"`
	RemoveURLs            bool `json:"removeUrls" mapstructure:"remove_urls"`
	RemoveLineNumbers     bool `json:"removeLineNumbers" mapstructure:"remove_line_numbers"`

	Regex RegexConfig `json:"regex" mapstructure:"regex"`
}

// DefaultCleaningConfig returns every toggle off and the regex sub-mode
// disabled and case-insensitive.
func DefaultCleaningConfig() CleaningConfig {
	return CleaningConfig{}
}

// Flag names, in display order. They double as CLI flag names.
const (
	FlagRemoveEmojis          = "remove-emojis"
	FlagNormalizeQuotes       = "normalize-quotes"
	FlagTrimTrailingSpaces    = "trim-trailing-spaces"
	FlagConvertToLowercase    = "lowercase"
	FlagConvertToSentenceCase = "sentence-case"
	FlagRemoveURLs            = "remove-urls"
	FlagRemoveLineNumbers     = "remove-line-numbers"
)

// Flag is one named toggle and its current value.
type Flag struct {
	Name  string
	Label string
	On    bool
}

// Flags lists the boolean toggles in a stable order.
func (c CleaningConfig) Flags() []Flag {
	return []Flag{
		{FlagRemoveEmojis, "Remove emojis", c.RemoveEmojis},
		{FlagNormalizeQuotes, "Normalize quotes", c.NormalizeQuotes},
		{FlagTrimTrailingSpaces, "Trim trailing spaces", c.TrimTrailingSpaces},
		{FlagConvertToLowercase, "Lowercase", c.ConvertToLowercase},
		{FlagConvertToSentenceCase, "Sentence case", c.ConvertToSentenceCase},
		{FlagRemoveURLs, "Remove URLs", c.RemoveURLs},
		{FlagRemoveLineNumbers, "Remove line numbers", c.RemoveLineNumbers},
	}
}

// Set assigns the toggle called name. It reports false for unknown names.
func (c *CleaningConfig) Set(name string, on bool) bool {
	p := c.field(name)
	if p == nil {
		return false
	}
	*p = on
	return true
}

// Toggle flips the toggle called name and reports its new value.
func (c *CleaningConfig) Toggle(name string) (bool, bool) {
	p := c.field(name)
	if p == nil {
		return false, false
	}
	*p = !*p
	return *p, true
}

func (c *CleaningConfig) field(name string) *bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case FlagRemoveEmojis:
		return &c.RemoveEmojis
	case FlagNormalizeQuotes:
		return &c.NormalizeQuotes
	case FlagTrimTrailingSpaces:
		return &c.TrimTrailingSpaces
	case FlagConvertToLowercase:
		return &c.ConvertToLowercase
	case FlagConvertToSentenceCase:
		return &c.ConvertToSentenceCase
	case FlagRemoveURLs:
		return &c.RemoveURLs
	case FlagRemoveLineNumbers:
		return &c.RemoveLineNumbers
	}
	return nil
}

// Request is what a Cleaner receives. Optional fields are omitted from the
// JSON form when unset.
type Request struct {
	Text                  string `json:"text"`
	RemoveEmojis          bool   `json:"removeEmojis,omitempty"`
	NormalizeQuotes       bool   `json:"normalizeQuotes,omitempty"`
	TrimTrailingSpaces    bool   `json:"trimTrailingSpaces,omitempty"`
	ConvertToLowercase    bool   `json:"convertToLowercase,omitempty"`
	ConvertToSentenceCase bool   `json:"convertToSentenceCase,omitempty"`
	RemoveURLs            bool   `json:"removeUrls,omitempty"`
	RemoveLineNumbers     bool   `json:"removeLineNumbers,omitempty"`
	RegexPattern          string `json:"regexPattern,omitempty"`
	RegexReplace          string `json:"regexReplace,omitempty"`
	CaseSensitive         bool   `json:"caseSensitive,omitempty"`
}

// Response is the JSON shape returned by a remote cleaner.
type Response struct {
	CleanedText string `json:"cleanedText"`
}

// CleanRequest builds the request for a normal cleaning pass.
func (c CleaningConfig) CleanRequest(text string) Request {
	return Request{
		Text:                  text,
		RemoveEmojis:          c.RemoveEmojis,
		NormalizeQuotes:       c.NormalizeQuotes,
		TrimTrailingSpaces:    c.TrimTrailingSpaces,
		ConvertToLowercase:    c.ConvertToLowercase,
		ConvertToSentenceCase: c.ConvertToSentenceCase,
		RemoveURLs:            c.RemoveURLs,
		RemoveLineNumbers:     c.RemoveLineNumbers,
	}
}

// ReplaceRequest builds the request for a replace-all pass.
func (c CleaningConfig) ReplaceRequest(text string) Request {
	return Request{
		Text:          text,
		RegexPattern:  c.Regex.Pattern,
		RegexReplace:  c.Regex.Replacement,
		CaseSensitive: c.Regex.CaseSensitive,
	}
}

// HasRegex reports whether the request asks for a regex substitution.
func (r Request) HasRegex() bool { return r.RegexPattern != "" }
