// Package gemini cleans text with a Gemini model through the Google GenAI SDK.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
	"time"

	"google.golang.org/genai"

	"textify/internal/revision"
)

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gemini-2.0-flash"

// Config holds the knobs the cleaner needs.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("gemini: empty response")

// generator is the subset of *genai.Models the cleaner calls.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Cleaner implements revision.Cleaner.
type Cleaner struct {
	models  generator
	model   string
	timeout time.Duration
	base    *genai.GenerateContentConfig
	log     *slog.Logger
}

// New creates the SDK client. The API key is required.
func New(ctx context.Context, cfg Config, log *slog.Logger) (*Cleaner, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return newCleaner(client.Models, cfg, log), nil
}

func newCleaner(models generator, cfg Config, log *slog.Logger) *Cleaner {
	if log == nil {
		log = slog.Default()
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	temp := cfg.Temperature
	return &Cleaner{
		models:  models,
		model:   model,
		timeout: cfg.Timeout,
		base: &genai.GenerateContentConfig{
			Temperature:       &temp,
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			ResponseSchema:    responseSchema,
		},
		log: log.With("component", "gemini_cleaner", "model", model),
	}
}

const systemInstruction = "You clean up text produced by AI assistants. " +
	"Return only the cleaned text in the cleanedText field. Never add commentary."

var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"cleanedText": {Type: genai.TypeString, Description: "The full cleaned text."},
	},
	Required: []string{"cleanedText"},
}

var promptTemplate = template.Must(template.New("prompt").Parse(`Strip formatting characters such as # and * and any other symbols that are markup rather than content. Keep the line breaks the author intended.
{{- if .RemoveEmojis}}
Remove every emoji.
{{- end}}
{{- if .NormalizeQuotes}}
Replace curly quotes and apostrophes with straight ones.
{{- end}}
{{- if .TrimTrailingSpaces}}
Remove trailing whitespace at the end of each line.
{{- end}}
{{- if .ConvertToLowercase}}
Convert all text to lowercase.
{{- end}}
{{- if .ConvertToSentenceCase}}
Use sentence case: capitalise only the first letter of each sentence.
{{- end}}
{{- if .RemoveURLs}}
Remove every URL, including bare www. addresses.
{{- end}}
{{- if .RemoveLineNumbers}}
Remove line numbers such as "1. " or "1) " at the start of lines.
{{- end}}
{{- if .RegexPattern}}
Then replace every match of the regular expression {{printf "%q" .RegexPattern}}{{if not .CaseSensitive}} (case-insensitive){{end}} with {{printf "%q" .RegexReplace}}.
{{- end}}

Text:
{{.Text}}`))

// Prompt renders the user prompt for req.
func Prompt(req revision.Request) (string, error) {
	var b strings.Builder
	if err := promptTemplate.Execute(&b, req); err != nil {
		return "", fmt.Errorf("gemini: render prompt: %w", err)
	}
	return b.String(), nil
}

// Clean sends req to the model and returns the cleanedText field.
func (c *Cleaner) Clean(ctx context.Context, req revision.Request) (string, error) {
	prompt, err := Prompt(req)
	if err != nil {
		return "", err
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}, c.base)
	if err != nil {
		c.log.ErrorContext(ctx, "generate failed", "error", err)
		return "", fmt.Errorf("gemini: generate: %w", err)
	}

	raw, err := responseText(resp)
	if err != nil {
		return "", err
	}
	var out revision.Response
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	c.log.DebugContext(ctx, "cleaned", "chars", len(req.Text), "duration_ms", time.Since(start).Milliseconds())
	return out.CleanedText, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrEmptyResponse
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		return "", fmt.Errorf("gemini: blocked: %s", resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil {
			continue
		}
		b.WriteString(part.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
