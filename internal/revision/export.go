package revision

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExportFormat selects the exported file type. Both formats carry the same
// bytes; only the name and declared content type differ.
type ExportFormat int

const (
	ExportText ExportFormat = iota
	ExportMarkdown
)

// ParseExportFormat accepts "txt", "text", "md" or "markdown".
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "txt", "text":
		return ExportText, nil
	case "md", "markdown":
		return ExportMarkdown, nil
	}
	return 0, fmt.Errorf("unknown export format %q", s)
}

func (f ExportFormat) Filename() string {
	if f == ExportMarkdown {
		return "cleaned-text.md"
	}
	return "cleaned-text.txt"
}

func (f ExportFormat) ContentType() string {
	if f == ExportMarkdown {
		return "text/markdown"
	}
	return "text/plain"
}

// Clipboard is the system clipboard as seen by the session.
type Clipboard interface {
	WriteAll(text string) error
}

// Copy writes the cleaned text to cb.
func (s *Session) Copy(cb Clipboard) error {
	if strings.TrimSpace(s.cleaned) == "" {
		return ErrNothingToCopy
	}
	if err := cb.WriteAll(s.cleaned); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// Export writes the cleaned text into dir and returns the file path.
func (s *Session) Export(dir string, f ExportFormat) (string, error) {
	if s.cleaned == "" {
		return "", ErrNothingToCopy
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	path := filepath.Join(dir, f.Filename())
	if err := os.WriteFile(path, []byte(s.cleaned), 0644); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	s.log.Info("cleaned text exported", "path", path, "content_type", f.ContentType())
	return path, nil
}
