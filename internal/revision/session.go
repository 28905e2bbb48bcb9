package revision

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Cleaner is the external collaborator that turns text into cleaned text.
// It either returns the full result or fails; there are no partial results.
type Cleaner interface {
	Clean(ctx context.Context, req Request) (string, error)
}

// CleanerFunc adapts a function to Cleaner.
type CleanerFunc func(ctx context.Context, req Request) (string, error)

func (f CleanerFunc) Clean(ctx context.Context, req Request) (string, error) { return f(ctx, req) }

// RegexCleaner performs the replace-all substitution locally.
type RegexCleaner struct{}

func (RegexCleaner) Clean(_ context.Context, req Request) (string, error) {
	return Matcher{}.ReplaceAll(req.RegexPattern, req.RegexReplace, req.CaseSensitive, req.Text)
}

// Kind distinguishes a cleaning pass from a replace-all pass.
type Kind int

const (
	KindClean Kind = iota
	KindReplace
)

func (k Kind) String() string {
	if k == KindReplace {
		return "replace"
	}
	return "clean"
}

// Operation is an accepted clean or replace waiting for its result.
type Operation struct {
	ID      string
	Kind    Kind
	Request Request
	ctx     context.Context
}

// Context is cancelled when the session cancels the operation.
func (op Operation) Context() context.Context {
	if op.ctx == nil {
		return context.Background()
	}
	return op.ctx
}

type inflight struct {
	id      string
	kind    Kind
	started time.Time
	cancel  context.CancelFunc
}

// UndoResult tells the caller which undo tier ran.
type UndoResult int

const (
	// UndoRestored means the saved snapshot was restored.
	UndoRestored UndoResult = iota
	// UndoCleared means there was nothing saved and the workspace was wiped.
	UndoCleared
)

// Session orchestrates one editing session: it owns the config, the text
// buffers, the current diff and the undo slot. It is not safe for concurrent
// use; drive it from a single event loop.
type Session struct {
	config   CleaningConfig
	original string
	cleaned  string
	diff     []TextSegment

	history History
	engine  *DiffEngine
	matcher Matcher
	codec   ShareCodec
	pending *inflight

	log   *slog.Logger
	newID func() string
	now   func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithConfig seeds the cleaning config.
func WithConfig(c CleaningConfig) Option {
	return func(s *Session) { s.config = c }
}

// WithIDGenerator replaces the operation ID source.
func WithIDGenerator(f func() string) Option {
	return func(s *Session) {
		if f != nil {
			s.newID = f
		}
	}
}

// NewSession returns an empty session with default config.
func NewSession(opts ...Option) *Session {
	s := &Session{
		config: DefaultCleaningConfig(),
		engine: NewDiffEngine(),
		log:    slog.Default(),
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Session) Config() CleaningConfig { return s.config }

// SetConfig replaces the cleaning config.
func (s *Session) SetConfig(c CleaningConfig) { s.config = c }

// ToggleFlag flips one named toggle; ok is false for unknown names.
func (s *Session) ToggleFlag(name string) (on, ok bool) {
	return s.config.Toggle(name)
}

// SetRegex replaces the find/replace sub-mode parameters.
func (s *Session) SetRegex(r RegexConfig) { s.config.Regex = r }

func (s *Session) Original() string { return s.original }
func (s *Session) Cleaned() string  { return s.cleaned }

// Diff returns the current segments. Callers must not modify them.
func (s *Session) Diff() []TextSegment { return s.diff }

func (s *Session) InFlight() bool { return s.pending != nil }

// History exposes the undo slot for inspection.
func (s *Session) History() *History { return &s.history }

// SetOriginal replaces the original text. The original is frozen while an
// operation is in flight.
func (s *Session) SetOriginal(text string) error {
	if s.pending != nil {
		return ErrBusy
	}
	s.original = strings.ToValidUTF8(text, "\uFFFD")
	return nil
}

// Begin validates and starts an operation: it snapshots the current state
// into the undo slot, clears the cleaned text and diff, and marks the
// session in flight. ErrBusy and ErrEmptyInput leave the session untouched.
func (s *Session) Begin(ctx context.Context, kind Kind) (Operation, error) {
	if s.pending != nil {
		return Operation{}, ErrBusy
	}
	if strings.TrimSpace(s.original) == "" {
		return Operation{}, ErrEmptyInput
	}
	var req Request
	switch kind {
	case KindReplace:
		if !s.matcher.Valid(s.config.Regex.Pattern, s.config.Regex.CaseSensitive) {
			return Operation{}, fmt.Errorf("%w: %q", ErrInvalidPattern, s.config.Regex.Pattern)
		}
		req = s.config.ReplaceRequest(s.original)
	default:
		req = s.config.CleanRequest(s.original)
	}

	s.history.Push(s.snapshot())
	s.cleaned = ""
	s.diff = nil

	if ctx == nil {
		ctx = context.Background()
	}
	opCtx, cancel := context.WithCancel(ctx)
	id := s.newID()
	s.pending = &inflight{id: id, kind: kind, started: s.now(), cancel: cancel}
	s.log.Debug("operation started", "op_id", id, "kind", kind.String(), "chars", len([]rune(s.original)))
	return Operation{ID: id, Kind: kind, Request: req, ctx: opCtx}, nil
}

// Executor picks the cleaner for op: replace-all runs locally, everything
// else goes to external.
func (s *Session) Executor(op Operation, external Cleaner) Cleaner {
	if op.Kind == KindReplace {
		return RegexCleaner{}
	}
	return external
}

// Complete records the result of the operation with the given ID. Results
// for anything other than the in-flight operation are dropped. On failure
// the cleaned text and diff stay empty and err is returned for display; the
// snapshot taken by Begin remains available to Undo.
func (s *Session) Complete(id, cleaned string, err error) error {
	p := s.pending
	if p == nil || p.id != id {
		s.log.Debug("stale result ignored", "op_id", id)
		return nil
	}
	p.cancel()
	s.pending = nil
	elapsed := s.now().Sub(p.started)

	if err != nil {
		s.cleaned = ""
		s.diff = nil
		s.log.Warn("operation failed", "op_id", id, "kind", p.kind.String(), "duration_ms", elapsed.Milliseconds(), "error", err)
		return fmt.Errorf("%s failed: %w", p.kind, err)
	}
	s.cleaned = strings.ToValidUTF8(cleaned, "\uFFFD")
	s.diff = s.engine.Diff(s.original, s.cleaned)
	st := Summarize(s.diff)
	s.log.Info("operation finished", "op_id", id, "kind", p.kind.String(),
		"duration_ms", elapsed.Milliseconds(), "added", st.Added, "removed", st.Removed)
	return nil
}

// Run executes a whole operation synchronously with cleaner.
func (s *Session) Run(ctx context.Context, cleaner Cleaner, kind Kind) error {
	op, err := s.Begin(ctx, kind)
	if err != nil {
		return err
	}
	text, cerr := s.Executor(op, cleaner).Clean(op.Context(), op.Request)
	return s.Complete(op.ID, text, cerr)
}

// Cancel aborts the in-flight operation, if any. Its result, should it
// still arrive, is ignored.
func (s *Session) Cancel() {
	if s.pending == nil {
		return
	}
	s.pending.cancel()
	s.log.Debug("operation cancelled", "op_id", s.pending.id)
	s.pending = nil
}

// Undo restores the saved snapshot. With nothing saved it clears the
// original text, the cleaned text and the diff.
func (s *Session) Undo() (UndoResult, error) {
	if s.pending != nil {
		return 0, ErrBusy
	}
	if snap, ok := s.history.Pop(); ok {
		s.original = snap.OriginalText
		s.cleaned = snap.CleanedText
		s.diff = snap.Diff
		return UndoRestored, nil
	}
	s.original = ""
	s.cleaned = ""
	s.diff = nil
	return UndoCleared, nil
}

// Highlight runs the find pattern over the original text. With the regex
// sub-mode off the whole text comes back as one plain span.
func (s *Session) Highlight() MatchResult {
	r := s.config.Regex
	if !r.Enabled {
		return MatchResult{Spans: []Span{{Text: s.original}}}
	}
	return s.matcher.Match(r.Pattern, r.CaseSensitive, s.original)
}

// ShareLink builds a link embedding the cleaned text.
func (s *Session) ShareLink(base string) (string, error) {
	if s.cleaned == "" {
		return "", ErrNothingToCopy
	}
	return s.codec.Link(base, s.cleaned), nil
}

// LoadShared applies a share fragment (or a URL carrying one). loaded is
// false when the input is not a share link. On decode failure nothing
// changes.
func (s *Session) LoadShared(fragment string) (loaded bool, err error) {
	token, ok := s.codec.ParseFragment(fragment)
	if !ok {
		return false, nil
	}
	if s.pending != nil {
		return false, ErrBusy
	}
	text, err := s.codec.Decode(token)
	if err != nil {
		return false, err
	}
	s.original = text
	s.cleaned = text
	s.diff = []TextSegment{}
	s.log.Info("shared text loaded", "chars", len([]rune(text)))
	return true, nil
}

func (s *Session) snapshot() Snapshot {
	return Snapshot{OriginalText: s.original, CleanedText: s.cleaned, Diff: s.diff}
}
