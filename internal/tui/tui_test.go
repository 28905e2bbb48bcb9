package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"textify/internal/logging"
	"textify/internal/revision"
	"textify/internal/tui/state"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) ReadAll() (string, error) { return f.text, f.err }
func (f *fakeClipboard) WriteAll(s string) error {
	if f.err != nil {
		return f.err
	}
	f.text = s
	return nil
}

var stripHeading = revision.CleanerFunc(func(_ context.Context, req revision.Request) (string, error) {
	return strings.TrimPrefix(req.Text, "# "), nil
})

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Clipboard == nil {
		opts.Clipboard = &fakeClipboard{}
	}
	if opts.Cleaner == nil {
		opts.Cleaner = stripHeading
	}
	opts.Log = logging.Discard()
	opts.NoColor = true
	m := New(opts)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// finishOp runs the operation command and feeds its result back.
func finishOp(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		batch = tea.BatchMsg{func() tea.Msg { return msg }}
	}
	for _, c := range batch {
		if c == nil {
			continue
		}
		if done, ok := c().(opDoneMsg); ok {
			m.Update(done)
			return
		}
	}
	t.Fatalf("no operation result in %T", msg)
}

func TestCleanAndUndo(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Update(runes("# Hi"))
	if m.session.Original() != "# Hi" {
		t.Fatalf("original not synced: %q", m.session.Original())
	}

	_, cmd := m.Update(key(tea.KeyCtrlS))
	if !m.ui.Busy {
		t.Fatalf("expected busy after ctrl+s")
	}
	id := m.opID
	if _, again := m.Update(key(tea.KeyCtrlS)); again != nil || m.opID != id {
		t.Fatalf("second trigger while in flight should be a no-op")
	}

	finishOp(t, m, cmd)
	if m.ui.Busy || m.session.Cleaned() != "Hi" || len(m.session.Diff()) == 0 {
		t.Fatalf("unexpected state busy=%v cleaned=%q diff=%v", m.ui.Busy, m.session.Cleaned(), m.session.Diff())
	}

	m.Update(key(tea.KeyCtrlZ))
	if m.session.Original() != "# Hi" || m.session.Cleaned() != "" {
		t.Fatalf("undo did not restore snapshot: %q / %q", m.session.Original(), m.session.Cleaned())
	}
	if m.ui.Notice != "Restored previous state" {
		t.Fatalf("unexpected notice %q", m.ui.Notice)
	}

	m.Update(key(tea.KeyCtrlZ))
	if m.input.Value() != "" || m.ui.Notice != "Cleared" {
		t.Fatalf("second undo should clear, got %q notice %q", m.input.Value(), m.ui.Notice)
	}
}

func TestStaleResultIgnored(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Update(runes("# Hi"))
	m.Update(key(tea.KeyCtrlS))
	m.Update(opDoneMsg{id: "someone-else", text: "nope"})
	if !m.ui.Busy || m.session.Cleaned() != "" {
		t.Fatalf("stale result changed state")
	}
}

func TestFailureKeepsSnapshot(t *testing.T) {
	m := newTestModel(t, Options{Cleaner: revision.CleanerFunc(func(context.Context, revision.Request) (string, error) {
		return "", context.DeadlineExceeded
	})})
	m.Update(runes("text"))
	_, cmd := m.Update(key(tea.KeyCtrlS))
	finishOp(t, m, cmd)
	if m.ui.Busy || !strings.Contains(m.ui.Notice, "deadline") {
		t.Fatalf("expected failure notice, got %q", m.ui.Notice)
	}
	if m.session.History().Len() != 1 {
		t.Fatalf("snapshot should survive a failed clean")
	}
}

func TestCopyAndShare(t *testing.T) {
	clip := &fakeClipboard{}
	m := newTestModel(t, Options{Clipboard: clip, ShareBase: "https://x.test/"})

	m.Update(key(tea.KeyCtrlY))
	if m.ui.Notice != "Nothing to copy" {
		t.Fatalf("unexpected notice %q", m.ui.Notice)
	}

	m.Update(runes("# Hi"))
	_, cmd := m.Update(key(tea.KeyCtrlS))
	finishOp(t, m, cmd)

	m.Update(key(tea.KeyCtrlY))
	if clip.text != "Hi" || m.ui.Notice != "Copied!" {
		t.Fatalf("copy wrote %q, notice %q", clip.text, m.ui.Notice)
	}

	m.Update(key(tea.KeyCtrlL))
	if !strings.HasPrefix(clip.text, "https://x.test/#/s/") {
		t.Fatalf("unexpected share link %q", clip.text)
	}
	text, err := revision.ShareCodec{}.Decode(strings.TrimPrefix(clip.text, "https://x.test/#/s/"))
	if err != nil || text != "Hi" {
		t.Fatalf("share link does not round-trip: %q %v", text, err)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, Options{ExportDir: dir})
	m.Update(runes("# Hi"))
	_, cmd := m.Update(key(tea.KeyCtrlS))
	finishOp(t, m, cmd)

	m.Update(key(tea.KeyCtrlE))
	if !strings.HasPrefix(m.ui.Notice, "Saved ") || !strings.HasSuffix(m.ui.Notice, "cleaned-text.txt") {
		t.Fatalf("unexpected notice %q", m.ui.Notice)
	}
}

func TestRegexFocusTrap(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Update(key(tea.KeyCtrlF))
	if !m.ui.RegexOpen || m.ui.Focus != state.FocusPattern || !m.session.Config().Regex.Enabled {
		t.Fatalf("regex row not opened: %+v", m.ui)
	}

	for range state.RegexRing {
		m.Update(key(tea.KeyTab))
	}
	if m.ui.Focus != state.FocusPattern {
		t.Fatalf("tab should wrap to the pattern field, got %v", m.ui.Focus)
	}
	m.Update(key(tea.KeyShiftTab))
	if m.ui.Focus != state.FocusReplaceAll {
		t.Fatalf("shift+tab should wrap to replace-all, got %v", m.ui.Focus)
	}

	m.Update(key(tea.KeyEsc))
	if m.ui.RegexOpen || m.ui.Focus != state.FocusInput || m.session.Config().Regex.Enabled {
		t.Fatalf("esc should close the regex row: %+v", m.ui)
	}
}

func TestReplaceAll(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Update(runes("banana"))
	m.Update(key(tea.KeyCtrlF))
	m.Update(runes("an"))
	m.Update(key(tea.KeyTab))
	m.Update(runes("AN"))

	rx := m.session.Config().Regex
	if rx.Pattern != "an" || rx.Replacement != "AN" {
		t.Fatalf("regex fields not synced: %+v", rx)
	}
	if got := m.session.Highlight().MatchCount; got != 2 {
		t.Fatalf("expected 2 matches, got %d", got)
	}

	_, cmd := m.Update(key(tea.KeyCtrlR))
	finishOp(t, m, cmd)
	if m.session.Cleaned() != "bANANa" {
		t.Fatalf("got %q", m.session.Cleaned())
	}
}

func TestFragmentLoadedOnce(t *testing.T) {
	link := revision.ShareCodec{}.Link("https://x.test/", "héllo 👋")
	m := newTestModel(t, Options{Fragment: link})
	if m.Init() == nil {
		t.Fatalf("expected init commands")
	}
	m.Update(fragmentMsg(link))
	if m.fragment != "" {
		t.Fatalf("fragment should be cleared after loading")
	}
	if m.input.Value() != "héllo 👋" || m.session.Cleaned() != "héllo 👋" {
		t.Fatalf("shared text not loaded: %q", m.input.Value())
	}

	m.Update(fragmentMsg("#/s/!!!"))
	if m.ui.Notice != "Invalid share link" || m.session.Original() != "héllo 👋" {
		t.Fatalf("bad token should leave state alone, notice %q", m.ui.Notice)
	}
}

func TestPasteArmsAutoClean(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := newTestModel(t, Options{AutoClean: true, Clock: clock})

	m.Update(runes("typed"))
	if m.sched.State() != revision.Idle {
		t.Fatalf("typing should not arm auto-clean")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" pasted"), Paste: true})
	if m.sched.State() != revision.Pending {
		t.Fatalf("paste should arm auto-clean")
	}
	clock.Advance(revision.DefaultAutoCleanDelay)
	select {
	case <-m.autoCh:
	case <-time.After(2 * time.Second):
		t.Fatalf("auto-clean did not fire")
	}

	m.Update(autoCleanMsg{})
	if !m.ui.Busy {
		t.Fatalf("auto-clean should start a clean")
	}
}

func TestTeardownDisarms(t *testing.T) {
	clock := clockwork.NewFakeClock()
	m := newTestModel(t, Options{AutoClean: true, Clock: clock})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Paste: true})
	m.teardown()
	clock.Advance(time.Second)
	select {
	case _, ok := <-m.autoCh:
		if ok {
			t.Fatalf("trigger fired after teardown")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("auto-clean channel not closed by teardown")
	}
	if msg := waitAutoClean(m.autoCh)(); msg != nil {
		t.Fatalf("waiter should exit with nil after teardown, got %T", msg)
	}
	m.notifyAuto()
	m.teardown()
}

func TestPaletteRunsCommands(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Update(key(tea.KeyCtrlK))
	if !m.ui.PaletteOpen {
		t.Fatalf("ctrl+k should open the palette")
	}
	m.Update(runes("wrap"))
	if len(m.paletteMatches) != 1 {
		t.Fatalf("expected one match, got %+v", m.paletteMatches)
	}
	m.Update(key(tea.KeyEnter))
	if m.ui.PaletteOpen || m.ui.Wrap {
		t.Fatalf("toggle wrap did not run: %+v", m.ui)
	}

	m.Update(key(tea.KeyCtrlK))
	m.Update(runes("lowercase"))
	m.Update(key(tea.KeyEnter))
	if !m.session.Config().ConvertToLowercase {
		t.Fatalf("palette flag toggle did not run")
	}
}

func TestNumberKeysToggleFlags(t *testing.T) {
	m := newTestModel(t, Options{})
	m.Update(key(tea.KeyEsc))
	if m.ui.Mode != state.CMD {
		t.Fatalf("esc should enter CMD mode")
	}
	m.Update(runes("1"))
	m.Update(runes("7"))
	c := m.session.Config()
	if !c.RemoveEmojis || !c.RemoveLineNumbers || c.NormalizeQuotes {
		t.Fatalf("unexpected flags %+v", c)
	}
	if m.input.Value() != "" {
		t.Fatalf("CMD keys must not reach the input")
	}
}

func TestViewShowsPanes(t *testing.T) {
	m := newTestModel(t, Options{SideBySide: true})
	m.Update(runes("# Hi"))
	_, cmd := m.Update(key(tea.KeyCtrlS))
	finishOp(t, m, cmd)

	out := m.View()
	for _, want := range []string{"textify", "ORIGINAL", "CLEANED", "[-2]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestScrollClampsAndSyncs(t *testing.T) {
	m := newTestModel(t, Options{SideBySide: true})
	m.Update(runes(strings.Repeat("line\n", 60)))
	_, cmd := m.Update(key(tea.KeyCtrlS))
	finishOp(t, m, cmd)
	m.Update(key(tea.KeyEsc))

	m.Update(runes("K"))
	if m.ui.ScrollV != 0 || m.before.vp.YOffset != 0 {
		t.Fatalf("scrolling up at the top should stay at 0, got %d", m.ui.ScrollV)
	}
	m.Update(runes("J"))
	m.Update(runes("J"))
	if m.ui.ScrollV != 2 || m.before.vp.YOffset != 2 {
		t.Fatalf("expected offset 2, got ui=%d pane=%d", m.ui.ScrollV, m.before.vp.YOffset)
	}
	if m.after.vp.YOffset != 2 {
		t.Fatalf("synced pane did not follow, got %d", m.after.vp.YOffset)
	}
}
