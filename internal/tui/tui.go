package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"textify/internal/revision"
	"textify/internal/tui/scrollsync"
	"textify/internal/tui/state"
	"textify/internal/tui/util"
	"textify/internal/tui/views/palette"
	"textify/internal/tui/widgets/diff"
	"textify/internal/tui/widgets/editor"
	"textify/internal/tui/widgets/helpoverlay"
	"textify/internal/tui/widgets/statusbar"
)

// Options configures the interactive session.
type Options struct {
	Session *revision.Session
	Cleaner revision.Cleaner

	AutoClean  bool
	AutoDelay  time.Duration
	Clock      clockwork.Clock
	ExportDir  string
	ShareBase  string
	NoColor    bool
	SideBySide bool
	AltScreen  bool

	// Fragment is a share link applied once at startup.
	Fragment string

	Clipboard    Clipboard
	SaveDefaults func(revision.CleaningConfig) error
	Log          *slog.Logger
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	m := New(opts)
	defer m.teardown()
	var popts []tea.ProgramOption
	if opts.AltScreen {
		popts = append(popts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, popts...)
	_, err := p.Run()
	return err
}

const minCol = 20

type pane struct {
	vp viewport.Model
}

func (p *pane) OnScroll(pos int) { p.vp.SetYOffset(pos) }

// Model is the bubbletea model for the editor. It owns the session and
// drives it from the event loop only.
type Model struct {
	opts    Options
	session *revision.Session
	cleaner revision.Cleaner
	sched   *revision.Scheduler
	autoCh  chan struct{}
	autoMu  sync.Mutex // guards autoCh against the timer goroutine
	closed  bool
	auto    bool
	clip    Clipboard
	log     *slog.Logger

	ui     state.UIState
	styles util.Styles
	dv     diff.DiffView
	ed     editor.Editor
	bar    statusbar.StatusBar
	help   helpoverlay.HelpOverlay

	input       textarea.Model
	pattern     textinput.Model
	replacement textinput.Model
	spin        spinner.Model

	before, after, unified *pane
	sync                   *scrollsync.Coordinator

	paletteIn      textinput.Model
	paletteMatches []palette.Command
	paletteCursor  int

	fragment string
	opID     string
}

// New builds the model. Missing options get working defaults.
func New(opts Options) *Model {
	if opts.Session == nil {
		opts.Session = revision.NewSession()
	}
	if opts.Cleaner == nil {
		opts.Cleaner = revision.RegexCleaner{}
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.AutoDelay <= 0 {
		opts.AutoDelay = revision.DefaultAutoCleanDelay
	}
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}

	m := &Model{
		opts:     opts,
		session:  opts.Session,
		cleaner:  opts.Cleaner,
		autoCh:   make(chan struct{}, 1),
		auto:     opts.AutoClean,
		clip:     opts.Clipboard,
		log:      opts.Log.With("component", "tui"),
		fragment: opts.Fragment,
	}
	m.sched = revision.NewScheduler(opts.Clock, opts.AutoDelay, m.notifyAuto)

	m.ui = state.UIState{Mode: state.INSERT, Wrap: true, View: state.Unified, MinCol: minCol, SyncScroll: true}
	if opts.SideBySide {
		m.ui.View = state.SideBySide
	}
	m.styles = util.NewStyles(util.DefaultPalette(), util.NoColor(opts.NoColor))
	m.dv = diff.NewDiffView(m.styles)
	m.ed = editor.NewEditor(m.styles)
	m.bar = statusbar.NewStatusBar()
	m.help = helpoverlay.NewHelpOverlay()

	m.input = textarea.New()
	m.input.Placeholder = "Paste text to clean…"
	m.input.ShowLineNumbers = false
	m.input.CharLimit = 0
	m.input.MaxHeight = 0
	m.input.SetValue(m.session.Original())
	m.input.Focus()

	rx := m.session.Config().Regex
	m.pattern = textinput.New()
	m.pattern.Prompt = "Find: "
	m.pattern.Placeholder = "regex"
	m.pattern.SetValue(rx.Pattern)
	m.replacement = textinput.New()
	m.replacement.Prompt = "Replace: "
	m.replacement.SetValue(rx.Replacement)

	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot))

	m.paletteIn = textinput.New()
	m.paletteIn.Prompt = "> "
	m.paletteIn.Placeholder = "Type a command"

	m.before = &pane{vp: viewport.New(40, 10)}
	m.after = &pane{vp: viewport.New(40, 10)}
	m.unified = &pane{vp: viewport.New(80, 10)}
	m.sync = scrollsync.New(m.before, m.after, m.unified)

	if rx.Enabled {
		m.ui = state.OpenRegex(m.ui)
		m.focusControls()
	}
	m.refreshPanes()
	return m
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink, waitAutoClean(m.autoCh)}
	if m.fragment != "" {
		cmds = append(cmds, loadFragment(m.fragment))
	}
	return tea.Batch(cmds...)
}

// teardown disarms the debounce timer, releases the auto-clean waiter and
// abandons any in-flight call. It is safe to call more than once.
func (m *Model) teardown() {
	m.sched.Stop()
	m.autoMu.Lock()
	if !m.closed {
		m.closed = true
		close(m.autoCh)
	}
	m.autoMu.Unlock()
	m.session.Cancel()
}

// notifyAuto runs on the scheduler's timer goroutine. A timer that fired
// just before teardown may still get here, so the send checks closed.
func (m *Model) notifyAuto() {
	m.autoMu.Lock()
	defer m.autoMu.Unlock()
	if m.closed {
		return
	}
	select {
	case m.autoCh <- struct{}{}:
	default:
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ui = state.Resize(m.ui, msg.Width, msg.Height)
		m.layout()
		return m, nil

	case spinner.TickMsg:
		if !m.ui.Busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		m.refreshPanes()
		return m, cmd

	case autoCleanMsg:
		m.log.Debug("auto-clean fired")
		return m, tea.Batch(m.start(revision.KindClean), waitAutoClean(m.autoCh))

	case opDoneMsg:
		return m, m.finish(msg)

	case fragmentMsg:
		m.fragment = ""
		m.openShare(string(msg))
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	if m.ui.Mode == state.INSERT && m.ui.Focus == state.FocusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	if k == "ctrl+c" {
		return tea.Quit
	}
	if k == "ctrl+k" {
		m.togglePalette()
		return nil
	}
	if m.ui.PaletteOpen {
		return m.handlePaletteKey(msg)
	}
	if m.ui.HelpOpen {
		if k == "?" || k == "esc" || k == "q" {
			m.ui = state.ToggleHelp(m.ui)
		}
		return nil
	}

	switch k {
	case "ctrl+s":
		return m.start(revision.KindClean)
	case "ctrl+r":
		if m.ui.RegexOpen {
			return m.start(revision.KindReplace)
		}
		return nil
	case "ctrl+z":
		m.undo()
		return nil
	case "ctrl+y":
		m.copy()
		return nil
	case "ctrl+e":
		m.export(revision.ExportText)
		return nil
	case "ctrl+l":
		m.share()
		return nil
	case "ctrl+f":
		m.toggleRegex()
		return nil
	}

	if m.ui.RegexOpen && m.ui.Focus != state.FocusInput {
		return m.handleRegexKey(msg)
	}
	if m.ui.Mode == state.INSERT {
		return m.handleInsertKey(msg)
	}
	return m.handleCmdKey(msg)
}

func (m *Model) handleRegexKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.toggleRegex()
		return nil
	case "tab":
		m.ui = state.NextFocus(m.ui)
		return m.focusControls()
	case "shift+tab":
		m.ui = state.PrevFocus(m.ui)
		return m.focusControls()
	}

	var cmd tea.Cmd
	switch m.ui.Focus {
	case state.FocusPattern:
		m.pattern, cmd = m.pattern.Update(msg)
	case state.FocusReplacement:
		m.replacement, cmd = m.replacement.Update(msg)
	case state.FocusCase:
		if k := msg.String(); k == " " || k == "enter" {
			rx := m.session.Config().Regex
			rx.CaseSensitive = !rx.CaseSensitive
			m.session.SetRegex(rx)
		}
	case state.FocusReplaceAll:
		if k := msg.String(); k == " " || k == "enter" {
			return m.start(revision.KindReplace)
		}
	}
	m.syncRegex()
	return cmd
}

func (m *Model) handleInsertKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "esc" {
		m.ui = state.ToggleMode(m.ui)
		m.input.Blur()
		return nil
	}
	if m.ui.Busy {
		m.ui.Notice = "Cleaning in progress"
		return nil
	}
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.syncOriginal(msg.Paste)
	}
	return cmd
}

func (m *Model) handleCmdKey(msg tea.KeyMsg) tea.Cmd {
	switch k := msg.String(); k {
	case "q":
		return tea.Quit
	case "i", "enter":
		m.ui = state.ToggleMode(m.ui)
		return m.input.Focus()
	case "?":
		m.ui = state.ToggleHelp(m.ui)
	case "v":
		m.ui = state.ToggleView(m.ui)
		m.ui = state.Resize(m.ui, m.ui.Width, m.ui.Height)
		m.layout()
	case "w":
		m.ui = state.ToggleWrap(m.ui)
		m.refreshPanes()
	case "S":
		m.toggleSync()
	case "j", "down":
		m.scroll(m.activePane(), 1)
	case "k", "up":
		m.scroll(m.activePane(), -1)
	case "J":
		m.scroll(m.before, 1)
	case "K":
		m.scroll(m.before, -1)
	case "pgdown", "f":
		m.scroll(m.activePane(), m.activePane().vp.Height)
	case "pgup", "b":
		m.scroll(m.activePane(), -m.activePane().vp.Height)
	case "1", "2", "3", "4", "5", "6", "7":
		flags := m.session.Config().Flags()
		if i := int(k[0] - '1'); i < len(flags) {
			m.toggleFlag(flags[i].Name)
		}
	}
	return nil
}

// start begins a clean or replace. A second trigger while one is in flight
// does nothing.
func (m *Model) start(kind revision.Kind) tea.Cmd {
	if err := m.session.SetOriginal(m.input.Value()); err != nil {
		return nil
	}
	op, err := m.session.Begin(context.Background(), kind)
	switch {
	case errors.Is(err, revision.ErrBusy):
		return nil
	case errors.Is(err, revision.ErrEmptyInput):
		m.ui.Notice = "Nothing to clean"
		return nil
	case err != nil:
		m.ui.Notice = err.Error()
		return nil
	}
	m.sched.Cancel()
	m.opID = op.ID
	m.ui.Busy = true
	m.ui.Notice = ""
	m.refreshPanes()
	m.log.Info("operation started", "op_id", op.ID, "kind", kind.String())
	return tea.Batch(m.spin.Tick, runOp(op, m.session.Executor(op, m.cleaner)))
}

func (m *Model) finish(msg opDoneMsg) tea.Cmd {
	err := m.session.Complete(msg.id, msg.text, msg.err)
	m.ui.Busy = m.session.InFlight()
	if msg.id != m.opID {
		return nil
	}
	m.opID = ""
	switch {
	case err == nil:
		m.ui.Notice = "Done"
	case errors.Is(err, context.Canceled):
	default:
		m.log.Error("operation failed", "op_id", msg.id, "error", err)
		m.ui.Notice = err.Error()
	}
	m.refreshPanes()
	return nil
}

func (m *Model) undo() {
	res, err := m.session.Undo()
	if err != nil {
		return
	}
	m.input.SetValue(m.session.Original())
	if res == revision.UndoCleared {
		m.ui.Notice = "Cleared"
	} else {
		m.ui.Notice = "Restored previous state"
	}
	m.refreshPanes()
}

func (m *Model) copy() {
	switch err := m.session.Copy(m.clip); {
	case errors.Is(err, revision.ErrNothingToCopy):
		m.ui.Notice = "Nothing to copy"
	case err != nil:
		m.log.Warn("copy failed", "error", err)
		m.ui.Notice = "Copy failed: " + err.Error()
	default:
		m.ui.Notice = "Copied!"
	}
}

func (m *Model) export(f revision.ExportFormat) {
	path, err := m.session.Export(m.opts.ExportDir, f)
	switch {
	case errors.Is(err, revision.ErrNothingToCopy):
		m.ui.Notice = "Nothing to export"
	case err != nil:
		m.log.Warn("export failed", "error", err)
		m.ui.Notice = err.Error()
	default:
		m.ui.Notice = "Saved " + path
	}
}

func (m *Model) share() {
	link, err := m.session.ShareLink(m.opts.ShareBase)
	if err != nil {
		m.ui.Notice = "Nothing to share"
		return
	}
	if err := m.clip.WriteAll(link); err != nil {
		m.log.Warn("copy share link failed", "error", err)
		m.ui.Notice = link
		return
	}
	m.ui.Notice = "Share link copied"
}

func (m *Model) openShare(link string) {
	loaded, err := m.session.LoadShared(strings.TrimSpace(link))
	switch {
	case errors.Is(err, revision.ErrBusy):
		return
	case err != nil:
		m.log.Warn("open share link failed", "error", err)
		m.ui.Notice = "Invalid share link"
		return
	case !loaded:
		m.ui.Notice = "Not a share link"
		return
	}
	m.input.SetValue(m.session.Original())
	m.ui.Notice = "Shared text loaded"
	m.refreshPanes()
}

func (m *Model) toggleFlag(name string) {
	on, ok := m.session.ToggleFlag(name)
	if !ok {
		return
	}
	m.ui.Notice = fmt.Sprintf("%s %s", name, onOff(on))
}

func (m *Model) toggleRegex() {
	rx := m.session.Config().Regex
	if m.ui.RegexOpen {
		m.ui = state.CloseRegex(m.ui)
		rx.Enabled = false
		m.session.SetRegex(rx)
		m.pattern.Blur()
		m.replacement.Blur()
		m.input.Focus()
	} else {
		m.ui = state.OpenRegex(m.ui)
		rx.Enabled = true
		m.session.SetRegex(rx)
		m.input.Blur()
		m.focusControls()
	}
	m.layout()
}

// focusControls moves the text cursor to whichever regex field has focus.
func (m *Model) focusControls() tea.Cmd {
	m.pattern.Blur()
	m.replacement.Blur()
	switch m.ui.Focus {
	case state.FocusPattern:
		return m.pattern.Focus()
	case state.FocusReplacement:
		return m.replacement.Focus()
	}
	return nil
}

func (m *Model) toggleSync() {
	m.ui = state.ToggleSyncScroll(m.ui)
	m.sync.SetEnabled(m.ui.SyncScroll)
}

func (m *Model) syncOriginal(pasted bool) {
	if err := m.session.SetOriginal(m.input.Value()); err != nil {
		return
	}
	if pasted && m.auto && strings.TrimSpace(m.input.Value()) != "" {
		m.sched.Paste()
	}
	m.refreshPanes()
}

func (m *Model) syncRegex() {
	rx := m.session.Config().Regex
	rx.Pattern = m.pattern.Value()
	rx.Replacement = m.replacement.Value()
	m.session.SetRegex(rx)
	m.refreshPanes()
}

func (m *Model) activePane() *pane {
	if m.ui.View == state.Unified {
		return m.unified
	}
	return m.after
}

func (m *Model) scroll(p *pane, delta int) {
	m.ui.ScrollV = p.vp.YOffset
	m.ui = state.ScrollBy(m.ui, delta)
	p.vp.SetYOffset(m.ui.ScrollV)
	// the viewport clamps at the bottom
	m.ui.ScrollV = p.vp.YOffset
	m.sync.Scrolled(p, p.vp.YOffset)
}
