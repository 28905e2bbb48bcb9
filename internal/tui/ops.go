package tui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"textify/internal/revision"
)

// Clipboard is the system clipboard. Reads are used to open share links.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// SystemClipboard is the OS clipboard via atotto/clipboard.
var SystemClipboard Clipboard = systemClipboard{}

// opDoneMsg carries the collaborator's answer for one operation.
type opDoneMsg struct {
	id   string
	text string
	err  error
}

// autoCleanMsg is posted when the paste debounce expires.
type autoCleanMsg struct{}

// fragmentMsg asks the model to load a share link once at startup.
type fragmentMsg string

func runOp(op revision.Operation, c revision.Cleaner) tea.Cmd {
	return func() tea.Msg {
		text, err := c.Clean(op.Context(), op.Request)
		return opDoneMsg{id: op.ID, text: text, err: err}
	}
}

func waitAutoClean(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		_, ok := <-ch
		if !ok {
			return nil
		}
		return autoCleanMsg{}
	}
}

func loadFragment(s string) tea.Cmd {
	return func() tea.Msg { return fragmentMsg(s) }
}
