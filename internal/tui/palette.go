package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"textify/internal/revision"
	"textify/internal/tui/state"
	"textify/internal/tui/views/palette"
)

const flagPrefix = "flag:"

// paletteCommands is the fixed list plus one entry per cleanup toggle.
func (m *Model) paletteCommands() []palette.Command {
	cmds := palette.Commands()
	for i, f := range m.session.Config().Flags() {
		v := "off"
		if f.On {
			v = "on"
		}
		cmds = append(cmds, palette.Command{
			ID:       palette.ID(flagPrefix + f.Name),
			Title:    fmt.Sprintf("Toggle %s (%s)", f.Label, v),
			Shortcut: fmt.Sprintf("%d", i+1),
		})
	}
	return cmds
}

func (m *Model) togglePalette() {
	m.ui = state.TogglePalette(m.ui)
	if !m.ui.PaletteOpen {
		m.paletteIn.Blur()
		return
	}
	m.paletteIn.SetValue("")
	m.paletteIn.Focus()
	m.refreshPaletteMatches()
}

func (m *Model) refreshPaletteMatches() {
	m.paletteMatches = palette.Filter(m.paletteCommands(), m.paletteIn.Value())
	if m.paletteCursor >= len(m.paletteMatches) {
		m.paletteCursor = len(m.paletteMatches) - 1
	}
	if m.paletteCursor < 0 {
		m.paletteCursor = 0
	}
}

func (m *Model) handlePaletteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.togglePalette()
		return nil
	case "up", "ctrl+p":
		if m.paletteCursor > 0 {
			m.paletteCursor--
		}
		return nil
	case "down", "ctrl+n":
		if m.paletteCursor < len(m.paletteMatches)-1 {
			m.paletteCursor++
		}
		return nil
	case "enter":
		if len(m.paletteMatches) == 0 {
			return nil
		}
		sel := m.paletteMatches[m.paletteCursor]
		m.togglePalette()
		return m.runCommand(sel.ID)
	}
	var cmd tea.Cmd
	m.paletteIn, cmd = m.paletteIn.Update(msg)
	m.refreshPaletteMatches()
	return cmd
}

func (m *Model) runCommand(id palette.ID) tea.Cmd {
	if name, ok := strings.CutPrefix(string(id), flagPrefix); ok {
		m.toggleFlag(name)
		return nil
	}
	switch id {
	case palette.Clean:
		return m.start(revision.KindClean)
	case palette.ReplaceAll:
		if !m.ui.RegexOpen {
			m.toggleRegex()
		}
		return m.start(revision.KindReplace)
	case palette.Undo:
		m.undo()
	case palette.Copy:
		m.copy()
	case palette.ExportText:
		m.export(revision.ExportText)
	case palette.ExportMD:
		m.export(revision.ExportMarkdown)
	case palette.ShareLink:
		m.share()
	case palette.OpenShare:
		link, err := m.clip.ReadAll()
		if err != nil {
			m.ui.Notice = "Clipboard unavailable"
			return nil
		}
		m.openShare(link)
	case palette.ToggleRegex:
		m.toggleRegex()
	case palette.ToggleView:
		m.ui = state.ToggleView(m.ui)
		m.ui = state.Resize(m.ui, m.ui.Width, m.ui.Height)
		m.layout()
	case palette.ToggleWrap:
		m.ui = state.ToggleWrap(m.ui)
		m.refreshPanes()
	case palette.ToggleSync:
		m.toggleSync()
	case palette.ToggleAuto:
		m.auto = !m.auto
		if !m.auto {
			m.sched.Cancel()
		}
		m.ui.Notice = fmt.Sprintf("Auto-clean %s", onOff(m.auto))
	case palette.SaveDefaults:
		m.saveDefaults()
	case palette.Help:
		m.ui = state.ToggleHelp(m.ui)
	case palette.Quit:
		return tea.Quit
	}
	return nil
}

func (m *Model) saveDefaults() {
	if m.opts.SaveDefaults == nil {
		m.ui.Notice = "Saving defaults is not available"
		return
	}
	cfg := m.session.Config()
	if err := m.opts.SaveDefaults(cfg); err != nil {
		m.log.Warn("save defaults failed", "error", err)
		m.ui.Notice = "Save failed: " + err.Error()
		return
	}
	m.ui.Notice = "Defaults saved"
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
