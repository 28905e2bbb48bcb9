package state

// ToggleWrap flips the Wrap flag and returns a new state copy.
func ToggleWrap(s UIState) UIState {
	s.Wrap = !s.Wrap
	return s
}

// ToggleMode switches between CMD and INSERT modes and sets a brief notice.
func ToggleMode(s UIState) UIState {
	if s.Mode == CMD {
		s.Mode = INSERT
		s.Notice = "[INSERT]"
	} else {
		s.Mode = CMD
		s.Notice = "[CMD]"
	}
	return s
}

// ToggleView switches between Unified and SideBySide diff views.
func ToggleView(s UIState) UIState {
	if s.View == Unified {
		s.View = SideBySide
	} else {
		s.View = Unified
	}
	return s
}

// Resize updates the terminal size and sets a fallback notice if too narrow
// for side-by-side. Threshold: 2*MinCol plus 3 chars for the separator.
func Resize(s UIState, width, height int) UIState {
	s.Width = width
	s.Height = height
	threshold := 2*s.MinCol + 3
	if s.View == SideBySide && s.Width < threshold {
		s.View = Unified
		s.Notice = "Narrow width: using unified view"
	}
	return s
}

// ScrollBy moves the vertical offset, never below zero.
func ScrollBy(s UIState, delta int) UIState {
	s.ScrollV += delta
	if s.ScrollV < 0 {
		s.ScrollV = 0
	}
	return s
}

// ToggleSyncScroll toggles synchronized pane scrolling.
func ToggleSyncScroll(s UIState) UIState {
	s.SyncScroll = !s.SyncScroll
	return s
}

// OpenRegex shows the regex row and focuses the pattern field.
func OpenRegex(s UIState) UIState {
	s.RegexOpen = true
	s.Focus = FocusPattern
	s.Mode = INSERT
	return s
}

// CloseRegex hides the regex row and returns focus to the input.
func CloseRegex(s UIState) UIState {
	s.RegexOpen = false
	s.Focus = FocusInput
	return s
}

// NextFocus moves forward through RegexRing, wrapping from last to first.
// It does nothing while the regex row is closed.
func NextFocus(s UIState) UIState {
	return stepFocus(s, 1)
}

// PrevFocus moves backward through RegexRing, wrapping from first to last.
func PrevFocus(s UIState) UIState {
	return stepFocus(s, -1)
}

func stepFocus(s UIState, dir int) UIState {
	if !s.RegexOpen {
		return s
	}
	n := len(RegexRing)
	idx := -1
	for i, f := range RegexRing {
		if f == s.Focus {
			idx = i
			break
		}
	}
	if idx < 0 {
		// focus escaped the ring; pull it back to an edge
		if dir > 0 {
			s.Focus = RegexRing[0]
		} else {
			s.Focus = RegexRing[n-1]
		}
		return s
	}
	s.Focus = RegexRing[(idx+dir+n)%n]
	return s
}

// TogglePalette opens or closes the command palette. Help closes with it.
func TogglePalette(s UIState) UIState {
	s.PaletteOpen = !s.PaletteOpen
	if s.PaletteOpen {
		s.HelpOpen = false
	}
	return s
}

// ToggleHelp opens or closes the key help overlay.
func ToggleHelp(s UIState) UIState {
	s.HelpOpen = !s.HelpOpen
	return s
}
