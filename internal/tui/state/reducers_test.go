package state

import "testing"

func TestToggleWrap(t *testing.T) {
	s := UIState{Wrap: false}
	s = ToggleWrap(s)
	if !s.Wrap {
		t.Fatalf("expected Wrap to be true")
	}
}

func TestToggleModeSetsNotice(t *testing.T) {
	s := UIState{Mode: CMD}
	s = ToggleMode(s)
	if s.Mode != INSERT || s.Notice == "" {
		t.Fatalf("expected INSERT mode and notice")
	}
	s = ToggleMode(s)
	if s.Mode != CMD || s.Notice == "" {
		t.Fatalf("expected CMD mode and notice")
	}
}

func TestToggleView(t *testing.T) {
	s := UIState{View: Unified}
	s = ToggleView(s)
	if s.View != SideBySide {
		t.Fatalf("expected SideBySide view")
	}
}

func TestResizeFallbackToUnified(t *testing.T) {
	s := UIState{View: SideBySide, MinCol: 20}
	s = Resize(s, 30, 24) // threshold = 2*20+3 = 43; 30 < 43 => unified
	if s.View != Unified {
		t.Fatalf("expected Unified after resize fallback")
	}
	if s.Notice == "" {
		t.Fatalf("expected fallback notice to be set")
	}
	if s.Height != 24 {
		t.Fatalf("expected height to be recorded")
	}
}

func TestScrollByClampsAtZero(t *testing.T) {
	s := ScrollBy(UIState{}, 5)
	if s.ScrollV != 5 {
		t.Fatalf("expected offset 5, got %d", s.ScrollV)
	}
	s = ScrollBy(s, -10)
	if s.ScrollV != 0 {
		t.Fatalf("expected offset clamped to 0, got %d", s.ScrollV)
	}
}

func TestToggleSyncScroll(t *testing.T) {
	s := UIState{}
	s = ToggleSyncScroll(s)
	if !s.SyncScroll {
		t.Fatalf("expected SyncScroll to be true")
	}
}

func TestFocusRingWraps(t *testing.T) {
	s := OpenRegex(UIState{})
	if s.Focus != FocusPattern {
		t.Fatalf("expected pattern focus on open, got %v", s.Focus)
	}
	for i := 0; i < len(RegexRing); i++ {
		s = NextFocus(s)
	}
	if s.Focus != FocusPattern {
		t.Fatalf("tabbing a full cycle should return to pattern, got %v", s.Focus)
	}
	s = PrevFocus(s)
	if s.Focus != FocusReplaceAll {
		t.Fatalf("shift-tab from first should wrap to last, got %v", s.Focus)
	}
	s = NextFocus(s)
	if s.Focus != FocusPattern {
		t.Fatalf("tab from last should wrap to first, got %v", s.Focus)
	}
}

func TestFocusRingInertWhenClosed(t *testing.T) {
	s := CloseRegex(OpenRegex(UIState{}))
	if s.Focus != FocusInput {
		t.Fatalf("expected input focus after close")
	}
	if NextFocus(s).Focus != FocusInput || PrevFocus(s).Focus != FocusInput {
		t.Fatalf("focus must not move while regex row is closed")
	}
}

func TestTogglePaletteClosesHelp(t *testing.T) {
	s := ToggleHelp(UIState{})
	s = TogglePalette(s)
	if !s.PaletteOpen || s.HelpOpen {
		t.Fatalf("expected palette open and help closed, got %+v", s)
	}
}
