package state

// EditorMode represents the editor's current input mode.
type EditorMode int

const (
	CMD EditorMode = iota
	INSERT
)

// DiffMode controls how the diff is rendered.
type DiffMode int

const (
	Unified DiffMode = iota
	SideBySide
)

// Focus names the control that receives key input.
type Focus int

const (
	FocusInput Focus = iota
	FocusPattern
	FocusReplacement
	FocusCase
	FocusReplaceAll
)

// RegexRing is the tab order inside the regex row.
var RegexRing = []Focus{FocusPattern, FocusReplacement, FocusCase, FocusReplaceAll}

// UIState holds cross-widget UI state used by status bar, diff, and editor.
type UIState struct {
	// Mode & View
	Mode EditorMode
	Wrap bool
	View DiffMode

	// Focus & overlays
	Focus       Focus
	RegexOpen   bool
	PaletteOpen bool
	HelpOpen    bool

	// Layout & scrolling
	Width      int
	Height     int
	MinCol     int
	ScrollV    int
	SyncScroll bool

	// Busy is set while a clean or replace is in flight.
	Busy bool

	// Notices and ephemeral messages
	Notice string
}
