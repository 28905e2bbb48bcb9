package revision

// Snapshot is the session state saved before a clean or replace.
type Snapshot struct {
	OriginalText string
	CleanedText  string
	Diff         []TextSegment
}

// History keeps at most one snapshot. There is no stack: Push overwrites.
type History struct {
	slot *Snapshot
}

// Push stores s, replacing any previous entry.
func (h *History) Push(s Snapshot) {
	h.slot = &s
}

// Pop returns and clears the stored snapshot.
func (h *History) Pop() (Snapshot, bool) {
	if h.slot == nil {
		return Snapshot{}, false
	}
	s := *h.slot
	h.slot = nil
	return s, true
}

// Len is 0 or 1.
func (h *History) Len() int {
	if h.slot == nil {
		return 0
	}
	return 1
}

// Clear drops the stored snapshot.
func (h *History) Clear() { h.slot = nil }
