// Package scrollsync keeps two or more panes at the same vertical position
// without the panes knowing about each other.
package scrollsync

// Pane is anything that can be told to move to a scroll position.
type Pane interface {
	OnScroll(pos int)
}

// Coordinator forwards a scroll from one pane to the others.
type Coordinator struct {
	panes   []Pane
	enabled bool
	pos     int
}

func New(panes ...Pane) *Coordinator {
	return &Coordinator{panes: panes, enabled: true}
}

// Add registers another pane.
func (c *Coordinator) Add(p Pane) { c.panes = append(c.panes, p) }

// SetEnabled turns forwarding on or off. Re-enabling snaps every pane to
// the last known position.
func (c *Coordinator) SetEnabled(on bool) {
	c.enabled = on
	if on {
		c.broadcast(nil, c.pos)
	}
}

func (c *Coordinator) Enabled() bool { return c.enabled }

// Position is the last position reported by any pane.
func (c *Coordinator) Position() int { return c.pos }

// Scrolled records that src moved to pos and, when enabled, moves every
// other pane there too. src is never called back.
func (c *Coordinator) Scrolled(src Pane, pos int) {
	if pos < 0 {
		pos = 0
	}
	c.pos = pos
	if c.enabled {
		c.broadcast(src, pos)
	}
}

func (c *Coordinator) broadcast(src Pane, pos int) {
	for _, p := range c.panes {
		if p == src {
			continue
		}
		p.OnScroll(pos)
	}
}
