package session

// YLabel is the movable per-plot value readout. While unlocked it tracks the
// cursor; a plain click locks it in place with the value captured at lock
// time. The screen offset from dragging is independent of the lock and lives
// only for the session.
type YLabel struct {
	Plot    string
	Value   float64
	AnchorT float64
	Locked  bool
	OffX    float32
	OffY    float32
}

// Labels owns one YLabel per plot panel.
type Labels struct {
	byPlot map[string]*YLabel
}

// NewLabels returns an empty label set; labels appear on first Track or
// ToggleLock for a plot id.
func NewLabels() *Labels {
	return &Labels{byPlot: make(map[string]*YLabel)}
}

func (l *Labels) get(plot string) *YLabel {
	lb, ok := l.byPlot[plot]
	if !ok {
		lb = &YLabel{Plot: plot}
		l.byPlot[plot] = lb
	}
	return lb
}

// Get returns the label for a plot, or nil if none exists yet.
func (l *Labels) Get(plot string) *YLabel { return l.byPlot[plot] }

// Track updates the label with the value under the cursor. Locked labels
// keep their captured value.
func (l *Labels) Track(plot string, t, y float64) {
	lb := l.get(plot)
	if lb.Locked {
		return
	}
	lb.AnchorT = t
	lb.Value = y
}

// ToggleLock flips the lock and reports the new state.
func (l *Labels) ToggleLock(plot string) bool {
	lb := l.get(plot)
	lb.Locked = !lb.Locked
	return lb.Locked
}

// UnlockAll releases every label so they resume tracking the cursor.
func (l *Labels) UnlockAll() {
	for _, lb := range l.byPlot {
		lb.Locked = false
	}
}

// Drag moves the label's screen offset. Works regardless of lock state.
func (l *Labels) Drag(plot string, dx, dy float32) {
	lb := l.get(plot)
	lb.OffX += dx
	lb.OffY += dy
}
