package session

// DeltaState is the measurement machine's position in its cycle.
type DeltaState int

const (
	// DeltaIdle: no anchor recorded.
	DeltaIdle DeltaState = iota
	// DeltaArmed: first anchor recorded, waiting for the second point.
	DeltaArmed
	// DeltaComplete: both points recorded; the result is on display. Input
	// behaves as in DeltaIdle — the next Ctrl-click starts a fresh cycle.
	DeltaComplete
)

// Delta is the two-click interval measurement: Ctrl-click once to anchor,
// Ctrl-click again to read Δt/Δy. Plain clicks and cursor motion never touch
// it. Session-only; nothing here is persisted.
type Delta struct {
	state    DeltaState
	anchorT  float64
	anchorY  float64
	dt, dy   float64
	haveLast bool
}

// NewDelta returns an idle measurement machine.
func NewDelta() *Delta { return &Delta{} }

// State returns the current machine state.
func (d *Delta) State() DeltaState { return d.state }

// Anchor returns the recorded first point while Armed.
func (d *Delta) Anchor() (t, y float64, ok bool) {
	if d.state != DeltaArmed {
		return 0, 0, false
	}
	return d.anchorT, d.anchorY, true
}

// CtrlClick feeds one Ctrl-click at time t with the value y under the cursor.
// From Idle or Complete it records a fresh anchor; from Armed it completes
// the measurement. t == anchor time is a valid zero-width interval.
func (d *Delta) CtrlClick(t, y float64) {
	switch d.state {
	case DeltaIdle, DeltaComplete:
		d.anchorT, d.anchorY = t, y
		d.state = DeltaArmed
	case DeltaArmed:
		d.dt = t - d.anchorT
		d.dy = y - d.anchorY
		d.haveLast = true
		d.state = DeltaComplete
	}
}

// Result returns the last completed (Δt, Δy). It stays readable after a new
// cycle is armed, until the next completion or Reset overwrites it.
func (d *Delta) Result() (dt, dy float64, ok bool) {
	if !d.haveLast {
		return 0, 0, false
	}
	return d.dt, d.dy, true
}

// Reset returns to Idle and clears the displayed result.
func (d *Delta) Reset() {
	*d = Delta{}
}
