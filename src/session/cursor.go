// Package session holds the interactive state shared across plot panels: the
// synchronized cursor, the delta measurement machine, per-plot value labels,
// the plot order, and the durable view configuration. Everything here is
// mutated only from the UI event dispatch, one event at a time, so the
// package deliberately carries no locks.
package session

import (
	"github.com/misawa-san/waveview/src/wavestore"
)

// CursorEvent describes one state change pushed to subscribers.
type CursorEvent struct {
	TimePosition float64
	HasTime      bool
	XLo, XHi     float64
}

// Cursor is the single shared time position and x-window for every plot.
// Subscribers are invoked synchronously on each change, so all panels agree
// on the range before the next input event is processed.
type Cursor struct {
	store   *wavestore.Store
	timePos float64
	hasTime bool
	xLo     float64
	xHi     float64
	locked  bool
	subs    []func(CursorEvent)
}

// NewCursor builds a cursor over the store with the x-range spanning the full
// data extent and no time position set.
func NewCursor(store *wavestore.Store) *Cursor {
	c := &Cursor{store: store}
	if lo, hi, ok := store.TimeBounds(); ok {
		c.xLo, c.xHi = lo, hi
	}
	return c
}

// Subscribe registers a synchronous listener and returns its remover.
// Listeners hold no reference back to the cursor.
func (c *Cursor) Subscribe(fn func(CursorEvent)) func() {
	c.subs = append(c.subs, fn)
	ix := len(c.subs) - 1
	return func() { c.subs[ix] = nil }
}

func (c *Cursor) notify() {
	ev := CursorEvent{TimePosition: c.timePos, HasTime: c.hasTime, XLo: c.xLo, XHi: c.xHi}
	for _, fn := range c.subs {
		if fn != nil {
			fn(ev)
		}
	}
}

// SetTimePosition clamps t to the data extent, records it and broadcasts.
func (c *Cursor) SetTimePosition(t float64) {
	lo, hi, ok := c.store.TimeBounds()
	if !ok {
		return
	}
	if t < lo {
		t = lo
	}
	if t > hi {
		t = hi
	}
	c.timePos = t
	c.hasTime = true
	c.notify()
}

// ClearTimePosition removes the cursor and broadcasts.
func (c *Cursor) ClearTimePosition() {
	c.hasTime = false
	c.notify()
}

// TimePosition returns the shared time position, ok false when none is set.
func (c *Cursor) TimePosition() (float64, bool) { return c.timePos, c.hasTime }

// SetXRange updates the shared zoom/pan window and broadcasts. Inverted
// bounds are normalized.
func (c *Cursor) SetXRange(lo, hi float64) {
	if hi < lo {
		lo, hi = hi, lo
	}
	c.xLo, c.xHi = lo, hi
	c.notify()
}

// XRange returns the shared x-window.
func (c *Cursor) XRange() (lo, hi float64) { return c.xLo, c.xHi }

// ToggleLock flips the cursor lock. While locked, pointer motion leaves the
// time position alone; explicit SetTimePosition calls still apply.
func (c *Cursor) ToggleLock() { c.locked = !c.locked }

// Locked reports the lock state.
func (c *Cursor) Locked() bool { return c.locked }

// PointerMoved applies a pointer-motion time unless the cursor is locked.
func (c *Cursor) PointerMoved(t float64) {
	if c.locked {
		return
	}
	c.SetTimePosition(t)
}

// CurrentValueFor returns the named series value at the sample nearest the
// cursor, ok false when no cursor is set or the series is unknown.
func (c *Cursor) CurrentValueFor(name string) (float64, bool) {
	if !c.hasTime {
		return 0, false
	}
	ix := c.store.NearestIndex(c.timePos)
	if ix < 0 {
		return 0, false
	}
	return c.store.ValueAt(name, ix)
}

// SnappedTime returns the time of the sample nearest the cursor, ok false
// when no cursor is set.
func (c *Cursor) SnappedTime() (float64, bool) {
	if !c.hasTime {
		return 0, false
	}
	ix := c.store.NearestIndex(c.timePos)
	if ix < 0 {
		return 0, false
	}
	return c.store.TimeAt(ix), true
}

// JumpToEdge moves the cursor to the closest sample where any of the listed
// series changes value, searching forward (dir > 0) or backward (dir < 0)
// from the sample nearest the current cursor. Returns false when no edge
// exists in that direction.
func (c *Cursor) JumpToEdge(dir int, order []string) bool {
	n := c.store.Len()
	if n == 0 || dir == 0 {
		return false
	}
	now := 0
	if c.hasTime {
		now = c.store.NearestIndex(c.timePos)
	}
	best := -1
	for _, name := range order {
		sr := c.store.Series(name)
		if sr == nil {
			continue
		}
		if dir > 0 {
			for i := now + 1; i < n; i++ {
				if sr.Values[i] != sr.Values[i-1] {
					if best < 0 || i < best {
						best = i
					}
					break
				}
			}
		} else {
			for i := now - 1; i >= 1; i-- {
				if sr.Values[i] != sr.Values[i-1] {
					if i > best {
						best = i
					}
					break
				}
			}
		}
	}
	if best < 0 {
		return false
	}
	c.SetTimePosition(c.store.TimeAt(best))
	return true
}
