package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misawa-san/waveview/src/session"
	"github.com/misawa-san/waveview/src/wavestore"
)

func testStore(t *testing.T) *wavestore.Store {
	t.Helper()
	s, err := wavestore.New(
		[]float64{0, 1, 2, 3, 4, 5},
		[]wavestore.Series{
			{Name: "clk", Values: []float64{0, 1, 0, 1, 0, 1}},
			{Name: "en", Values: []float64{0, 0, 0, 1, 1, 1}},
		})
	require.NoError(t, err)
	return s
}

func TestCursorInitialState(t *testing.T) {
	c := session.NewCursor(testStore(t))
	_, has := c.TimePosition()
	assert.False(t, has, "no cursor should be set on load")
	lo, hi := c.XRange()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 5.0, hi)
}

func TestCursorClampsToExtent(t *testing.T) {
	c := session.NewCursor(testStore(t))
	c.SetTimePosition(-3)
	tp, _ := c.TimePosition()
	assert.Equal(t, 0.0, tp)
	c.SetTimePosition(99)
	tp, _ = c.TimePosition()
	assert.Equal(t, 5.0, tp)
}

func TestCursorBroadcastKeepsViewsInSync(t *testing.T) {
	c := session.NewCursor(testStore(t))

	type view struct{ lo, hi float64 }
	views := make([]view, 3)
	for i := range views {
		i := i
		c.Subscribe(func(ev session.CursorEvent) {
			views[i] = view{ev.XLo, ev.XHi}
		})
	}

	c.SetXRange(2.0, 8.0)
	for i, v := range views {
		assert.Equal(t, view{2.0, 8.0}, v, "view %d diverged", i)
	}
}

func TestCursorNotifySynchronous(t *testing.T) {
	c := session.NewCursor(testStore(t))
	calls := 0
	c.Subscribe(func(session.CursorEvent) { calls++ })
	c.SetTimePosition(1.2)
	assert.Equal(t, 1, calls, "notification must happen before SetTimePosition returns")
}

func TestCursorUnsubscribe(t *testing.T) {
	c := session.NewCursor(testStore(t))
	calls := 0
	cancel := c.Subscribe(func(session.CursorEvent) { calls++ })
	c.SetXRange(0, 1)
	cancel()
	c.SetXRange(0, 2)
	assert.Equal(t, 1, calls)
}

func TestCursorXRangeNormalizesInvertedBounds(t *testing.T) {
	c := session.NewCursor(testStore(t))
	c.SetXRange(8.0, 2.0)
	lo, hi := c.XRange()
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 8.0, hi)
}

func TestCurrentValueFor(t *testing.T) {
	c := session.NewCursor(testStore(t))
	_, ok := c.CurrentValueFor("clk")
	assert.False(t, ok, "no value before a cursor is set")

	c.SetTimePosition(3.2) // nearest sample is t=3
	v, ok := c.CurrentValueFor("clk")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	v, ok = c.CurrentValueFor("en")
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	_, ok = c.CurrentValueFor("ghost")
	assert.False(t, ok)
}

func TestCursorLockBlocksPointerMotionOnly(t *testing.T) {
	c := session.NewCursor(testStore(t))
	c.PointerMoved(2)
	c.ToggleLock()
	c.PointerMoved(4)
	tp, _ := c.TimePosition()
	assert.Equal(t, 2.0, tp, "locked cursor must ignore pointer motion")

	c.SetTimePosition(4) // explicit set still applies
	tp, _ = c.TimePosition()
	assert.Equal(t, 4.0, tp)

	c.ToggleLock()
	c.PointerMoved(1)
	tp, _ = c.TimePosition()
	assert.Equal(t, 1.0, tp)
}

func TestJumpToEdgeForwardAndBackward(t *testing.T) {
	c := session.NewCursor(testStore(t))
	order := []string{"en"}

	// en changes 0->1 between index 2 and 3.
	c.SetTimePosition(0)
	require.True(t, c.JumpToEdge(1, order))
	tp, _ := c.TimePosition()
	assert.Equal(t, 3.0, tp)

	// No further change forward.
	assert.False(t, c.JumpToEdge(1, order))

	// Backward from t=3 lands on the same edge index? No: the edge at index 3
	// is not < 3, so there is no earlier change for en.
	assert.False(t, c.JumpToEdge(-1, order))
}

func TestJumpToEdgePicksNearestAcrossSeries(t *testing.T) {
	c := session.NewCursor(testStore(t))
	// clk toggles at every index; en changes only at index 3. Nearest edge
	// forward from t=0 is clk's at index 1.
	c.SetTimePosition(0)
	require.True(t, c.JumpToEdge(1, []string{"clk", "en"}))
	tp, _ := c.TimePosition()
	assert.Equal(t, 1.0, tp)

	// Backward from t=5: latest change strictly before index 5.
	c.SetTimePosition(5)
	require.True(t, c.JumpToEdge(-1, []string{"clk", "en"}))
	tp, _ = c.TimePosition()
	assert.Equal(t, 4.0, tp)
}
