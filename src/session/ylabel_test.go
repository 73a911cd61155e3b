package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misawa-san/waveview/src/session"
)

func TestLabelTracksCursorWhileUnlocked(t *testing.T) {
	l := session.NewLabels()
	l.Track("volt", 1.0, 3.3)
	lb := l.Get("volt")
	require.NotNil(t, lb)
	assert.Equal(t, 3.3, lb.Value)
	assert.Equal(t, 1.0, lb.AnchorT)

	l.Track("volt", 2.0, 3.1)
	assert.Equal(t, 3.1, lb.Value)
}

func TestLabelLockFreezesValue(t *testing.T) {
	l := session.NewLabels()
	l.Track("volt", 1.0, 3.3)
	assert.True(t, l.ToggleLock("volt"))

	l.Track("volt", 2.0, 9.9)
	assert.Equal(t, 3.3, l.Get("volt").Value, "locked label keeps the value captured at lock time")

	assert.False(t, l.ToggleLock("volt"))
	l.Track("volt", 3.0, 2.8)
	assert.Equal(t, 2.8, l.Get("volt").Value)
}

func TestLabelDragIndependentOfLock(t *testing.T) {
	l := session.NewLabels()
	l.Track("amp", 0, 0.1)
	l.ToggleLock("amp")
	l.Drag("amp", 12, -4)
	l.Drag("amp", 3, 1)
	lb := l.Get("amp")
	assert.Equal(t, float32(15), lb.OffX)
	assert.Equal(t, float32(-3), lb.OffY)
	assert.Equal(t, 0.1, lb.Value)
}

func TestUnlockAll(t *testing.T) {
	l := session.NewLabels()
	l.ToggleLock("a")
	l.ToggleLock("b")
	l.UnlockAll()
	assert.False(t, l.Get("a").Locked)
	assert.False(t, l.Get("b").Locked)
}
