package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/misawa-san/waveview/src/session"
)

func TestMoveToFront(t *testing.T) {
	p := session.PlotOrder{"A", "B", "C", "D"}
	assert.True(t, p.MoveTo("C", 0))
	assert.Equal(t, session.PlotOrder{"C", "A", "B", "D"}, p)
}

func TestMoveToBack(t *testing.T) {
	p := session.PlotOrder{"A", "B", "C", "D"}
	assert.True(t, p.MoveTo("A", 3))
	assert.Equal(t, session.PlotOrder{"B", "C", "D", "A"}, p)
}

func TestMoveToMiddlePreservesRelativeOrder(t *testing.T) {
	p := session.PlotOrder{"A", "B", "C", "D", "E"}
	assert.True(t, p.MoveTo("E", 1))
	assert.Equal(t, session.PlotOrder{"A", "E", "B", "C", "D"}, p)
}

func TestMoveToSamePositionIsNoop(t *testing.T) {
	p := session.PlotOrder{"A", "B", "C"}
	assert.False(t, p.MoveTo("B", 1))
	assert.Equal(t, session.PlotOrder{"A", "B", "C"}, p)
}

func TestMoveToClampsPosition(t *testing.T) {
	p := session.PlotOrder{"A", "B", "C"}
	assert.True(t, p.MoveTo("A", 99))
	assert.Equal(t, session.PlotOrder{"B", "C", "A"}, p)
	assert.True(t, p.MoveTo("A", -5))
	assert.Equal(t, session.PlotOrder{"A", "B", "C"}, p)
}

func TestMoveToUnknownName(t *testing.T) {
	p := session.PlotOrder{"A", "B"}
	assert.False(t, p.MoveTo("Z", 0))
}

func TestSanitizeDropsStaleAndAppendsNew(t *testing.T) {
	persisted := session.PlotOrder{"C", "gone", "A", "C"}
	got := persisted.Sanitize([]string{"A", "B", "C"})
	assert.Equal(t, session.PlotOrder{"C", "A", "B"}, got)
}

func TestSanitizeEmptyPersistedGivesNaturalOrder(t *testing.T) {
	got := session.PlotOrder(nil).Sanitize([]string{"x", "y"})
	assert.Equal(t, session.PlotOrder{"x", "y"}, got)
}
