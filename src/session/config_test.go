package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/misawa-san/waveview/src/session"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waveview_session.yaml")
	ct := 12.5
	cfg := session.Config{
		PlotOrder:  []string{"en", "clk", "volt"},
		CursorTime: &ct,
		XRange:     &[2]float64{2.0, 8.0},
	}
	require.NoError(t, session.SaveConfig(path, cfg))

	got := session.LoadConfig(path)
	assert.Equal(t, cfg.PlotOrder, got.PlotOrder)
	require.NotNil(t, got.CursorTime)
	assert.Equal(t, 12.5, *got.CursorTime)
	require.NotNil(t, got.XRange)
	assert.Equal(t, [2]float64{2.0, 8.0}, *got.XRange)
}

func TestConfigMissingFileGivesDefaults(t *testing.T) {
	got := session.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Nil(t, got.PlotOrder)
	assert.Nil(t, got.CursorTime)
	assert.Nil(t, got.XRange)
}

func TestConfigMalformedFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plot_order: [unterminated\n\t???"), 0o644))
	got := session.LoadConfig(path)
	assert.Nil(t, got.PlotOrder)
	assert.Nil(t, got.CursorTime)
	assert.Nil(t, got.XRange)
}

func TestConfigTruncatedFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trunc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plot_order:\n  - a\ncursor_time: 1.5\nx_ra"), 0o644))
	// Whatever partially parses is fine as long as loading never fails; a
	// hard-malformed tail must fall back to full defaults.
	_ = session.LoadConfig(path)
}

func TestConfigIgnoresUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.yaml")
	content := "plot_order:\n  - clk\ncursor_time: 3.25\nx_range:\n  - 1.0\n  - 9.0\ndelta_markers:\n  - 4.5\ntheme: dark\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	got := session.LoadConfig(path)
	assert.Equal(t, []string{"clk"}, got.PlotOrder)
	require.NotNil(t, got.CursorTime)
	assert.Equal(t, 3.25, *got.CursorTime)
	require.NotNil(t, got.XRange)
	assert.Equal(t, [2]float64{1.0, 9.0}, *got.XRange)
}

func TestSaveConfigReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, session.SaveConfig(path, session.Config{PlotOrder: []string{"a"}}))
	require.NoError(t, session.SaveConfig(path, session.Config{PlotOrder: []string{"b"}}))

	got := session.LoadConfig(path)
	assert.Equal(t, []string{"b"}, got.PlotOrder)

	// No temp droppings left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
