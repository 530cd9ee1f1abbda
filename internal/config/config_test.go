package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
[board]
color = "red"
history_limit = 50

[view]
max_zoom = 4.0

[text]
math_mode = true

[log]
level = "debug"
`))
	require.NoError(t, err)
	assert.Equal(t, "red", cfg.Board.Color)
	assert.Equal(t, 50, cfg.Board.HistoryLimit)
	assert.Equal(t, 2.0, cfg.Board.StrokeWidth, "unset keys keep defaults")
	assert.Equal(t, 4.0, cfg.View.MaxZoom)
	assert.Equal(t, 0.1, cfg.View.MinZoom)
	assert.True(t, cfg.Text.MathMode)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestDecodeRejectsInvalid(t *testing.T) {
	for name, doc := range map[string]string{
		"width":   "[board]\nstroke_width = 0",
		"history": "[board]\nhistory_limit = -1",
		"grid":    "[board]\ngrid_size = -5.0",
		"zoom":    "[view]\nmin_zoom = 5.0\nmax_zoom = 2.0",
		"step":    "[view]\nzoom_step = 1.0",
		"blink":   "[text]\ncaret_blink_ms = 0",
		"level":   "[log]\nlevel = \"loud\"",
		"window":  "[window]\nwidth = 0.0",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	_, err := Decode(strings.NewReader("[board\n"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "localboard", "config.toml")
	cfg := Default()
	cfg.Board.Color = "#336699"
	cfg.Window.Width = 640
	require.NoError(t, Save(cfg, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = 3"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"":      slog.LevelInfo,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
