// Package config loads the board settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full settings file.
type Config struct {
	Board  Board  `toml:"board"`
	View   View   `toml:"view"`
	Text   Text   `toml:"text"`
	Log    Log    `toml:"log"`
	Window Window `toml:"window"`
}

// Board holds drawing defaults.
type Board struct {
	Color       string  `toml:"color"`
	StrokeWidth float64 `toml:"stroke_width"`
	Background  string  `toml:"background"`
	// GridSize is the background grid spacing; 0 hides the grid.
	GridSize float64 `toml:"grid_size"`
	// HistoryLimit caps the undo records kept; 0 keeps all.
	HistoryLimit int `toml:"history_limit"`
}

type View struct {
	MinZoom  float64 `toml:"min_zoom"`
	MaxZoom  float64 `toml:"max_zoom"`
	ZoomStep float64 `toml:"zoom_step"`
}

type Text struct {
	CaretBlinkMS int  `toml:"caret_blink_ms"`
	MathMode     bool `toml:"math_mode"`
}

type Log struct {
	Level string `toml:"level"`
}

type Window struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Board: Board{
			Color:       "#000000",
			StrokeWidth: 2,
			Background:  "#ffffff",
			GridSize:    50,
		},
		View: View{
			MinZoom:  0.1,
			MaxZoom:  10,
			ZoomStep: 1.2,
		},
		Text: Text{
			CaretBlinkMS: 530,
		},
		Log: Log{
			Level: "info",
		},
		Window: Window{
			Width:  1200,
			Height: 800,
		},
	}
}

// DefaultPath returns the settings file under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "localboard", "config.toml"), nil
}

// Load reads the settings at path over the defaults. A missing file is not
// an error: the defaults are returned.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("config: no settings file, using defaults", "path", path)
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info("config: loaded", "path", path)
	return cfg, nil
}

// Decode parses TOML over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	for _, key := range md.Undecoded() {
		slog.Warn("config: unknown key", "key", key.String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path, creating its directory.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	switch {
	case c.Board.StrokeWidth <= 0:
		return fmt.Errorf("%w: board.stroke_width must be positive", ErrInvalid)
	case c.Board.GridSize < 0:
		return fmt.Errorf("%w: board.grid_size must not be negative", ErrInvalid)
	case c.Board.HistoryLimit < 0:
		return fmt.Errorf("%w: board.history_limit must not be negative", ErrInvalid)
	case c.View.MinZoom <= 0 || c.View.MaxZoom < c.View.MinZoom:
		return fmt.Errorf("%w: view zoom range [%g, %g]", ErrInvalid, c.View.MinZoom, c.View.MaxZoom)
	case c.View.ZoomStep <= 1:
		return fmt.Errorf("%w: view.zoom_step must exceed 1", ErrInvalid)
	case c.Text.CaretBlinkMS <= 0:
		return fmt.Errorf("%w: text.caret_blink_ms must be positive", ErrInvalid)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size", ErrInvalid)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: log level %q", ErrInvalid, s)
}
