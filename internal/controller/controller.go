// Package controller turns pointer and keyboard input into board changes.
//
// A Controller runs one gesture at a time. Moves during a gesture only
// preview the scene; the gesture's end records it with a single history
// push, so one user action is always one undo step.
package controller

import (
	"log/slog"
	"slices"
	"time"

	"localboard/internal/render"
	"localboard/internal/state"
	"localboard/internal/view"
)

const (
	penMinDistance = 1.0
	penMinInterval = 10 * time.Millisecond
	eraseStep      = 5.0
	eraseFactor    = 2.0
)

// Options are the initial tool settings.
type Options struct {
	Color       string
	StrokeWidth float64
	MathMode    bool
	Limits      view.Limits
	ZoomStep    float64
}

// DefaultOptions returns black 2-unit strokes and the default zoom range.
func DefaultOptions() Options {
	return Options{
		Color:       "#000000",
		StrokeWidth: 2,
		Limits:      view.DefaultLimits(),
		ZoomStep:    view.DefaultZoomStep,
	}
}

// Controller owns the selection-independent interaction state: tool
// settings, the view, the active gesture, draft strokes and the text edit.
type Controller struct {
	board    *state.Board
	measurer state.TextMeasurer

	tool     Tool
	color    string
	width    float64
	mathMode bool

	view     view.View
	limits   view.Limits
	zoomStep float64

	gesture    gesture
	start      state.Point
	last       state.Point
	lastX      float64
	lastY      float64
	lastSample time.Time
	base       []state.Stroke
	pending    []state.Stroke
	target     state.Stroke
	handle     state.Handle
	draft      *state.Stroke
	marquee    *state.Bounds
	keep       []string
	spaceHeld  bool

	edit         *textEdit
	caretVisible bool

	listeners []func()
}

// New returns a controller for board.
func New(board *state.Board, opts Options) *Controller {
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = 2
	}
	if opts.Color == "" {
		opts.Color = "#000000"
	}
	if opts.ZoomStep <= 1 {
		opts.ZoomStep = view.DefaultZoomStep
	}
	c := &Controller{
		board:    board,
		measurer: board.Measurer(),
		tool:     ToolSelect,
		color:    opts.Color,
		width:    opts.StrokeWidth,
		mathMode: opts.MathMode,
		view:     view.Default(),
		limits:   opts.Limits,
		zoomStep: opts.ZoomStep,
	}
	board.OnChange(func(state.Change) { c.changed() })
	return c
}

// OnChange registers fn to be called whenever the painted frame may differ.
func (c *Controller) OnChange(fn func()) {
	c.listeners = append(c.listeners, fn)
}

func (c *Controller) changed() {
	for _, fn := range c.listeners {
		fn()
	}
}

func (c *Controller) Board() *state.Board { return c.board }
func (c *Controller) Tool() Tool          { return c.tool }
func (c *Controller) Color() string       { return c.color }
func (c *Controller) StrokeWidth() float64 {
	return c.width
}
func (c *Controller) MathMode() bool  { return c.mathMode }
func (c *Controller) View() view.View { return c.view }

// Editing reports whether a text edit is open.
func (c *Controller) Editing() bool { return c.edit != nil }

// Strokes returns the committed scene, for saving.
func (c *Controller) Strokes() []state.Stroke { return c.board.Strokes() }

// SetTool switches tools. An open text edit is committed first, a running
// gesture is finished, and leaving the select tool clears the selection.
func (c *Controller) SetTool(t Tool) {
	if !t.Valid() {
		return
	}
	c.finishGesture()
	if c.edit != nil {
		c.commitEdit()
	}
	c.tool = t
	if t != ToolSelect {
		c.board.ClearSelection()
	}
	slog.Debug("controller: tool", "tool", t)
	c.changed()
}

// SetColor sets the drawing colour and recolours the selection.
func (c *Controller) SetColor(color string) {
	c.color = color
	if c.edit != nil {
		c.edit.color = color
		c.changed()
		return
	}
	c.updateSelection("recolor", func(s state.Stroke) (state.Stroke, bool) {
		if s.Color == color {
			return s, false
		}
		s.Color = color
		return s, true
	})
}

// SetStrokeWidth sets the drawing width and applies it to the selection.
func (c *Controller) SetStrokeWidth(w float64) {
	if w <= 0 {
		return
	}
	c.width = w
	c.updateSelection("restroke", func(s state.Stroke) (state.Stroke, bool) {
		if s.StrokeWidth == w {
			return s, false
		}
		s.StrokeWidth = w
		return s, true
	})
}

// SetMathMode sets whether new text uses inline math notation.
func (c *Controller) SetMathMode(on bool) {
	c.mathMode = on
	if c.edit != nil {
		c.edit.mathMode = on
	}
	c.changed()
}

// updateSelection applies fn to every selected stroke and commits once if
// any stroke changed.
func (c *Controller) updateSelection(action string, fn func(state.Stroke) (state.Stroke, bool)) {
	sel := c.board.Selection()
	if len(sel) == 0 || c.gesture != gestureNone {
		c.changed()
		return
	}
	scene := c.board.Strokes()
	changed := false
	for i, s := range scene {
		if !slices.Contains(sel, s.ID) {
			continue
		}
		if next, ok := fn(s); ok {
			scene[i] = next
			changed = true
		}
	}
	if !changed {
		c.changed()
		return
	}
	c.board.Commit(action, scene)
}

// Undo steps back one history record. An open text edit is committed first.
func (c *Controller) Undo() bool {
	if c.gesture != gestureNone {
		return false
	}
	if c.edit != nil {
		c.commitEdit()
	}
	return c.board.Undo()
}

// Redo steps forward one history record.
func (c *Controller) Redo() bool {
	if c.gesture != gestureNone {
		return false
	}
	if c.edit != nil {
		c.commitEdit()
	}
	return c.board.Redo()
}

// ClearAll removes every stroke as one undoable action.
func (c *Controller) ClearAll() {
	c.finishGesture()
	c.cancelEdit()
	if c.board.Len() == 0 {
		return
	}
	c.board.Commit("clear", nil)
}

// DeleteSelected removes the selected strokes as one undoable action.
func (c *Controller) DeleteSelected() {
	sel := c.board.Selection()
	if len(sel) == 0 || c.gesture != gestureNone || c.edit != nil {
		return
	}
	scene := slices.DeleteFunc(c.board.Strokes(), func(s state.Stroke) bool {
		return slices.Contains(sel, s.ID)
	})
	c.board.Commit("delete", scene)
}

// NewDocument empties the board and resets history and view.
func (c *Controller) NewDocument() {
	c.LoadStrokes(nil)
}

// LoadStrokes replaces the scene wholesale. History restarts at the loaded
// scene and the view is reset.
func (c *Controller) LoadStrokes(strokes []state.Stroke) {
	c.abortGesture()
	c.edit = nil
	c.view = view.Default()
	c.board.Load(strokes)
}

// ResetView restores zoom 1 and no pan.
func (c *Controller) ResetView() {
	c.view = view.Default()
	c.changed()
}

// ZoomIn zooms one step about the screen point (sx, sy).
func (c *Controller) ZoomIn(sx, sy float64) {
	c.zoomAt(c.zoomStep, sx, sy)
}

// ZoomOut zooms out one step about the screen point (sx, sy).
func (c *Controller) ZoomOut(sx, sy float64) {
	c.zoomAt(1/c.zoomStep, sx, sy)
}

// Scroll zooms about the cursor: scrolling up (dy > 0) zooms in.
func (c *Controller) Scroll(sx, sy, dy float64) {
	switch {
	case dy > 0:
		c.ZoomIn(sx, sy)
	case dy < 0:
		c.ZoomOut(sx, sy)
	}
}

func (c *Controller) zoomAt(factor, sx, sy float64) {
	c.view = c.view.ZoomAt(factor, sx, sy, c.limits)
	c.changed()
}

// Frame returns everything the renderer needs to paint the current state.
func (c *Controller) Frame() render.Frame {
	f := render.Frame{
		Scene:    c.board.Strokes(),
		Selected: c.board.Selection(),
		View:     c.view,
		Marquee:  c.marquee,
	}
	if c.draft != nil {
		d := *c.draft
		f.Draft = &d
	}
	if c.edit != nil {
		f.Editing = &render.EditingText{
			ID:           c.edit.id,
			X:            c.edit.anchor.X,
			Y:            c.edit.anchor.Y,
			Text:         c.edit.buf.String(),
			MathMode:     c.edit.mathMode,
			Color:        c.edit.color,
			FontSize:     c.edit.fontSize,
			Caret:        c.edit.buf.Caret(),
			CaretVisible: c.caretVisible,
		}
	}
	return f
}

// BlinkCaret toggles caret visibility. It reports whether a repaint is due.
func (c *Controller) BlinkCaret() bool {
	if c.edit == nil {
		return false
	}
	c.caretVisible = !c.caretVisible
	c.changed()
	return true
}

// HandleAt returns the selection handle under a screen position, for
// cursor feedback.
func (c *Controller) HandleAt(x, y float64) state.Handle {
	if c.tool != ToolSelect || c.edit != nil {
		return state.HandleNone
	}
	p := c.toCanvas(x, y)
	return state.ResizeHandleAt(p, c.board.Selection(), c.board.Strokes(), c.view.Zoom, c.measurer)
}

func (c *Controller) toCanvas(x, y float64) state.Point {
	cx, cy := c.view.ScreenToCanvas(x, y)
	return state.Point{X: cx, Y: cy}
}
