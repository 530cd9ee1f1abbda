package controller

import (
	"log/slog"
	"math"
	"slices"
	"strings"

	"localboard/internal/state"
	"localboard/internal/textbuf"
)

// textEdit is an open text edit. id is empty for text not yet in the scene.
type textEdit struct {
	id       string
	anchor   state.Point
	buf      *textbuf.Buffer
	color    string
	width    float64
	fontSize float64
	mathMode bool
}

// openText handles a text tool click: an existing text stroke under p is
// edited in place, anywhere else starts a new text.
func (c *Controller) openText(p state.Point) {
	if hit, ok := state.StrokeAtPoint(p, c.board.Strokes(), c.measurer); ok && hit.Type == state.TypeText {
		c.editStroke(hit)
		return
	}
	c.edit = &textEdit{
		anchor:   p,
		buf:      textbuf.New(""),
		color:    c.color,
		width:    c.width,
		fontSize: state.DefaultFontSize(c.width),
		mathMode: c.mathMode,
	}
	c.caretVisible = true
	slog.Debug("controller: text opened", "x", p.X, "y", p.Y)
}

func (c *Controller) editStroke(s state.Stroke) {
	anchor, ok := s.Anchor()
	if !ok {
		return
	}
	c.edit = &textEdit{
		id:       s.ID,
		anchor:   anchor,
		buf:      textbuf.New(s.Text),
		color:    s.Color,
		width:    s.StrokeWidth,
		fontSize: s.EffectiveFontSize(),
		mathMode: s.MathMode,
	}
	c.board.SetSelection([]string{s.ID})
	c.caretVisible = true
	slog.Debug("controller: text opened", "id", s.ID)
}

// DoubleClick edits the text stroke under the pointer in place.
func (c *Controller) DoubleClick(e PointerEvent) {
	if c.tool != ToolSelect || c.edit != nil {
		return
	}
	c.finishGesture()
	hit, ok := state.StrokeAtPoint(c.toCanvas(e.X, e.Y), c.board.Strokes(), c.measurer)
	if !ok || hit.Type != state.TypeText {
		return
	}
	c.editStroke(hit)
	c.changed()
}

// commitEdit closes the edit. New non-empty text is added, an existing
// stroke is updated or, when emptied, deleted; each is one history entry.
// Unchanged and empty new text record nothing. The tool returns to select.
func (c *Controller) commitEdit() {
	e := c.edit
	if e == nil {
		return
	}
	c.edit = nil
	c.tool = ToolSelect

	text := e.buf.String()
	empty := strings.TrimSpace(text) == ""
	scene := c.board.Strokes()
	switch {
	case e.id == "":
		if empty {
			break
		}
		s := state.NewTextStroke(e.anchor, text, e.color, e.width, e.mathMode)
		s.FontSize = e.fontSize
		c.board.Commit("add text", append(scene, s))
	case empty:
		c.board.Commit("delete text", slices.DeleteFunc(scene, func(s state.Stroke) bool {
			return s.ID == e.id
		}))
	default:
		i := state.IndexOf(scene, e.id)
		if i < 0 {
			break
		}
		s := scene[i]
		if s.Text == text && s.Color == e.color && s.MathMode == e.mathMode {
			break
		}
		s.Text, s.Color, s.MathMode = text, e.color, e.mathMode
		scene[i] = s
		c.board.Commit("edit text", scene)
	}
	c.changed()
}

// cancelEdit closes the edit without recording anything.
func (c *Controller) cancelEdit() {
	if c.edit == nil {
		return
	}
	c.edit = nil
	c.changed()
}

// editBox is the clickable area of the live text.
func (c *Controller) editBox() state.Bounds {
	e := c.edit
	w, h := state.TextSize(c.measurer, e.buf.String(), e.fontSize)
	w = max(w, e.fontSize)
	return state.Bounds{
		MinX: e.anchor.X - state.TextPad,
		MinY: e.anchor.Y - state.TextPad,
		MaxX: e.anchor.X + w + state.TextPad,
		MaxY: e.anchor.Y + h + state.TextPad,
	}
}

// placeCaret moves the caret to the character boundary nearest p.
func (c *Controller) placeCaret(p state.Point) {
	e := c.edit
	text := e.buf.String()
	lines := strings.Split(text, "\n")
	lh := e.fontSize * state.LineHeightFactor
	line := int(math.Floor((p.Y - e.anchor.Y) / lh))
	line = max(0, min(line, len(lines)-1))

	runes := []rune(lines[line])
	col, best := 0, math.Abs(p.X-e.anchor.X)
	for i := 1; i <= len(runes); i++ {
		x := e.anchor.X + c.measurer.MeasureText(string(runes[:i]), e.fontSize)
		if d := math.Abs(x - p.X); d < best {
			col, best = i, d
		}
	}
	e.buf.SetCaret(textbuf.LineColToIndex(text, line, col))
	c.caretVisible = true
}

// KeyTyped inserts a printable rune into the open edit. It reports whether
// the rune was consumed.
func (c *Controller) KeyTyped(r rune) bool {
	if c.edit == nil || r < ' ' || r == 0x7f {
		return false
	}
	c.edit.buf.Insert(string(r))
	c.caretVisible = true
	c.changed()
	return true
}

// KeyDown handles a non-character key. It reports whether the key was
// consumed.
func (c *Controller) KeyDown(k Key) bool {
	if c.edit != nil {
		return c.editKey(k)
	}
	switch k {
	case KeySpace:
		c.spaceHeld = true
	case KeyDelete, KeyBackspace:
		c.DeleteSelected()
	case KeyEscape:
		c.finishGesture()
		c.board.ClearSelection()
	default:
		return false
	}
	return true
}

// KeyUp handles a key release.
func (c *Controller) KeyUp(k Key) {
	if k == KeySpace {
		c.spaceHeld = false
	}
}

func (c *Controller) editKey(k Key) bool {
	b := c.edit.buf
	switch k {
	case KeyEnter:
		b.Insert("\n")
	case KeyBackspace:
		b.Backspace()
	case KeyDelete:
		b.Delete()
	case KeyLeft:
		b.Left()
	case KeyRight:
		b.Right()
	case KeyUp:
		b.Up()
	case KeyDown:
		b.Down()
	case KeyHome:
		b.Home()
	case KeyEnd:
		b.End()
	case KeyEscape:
		c.cancelEdit()
		return true
	default:
		return false
	}
	c.caretVisible = true
	c.changed()
	return true
}
