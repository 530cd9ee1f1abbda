// Package render paints a board scene onto a Surface.
package render

import (
	"image/color"
	"math"
	"strings"

	"localboard/internal/state"
	"localboard/internal/textbuf"
	"localboard/internal/view"
)

// EditingText is the live text overlay of an edit in progress. ID is empty
// for a text that is not in the scene yet.
type EditingText struct {
	ID           string
	X, Y         float64
	Text         string
	MathMode     bool
	Color        string
	FontSize     float64
	Caret        int
	CaretVisible bool
}

// Frame is everything one repaint needs.
type Frame struct {
	Scene    []state.Stroke
	Draft    *state.Stroke
	Marquee  *state.Bounds
	Selected []string
	Editing  *EditingText
	View     view.View
	// Width and Height are the logical viewport size, used for the grid.
	Width, Height float64
	// DeviceScale maps logical pixels to raster pixels; 0 means 1.
	DeviceScale float64
}

// Renderer paints frames. It holds no per-frame state.
type Renderer struct {
	measurer state.TextMeasurer

	Background     color.Color
	SelectionColor color.Color
	// GridSize is the spacing of the background grid in canvas units; 0
	// hides it.
	GridSize  float64
	GridColor color.Color
}

// New returns a renderer measuring text with m.
func New(m state.TextMeasurer) *Renderer {
	if m == nil {
		m = state.FallbackMeasurer{}
	}
	return &Renderer{
		measurer:       m,
		Background:     color.White,
		SelectionColor: color.NRGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff},
		GridColor:      color.NRGBA{R: 220, G: 220, B: 220, A: 100},
	}
}

// Paint draws f onto s.
func (r *Renderer) Paint(s Surface, f Frame) {
	s.Clear(r.Background)

	zoom := f.View.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	scale := f.DeviceScale
	if scale <= 0 {
		scale = 1
	}
	s.Push()
	defer s.Pop()
	s.Scale(scale, scale)
	s.Translate(f.View.PanX, f.View.PanY)
	s.Scale(zoom, zoom)
	r.paintGrid(s, f, zoom)

	editingID := ""
	if f.Editing != nil {
		editingID = f.Editing.ID
	}
	for _, st := range f.Scene {
		if editingID != "" && st.ID == editingID {
			continue
		}
		r.paintStroke(s, st)
	}

	if f.Draft != nil {
		r.paintStroke(s, *f.Draft)
	}

	if f.Marquee != nil {
		r.paintMarquee(s, *f.Marquee, zoom)
	}

	if f.Editing != nil {
		r.paintEditing(s, *f.Editing, zoom)
	}

	if len(f.Selected) == 1 && f.Selected[0] != editingID {
		if st, ok := state.FindStroke(f.Scene, f.Selected[0]); ok {
			r.paintSelection(s, st, zoom)
		}
	}
}

// minGridPixels hides grids too dense to read.
const minGridPixels = 8.0

func (r *Renderer) paintGrid(s Surface, f Frame, zoom float64) {
	if r.GridSize <= 0 || f.Width <= 0 || f.Height <= 0 || r.GridSize*zoom < minGridPixels {
		return
	}
	x0, y0 := f.View.ScreenToCanvas(0, 0)
	x1, y1 := f.View.ScreenToCanvas(f.Width, f.Height)
	s.SetColor(r.GridColor)
	s.SetLineWidth(0.5 / zoom)
	for x := math.Floor(x0/r.GridSize) * r.GridSize; x <= x1; x += r.GridSize {
		s.MoveTo(x, y0)
		s.LineTo(x, y1)
	}
	for y := math.Floor(y0/r.GridSize) * r.GridSize; y <= y1; y += r.GridSize {
		s.MoveTo(x0, y)
		s.LineTo(x1, y)
	}
	s.Stroke()
}

func (r *Renderer) paintStroke(s Surface, st state.Stroke) {
	if st.Rotation != 0 {
		pivot, ok := state.Pivot(st, r.measurer)
		if !ok {
			return
		}
		s.Push()
		defer s.Pop()
		s.Translate(pivot.X, pivot.Y)
		s.Rotate(st.Rotation)
		s.Translate(-pivot.X, -pivot.Y)
	}

	s.SetColor(ParseColor(st.Color))
	s.SetLineWidth(st.StrokeWidth)
	switch st.Type {
	case state.TypePen:
		paintPen(s, st.Points, st.StrokeWidth)
	case state.TypeRectangle:
		if b, ok := state.UnrotatedBounds(st, r.measurer); ok {
			s.DrawRectangle(b.MinX, b.MinY, b.Width(), b.Height())
			s.Stroke()
		}
	case state.TypeEllipse:
		if b, ok := state.UnrotatedBounds(st, r.measurer); ok {
			c := b.Center()
			s.DrawEllipse(c.X, c.Y, b.Width()/2, b.Height()/2)
			s.Stroke()
		}
	case state.TypeLine:
		if st.StartPoint != nil && st.EndPoint != nil {
			s.MoveTo(st.StartPoint.X, st.StartPoint.Y)
			s.LineTo(st.EndPoint.X, st.EndPoint.Y)
			s.Stroke()
		}
	case state.TypeText:
		if anchor, ok := st.Anchor(); ok {
			r.paintText(s, st.Text, anchor.X, anchor.Y, st.EffectiveFontSize(), st.MathMode)
		}
	}
}

func (r *Renderer) paintText(s Surface, text string, x, y, fontSize float64, mathMode bool) {
	lh := fontSize * state.LineHeightFactor
	for i, line := range strings.Split(text, "\n") {
		ly := y + float64(i)*lh
		if mathMode {
			paintMath(s, LayoutMath(line, fontSize, r.measurer), x, ly)
			continue
		}
		if line != "" {
			s.DrawString(line, x, ly, fontSize)
		}
	}
}

func (r *Renderer) paintMarquee(s Surface, b state.Bounds, zoom float64) {
	s.SetColor(r.SelectionColor)
	s.SetLineWidth(1 / zoom)
	s.SetDash(5/zoom, 5/zoom)
	s.DrawRectangle(b.MinX, b.MinY, b.Width(), b.Height())
	s.Stroke()
	s.SetDash()
}

func (r *Renderer) paintEditing(s Surface, e EditingText, zoom float64) {
	fontSize := e.FontSize
	if fontSize <= 0 {
		fontSize = state.MinTextFontSize
	}
	s.SetColor(ParseColor(e.Color))
	r.paintText(s, e.Text, e.X, e.Y, fontSize, e.MathMode)
	if !e.CaretVisible {
		return
	}
	x, y := r.CaretPosition(e)
	s.SetLineWidth(1.5 / zoom)
	s.MoveTo(x, y)
	s.LineTo(x, y+fontSize*state.LineHeightFactor)
	s.Stroke()
}

// CaretPosition returns the canvas position of the top of the caret of e.
func (r *Renderer) CaretPosition(e EditingText) (x, y float64) {
	fontSize := e.FontSize
	if fontSize <= 0 {
		fontSize = state.MinTextFontSize
	}
	line, col := textbuf.IndexToLineCol(e.Text, e.Caret)
	lines := strings.Split(e.Text, "\n")
	prefix := ""
	if line < len(lines) {
		runes := []rune(lines[line])
		prefix = string(runes[:min(col, len(runes))])
	}
	var w float64
	if e.MathMode {
		w = LayoutMath(prefix, fontSize, r.measurer).Width
	} else {
		w = r.measurer.MeasureText(prefix, fontSize)
	}
	return e.X + w, e.Y + float64(line)*fontSize*state.LineHeightFactor
}

func (r *Renderer) paintSelection(s Surface, st state.Stroke, zoom float64) {
	g, ok := state.HandleGeometryFor(st, zoom, r.measurer)
	if !ok {
		return
	}
	s.Push()
	defer s.Pop()
	s.Translate(g.Pivot.X, g.Pivot.Y)
	s.Rotate(g.Rotation)

	s.SetColor(r.SelectionColor)
	s.SetLineWidth(1 / zoom)
	s.SetDash(4/zoom, 4/zoom)
	s.DrawRectangle(-g.HalfW, -g.HalfH, 2*g.HalfW, 2*g.HalfH)
	s.Stroke()
	s.SetDash()

	s.MoveTo(0, -g.HalfH)
	s.LineTo(g.Rotate.X, g.Rotate.Y)
	s.Stroke()

	if st.Resizable() {
		half := g.Size / 2
		for _, h := range state.ResizeHandles {
			c := g.Handle(h)
			s.SetColor(color.White)
			s.DrawRectangle(c.X-half, c.Y-half, g.Size, g.Size)
			s.Fill()
			s.SetColor(r.SelectionColor)
			s.DrawRectangle(c.X-half, c.Y-half, g.Size, g.Size)
			s.Stroke()
		}
	}

	s.SetColor(color.White)
	s.DrawCircle(g.Rotate.X, g.Rotate.Y, g.RotateRadius/2)
	s.Fill()
	s.SetColor(r.SelectionColor)
	s.DrawCircle(g.Rotate.X, g.Rotate.Y, g.RotateRadius/2)
	s.Stroke()
}
