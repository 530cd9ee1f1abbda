package render

import "image/color"

// Surface is the drawing target of the Renderer: a 2D path API with a
// transform stack, in the style of an HTML canvas context.
type Surface interface {
	// Clear fills the whole target with c, ignoring the transform.
	Clear(c color.Color)

	// Push saves the transform; Pop restores the last saved one.
	Push()
	Pop()
	Translate(x, y float64)
	Scale(x, y float64)
	Rotate(angle float64)

	SetColor(c color.Color)
	SetLineWidth(w float64)
	// SetDash sets a dash pattern; no arguments restores solid lines.
	SetDash(lengths ...float64)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	ClosePath()
	DrawRectangle(x, y, w, h float64)
	DrawEllipse(cx, cy, rx, ry float64)
	DrawCircle(cx, cy, r float64)

	// Stroke and Fill paint the current path and clear it.
	Stroke()
	Fill()

	// DrawString paints a single line of text with its top-left corner at
	// (x, y).
	DrawString(s string, x, y, fontSize float64)
}
