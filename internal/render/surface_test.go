package render

import (
	"fmt"
	"image/color"
)

// recorder is a Surface that logs every call as a short string.
type recorder struct {
	ops   []string
	texts []string
	depth int
}

func (r *recorder) log(format string, args ...any) {
	r.ops = append(r.ops, fmt.Sprintf(format, args...))
}

func (r *recorder) Clear(c color.Color) { r.log("clear") }
func (r *recorder) Push()               { r.depth++; r.log("push") }
func (r *recorder) Pop()                { r.depth--; r.log("pop") }
func (r *recorder) Translate(x, y float64) {
	r.log("translate %g %g", x, y)
}
func (r *recorder) Scale(x, y float64)     { r.log("scale %g %g", x, y) }
func (r *recorder) Rotate(a float64)       { r.log("rotate %.4f", a) }
func (r *recorder) SetColor(c color.Color) { r.log("color %s", FormatColor(c)) }
func (r *recorder) SetLineWidth(w float64) {
	r.log("width %.2f", w)
}
func (r *recorder) SetDash(l ...float64) { r.log("dash %v", l) }
func (r *recorder) MoveTo(x, y float64)  { r.log("move %g %g", x, y) }
func (r *recorder) LineTo(x, y float64)  { r.log("line %g %g", x, y) }
func (r *recorder) QuadraticTo(cx, cy, x, y float64) {
	r.log("quad %g %g %g %g", cx, cy, x, y)
}
func (r *recorder) ClosePath() { r.log("close") }
func (r *recorder) DrawRectangle(x, y, w, h float64) {
	r.log("rect %g %g %g %g", x, y, w, h)
}
func (r *recorder) DrawEllipse(cx, cy, rx, ry float64) {
	r.log("ellipse %g %g %g %g", cx, cy, rx, ry)
}
func (r *recorder) DrawCircle(cx, cy, rad float64) {
	r.log("circle %g %g %g", cx, cy, rad)
}
func (r *recorder) Stroke() { r.log("stroke") }
func (r *recorder) Fill()   { r.log("fill") }
func (r *recorder) DrawString(s string, x, y, size float64) {
	r.texts = append(r.texts, s)
	r.log("text %q %g %g %g", s, x, y, size)
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, op := range r.ops {
		if len(op) >= len(prefix) && op[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (r *recorder) has(op string) bool {
	for _, o := range r.ops {
		if o == op {
			return true
		}
	}
	return false
}

var _ Surface = (*recorder)(nil)
