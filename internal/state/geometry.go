package state

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// TextPad is added on all sides of a text stroke's measured box.
	TextPad = 2.0
	// LineHeightFactor converts a font size into a line height.
	LineHeightFactor = 1.2
	// FallbackCharWidth is the width of one character, in font-size units,
	// used when no text measurer is available.
	FallbackCharWidth = 0.6
)

// Bounds is an axis-aligned box in canvas space.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// NormalizeBox returns the box spanned by two arbitrary corners.
func NormalizeBox(a, b Point) Bounds {
	return Bounds{
		MinX: math.Min(a.X, b.X),
		MinY: math.Min(a.Y, b.Y),
		MaxX: math.Max(a.X, b.X),
		MaxY: math.Max(a.Y, b.Y),
	}
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Center returns the centre of the box.
func (b Bounds) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Contains reports whether p lies inside the box, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Expand grows the box by m on every side.
func (b Bounds) Expand(m float64) Bounds {
	return Bounds{MinX: b.MinX - m, MinY: b.MinY - m, MaxX: b.MaxX + m, MaxY: b.MaxY + m}
}

// Overlaps reports whether the two boxes intersect, touching edges included.
func (b Bounds) Overlaps(o Bounds) bool {
	return !(b.MaxX < o.MinX || o.MaxX < b.MinX || b.MaxY < o.MinY || o.MaxY < b.MinY)
}

// Union returns the smallest box containing both.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Corners returns the four corners clockwise from the top-left.
func (b Bounds) Corners() [4]Point {
	return [4]Point{
		{X: b.MinX, Y: b.MinY},
		{X: b.MaxX, Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY},
		{X: b.MinX, Y: b.MaxY},
	}
}

// RotatePoint rotates (x, y) around (cx, cy) by angle radians. With the y axis
// pointing down a positive angle turns clockwise on screen.
func RotatePoint(x, y, cx, cy, angle float64) Point {
	sin, cos := math.Sincos(angle)
	dx, dy := x-cx, y-cy
	return Point{
		X: cx + dx*cos - dy*sin,
		Y: cy + dx*sin + dy*cos,
	}
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// TextMeasurer measures the advance width of a single line of text.
type TextMeasurer interface {
	MeasureText(line string, fontSize float64) float64
}

// FallbackMeasurer approximates text width without font metrics.
type FallbackMeasurer struct{}

// MeasureText implements TextMeasurer.
func (FallbackMeasurer) MeasureText(line string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(line)) * fontSize * FallbackCharWidth
}

func measurerOrFallback(m TextMeasurer) TextMeasurer {
	if m == nil {
		return FallbackMeasurer{}
	}
	return m
}

// TextSize returns the width of the widest line and the total height of a
// possibly multi-line text at fontSize.
func TextSize(m TextMeasurer, text string, fontSize float64) (w, h float64) {
	m = measurerOrFallback(m)
	lines := strings.Split(text, "\n")
	for _, line := range lines {
		w = math.Max(w, m.MeasureText(line, fontSize))
	}
	lh := fontSize * LineHeightFactor
	return w, math.Max(lh, lh*float64(len(lines)))
}

// UnrotatedBounds returns the stroke's box ignoring its rotation. ok is false
// for strokes missing the fields their type requires.
func UnrotatedBounds(s Stroke, m TextMeasurer) (b Bounds, ok bool) {
	switch {
	case s.Type.IsShape():
		if s.StartPoint == nil || s.EndPoint == nil {
			return Bounds{}, false
		}
		return NormalizeBox(*s.StartPoint, *s.EndPoint), true
	case s.Type == TypePen:
		if len(s.Points) == 0 {
			return Bounds{}, false
		}
		b = Bounds{MinX: s.Points[0].X, MinY: s.Points[0].Y, MaxX: s.Points[0].X, MaxY: s.Points[0].Y}
		for _, p := range s.Points[1:] {
			b.MinX = math.Min(b.MinX, p.X)
			b.MinY = math.Min(b.MinY, p.Y)
			b.MaxX = math.Max(b.MaxX, p.X)
			b.MaxY = math.Max(b.MaxY, p.Y)
		}
		return b, true
	case s.Type == TypeText:
		anchor, ok := s.Anchor()
		if !ok {
			return Bounds{}, false
		}
		w, h := TextSize(m, s.Text, s.EffectiveFontSize())
		return Bounds{
			MinX: anchor.X - TextPad,
			MinY: anchor.Y - TextPad,
			MaxX: anchor.X + w + TextPad,
			MaxY: anchor.Y + h + TextPad,
		}, true
	}
	return Bounds{}, false
}

// ComputeBounds returns the axis-aligned box of a stroke in canvas space.
// Rotated strokes are bounded by rotating the corners of their unrotated box
// around its centre and re-bounding the result, so the box is looser than the
// rotated outline for angles that are not multiples of 90 degrees.
func ComputeBounds(s Stroke, m TextMeasurer) (Bounds, bool) {
	b, ok := UnrotatedBounds(s, m)
	if !ok || s.Rotation == 0 {
		return b, ok
	}
	return RotateBounds(b, s.Rotation), true
}

// RotateBounds rotates the corners of b around its centre and returns the box
// enclosing them.
func RotateBounds(b Bounds, angle float64) Bounds {
	c := b.Center()
	corners := b.Corners()
	first := RotatePoint(corners[0].X, corners[0].Y, c.X, c.Y, angle)
	out := Bounds{MinX: first.X, MinY: first.Y, MaxX: first.X, MaxY: first.Y}
	for _, p := range corners[1:] {
		r := RotatePoint(p.X, p.Y, c.X, c.Y, angle)
		out = out.Union(Bounds{MinX: r.X, MinY: r.Y, MaxX: r.X, MaxY: r.Y})
	}
	return out
}

// Pivot returns the point a stroke rotates around: the centre of its
// unrotated box, which is also the centre of its rotated bounds.
func Pivot(s Stroke, m TextMeasurer) (Point, bool) {
	b, ok := UnrotatedBounds(s, m)
	if !ok {
		return Point{}, false
	}
	return b.Center(), true
}
