package state

import (
	"math"
)

const (
	// ShapeHitMargin widens a shape's box for pointer hits.
	ShapeHitMargin = 12.0
	// PenHitMinRadius is the smallest sample radius for pen hits.
	PenHitMinRadius = 14.0

	handlePad       = 6.0
	handleSize      = 8.0
	rotateOffset    = 30.0
	rotateHitRadius = 8.0
)

// StrokeAtPoint returns the topmost stroke whose hit region contains p.
// ok is false when p is over empty canvas.
func StrokeAtPoint(p Point, scene []Stroke, m TextMeasurer) (Stroke, bool) {
	for i := len(scene) - 1; i >= 0; i-- {
		if hits(scene[i], p, m) {
			return scene[i], true
		}
	}
	return Stroke{}, false
}

func hits(s Stroke, p Point, m TextMeasurer) bool {
	switch {
	case s.Type == TypeText:
		b, ok := ComputeBounds(s, m)
		return ok && b.Contains(p)
	case s.Type.IsShape():
		b, ok := ComputeBounds(s, m)
		return ok && b.Expand(ShapeHitMargin).Contains(p)
	case s.Type == TypePen:
		r := math.Max(PenHitMinRadius, s.StrokeWidth+10)
		return anyPointWithin(s.Points, p, r)
	}
	return false
}

func anyPointWithin(points []Point, p Point, r float64) bool {
	for _, q := range points {
		if Distance(p, q) <= r {
			return true
		}
	}
	return false
}

// HandleGeometry is the layout of the selection affordances of one stroke,
// expressed in the stroke's local space: origin at the pivot, unrotated.
// The renderer paints from the same values the hit test reads.
type HandleGeometry struct {
	Pivot    Point
	Rotation float64
	// HalfW and HalfH are half the padded box size.
	HalfW, HalfH float64
	// Size is the side of a resize handle square.
	Size float64
	// Rotate is the local centre of the rotation handle.
	Rotate       Point
	RotateRadius float64
}

// HandleGeometryFor lays out the handles of s at the given zoom. Sizes are
// divided by zoom so the handles keep a constant on-screen size.
func HandleGeometryFor(s Stroke, zoom float64, m TextMeasurer) (HandleGeometry, bool) {
	b, ok := UnrotatedBounds(s, m)
	if !ok {
		return HandleGeometry{}, false
	}
	if zoom <= 0 {
		zoom = 1
	}
	pad := handlePad / zoom
	halfH := b.Height()/2 + pad
	return HandleGeometry{
		Pivot:        b.Center(),
		Rotation:     s.Rotation,
		HalfW:        b.Width()/2 + pad,
		HalfH:        halfH,
		Size:         handleSize / zoom,
		Rotate:       Point{X: 0, Y: -halfH - rotateOffset/zoom},
		RotateRadius: rotateHitRadius / zoom,
	}, true
}

// Handle returns the local centre of a resize handle.
func (g HandleGeometry) Handle(h Handle) Point {
	switch h {
	case HandleNW:
		return Point{X: -g.HalfW, Y: -g.HalfH}
	case HandleNE:
		return Point{X: g.HalfW, Y: -g.HalfH}
	case HandleSW:
		return Point{X: -g.HalfW, Y: g.HalfH}
	case HandleSE:
		return Point{X: g.HalfW, Y: g.HalfH}
	case HandleN:
		return Point{X: 0, Y: -g.HalfH}
	case HandleS:
		return Point{X: 0, Y: g.HalfH}
	case HandleW:
		return Point{X: -g.HalfW, Y: 0}
	case HandleE:
		return Point{X: g.HalfW, Y: 0}
	case HandleRotate:
		return g.Rotate
	}
	return Point{}
}

// ToLocal maps a canvas point into the handle layout's local space.
func (g HandleGeometry) ToLocal(p Point) Point {
	q := RotatePoint(p.X, p.Y, g.Pivot.X, g.Pivot.Y, -g.Rotation)
	return Point{X: q.X - g.Pivot.X, Y: q.Y - g.Pivot.Y}
}

// HandleAt returns the handle under the canvas point p.
func (g HandleGeometry) HandleAt(p Point) Handle {
	local := g.ToLocal(p)
	if Distance(local, g.Rotate) <= g.RotateRadius {
		return HandleRotate
	}
	half := g.Size / 2
	for _, h := range ResizeHandles {
		c := g.Handle(h)
		if math.Abs(local.X-c.X) <= half && math.Abs(local.Y-c.Y) <= half {
			return h
		}
	}
	return HandleNone
}

// ResizeHandleAt returns the handle of the sole selected stroke under p.
// It returns HandleNone unless exactly one stroke is selected.
func ResizeHandleAt(p Point, selected []string, scene []Stroke, zoom float64, m TextMeasurer) Handle {
	if len(selected) != 1 {
		return HandleNone
	}
	s, ok := FindStroke(scene, selected[0])
	if !ok {
		return HandleNone
	}
	g, ok := HandleGeometryFor(s, zoom, m)
	if !ok {
		return HandleNone
	}
	h := g.HandleAt(p)
	if h != HandleRotate && h != HandleNone && !s.Resizable() {
		return HandleNone
	}
	return h
}

// StrokesInBox returns the ids of strokes touched by the box spanned by a
// and b: any sample inside for pen, the anchor inside for text and box
// overlap for shapes.
func StrokesInBox(a, b Point, scene []Stroke, m TextMeasurer) []string {
	box := NormalizeBox(a, b)
	var ids []string
	for _, s := range scene {
		if inBox(s, box, m) {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func inBox(s Stroke, box Bounds, m TextMeasurer) bool {
	switch {
	case s.Type == TypePen:
		for _, p := range s.Points {
			if box.Contains(p) {
				return true
			}
		}
	case s.Type == TypeText:
		anchor, ok := s.Anchor()
		return ok && box.Contains(anchor)
	case s.Type.IsShape():
		b, ok := ComputeBounds(s, m)
		return ok && b.Overlaps(box)
	}
	return false
}

// ErasedBy reports whether an eraser of the given radius at p removes s.
func ErasedBy(s Stroke, p Point, radius float64, m TextMeasurer) bool {
	switch {
	case s.Type == TypeText:
		anchor, ok := s.Anchor()
		return ok && Distance(anchor, p) <= radius
	case s.Type.IsShape():
		b, ok := ComputeBounds(s, m)
		return ok && b.Expand(radius).Contains(p)
	case s.Type == TypePen:
		return anyPointWithin(s.Points, p, radius)
	}
	return false
}

// FindStroke returns the stroke with the given id.
func FindStroke(scene []Stroke, id string) (Stroke, bool) {
	if i := IndexOf(scene, id); i >= 0 {
		return scene[i], true
	}
	return Stroke{}, false
}

// IndexOf returns the position of the stroke with the given id, or -1.
func IndexOf(scene []Stroke, id string) int {
	for i := range scene {
		if scene[i].ID == id {
			return i
		}
	}
	return -1
}
