package state

import (
	"fmt"
	"math"
)

// MinTextFontSize is the smallest font size a text resize can produce.
const MinTextFontSize = 12.0

// textResizeFactor scales vertical handle motion into font size change.
const textResizeFactor = 0.8

// NewPenStroke creates a freehand stroke from sampled points.
func NewPenStroke(points []Point, color string, width float64) Stroke {
	pts := make([]Point, len(points))
	copy(pts, points)
	return Stroke{
		ID:          NewID(),
		Type:        TypePen,
		Points:      pts,
		Color:       color,
		StrokeWidth: width,
	}
}

// NewShapeStroke creates a rectangle, ellipse or line spanning start to end.
func NewShapeStroke(t StrokeType, start, end Point, color string, width float64) Stroke {
	return Stroke{
		ID:          NewID(),
		Type:        t,
		Color:       color,
		StrokeWidth: width,
		StartPoint:  &start,
		EndPoint:    &end,
	}
}

// NewTextStroke creates a text stroke anchored at its top-left corner.
func NewTextStroke(anchor Point, text, color string, width float64, mathMode bool) Stroke {
	return Stroke{
		ID:          NewID(),
		Type:        TypeText,
		Points:      []Point{anchor},
		Color:       color,
		StrokeWidth: width,
		Text:        text,
		FontSize:    DefaultFontSize(width),
		MathMode:    mathMode,
	}
}

// Clone returns a copy of s that shares no memory with it.
func (s Stroke) Clone() Stroke {
	if s.Points != nil {
		pts := make([]Point, len(s.Points))
		copy(pts, s.Points)
		s.Points = pts
	}
	if s.StartPoint != nil {
		p := *s.StartPoint
		s.StartPoint = &p
	}
	if s.EndPoint != nil {
		p := *s.EndPoint
		s.EndPoint = &p
	}
	return s
}

// Validate reports why a stroke is malformed, or nil.
func (s Stroke) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("stroke has no id")
	}
	switch {
	case s.Type == TypePen:
		if len(s.Points) == 0 {
			return fmt.Errorf("pen stroke %s has no points", s.ID)
		}
	case s.Type.IsShape():
		if s.StartPoint == nil || s.EndPoint == nil {
			return fmt.Errorf("%s stroke %s is missing start or end point", s.Type, s.ID)
		}
	case s.Type == TypeText:
		if len(s.Points) != 1 {
			return fmt.Errorf("text stroke %s needs exactly one anchor, has %d", s.ID, len(s.Points))
		}
	default:
		return fmt.Errorf("stroke %s has unknown type %q", s.ID, s.Type)
	}
	if s.StrokeWidth <= 0 {
		return fmt.Errorf("stroke %s has non-positive width %v", s.ID, s.StrokeWidth)
	}
	return nil
}

// ApplyTranslation shifts every positional field of s by (dx, dy). Rotation
// is left untouched: the pivot moves along with the box.
func ApplyTranslation(s Stroke, dx, dy float64) Stroke {
	out := s.Clone()
	for i := range out.Points {
		out.Points[i].X += dx
		out.Points[i].Y += dy
	}
	if out.StartPoint != nil {
		out.StartPoint.X += dx
		out.StartPoint.Y += dy
	}
	if out.EndPoint != nil {
		out.EndPoint.X += dx
		out.EndPoint.Y += dy
	}
	return out
}

// ApplyResize moves the shape corner(s) addressed by handle, or scales the
// font of a text stroke. Pen strokes and malformed shapes are returned as is.
func ApplyResize(s Stroke, h Handle, dx, dy float64) Stroke {
	switch {
	case s.Type == TypeText:
		return resizeText(s, h, dy)
	case s.Type.IsShape():
		if s.StartPoint == nil || s.EndPoint == nil {
			return s
		}
		out := s.Clone()
		sp, ep := out.StartPoint, out.EndPoint
		switch h {
		case HandleNW:
			sp.X += dx
			sp.Y += dy
		case HandleNE:
			ep.X += dx
			sp.Y += dy
		case HandleSW:
			sp.X += dx
			ep.Y += dy
		case HandleSE:
			ep.X += dx
			ep.Y += dy
		case HandleN:
			sp.Y += dy
		case HandleS:
			ep.Y += dy
		case HandleW:
			sp.X += dx
		case HandleE:
			ep.X += dx
		}
		return out
	}
	return s
}

func resizeText(s Stroke, h Handle, dy float64) Stroke {
	size := s.EffectiveFontSize()
	switch h {
	case HandleSE, HandleSW, HandleS:
		size += dy * textResizeFactor
	case HandleNE, HandleNW, HandleN:
		size -= dy * textResizeFactor
	default:
		return s
	}
	out := s.Clone()
	out.FontSize = math.Max(MinTextFontSize, size)
	return out
}

// ApplyRotation adds delta radians to the stroke's rotation.
func ApplyRotation(s Stroke, delta float64) Stroke {
	out := s.Clone()
	out.Rotation += delta
	return out
}
