package state

// Point is a position in canvas space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// StrokeType tags which variant of Stroke a value is.
type StrokeType string

const (
	TypePen       StrokeType = "pen"
	TypeRectangle StrokeType = "rectangle"
	TypeEllipse   StrokeType = "ellipse"
	TypeLine      StrokeType = "line"
	TypeText      StrokeType = "text"
)

// IsShape reports whether strokes of this type are defined by a start/end diagonal.
func (t StrokeType) IsShape() bool {
	switch t {
	case TypeRectangle, TypeEllipse, TypeLine:
		return true
	}
	return false
}

// Valid reports whether t is one of the known stroke types.
func (t StrokeType) Valid() bool {
	switch t {
	case TypePen, TypeRectangle, TypeEllipse, TypeLine, TypeText:
		return true
	}
	return false
}

// Stroke is the single drawable entity of a scene. Type decides which of the
// optional fields are meaningful:
//
//	pen                       Points (>= 1 sample)
//	rectangle, ellipse, line  StartPoint, EndPoint (not normalised)
//	text                      Points[0] (top-left anchor), Text, FontSize, MathMode
//
// Strokes are treated as values: every mutator returns a new Stroke and the
// point slices of a stroke stored in a scene are never written to.
type Stroke struct {
	ID          string     `json:"id"`
	Type        StrokeType `json:"type"`
	Points      []Point    `json:"points,omitempty"`
	Color       string     `json:"color"`
	StrokeWidth float64    `json:"strokeWidth"`
	StartPoint  *Point     `json:"startPoint,omitempty"`
	EndPoint    *Point     `json:"endPoint,omitempty"`
	Text        string     `json:"text,omitempty"`
	FontSize    float64    `json:"fontSize,omitempty"`
	MathMode    bool       `json:"mathMode,omitempty"`
	Rotation    float64    `json:"rotation,omitempty"`
}

// Anchor returns the top-left anchor of a text stroke.
func (s Stroke) Anchor() (Point, bool) {
	if s.Type != TypeText || len(s.Points) == 0 {
		return Point{}, false
	}
	return s.Points[0], true
}

// EffectiveFontSize returns FontSize, or the size derived from StrokeWidth
// when the stroke carries none.
func (s Stroke) EffectiveFontSize() float64 {
	if s.FontSize > 0 {
		return s.FontSize
	}
	return DefaultFontSize(s.StrokeWidth)
}

// DefaultFontSize derives a text size from a stroke width.
func DefaultFontSize(strokeWidth float64) float64 {
	return max(16, strokeWidth*4)
}

// Resizable reports whether the stroke can be resized through handles.
func (s Stroke) Resizable() bool {
	switch {
	case s.Type.IsShape():
		return s.StartPoint != nil && s.EndPoint != nil
	case s.Type == TypeText:
		return len(s.Points) > 0
	}
	return false
}

// Handle names a grab point on the selection box.
type Handle string

const (
	HandleNone   Handle = ""
	HandleNW     Handle = "nw"
	HandleNE     Handle = "ne"
	HandleSW     Handle = "sw"
	HandleSE     Handle = "se"
	HandleN      Handle = "n"
	HandleS      Handle = "s"
	HandleW      Handle = "w"
	HandleE      Handle = "e"
	HandleRotate Handle = "rotate"
)

// ResizeHandles lists the eight resize handles in hit-test order.
var ResizeHandles = []Handle{HandleNW, HandleNE, HandleSW, HandleSE, HandleN, HandleS, HandleW, HandleE}
