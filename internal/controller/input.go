package controller

import "time"

// Tool is the active drawing tool.
type Tool string

const (
	ToolSelect    Tool = "select"
	ToolPen       Tool = "pen"
	ToolEraser    Tool = "eraser"
	ToolRectangle Tool = "rectangle"
	ToolEllipse   Tool = "ellipse"
	ToolLine      Tool = "line"
	ToolText      Tool = "text"
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolSelect, ToolPen, ToolEraser, ToolRectangle, ToolEllipse, ToolLine, ToolText}

// Valid reports whether t is a known tool.
func (t Tool) Valid() bool {
	for _, known := range Tools {
		if t == known {
			return true
		}
	}
	return false
}

// Button identifies the mouse button of a pointer event.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonTertiary
)

// PointerEvent is a pointer sample in screen coordinates.
type PointerEvent struct {
	X, Y   float64
	Button Button
	Shift  bool
	Time   time.Time
}

// Key names a non-character key.
type Key string

const (
	KeyEnter     Key = "Enter"
	KeyBackspace Key = "Backspace"
	KeyDelete    Key = "Delete"
	KeyLeft      Key = "Left"
	KeyRight     Key = "Right"
	KeyUp        Key = "Up"
	KeyDown      Key = "Down"
	KeyHome      Key = "Home"
	KeyEnd       Key = "End"
	KeyEscape    Key = "Escape"
	KeySpace     Key = "Space"
)

type gesture int

const (
	gestureNone gesture = iota
	gesturePanning
	gestureMarquee
	gestureDragging
	gestureResizing
	gestureRotating
	gestureDrawingPen
	gestureErasing
	gestureDrawingShape
)

var gestureNames = [...]string{
	gestureNone:         "none",
	gesturePanning:      "panning",
	gestureMarquee:      "marquee",
	gestureDragging:     "dragging",
	gestureResizing:     "resizing",
	gestureRotating:     "rotating",
	gestureDrawingPen:   "drawing-pen",
	gestureErasing:      "erasing",
	gestureDrawingShape: "drawing-shape",
}

func (g gesture) String() string { return gestureNames[g] }
