// Package view maps between screen and canvas coordinates under zoom and pan.
package view

import "math"

const (
	DefaultMinZoom  = 0.1
	DefaultMaxZoom  = 10.0
	DefaultZoomStep = 1.2
)

// View is the zoom and pan applied when painting the canvas: a canvas point
// c appears on screen at c*Zoom + Pan.
type View struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
}

// Default returns the identity view.
func Default() View {
	return View{Zoom: 1}
}

func (v View) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// ScreenToCanvas maps a screen position to canvas space.
func (v View) ScreenToCanvas(x, y float64) (cx, cy float64) {
	z := v.zoom()
	return (x - v.PanX) / z, (y - v.PanY) / z
}

// CanvasToScreen maps a canvas position to screen space.
func (v View) CanvasToScreen(cx, cy float64) (x, y float64) {
	z := v.zoom()
	return cx*z + v.PanX, cy*z + v.PanY
}

// PanBy shifts the view by a screen-space delta.
func (v View) PanBy(dx, dy float64) View {
	v.PanX += dx
	v.PanY += dy
	return v
}

// Limits bounds the zoom factor.
type Limits struct {
	Min, Max float64
}

// DefaultLimits returns the default zoom range.
func DefaultLimits() Limits {
	return Limits{Min: DefaultMinZoom, Max: DefaultMaxZoom}
}

// Clamp restricts z to the limits.
func (l Limits) Clamp(z float64) float64 {
	if l.Min > 0 {
		z = math.Max(z, l.Min)
	}
	if l.Max > 0 {
		z = math.Min(z, l.Max)
	}
	return z
}

// ZoomAt scales the view by factor while keeping the canvas point under the
// screen position (sx, sy) fixed.
func (v View) ZoomAt(factor, sx, sy float64, l Limits) View {
	cx, cy := v.ScreenToCanvas(sx, sy)
	z := l.Clamp(v.zoom() * factor)
	return View{
		Zoom: z,
		PanX: sx - cx*z,
		PanY: sy - cy*z,
	}
}
