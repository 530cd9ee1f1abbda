package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	v := View{Zoom: 2.5, PanX: 30, PanY: -12}
	cx, cy := v.ScreenToCanvas(100, 40)
	x, y := v.CanvasToScreen(cx, cy)
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 40, y, 1e-9)
	assert.InDelta(t, 28, cx, 1e-9)
	assert.InDelta(t, 20.8, cy, 1e-9)
}

func TestDefaultIsIdentity(t *testing.T) {
	cx, cy := Default().ScreenToCanvas(7, 9)
	assert.Equal(t, 7.0, cx)
	assert.Equal(t, 9.0, cy)

	// a zero value behaves like zoom 1 instead of dividing by zero
	cx, cy = View{}.ScreenToCanvas(7, 9)
	assert.Equal(t, 7.0, cx)
	assert.Equal(t, 9.0, cy)
}

func TestZoomAtKeepsAnchor(t *testing.T) {
	v := View{Zoom: 1, PanX: 10, PanY: 10}
	beforeX, beforeY := v.ScreenToCanvas(200, 150)
	z := v.ZoomAt(DefaultZoomStep, 200, 150, DefaultLimits())
	assert.InDelta(t, 1.2, z.Zoom, 1e-9)
	afterX, afterY := z.ScreenToCanvas(200, 150)
	assert.InDelta(t, beforeX, afterX, 1e-9)
	assert.InDelta(t, beforeY, afterY, 1e-9)
}

func TestZoomClamped(t *testing.T) {
	l := Limits{Min: 0.5, Max: 2}
	v := Default().ZoomAt(10, 0, 0, l)
	assert.Equal(t, 2.0, v.Zoom)
	v = Default().ZoomAt(0.01, 0, 0, l)
	assert.Equal(t, 0.5, v.Zoom)
}

func TestPanBy(t *testing.T) {
	v := Default().PanBy(5, -3).PanBy(1, 1)
	assert.Equal(t, View{Zoom: 1, PanX: 6, PanY: -2}, v)
}
