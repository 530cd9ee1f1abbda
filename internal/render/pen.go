package render

import (
	"math"

	"localboard/internal/state"
)

const (
	minPressure   = 0.3
	pressureRange = 20.0
)

// PressureWidth simulates pen pressure from the distance between two
// samples: slow strokes (short distances) paint thicker.
func PressureWidth(strokeWidth, distance float64) float64 {
	return strokeWidth * math.Max(minPressure, 1-math.Min(distance, pressureRange)/pressureRange)
}

func paintPen(s Surface, points []state.Point, width float64) {
	switch len(points) {
	case 0:
		return
	case 1:
		s.DrawCircle(points[0].X, points[0].Y, width/2)
		s.Fill()
		return
	}
	cur := points[0]
	for i := 0; i < len(points)-1; i++ {
		next := points[i+1]
		s.SetLineWidth(PressureWidth(width, state.Distance(points[i], next)))
		s.MoveTo(cur.X, cur.Y)
		if i+2 < len(points) {
			after := points[i+2]
			mid := state.Point{X: (next.X + after.X) / 2, Y: (next.Y + after.Y) / 2}
			s.QuadraticTo(next.X, next.Y, mid.X, mid.Y)
			cur = mid
		} else {
			s.LineTo(next.X, next.Y)
		}
		s.Stroke()
	}
}
