// Package export writes boards out as PNG images and PDF pages.
package export

import (
	"localboard/internal/state"
)

// DefaultMargin is the blank border around exported content, in canvas
// units.
const DefaultMargin = 20.0

// SceneBounds returns the box enclosing every stroke of scene. ok is false
// for a scene with nothing to bound.
func SceneBounds(scene []state.Stroke, m state.TextMeasurer) (b state.Bounds, ok bool) {
	for _, s := range scene {
		sb, sok := state.ComputeBounds(s, m)
		if !sok {
			continue
		}
		// strokes are painted with their width
		sb = sb.Expand(s.StrokeWidth / 2)
		if !ok {
			b, ok = sb, true
			continue
		}
		b = b.Union(sb)
	}
	return b, ok
}
