package render

import (
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// FontMeasurer measures and supplies faces of the board font (Go Regular).
// It implements state.TextMeasurer so bounds, hit-testing and painting all
// use the same metrics.
type FontMeasurer struct {
	source *text.FontSource

	mu    sync.Mutex
	faces map[float64]text.Face
}

// NewFontMeasurer loads the board font.
func NewFontMeasurer() (*FontMeasurer, error) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("load board font: %w", err)
	}
	return &FontMeasurer{source: src, faces: make(map[float64]text.Face)}, nil
}

// faceStep is the size granularity of cached faces.
const faceStep = 0.5

// Face returns the face at size rounded to faceStep, cached.
func (f *FontMeasurer) Face(size float64) text.Face {
	size = math.Max(faceStep, math.Round(size/faceStep)*faceStep)
	f.mu.Lock()
	defer f.mu.Unlock()
	face, ok := f.faces[size]
	if !ok {
		face = f.source.Face(size)
		f.faces[size] = face
	}
	return face
}

// MeasureText returns the advance width of line at fontSize.
func (f *FontMeasurer) MeasureText(line string, fontSize float64) float64 {
	if line == "" {
		return 0
	}
	return f.Face(fontSize).Advance(line)
}

// Ascent returns the distance from the top of a line to its baseline.
func (f *FontMeasurer) Ascent(fontSize float64) float64 {
	return f.Face(fontSize).Metrics().Ascent
}
