package render

import (
	"image/color"
	"log/slog"

	"github.com/gogpu/gg"
)

// GGSurface paints onto a gg raster context.
type GGSurface struct {
	dc    *gg.Context
	fonts *FontMeasurer
}

// NewGGSurface wraps dc. Text is drawn with fonts.
func NewGGSurface(dc *gg.Context, fonts *FontMeasurer) *GGSurface {
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	return &GGSurface{dc: dc, fonts: fonts}
}

// Context returns the wrapped gg context.
func (s *GGSurface) Context() *gg.Context { return s.dc }

func (s *GGSurface) Clear(c color.Color) {
	s.dc.Push()
	s.dc.Identity()
	s.dc.ClearWithColor(gg.FromColor(c))
	s.dc.Pop()
}

func (s *GGSurface) Push()                  { s.dc.Push() }
func (s *GGSurface) Pop()                   { s.dc.Pop() }
func (s *GGSurface) Translate(x, y float64) { s.dc.Translate(x, y) }
func (s *GGSurface) Scale(x, y float64)     { s.dc.Scale(x, y) }
func (s *GGSurface) Rotate(angle float64)   { s.dc.Rotate(angle) }
func (s *GGSurface) SetColor(c color.Color) { s.dc.SetColor(c) }
func (s *GGSurface) SetLineWidth(w float64) { s.dc.SetLineWidth(w) }
func (s *GGSurface) SetDash(l ...float64)   { s.dc.SetDash(l...) }
func (s *GGSurface) MoveTo(x, y float64)    { s.dc.MoveTo(x, y) }
func (s *GGSurface) LineTo(x, y float64)    { s.dc.LineTo(x, y) }
func (s *GGSurface) ClosePath()             { s.dc.ClosePath() }

func (s *GGSurface) QuadraticTo(cx, cy, x, y float64) { s.dc.QuadraticTo(cx, cy, x, y) }

func (s *GGSurface) DrawRectangle(x, y, w, h float64) { s.dc.DrawRectangle(x, y, w, h) }

func (s *GGSurface) DrawEllipse(cx, cy, rx, ry float64) { s.dc.DrawEllipse(cx, cy, rx, ry) }

func (s *GGSurface) DrawCircle(cx, cy, r float64) { s.dc.DrawCircle(cx, cy, r) }

func (s *GGSurface) Stroke() {
	if err := s.dc.Stroke(); err != nil {
		slog.Debug("render: stroke failed", "err", err)
	}
}

func (s *GGSurface) Fill() {
	if err := s.dc.Fill(); err != nil {
		slog.Debug("render: fill failed", "err", err)
	}
}

func (s *GGSurface) DrawString(text string, x, y, fontSize float64) {
	if text == "" {
		return
	}
	s.dc.SetFont(s.fonts.Face(fontSize))
	s.dc.DrawString(text, x, y+s.fonts.Ascent(fontSize))
}
