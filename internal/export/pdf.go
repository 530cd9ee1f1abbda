package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"localboard/internal/render"
	"localboard/internal/state"
)

const (
	pdfFont        = "Helvetica"
	pdfAscent      = 0.8
	emptyPageWidth = 595.28
	emptyPageHigh  = 841.89
)

// WritePDF writes the scene as a single PDF page sized to its content. One
// canvas unit is one point.
func WritePDF(w io.Writer, scene []state.Stroke, m state.TextMeasurer) error {
	pdf := newPDF(scene, m)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WritePDFFile writes the scene as a PDF file at path.
func WritePDFFile(path string, scene []state.Stroke, m state.TextMeasurer) error {
	pdf := newPDF(scene, m)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}

type pdfWriter struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	m      state.TextMeasurer
	ox, oy float64
}

func newPDF(scene []state.Stroke, m state.TextMeasurer) *gofpdf.Fpdf {
	b, ok := SceneBounds(scene, m)
	size := gofpdf.SizeType{Wd: emptyPageWidth, Ht: emptyPageHigh}
	if ok {
		size = gofpdf.SizeType{Wd: b.Width() + 2*DefaultMargin, Ht: b.Height() + 2*DefaultMargin}
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           size,
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")

	pw := &pdfWriter{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
		m:   m,
	}
	if ok {
		pw.ox, pw.oy = DefaultMargin-b.MinX, DefaultMargin-b.MinY
	}
	for _, s := range scene {
		pw.stroke(s)
	}
	return pdf
}

func (w *pdfWriter) pt(p state.Point) (float64, float64) {
	return p.X + w.ox, p.Y + w.oy
}

func (w *pdfWriter) setColor(c string) {
	n := color.NRGBAModel.Convert(render.ParseColor(c)).(color.NRGBA)
	w.pdf.SetDrawColor(int(n.R), int(n.G), int(n.B))
	w.pdf.SetFillColor(int(n.R), int(n.G), int(n.B))
	w.pdf.SetTextColor(int(n.R), int(n.G), int(n.B))
	w.pdf.SetAlpha(float64(n.A)/255, "Normal")
}

func (w *pdfWriter) stroke(s state.Stroke) {
	if s.Rotation != 0 {
		pivot, ok := state.Pivot(s, w.m)
		if !ok {
			return
		}
		px, py := w.pt(pivot)
		w.pdf.TransformBegin()
		// gofpdf rotates counter-clockwise; canvas angles turn clockwise
		w.pdf.TransformRotate(-s.Rotation*180/math.Pi, px, py)
		defer w.pdf.TransformEnd()
	}

	w.setColor(s.Color)
	w.pdf.SetLineWidth(s.StrokeWidth)
	switch s.Type {
	case state.TypePen:
		w.pen(s.Points, s.StrokeWidth)
	case state.TypeRectangle:
		if b, ok := state.UnrotatedBounds(s, w.m); ok {
			x, y := w.pt(state.Point{X: b.MinX, Y: b.MinY})
			w.pdf.Rect(x, y, b.Width(), b.Height(), "D")
		}
	case state.TypeEllipse:
		if b, ok := state.UnrotatedBounds(s, w.m); ok {
			x, y := w.pt(b.Center())
			w.pdf.Ellipse(x, y, b.Width()/2, b.Height()/2, 0, "D")
		}
	case state.TypeLine:
		if s.StartPoint != nil && s.EndPoint != nil {
			x0, y0 := w.pt(*s.StartPoint)
			x1, y1 := w.pt(*s.EndPoint)
			w.pdf.Line(x0, y0, x1, y1)
		}
	case state.TypeText:
		if anchor, ok := s.Anchor(); ok {
			w.text(s, anchor)
		}
	}
}

// pen mirrors the on-screen pen: pressure width per segment, quadratic
// smoothing through midpoints, last segment straight.
func (w *pdfWriter) pen(points []state.Point, width float64) {
	if len(points) == 1 {
		x, y := w.pt(points[0])
		w.pdf.Circle(x, y, width/2, "F")
		return
	}
	cur := points[0]
	for i := 0; i < len(points)-1; i++ {
		next := points[i+1]
		w.pdf.SetLineWidth(render.PressureWidth(width, state.Distance(points[i], next)))
		x0, y0 := w.pt(cur)
		cx, cy := w.pt(next)
		if i+2 < len(points) {
			mid := state.Point{X: (next.X + points[i+2].X) / 2, Y: (next.Y + points[i+2].Y) / 2}
			x1, y1 := w.pt(mid)
			w.pdf.Curve(x0, y0, cx, cy, x1, y1, "D")
			cur = mid
		} else {
			w.pdf.Line(x0, y0, cx, cy)
		}
	}
}

func (w *pdfWriter) text(s state.Stroke, anchor state.Point) {
	size := s.EffectiveFontSize()
	lh := size * state.LineHeightFactor
	x, y := w.pt(anchor)
	for i, line := range strings.Split(s.Text, "\n") {
		ly := y + float64(i)*lh
		if !s.MathMode {
			w.pdf.SetFont(pdfFont, "", size)
			w.pdf.Text(x, ly+size*pdfAscent, w.tr(line))
			continue
		}
		layout := render.LayoutMath(line, size, pdfMeasurer{w})
		for _, run := range layout.Runs {
			if run.Bar {
				w.pdf.SetLineWidth(run.Size)
				w.pdf.Line(x+run.X, ly+run.Y, x+run.X+run.W, ly+run.Y)
				continue
			}
			w.pdf.SetFont(pdfFont, "", run.Size)
			w.pdf.Text(x+run.X, ly+run.Y+run.Size*pdfAscent, w.tr(run.Text))
		}
	}
}

// pdfMeasurer measures with the PDF's own font so math runs line up.
type pdfMeasurer struct{ w *pdfWriter }

func (m pdfMeasurer) MeasureText(line string, fontSize float64) float64 {
	m.w.pdf.SetFont(pdfFont, "", fontSize)
	return m.w.pdf.GetStringWidth(m.w.tr(line))
}
