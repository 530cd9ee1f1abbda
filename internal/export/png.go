package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/gogpu/gg"

	"localboard/internal/render"
	"localboard/internal/state"
	"localboard/internal/view"
)

const (
	emptyImageSize = 64
	maxImageSide   = 8192
)

// ImageOptions controls rasterisation.
type ImageOptions struct {
	// Scale is raster pixels per canvas unit; 0 means 1.
	Scale      float64
	Margin     float64
	Background color.Color
}

// Rasterize paints the whole scene, cropped to its bounds plus the margin.
func Rasterize(scene []state.Stroke, fonts *render.FontMeasurer, opts ImageOptions) image.Image {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	b, ok := SceneBounds(scene, fonts)
	if !ok {
		b = state.Bounds{MaxX: emptyImageSize, MaxY: emptyImageSize}
		opts.Margin = 0
	}
	w := pixels((b.Width() + 2*opts.Margin) * opts.Scale)
	h := pixels((b.Height() + 2*opts.Margin) * opts.Scale)
	if w > maxImageSide || h > maxImageSide {
		shrink := float64(maxImageSide) / float64(max(w, h))
		opts.Scale *= shrink
		w = pixels((b.Width() + 2*opts.Margin) * opts.Scale)
		h = pixels((b.Height() + 2*opts.Margin) * opts.Scale)
	}
	return paint(scene, fonts, b, w, h, opts)
}

func paint(scene []state.Stroke, fonts *render.FontMeasurer, b state.Bounds, w, h int, opts ImageOptions) image.Image {
	dc := gg.NewContext(w, h)
	defer dc.Close()

	r := render.New(fonts)
	if opts.Background != nil {
		r.Background = opts.Background
	}
	r.Paint(render.NewGGSurface(dc, fonts), render.Frame{
		Scene: scene,
		View: view.View{
			Zoom: opts.Scale,
			PanX: (opts.Margin - b.MinX) * opts.Scale,
			PanY: (opts.Margin - b.MinY) * opts.Scale,
		},
	})
	_ = dc.FlushGPU()
	return dc.Image()
}

func pixels(v float64) int {
	return max(1, int(math.Ceil(v)))
}

// WritePNG encodes the rasterised scene as PNG.
func WritePNG(w io.Writer, scene []state.Stroke, fonts *render.FontMeasurer, opts ImageOptions) error {
	img := Rasterize(scene, fonts, opts)
	if err := encodePNG(w, img); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// Thumbnail renders the scene to fit a size×size box and returns it as a
// PNG data URL.
func Thumbnail(scene []state.Stroke, fonts *render.FontMeasurer, size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("thumbnail size %d", size)
	}
	b, ok := SceneBounds(scene, fonts)
	margin := DefaultMargin
	if !ok {
		b = state.Bounds{MaxX: float64(size), MaxY: float64(size)}
		margin = 0
	}
	fw, fh := b.Width()+2*margin, b.Height()+2*margin
	scale := math.Min(float64(size)/fw, float64(size)/fh)
	w := max(1, int(math.Round(fw*scale)))
	h := max(1, int(math.Round(fh*scale)))
	img := paint(scene, fonts, b, w, h, ImageOptions{Scale: scale, Margin: margin})

	var buf bytes.Buffer
	if err := encodePNG(&buf, img); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
