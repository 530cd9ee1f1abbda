package export

import (
	"bytes"
	"encoding/base64"
	"image/color"
	"image/png"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localboard/internal/render"
	"localboard/internal/state"
)

func scene() []state.Stroke {
	box := state.NewShapeStroke(state.TypeRectangle, state.Point{X: 10, Y: 10}, state.Point{X: 110, Y: 60}, "#ff0000", 4)
	ring := state.NewShapeStroke(state.TypeEllipse, state.Point{X: 0, Y: 100}, state.Point{X: 50, Y: 150}, "blue", 2)
	ring.Rotation = math.Pi / 4
	line := state.NewShapeStroke(state.TypeLine, state.Point{X: 0, Y: 0}, state.Point{X: 30, Y: 30}, "#000", 2)
	pen := state.NewPenStroke([]state.Point{{X: 5, Y: 5}, {X: 15, Y: 8}, {X: 25, Y: 20}}, "#00aa00", 3)
	dot := state.NewPenStroke([]state.Point{{X: 60, Y: 60}}, "#00aa00", 3)
	note := state.NewTextStroke(state.Point{X: 20, Y: 80}, "hello\nworld", "#222222", 2, false)
	formula := state.NewTextStroke(state.Point{X: 60, Y: 80}, "(a)/(b) x^2*y_1", "#222222", 2, true)
	return []state.Stroke{box, ring, line, pen, dot, note, formula}
}

func TestSceneBounds(t *testing.T) {
	_, ok := SceneBounds(nil, nil)
	assert.False(t, ok)

	box := state.NewShapeStroke(state.TypeRectangle, state.Point{X: 10, Y: 10}, state.Point{X: 110, Y: 60}, "#ff0000", 4)
	line := state.NewShapeStroke(state.TypeLine, state.Point{X: -20, Y: 0}, state.Point{X: 0, Y: 100}, "#000", 2)
	b, ok := SceneBounds([]state.Stroke{box, line}, nil)
	require.True(t, ok)
	assert.Equal(t, state.Bounds{MinX: -21, MinY: -1, MaxX: 112, MaxY: 101}, b)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, scene(), nil))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))

	buf.Reset()
	require.NoError(t, WritePDF(&buf, nil, nil), "an empty board still makes a page")
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF-"))
}

func TestWritePDFFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.pdf")
	require.NoError(t, WritePDFFile(path, scene(), nil))
	assert.FileExists(t, path)
}

func TestRasterize(t *testing.T) {
	fonts, err := render.NewFontMeasurer()
	require.NoError(t, err)

	box := state.NewShapeStroke(state.TypeRectangle, state.Point{X: 0, Y: 0}, state.Point{X: 100, Y: 50}, "#ff0000", 4)
	img := Rasterize([]state.Stroke{box}, fonts, ImageOptions{Scale: 2, Margin: 10})
	// 104x54 painted box plus margins, doubled
	assert.Equal(t, 248, img.Bounds().Dx())
	assert.Equal(t, 148, img.Bounds().Dy())

	r, g, b, a := img.At(2, 2).RGBA()
	assert.Equal(t, [4]uint32{0xffff, 0xffff, 0xffff, 0xffff}, [4]uint32{r, g, b, a}, "margin is background")

	// the left edge of the rectangle at canvas x=0, mid height
	edge := color.NRGBAModel.Convert(img.At(24, 74)).(color.NRGBA)
	assert.Greater(t, edge.R, edge.G)

	empty := Rasterize(nil, fonts, ImageOptions{})
	assert.Equal(t, emptyImageSize, empty.Bounds().Dx())
}

func TestWritePNG(t *testing.T) {
	fonts, err := render.NewFontMeasurer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, scene(), fonts, ImageOptions{Margin: DefaultMargin}))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Positive(t, img.Bounds().Dx())
}

func TestThumbnail(t *testing.T) {
	fonts, err := render.NewFontMeasurer()
	require.NoError(t, err)

	url, err := Thumbnail(scene(), fonts, 128)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, "data:image/png;base64,"))
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), 128)
	assert.LessOrEqual(t, img.Bounds().Dy(), 128)
	assert.True(t, img.Bounds().Dx() == 128 || img.Bounds().Dy() == 128)

	_, err = Thumbnail(nil, fonts, 0)
	assert.Error(t, err)
}
