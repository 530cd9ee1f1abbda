package document

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localboard/internal/state"
)

func sampleStrokes() []state.Stroke {
	pen := state.NewPenStroke([]state.Point{{X: 1, Y: 2}, {X: 3, Y: 4}}, "#ff0000", 3)
	box := state.NewShapeStroke(state.TypeRectangle, state.Point{X: 10, Y: 10}, state.Point{X: 0, Y: 0}, "blue", 2)
	box.Rotation = 0.5
	text := state.NewTextStroke(state.Point{X: 5, Y: 5}, "x^2\nline", "#000000", 2, true)
	return []state.Stroke{pen, box, text}
}

func TestWriteRead(t *testing.T) {
	d := New("Sketch", sampleStrokes())
	d.Thumbnail = "data:image/png;base64,AAAA"

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d))
	assert.Contains(t, buf.String(), `"strokeWidth": 3`)
	assert.Contains(t, buf.String(), `"createdAt"`)

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, "Sketch", got.Name)
	assert.Equal(t, d.Strokes, got.Strokes)
	assert.Equal(t, d.Thumbnail, got.Thumbnail)
	assert.True(t, d.CreatedAt.Equal(got.CreatedAt))
}

func TestNewDefaults(t *testing.T) {
	d := New("  ", nil)
	assert.Equal(t, DefaultName, d.Name)
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, d.CreatedAt, d.UpdatedAt)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d))
	assert.Contains(t, buf.String(), `"strokes": []`)
}

func TestUpdate(t *testing.T) {
	d := New("a", nil)
	later := d.CreatedAt.Add(time.Hour)
	d.Update(sampleStrokes(), "thumb", later)
	assert.Len(t, d.Strokes, 3)
	assert.Equal(t, "thumb", d.Thumbnail)
	assert.True(t, later.Equal(d.UpdatedAt))
	assert.True(t, d.CreatedAt.Before(d.UpdatedAt))
}

func TestReadEmpty(t *testing.T) {
	_, err := Read(strings.NewReader("  \n"))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestReadBareStrokeArray(t *testing.T) {
	d, err := Read(strings.NewReader(`[{"id":"a","type":"pen","points":[{"x":1,"y":1}],"color":"black","strokeWidth":2}]`))
	require.NoError(t, err)
	require.Len(t, d.Strokes, 1)
	assert.Equal(t, "a", d.Strokes[0].ID)
	assert.Equal(t, DefaultName, d.Name)
	assert.NotEmpty(t, d.ID)
}

func TestReadDropsMalformedStrokes(t *testing.T) {
	d, err := Read(strings.NewReader(`{"id":"doc","name":"n","strokes":[
		{"id":"ok","type":"line","startPoint":{"x":0,"y":0},"endPoint":{"x":1,"y":1},"color":"red","strokeWidth":1},
		{"id":"bad","type":"rectangle","color":"red","strokeWidth":1},
		{"id":"odd","type":"spiral","color":"red","strokeWidth":1}
	]}`))
	require.NoError(t, err)
	require.Len(t, d.Strokes, 1)
	assert.Equal(t, "ok", d.Strokes[0].ID)
}

func TestReadInvalidJSON(t *testing.T) {
	_, err := Read(strings.NewReader(`{"strokes": [`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyDocument)
}

func TestSaveOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	d := New("file", sampleStrokes())
	require.NoError(t, Save(path, d))

	got, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, d.Strokes, got.Strokes)

	_, err = Open(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
