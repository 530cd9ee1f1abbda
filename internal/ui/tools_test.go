package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localboard/internal/controller"
	"localboard/internal/render"
	"localboard/internal/state"
)

func newToolbar(t *testing.T) (*controller.Controller, *Toolbar) {
	t.Helper()
	test.NewTempApp(t)
	fonts, err := render.NewFontMeasurer()
	require.NoError(t, err)
	ctrl := controller.New(state.NewBoard(fonts, 0), controller.DefaultOptions())
	board := NewBoardWidget(ctrl, fonts, nil, 50)
	return ctrl, NewToolbar(ctrl, board)
}

func TestToolbarFollowsTool(t *testing.T) {
	ctrl, tb := newToolbar(t)
	assert.Equal(t, widget.HighImportance, tb.buttons[controller.ToolSelect].Importance)

	ctrl.SetTool(controller.ToolPen)
	assert.Equal(t, widget.HighImportance, tb.buttons[controller.ToolPen].Importance)
	assert.Equal(t, widget.MediumImportance, tb.buttons[controller.ToolSelect].Importance)
	assert.Contains(t, tb.status.Text, "Pen")
}

func TestToolbarFollowsColorAndWidth(t *testing.T) {
	ctrl, tb := newToolbar(t)
	assert.Equal(t, float32(3), tb.swatches[0].border.StrokeWidth, "black is the default colour")

	tb.swatches[1].Tapped(nil)
	assert.Equal(t, "#e53935", ctrl.Color())
	assert.Equal(t, float32(1), tb.swatches[0].border.StrokeWidth)
	assert.Equal(t, float32(3), tb.swatches[1].border.StrokeWidth)

	ctrl.SetStrokeWidth(12)
	assert.Equal(t, 12.0, tb.slider.Value)

	ctrl.SetMathMode(true)
	assert.True(t, tb.math.Checked)
}

func TestToggleGrid(t *testing.T) {
	_, tb := newToolbar(t)
	b := tb.board
	b.ToggleGrid()
	assert.Zero(t, b.renderer.GridSize)
	b.ToggleGrid()
	assert.Equal(t, 50.0, b.renderer.GridSize)
}
