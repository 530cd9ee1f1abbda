package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localboard/internal/state"
)

func textStroke(id, text string) state.Stroke {
	s := state.NewTextStroke(state.Point{X: 0, Y: 0}, text, "#000000", 2, false)
	s.ID = id
	return s
}

func typeString(c *Controller, s string) {
	for _, r := range s {
		c.KeyTyped(r)
	}
}

func TestTextToolCreatesText(t *testing.T) {
	c, b := newController(t)
	c.SetTool(ToolText)
	click(c, 100, 100)
	require.True(t, c.Editing())

	typeString(c, "hi")
	c.KeyDown(KeyEnter)
	typeString(c, "x")

	e := c.Frame().Editing
	require.NotNil(t, e)
	assert.Equal(t, "hi\nx", e.Text)
	assert.Equal(t, 4, e.Caret)
	assert.Equal(t, "", e.ID)
	assert.Equal(t, 0, b.Len(), "nothing is added until commit")

	click(c, 500, 500)
	assert.False(t, c.Editing())
	assert.Equal(t, ToolSelect, c.Tool())
	require.Equal(t, 1, b.Len())
	assert.Equal(t, 2, b.HistoryLen())

	s := b.Strokes()[0]
	assert.Equal(t, state.TypeText, s.Type)
	assert.Equal(t, "hi\nx", s.Text)
	assert.Equal(t, []state.Point{{X: 100, Y: 100}}, s.Points)
	assert.Equal(t, 16.0, s.FontSize)
	assert.Equal(t, "add text", b.UndoAction())
}

func TestEmptyTextIsDiscarded(t *testing.T) {
	c, b := newController(t)
	c.SetTool(ToolText)
	click(c, 100, 100)
	typeString(c, "  ")
	click(c, 500, 500)

	assert.False(t, c.Editing())
	assert.Equal(t, ToolSelect, c.Tool())
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 1, b.HistoryLen())
}

func TestEscapeCancelsText(t *testing.T) {
	c, b := newController(t)
	c.SetTool(ToolText)
	click(c, 100, 100)
	typeString(c, "abc")
	require.True(t, c.KeyDown(KeyEscape))

	assert.False(t, c.Editing())
	assert.Equal(t, ToolText, c.Tool())
	assert.Equal(t, 1, b.HistoryLen())
}

func TestDoubleClickEditsInPlace(t *testing.T) {
	t.Run("edit", func(t *testing.T) {
		c, b := newController(t, textStroke("t", "abc"))
		c.DoubleClick(at(5, 5, 0))
		require.True(t, c.Editing())
		e := c.Frame().Editing
		assert.Equal(t, "t", e.ID)
		assert.Equal(t, 3, e.Caret)
		assert.Equal(t, []string{"t"}, c.Frame().Selected)

		typeString(c, "d")
		click(c, 300, 300)
		assert.Equal(t, "abcd", b.Strokes()[0].Text)
		assert.Equal(t, 2, b.HistoryLen())
		assert.Equal(t, "edit text", b.UndoAction())
	})

	t.Run("unchanged", func(t *testing.T) {
		c, b := newController(t, textStroke("t", "abc"))
		c.DoubleClick(at(5, 5, 0))
		click(c, 300, 300)
		assert.False(t, c.Editing())
		assert.Equal(t, 1, b.HistoryLen())
	})

	t.Run("emptied text is deleted", func(t *testing.T) {
		c, b := newController(t, textStroke("t", "abc"))
		c.DoubleClick(at(5, 5, 0))
		for range 3 {
			c.KeyDown(KeyBackspace)
		}
		click(c, 300, 300)
		assert.Equal(t, 0, b.Len())
		assert.Equal(t, 2, b.HistoryLen())
	})

	t.Run("only for text and the select tool", func(t *testing.T) {
		c, _ := newController(t, rect("r", 0, 0, 10, 10), textStroke("t", "abc"))
		c.DoubleClick(at(-5, -5, 0))
		assert.False(t, c.Editing())

		c.SetTool(ToolPen)
		c.DoubleClick(at(20, 5, 0))
		assert.False(t, c.Editing())
	})
}

func TestTextToolClickOnTextEditsIt(t *testing.T) {
	c, _ := newController(t, textStroke("t", "abc"))
	c.SetTool(ToolText)
	click(c, 5, 5)
	require.True(t, c.Editing())
	assert.Equal(t, "t", c.Frame().Editing.ID)
}

func TestClickInsideLiveTextMovesCaret(t *testing.T) {
	c, b := newController(t, textStroke("t", "abc"))
	c.DoubleClick(at(5, 5, 0))

	// 16px text, fallback glyphs 9.6 wide
	click(c, 10, 5)
	require.True(t, c.Editing())
	assert.Equal(t, 1, c.Frame().Editing.Caret)

	typeString(c, "X")
	assert.Equal(t, "aXbc", c.Frame().Editing.Text)
	assert.Equal(t, 1, b.HistoryLen())
}

func TestEditKeys(t *testing.T) {
	c, _ := newController(t)
	c.SetTool(ToolText)
	click(c, 0, 0)
	typeString(c, "abcdef")
	c.KeyDown(KeyEnter)
	typeString(c, "xy")

	c.KeyDown(KeyUp)
	assert.Equal(t, 2, c.Frame().Editing.Caret)
	c.KeyDown(KeyEnd)
	assert.Equal(t, 6, c.Frame().Editing.Caret)
	c.KeyDown(KeyDown)
	assert.Equal(t, 9, c.Frame().Editing.Caret)
	c.KeyDown(KeyHome)
	assert.Equal(t, 7, c.Frame().Editing.Caret)
	c.KeyDown(KeyLeft)
	c.KeyDown(KeyBackspace)
	assert.Equal(t, "abcde\nxy", c.Frame().Editing.Text)
	c.KeyDown(KeyRight)
	c.KeyDown(KeyDelete)
	assert.Equal(t, "abcde\ny", c.Frame().Editing.Text)

	assert.False(t, c.KeyDown(KeySpace), "space arrives as a typed rune")
	assert.False(t, c.KeyTyped('\t'))
}

func TestSwitchingToolCommitsEdit(t *testing.T) {
	c, b := newController(t)
	c.SetTool(ToolText)
	click(c, 0, 0)
	typeString(c, "note")
	c.SetTool(ToolRectangle)

	assert.False(t, c.Editing())
	assert.Equal(t, ToolRectangle, c.Tool())
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, 2, b.HistoryLen())
}

func TestUndoWhileEditingCommitsFirst(t *testing.T) {
	c, b := newController(t)
	c.SetTool(ToolText)
	click(c, 0, 0)
	typeString(c, "note")
	require.True(t, c.Undo())

	assert.False(t, c.Editing())
	assert.Equal(t, 0, b.Len())
	require.True(t, c.Redo())
	assert.Equal(t, "note", b.Strokes()[0].Text)
}

func TestEditingStrokeIsHiddenFromScenePaint(t *testing.T) {
	c, _ := newController(t, textStroke("t", "abc"))
	c.DoubleClick(at(5, 5, 0))
	f := c.Frame()
	require.NotNil(t, f.Editing)
	assert.Equal(t, "t", f.Editing.ID)
	assert.Len(t, f.Scene, 1)
}

func TestBlinkCaret(t *testing.T) {
	c, _ := newController(t)
	assert.False(t, c.BlinkCaret())

	c.SetTool(ToolText)
	click(c, 0, 0)
	require.True(t, c.Frame().Editing.CaretVisible)
	assert.True(t, c.BlinkCaret())
	assert.False(t, c.Frame().Editing.CaretVisible)

	c.KeyTyped('a')
	assert.True(t, c.Frame().Editing.CaretVisible)
}

func TestMathModeFlowsIntoText(t *testing.T) {
	c, b := newController(t)
	c.SetMathMode(true)
	c.SetTool(ToolText)
	click(c, 0, 0)
	typeString(c, "x^2")
	assert.True(t, c.Frame().Editing.MathMode)
	click(c, 400, 400)
	assert.True(t, b.Strokes()[0].MathMode)
}

func handlePoint(t *testing.T, c *Controller, s state.Stroke, h state.Handle) state.Point {
	t.Helper()
	g, ok := state.HandleGeometryFor(s, 1, c.Board().Measurer())
	require.True(t, ok)
	local := g.Handle(h)
	return state.Point{X: g.Pivot.X + local.X, Y: g.Pivot.Y + local.Y}
}

func dragHandle(t *testing.T, c *Controller, s state.Stroke, h state.Handle, dx, dy float64) {
	t.Helper()
	p := handlePoint(t, c, s, h)
	require.Equal(t, h, c.HandleAt(p.X, p.Y))
	c.PointerDown(at(p.X, p.Y, 0))
	c.PointerMove(at(p.X+dx, p.Y+dy, 10))
	c.PointerUp(at(p.X+dx, p.Y+dy, 20))
}

func TestTextResizeGrowsFont(t *testing.T) {
	s := textStroke("t", "hi")
	c, b := newController(t, s)
	b.SetSelection([]string{"t"})

	dragHandle(t, c, s, state.HandleS, 0, 10)
	assert.Equal(t, 24.0, b.Strokes()[0].FontSize)
	assert.Equal(t, 2, b.HistoryLen())
	assert.Equal(t, "resize", b.UndoAction())
}

func TestTextSideHandleRecordsNothing(t *testing.T) {
	s := textStroke("t", "hi")
	c, b := newController(t, s)
	b.SetSelection([]string{"t"})

	dragHandle(t, c, s, state.HandleE, 40, 0)
	assert.Equal(t, 16.0, b.Strokes()[0].FontSize)
	assert.Equal(t, 1, b.HistoryLen())
	assert.False(t, b.CanUndo())
}

func TestTextResizeAtMinimumRecordsNothing(t *testing.T) {
	s := textStroke("t", "hi")
	s.FontSize = state.MinTextFontSize
	c, b := newController(t, s)
	b.SetSelection([]string{"t"})

	dragHandle(t, c, s, state.HandleS, 0, -30)
	assert.Equal(t, state.MinTextFontSize, b.Strokes()[0].FontSize)
	assert.Equal(t, 1, b.HistoryLen())
	assert.False(t, b.CanUndo())
}
