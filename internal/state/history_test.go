package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitN(h *History, n int) [][]Stroke {
	var scenes [][]Stroke
	scene := []Stroke{}
	for i := range n {
		scene = append(snapshot(scene), rect(float64(i), 0, float64(i)+10, 10))
		h.Push("draw rectangle", scene)
		scenes = append(scenes, scene)
	}
	return scenes
}

func TestHistoryMonotonic(t *testing.T) {
	h := NewHistory(nil, 0)
	commitN(h, 5)
	assert.Equal(t, 6, h.Len())
	assert.Equal(t, 5, h.Index())
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}

func TestHistoryUndoRedoRoundTrip(t *testing.T) {
	h := NewHistory(nil, 0)
	scenes := commitN(h, 6)
	before := h.Current()
	for k := 1; k <= 6; k++ {
		for range k {
			_, _, ok := h.Undo()
			require.True(t, ok)
		}
		for range k {
			_, _, ok := h.Redo()
			require.True(t, ok)
		}
		assert.Equal(t, before, h.Current())
	}
	assert.Equal(t, scenes[5], before)
}

func TestHistoryRedoBranchDiscarded(t *testing.T) {
	h := NewHistory(nil, 0)
	commitN(h, 3)
	h.Undo()
	h.Undo()
	assert.True(t, h.CanRedo())
	h.Push("draw", []Stroke{rect(0, 0, 1, 1)})
	assert.False(t, h.CanRedo())
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Index())
	_, _, ok := h.Redo()
	assert.False(t, ok)
}

func TestHistoryBoundsAreNoops(t *testing.T) {
	h := NewHistory(nil, 0)
	_, _, ok := h.Undo()
	assert.False(t, ok)
	_, _, ok = h.Redo()
	assert.False(t, ok)
	assert.Equal(t, 0, h.Index())
	assert.Equal(t, 1, h.Len())
}

func TestHistorySnapshotsAreIsolated(t *testing.T) {
	h := NewHistory(nil, 0)
	scene := []Stroke{rect(0, 0, 1, 1)}
	h.Push("draw", scene)
	scene[0] = rect(5, 5, 6, 6)
	cur := h.Current()
	assert.NotEqual(t, scene[0].ID, cur[0].ID)
}

func TestHistoryLimit(t *testing.T) {
	h := NewHistory(nil, 3)
	commitN(h, 5)
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Index())
	h.Undo()
	h.Undo()
	assert.False(t, h.CanUndo())
	assert.Len(t, h.Current(), 3)
}

func TestHistoryActionLabels(t *testing.T) {
	h := NewHistory(nil, 0)
	h.Push("draw pen", nil)
	h.Push("move", nil)
	assert.Equal(t, "move", h.UndoAction())
	assert.Equal(t, "", h.RedoAction())
	_, action, _ := h.Undo()
	assert.Equal(t, "move", action)
	assert.Equal(t, "move", h.RedoAction())
	assert.Equal(t, "draw pen", h.UndoAction())
}
