package state

import (
	"log/slog"
	"slices"
	"sync"
)

// ChangeKind classifies a Board notification.
type ChangeKind int

const (
	// ChangeScene is sent for transient scene updates that are not recorded.
	ChangeScene ChangeKind = iota
	// ChangeHistory is sent when the recorded scene or the history position changes.
	ChangeHistory
	// ChangeSelection is sent when the selected ids change.
	ChangeSelection
)

// Change describes one Board notification.
type Change struct {
	Kind   ChangeKind
	Action string
}

// Board owns the scene, its history and the selection. Every recorded
// mutation goes through Commit, which pushes exactly one history record.
// The selection is the single source of truth for "is selected".
type Board struct {
	mu        sync.RWMutex
	scene     []Stroke
	history   *History
	selection []string
	measurer  TextMeasurer
	listeners []func(Change)
}

// NewBoard returns an empty board. m measures text for bounds; nil selects
// FallbackMeasurer.
func NewBoard(m TextMeasurer, historyLimit int) *Board {
	return &Board{
		history:  NewHistory(nil, historyLimit),
		measurer: measurerOrFallback(m),
	}
}

// Measurer returns the text measurer used for bounds.
func (b *Board) Measurer() TextMeasurer { return b.measurer }

// OnChange registers fn to be called after every change.
func (b *Board) OnChange(fn func(Change)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

func (b *Board) notify(c Change) {
	b.mu.RLock()
	listeners := slices.Clone(b.listeners)
	b.mu.RUnlock()
	for _, fn := range listeners {
		fn(c)
	}
}

// Strokes returns a copy of the current scene in z-order.
func (b *Board) Strokes() []Stroke {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return snapshot(b.scene)
}

// Stroke returns the stroke with the given id.
func (b *Board) Stroke(id string) (Stroke, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return FindStroke(b.scene, id)
}

// Len returns the number of strokes in the scene.
func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.scene)
}

// Preview replaces the scene without recording it. The gesture that calls
// Preview must finish with Commit or Revert.
func (b *Board) Preview(scene []Stroke) {
	b.mu.Lock()
	b.scene = snapshot(scene)
	b.mu.Unlock()
	b.notify(Change{Kind: ChangeScene})
}

// Revert drops any previewed scene and shows the current record again.
func (b *Board) Revert() {
	b.mu.Lock()
	b.scene = b.history.Current()
	b.mu.Unlock()
	b.notify(Change{Kind: ChangeScene})
}

// Commit replaces the scene and records it as one history entry.
func (b *Board) Commit(action string, scene []Stroke) {
	b.mu.Lock()
	b.scene = snapshot(scene)
	b.history.Push(action, b.scene)
	b.selection = pruneSelection(b.selection, b.scene)
	n, idx := b.history.Len(), b.history.Index()
	b.mu.Unlock()
	slog.Debug("board: commit", "action", action, "strokes", len(scene), "history", n, "index", idx)
	b.notify(Change{Kind: ChangeHistory, Action: action})
}

// Undo restores the previous record. It reports false when there is none.
func (b *Board) Undo() bool {
	b.mu.Lock()
	scene, action, ok := b.history.Undo()
	if ok {
		b.scene = scene
		b.selection = pruneSelection(b.selection, b.scene)
	}
	b.mu.Unlock()
	if !ok {
		return false
	}
	slog.Debug("board: undo", "action", action)
	b.notify(Change{Kind: ChangeHistory, Action: action})
	return true
}

// Redo reapplies the next record. It reports false when there is none.
func (b *Board) Redo() bool {
	b.mu.Lock()
	scene, action, ok := b.history.Redo()
	if ok {
		b.scene = scene
		b.selection = pruneSelection(b.selection, b.scene)
	}
	b.mu.Unlock()
	if !ok {
		return false
	}
	slog.Debug("board: redo", "action", action)
	b.notify(Change{Kind: ChangeHistory, Action: action})
	return true
}

// Load replaces the scene wholesale, resets history to a single record and
// clears the selection.
func (b *Board) Load(strokes []Stroke) {
	for _, s := range strokes {
		if err := s.Validate(); err != nil {
			slog.Warn("board: loading malformed stroke", "err", err)
		}
	}
	b.mu.Lock()
	b.scene = snapshot(strokes)
	b.history.Reset(b.scene)
	b.selection = nil
	b.mu.Unlock()
	slog.Info("board: loaded", "strokes", len(strokes))
	b.notify(Change{Kind: ChangeHistory, Action: "load"})
}

func (b *Board) CanUndo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.CanUndo()
}

func (b *Board) CanRedo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.CanRedo()
}

// HistoryLen returns the number of history records.
func (b *Board) HistoryLen() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.Len()
}

// HistoryIndex returns the position of the shown record.
func (b *Board) HistoryIndex() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.Index()
}

// UndoAction returns the label of the action Undo would revert.
func (b *Board) UndoAction() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.UndoAction()
}

// RedoAction returns the label of the action Redo would reapply.
func (b *Board) RedoAction() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.RedoAction()
}

// Selection returns the selected ids in selection order.
func (b *Board) Selection() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.selection)
}

// IsSelected reports whether id is in the selection.
func (b *Board) IsSelected(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Contains(b.selection, id)
}

// SelectedStrokes returns the selected strokes in z-order.
func (b *Board) SelectedStrokes() []Stroke {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []Stroke
	for _, s := range b.scene {
		if slices.Contains(b.selection, s.ID) {
			out = append(out, s)
		}
	}
	return out
}

// SetSelection replaces the selection. Duplicates and ids not in the scene
// are dropped.
func (b *Board) SetSelection(ids []string) {
	b.mu.Lock()
	sel := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(sel, id) && IndexOf(b.scene, id) >= 0 {
			sel = append(sel, id)
		}
	}
	changed := !slices.Equal(sel, b.selection)
	b.selection = sel
	b.mu.Unlock()
	if changed {
		b.notify(Change{Kind: ChangeSelection})
	}
}

// AddToSelection appends ids to the selection.
func (b *Board) AddToSelection(ids ...string) {
	b.SetSelection(append(b.Selection(), ids...))
}

// ClearSelection empties the selection.
func (b *Board) ClearSelection() {
	b.SetSelection(nil)
}

func pruneSelection(sel []string, scene []Stroke) []string {
	out := sel[:0:0]
	for _, id := range sel {
		if IndexOf(scene, id) >= 0 {
			out = append(out, id)
		}
	}
	return out
}
