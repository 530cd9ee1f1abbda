package state

// Record is one history entry: the scene as it stood after an action.
type Record struct {
	// Action describes the change that produced this scene, for display.
	Action string
	Scene  []Stroke
}

// History is a linear undo/redo stack of scene snapshots. Records[Index] is
// always the scene being shown; pushing a new record discards every record
// after Index.
//
// Snapshots copy the stroke slice but share point slices with the previous
// record, which is safe because strokes are never modified in place.
type History struct {
	records []Record
	index   int
	limit   int
}

// NewHistory starts a history holding a single snapshot of initial. A
// positive limit caps the number of records kept; the oldest are dropped.
func NewHistory(initial []Stroke, limit int) *History {
	h := &History{limit: limit}
	h.Reset(initial)
	return h
}

// Reset replaces the whole history with a single snapshot.
func (h *History) Reset(scene []Stroke) {
	h.records = []Record{{Action: "initial", Scene: snapshot(scene)}}
	h.index = 0
}

// Push records scene as the result of action, discarding any redo branch.
func (h *History) Push(action string, scene []Stroke) {
	h.records = append(h.records[:h.index+1], Record{Action: action, Scene: snapshot(scene)})
	h.index++
	if h.limit > 0 && len(h.records) > h.limit {
		drop := len(h.records) - h.limit
		h.records = append([]Record(nil), h.records[drop:]...)
		h.index -= drop
	}
}

// Undo steps back one record and returns the scene to show. ok is false at
// the start of the history.
func (h *History) Undo() (scene []Stroke, action string, ok bool) {
	if !h.CanUndo() {
		return nil, "", false
	}
	action = h.records[h.index].Action
	h.index--
	return snapshot(h.records[h.index].Scene), action, true
}

// Redo steps forward one record and returns the scene to show. ok is false
// at the end of the history.
func (h *History) Redo() (scene []Stroke, action string, ok bool) {
	if !h.CanRedo() {
		return nil, "", false
	}
	h.index++
	return snapshot(h.records[h.index].Scene), h.records[h.index].Action, true
}

func (h *History) CanUndo() bool { return h.index > 0 }
func (h *History) CanRedo() bool { return h.index < len(h.records)-1 }

// Len returns the number of records.
func (h *History) Len() int { return len(h.records) }

// Index returns the position of the current record.
func (h *History) Index() int { return h.index }

// Current returns a copy of the scene at the current record.
func (h *History) Current() []Stroke {
	return snapshot(h.records[h.index].Scene)
}

// UndoAction returns the label of the action Undo would revert.
func (h *History) UndoAction() string {
	if !h.CanUndo() {
		return ""
	}
	return h.records[h.index].Action
}

// RedoAction returns the label of the action Redo would reapply.
func (h *History) RedoAction() string {
	if !h.CanRedo() {
		return ""
	}
	return h.records[h.index+1].Action
}

func snapshot(scene []Stroke) []Stroke {
	out := make([]Stroke, len(scene))
	copy(out, scene)
	return out
}
