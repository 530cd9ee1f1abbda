package controller

import (
	"math"
	"slices"

	"localboard/internal/state"
)

// PointerDown starts a gesture for the active tool.
func (c *Controller) PointerDown(e PointerEvent) {
	c.finishGesture()

	p := c.toCanvas(e.X, e.Y)
	c.start, c.last = p, p
	c.lastX, c.lastY = e.X, e.Y
	c.lastSample = e.Time

	if e.Button == ButtonTertiary || (e.Button == ButtonPrimary && c.spaceHeld) {
		c.gesture = gesturePanning
		return
	}
	if e.Button != ButtonPrimary {
		return
	}

	if c.edit != nil {
		if c.editBox().Contains(p) {
			c.placeCaret(p)
		} else {
			c.commitEdit()
		}
		c.changed()
		return
	}

	switch c.tool {
	case ToolSelect:
		c.selectDown(p, e.Shift)
	case ToolPen:
		draft := state.NewPenStroke([]state.Point{p}, c.color, c.width)
		c.draft = &draft
		c.gesture = gestureDrawingPen
	case ToolEraser:
		c.gesture = gestureErasing
		c.eraseAt(p)
	case ToolRectangle, ToolEllipse, ToolLine:
		draft := state.NewShapeStroke(state.StrokeType(c.tool), p, p, c.color, c.width)
		c.draft = &draft
		c.gesture = gestureDrawingShape
	case ToolText:
		c.openText(p)
	}
	c.changed()
}

func (c *Controller) selectDown(p state.Point, shift bool) {
	scene := c.board.Strokes()
	sel := c.board.Selection()

	switch h := state.ResizeHandleAt(p, sel, scene, c.view.Zoom, c.measurer); h {
	case state.HandleNone:
	case state.HandleRotate:
		c.beginTransform(gestureRotating, scene, sel[0], h)
		return
	default:
		c.beginTransform(gestureResizing, scene, sel[0], h)
		return
	}

	if hit, ok := state.StrokeAtPoint(p, scene, c.measurer); ok {
		switch {
		case shift:
			c.board.AddToSelection(hit.ID)
		case !c.board.IsSelected(hit.ID):
			c.board.SetSelection([]string{hit.ID})
		}
		c.gesture = gestureDragging
		c.base = scene
		return
	}

	c.keep = nil
	if shift {
		c.keep = sel
	} else {
		c.board.ClearSelection()
	}
	box := state.NormalizeBox(p, p)
	c.marquee = &box
	c.gesture = gestureMarquee
}

func (c *Controller) beginTransform(g gesture, scene []state.Stroke, id string, h state.Handle) {
	target, ok := state.FindStroke(scene, id)
	if !ok {
		return
	}
	c.gesture = g
	c.base = scene
	c.target = target
	c.handle = h
}

// PointerMove advances the active gesture. Scene changes are previews until
// the gesture ends.
func (c *Controller) PointerMove(e PointerEvent) {
	if c.gesture == gestureNone {
		return
	}
	p := c.toCanvas(e.X, e.Y)
	dx, dy := p.X-c.start.X, p.Y-c.start.Y

	switch c.gesture {
	case gesturePanning:
		c.view = c.view.PanBy(e.X-c.lastX, e.Y-c.lastY)
	case gestureMarquee:
		box := state.NormalizeBox(c.start, p)
		c.marquee = &box
		c.last = p
	case gestureDragging:
		if dx == 0 && dy == 0 {
			c.revertPreview()
			break
		}
		sel := c.board.Selection()
		scene := slices.Clone(c.base)
		for i, s := range scene {
			if slices.Contains(sel, s.ID) {
				scene[i] = state.ApplyTranslation(s, dx, dy)
			}
		}
		c.preview(scene)
	case gestureResizing:
		c.previewTransform(state.ApplyResize(c.target, c.handle, dx, dy))
	case gestureRotating:
		pivot, ok := state.Pivot(c.target, c.measurer)
		if !ok {
			break
		}
		angle := math.Atan2(p.Y-pivot.Y, p.X-pivot.X) - math.Atan2(c.start.Y-pivot.Y, c.start.X-pivot.X)
		c.previewTransform(state.ApplyRotation(c.target, angle))
	case gestureDrawingPen:
		if state.Distance(p, c.last) > penMinDistance && e.Time.Sub(c.lastSample) >= penMinInterval {
			c.draft.Points = append(c.draft.Points, p)
			c.last = p
			c.lastSample = e.Time
		}
	case gestureErasing:
		if state.Distance(p, c.last) > eraseStep {
			c.eraseAt(p)
			c.last = p
		}
	case gestureDrawingShape:
		end := p
		c.draft.EndPoint = &end
	}
	c.lastX, c.lastY = e.X, e.Y
	c.changed()
}

// PointerUp moves to the release position and finishes the gesture.
func (c *Controller) PointerUp(e PointerEvent) {
	if c.gesture == gestureNone {
		return
	}
	c.PointerMove(e)
	c.finishGesture()
}

// PointerLeave finishes the gesture exactly as a release would.
func (c *Controller) PointerLeave() {
	c.finishGesture()
}

func (c *Controller) preview(scene []state.Stroke) {
	c.pending = scene
	c.board.Preview(scene)
}

func (c *Controller) previewTarget(s state.Stroke) {
	scene := slices.Clone(c.base)
	if i := state.IndexOf(scene, s.ID); i >= 0 {
		scene[i] = s
		c.preview(scene)
	}
}

// previewTransform previews s in place of the gesture target, or drops the
// preview when s leaves the target's geometry as it was.
func (c *Controller) previewTransform(s state.Stroke) {
	if sameGeometry(s, c.target) {
		c.revertPreview()
		return
	}
	c.previewTarget(s)
}

func sameGeometry(a, b state.Stroke) bool {
	return slices.Equal(a.Points, b.Points) &&
		samePoint(a.StartPoint, b.StartPoint) &&
		samePoint(a.EndPoint, b.EndPoint) &&
		a.FontSize == b.FontSize &&
		a.Rotation == b.Rotation
}

func samePoint(a, b *state.Point) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (c *Controller) revertPreview() {
	if c.pending != nil {
		c.pending = nil
		c.board.Revert()
	}
}

// finishGesture ends the active gesture, recording at most one history entry.
func (c *Controller) finishGesture() {
	g := c.gesture
	if g == gestureNone {
		return
	}
	c.gesture = gestureNone

	switch g {
	case gestureMarquee:
		box := *c.marquee
		ids := state.StrokesInBox(
			state.Point{X: box.MinX, Y: box.MinY},
			state.Point{X: box.MaxX, Y: box.MaxY},
			c.board.Strokes(), c.measurer)
		c.board.SetSelection(append(slices.Clone(c.keep), ids...))
	case gestureDragging, gestureResizing, gestureRotating:
		if c.pending != nil {
			c.board.Commit(transformActions[g], c.pending)
		}
	case gestureDrawingPen:
		if len(c.draft.Points) > 1 {
			c.board.Commit("draw pen", append(c.board.Strokes(), *c.draft))
		}
	case gestureDrawingShape:
		c.board.Commit("draw "+string(c.draft.Type), append(c.board.Strokes(), *c.draft))
	}
	c.reset()
	c.changed()
}

var transformActions = map[gesture]string{
	gestureDragging: "move",
	gestureResizing: "resize",
	gestureRotating: "rotate",
}

// abortGesture drops the active gesture without recording anything.
func (c *Controller) abortGesture() {
	if c.gesture == gestureNone {
		return
	}
	c.revertPreview()
	c.gesture = gestureNone
	c.reset()
}

func (c *Controller) reset() {
	c.base = nil
	c.pending = nil
	c.target = state.Stroke{}
	c.handle = state.HandleNone
	c.draft = nil
	c.marquee = nil
	c.keep = nil
}

// eraseAt removes every stroke within the eraser radius of p. An erase that
// removes something is one history entry.
func (c *Controller) eraseAt(p state.Point) {
	radius := eraseFactor * c.width
	scene := c.board.Strokes()
	n := len(scene)
	scene = slices.DeleteFunc(scene, func(s state.Stroke) bool {
		return state.ErasedBy(s, p, radius, c.measurer)
	})
	if len(scene) < n {
		c.board.Commit("erase", scene)
	}
}
