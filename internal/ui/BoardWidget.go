package ui

import (
	"image"
	"image/color"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/gogpu/gg"

	"localboard/internal/controller"
	"localboard/internal/render"
	"localboard/internal/state"
)

// BoardWidget shows the board and feeds pointer and keyboard input to the
// controller. Painting goes through a gg raster sized to the widget.
type BoardWidget struct {
	widget.BaseWidget

	ctrl     *controller.Controller
	fonts    *render.FontMeasurer
	renderer *render.Renderer
	raster   *canvas.Raster
	dc       *gg.Context

	// lastPos is the last pointer position, for zoom buttons and leave.
	lastPos fyne.Position
	pressed bool

	gridSize float64
}

var (
	_ fyne.Widget         = (*BoardWidget)(nil)
	_ fyne.Draggable      = (*BoardWidget)(nil)
	_ fyne.Scrollable     = (*BoardWidget)(nil)
	_ fyne.Tappable       = (*BoardWidget)(nil)
	_ fyne.DoubleTappable = (*BoardWidget)(nil)
	_ desktop.Mouseable   = (*BoardWidget)(nil)
	_ desktop.Hoverable   = (*BoardWidget)(nil)
	_ desktop.Keyable     = (*BoardWidget)(nil)
	_ desktop.Cursorable  = (*BoardWidget)(nil)
)

func NewBoardWidget(ctrl *controller.Controller, fonts *render.FontMeasurer, background color.Color, gridSize float64) *BoardWidget {
	b := &BoardWidget{
		ctrl:     ctrl,
		fonts:    fonts,
		renderer: render.New(fonts),
	}
	if background != nil {
		b.renderer.Background = background
	}
	b.renderer.GridSize = gridSize
	b.gridSize = gridSize
	b.raster = canvas.NewRaster(b.draw)
	b.ExtendBaseWidget(b)
	ctrl.OnChange(b.raster.Refresh)
	return b
}

// draw paints the current frame at raster resolution.
func (b *BoardWidget) draw(w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	if b.dc == nil {
		b.dc = gg.NewContext(w, h)
	} else if b.dc.Width() != w || b.dc.Height() != h {
		if err := b.dc.Resize(w, h); err != nil {
			slog.Debug("ui: resize raster", "err", err)
			b.dc = gg.NewContext(w, h)
		}
	}

	f := b.ctrl.Frame()
	if size := b.Size(); size.Width > 0 {
		f.Width, f.Height = float64(size.Width), float64(size.Height)
		f.DeviceScale = float64(w) / float64(size.Width)
	}
	b.renderer.Paint(render.NewGGSurface(b.dc, b.fonts), f)
	return b.dc.Image()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.raster)
}

func (b *BoardWidget) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}

func pointer(pos fyne.Position, button desktop.MouseButton, mod fyne.KeyModifier) controller.PointerEvent {
	e := controller.PointerEvent{
		X:     float64(pos.X),
		Y:     float64(pos.Y),
		Shift: mod&fyne.KeyModifierShift != 0,
		Time:  time.Now(),
	}
	switch button {
	case desktop.MouseButtonSecondary:
		e.Button = controller.ButtonSecondary
	case desktop.MouseButtonTertiary:
		e.Button = controller.ButtonTertiary
	}
	return e
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	b.requestFocus()
	b.pressed = true
	b.lastPos = e.Position
	b.ctrl.PointerDown(pointer(e.Position, e.Button, e.Modifier))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	b.pressed = false
	b.lastPos = e.Position
	b.ctrl.PointerUp(pointer(e.Position, e.Button, e.Modifier))
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.lastPos = e.Position
	if b.pressed {
		b.ctrl.PointerMove(pointer(e.Position, e.Button, e.Modifier))
	}
}

func (b *BoardWidget) MouseOut() {
	if b.pressed {
		b.pressed = false
		b.ctrl.PointerLeave()
	}
}

// Dragged receives moves while a button is held once fyne has started a
// drag; they feed the same gesture as MouseMoved.
func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.lastPos = e.Position
	b.ctrl.PointerMove(pointer(e.Position, desktop.MouseButtonPrimary, 0))
}

func (b *BoardWidget) DragEnd() {}

func (b *BoardWidget) Tapped(*fyne.PointEvent) {
	b.requestFocus()
}

func (b *BoardWidget) DoubleTapped(e *fyne.PointEvent) {
	b.ctrl.DoubleClick(pointer(e.Position, desktop.MouseButtonPrimary, 0))
}

func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	b.ctrl.Scroll(float64(e.Position.X), float64(e.Position.Y), float64(e.Scrolled.DY))
}

func (b *BoardWidget) Cursor() desktop.Cursor {
	switch b.ctrl.HandleAt(float64(b.lastPos.X), float64(b.lastPos.Y)) {
	case state.HandleNone:
	case state.HandleN, state.HandleS:
		return desktop.VResizeCursor
	case state.HandleW, state.HandleE:
		return desktop.HResizeCursor
	default:
		return desktop.PointerCursor
	}
	switch b.ctrl.Tool() {
	case controller.ToolSelect:
		return desktop.DefaultCursor
	case controller.ToolText:
		return desktop.TextCursor
	}
	return desktop.CrosshairCursor
}

// ZoomIn zooms about the centre of the widget.
func (b *BoardWidget) ZoomIn() {
	c := b.Size()
	b.ctrl.ZoomIn(float64(c.Width/2), float64(c.Height/2))
}

// ZoomOut zooms out about the centre of the widget.
func (b *BoardWidget) ZoomOut() {
	c := b.Size()
	b.ctrl.ZoomOut(float64(c.Width/2), float64(c.Height/2))
}

// ToggleGrid shows or hides the background grid.
func (b *BoardWidget) ToggleGrid() {
	if b.renderer.GridSize > 0 {
		b.renderer.GridSize = 0
	} else {
		b.renderer.GridSize = b.gridSize
	}
	b.raster.Refresh()
}

func (b *BoardWidget) requestFocus() {
	if c := fyne.CurrentApp().Driver().CanvasForObject(b); c != nil {
		c.Focus(b)
	}
}

func (b *BoardWidget) FocusGained() {}
func (b *BoardWidget) FocusLost()   {}

func (b *BoardWidget) TypedRune(r rune) {
	b.ctrl.KeyTyped(r)
}

// TypedKey handles editing and command keys; it repeats while held.
func (b *BoardWidget) TypedKey(e *fyne.KeyEvent) {
	if k, ok := keys[e.Name]; ok && k != controller.KeySpace {
		b.ctrl.KeyDown(k)
	}
}

// KeyDown and KeyUp track the space bar for space-drag panning.
func (b *BoardWidget) KeyDown(e *fyne.KeyEvent) {
	if e.Name == fyne.KeySpace {
		b.ctrl.KeyDown(controller.KeySpace)
	}
}

func (b *BoardWidget) KeyUp(e *fyne.KeyEvent) {
	if e.Name == fyne.KeySpace {
		b.ctrl.KeyUp(controller.KeySpace)
	}
}

var keys = map[fyne.KeyName]controller.Key{
	fyne.KeyReturn:    controller.KeyEnter,
	fyne.KeyEnter:     controller.KeyEnter,
	fyne.KeyBackspace: controller.KeyBackspace,
	fyne.KeyDelete:    controller.KeyDelete,
	fyne.KeyLeft:      controller.KeyLeft,
	fyne.KeyRight:     controller.KeyRight,
	fyne.KeyUp:        controller.KeyUp,
	fyne.KeyDown:      controller.KeyDown,
	fyne.KeyHome:      controller.KeyHome,
	fyne.KeyEnd:       controller.KeyEnd,
	fyne.KeyEscape:    controller.KeyEscape,
	fyne.KeySpace:     controller.KeySpace,
}
