package ui

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"localboard/internal/controller"
	"localboard/internal/render"
)

// palette is the row of colour swatches.
var palette = []string{"#000000", "#e53935", "#43a047", "#1e88e5", "#fdd835", "#8e24aa", "#ffffff"}

// colorSwatch picks a stroke colour. The active swatch gets a heavier
// border.
type colorSwatch struct {
	widget.BaseWidget
	value  string
	pick   func(string)
	border *canvas.Rectangle
}

func newColorSwatch(value string, pick func(string)) *colorSwatch {
	s := &colorSwatch{value: value, pick: pick}
	s.border = canvas.NewRectangle(color.Transparent)
	s.ExtendBaseWidget(s)
	s.setActive(false)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	fill := canvas.NewRectangle(render.ParseColor(s.value))
	fill.SetMinSize(fyne.NewSize(28, 28))
	return widget.NewSimpleRenderer(container.NewStack(fill, s.border))
}

func (s *colorSwatch) setActive(on bool) {
	if on {
		s.border.StrokeColor = theme.Color(theme.ColorNamePrimary)
		s.border.StrokeWidth = 3
	} else {
		s.border.StrokeColor = color.Gray{Y: 150}
		s.border.StrokeWidth = 1
	}
	s.border.Refresh()
}

func (s *colorSwatch) Tapped(*fyne.PointEvent) {
	if s.pick != nil {
		s.pick(s.value)
	}
}

// toolLabels names the tools on their buttons.
var toolLabels = map[controller.Tool]string{
	controller.ToolSelect:    "Select",
	controller.ToolPen:       "Pen",
	controller.ToolEraser:    "Eraser",
	controller.ToolRectangle: "Rect",
	controller.ToolEllipse:   "Ellipse",
	controller.ToolLine:      "Line",
	controller.ToolText:      "Text",
}

// Toolbar is the strip above the board. It mirrors the controller's tool
// settings and writes user choices back to it.
type Toolbar struct {
	ctrl     *controller.Controller
	board    *BoardWidget
	buttons  map[controller.Tool]*widget.Button
	swatches []*colorSwatch
	slider   *widget.Slider
	math     *widget.Check
	status   *widget.Label
}

// NewToolbar builds the toolbar for ctrl. Zoom buttons zoom about the
// centre of board.
func NewToolbar(ctrl *controller.Controller, board *BoardWidget) *Toolbar {
	t := &Toolbar{
		ctrl:    ctrl,
		board:   board,
		buttons: make(map[controller.Tool]*widget.Button),
		status:  widget.NewLabel("Ready"),
	}
	for _, tool := range controller.Tools {
		t.buttons[tool] = widget.NewButton(toolLabels[tool], func() {
			ctrl.SetTool(tool)
		})
	}

	for _, value := range palette {
		t.swatches = append(t.swatches, newColorSwatch(value, ctrl.SetColor))
	}

	// --- Stroke Width Slider ---
	t.slider = widget.NewSlider(1, 50)
	t.slider.SetValue(ctrl.StrokeWidth())
	t.slider.OnChangeEnded = func(v float64) {
		ctrl.SetStrokeWidth(v)
	}

	t.math = widget.NewCheck("Math", ctrl.SetMathMode)
	t.math.SetChecked(ctrl.MathMode())

	ctrl.OnChange(t.Sync)
	t.Sync()
	return t
}

// Object assembles the toolbar widgets.
func (t *Toolbar) Object() fyne.CanvasObject {
	toolBox := container.NewHBox()
	for _, tool := range controller.Tools {
		toolBox.Add(t.buttons[tool])
	}

	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() { t.ctrl.Undo() }),
		widget.NewToolbarAction(theme.ContentRedoIcon(), func() { t.ctrl.Redo() }),
		widget.NewToolbarAction(theme.DeleteIcon(), t.ctrl.DeleteSelected),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ZoomOutIcon(), t.board.ZoomOut),
		widget.NewToolbarAction(theme.ZoomInIcon(), t.board.ZoomIn),
		widget.NewToolbarAction(theme.ZoomFitIcon(), t.ctrl.ResetView),
	)

	colorBox := container.NewHBox()
	for _, sw := range t.swatches {
		colorBox.Add(sw)
	}

	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), t.slider)

	// --- Assemble everything ---
	return container.NewVBox(
		container.NewHBox(
			toolBox,
			widget.NewSeparator(),
			actions,
			widget.NewSeparator(),
			colorBox,
			widget.NewSeparator(),
			widget.NewLabel("Size:"),
			sliderContainer,
			t.math,
			layout.NewSpacer(),
		),
		t.status,
	)
}

// Sync refreshes the toolbar from the controller.
func (t *Toolbar) Sync() {
	for tool, btn := range t.buttons {
		imp := widget.MediumImportance
		if tool == t.ctrl.Tool() {
			imp = widget.HighImportance
		}
		if btn.Importance != imp {
			btn.Importance = imp
			btn.Refresh()
		}
	}
	current := render.FormatColor(render.ParseColor(t.ctrl.Color()))
	for _, sw := range t.swatches {
		sw.setActive(render.FormatColor(render.ParseColor(sw.value)) == current)
	}
	if w := t.ctrl.StrokeWidth(); t.slider.Value != w {
		t.slider.SetValue(w)
	}
	if t.math.Checked != t.ctrl.MathMode() {
		t.math.SetChecked(t.ctrl.MathMode())
	}
	t.status.SetText(t.statusText())
}

func (t *Toolbar) statusText() string {
	b := t.ctrl.Board()
	parts := []string{
		toolLabels[t.ctrl.Tool()],
		fmt.Sprintf("zoom %.0f%%", t.ctrl.View().Zoom*100),
		fmt.Sprintf("%d strokes", b.Len()),
	}
	if n := len(b.Selection()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	if a := b.UndoAction(); a != "" {
		parts = append(parts, "undo: "+a)
	}
	if t.ctrl.Editing() {
		parts = append(parts, "editing text (Esc cancels)")
	}
	return strings.Join(parts, "  ·  ")
}
