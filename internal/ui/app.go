package ui

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"

	"localboard/internal/config"
	"localboard/internal/controller"
	"localboard/internal/render"
	"localboard/internal/state"
	"localboard/internal/view"
)

const appID = "io.localboard.app"

// Run opens the board window and blocks until it is closed. A non-empty
// openPath is loaded as the initial document.
func Run(cfg config.Config, openPath string) error {
	fonts, err := render.NewFontMeasurer()
	if err != nil {
		return fmt.Errorf("load fonts: %w", err)
	}

	board := state.NewBoard(fonts, cfg.Board.HistoryLimit)
	ctrl := controller.New(board, controller.Options{
		Color:       cfg.Board.Color,
		StrokeWidth: cfg.Board.StrokeWidth,
		MathMode:    cfg.Text.MathMode,
		Limits:      view.Limits{Min: cfg.View.MinZoom, Max: cfg.View.MaxZoom},
		ZoomStep:    cfg.View.ZoomStep,
	})

	myApp := app.NewWithID(appID)
	myWindow := myApp.NewWindow("LocalBoard")
	myWindow.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))

	background := render.ParseColor(cfg.Board.Background)
	boardWidget := NewBoardWidget(ctrl, fonts, background, cfg.Board.GridSize)
	toolbar := NewToolbar(ctrl, boardWidget)
	sess := newSession(myWindow, ctrl, fonts)

	if openPath != "" {
		if err := sess.Load(openPath); err != nil {
			slog.Error("ui: open at start-up", "path", openPath, "err", err)
			dialog.ShowError(err, myWindow)
		}
	}

	myWindow.SetMainMenu(mainMenu(ctrl, sess, boardWidget, background))
	addShortcuts(myWindow.Canvas(), ctrl, sess)

	content := container.NewBorder(toolbar.Object(), nil, nil, nil, boardWidget)
	myWindow.SetContent(content)
	myWindow.Canvas().Focus(boardWidget)

	stop := make(chan struct{})
	go blinkCaret(ctrl, time.Duration(cfg.Text.CaretBlinkMS)*time.Millisecond, stop)
	myWindow.SetOnClosed(func() { close(stop) })

	slog.Info("ui: window open", "width", cfg.Window.Width, "height", cfg.Window.Height)
	myWindow.ShowAndRun()
	return nil
}

// blinkCaret toggles the text caret until stop is closed.
func blinkCaret(ctrl *controller.Controller, every time.Duration, stop <-chan struct{}) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			fyne.Do(func() { ctrl.BlinkCaret() })
		}
	}
}

func mainMenu(ctrl *controller.Controller, sess *session, board *BoardWidget, background color.Color) *fyne.MainMenu {
	file := fyne.NewMenu("File",
		fyne.NewMenuItem("New", sess.New),
		fyne.NewMenuItem("Open...", sess.Open),
		fyne.NewMenuItem("Save", sess.Save),
		fyne.NewMenuItem("Save As...", sess.SaveAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG...", func() { sess.ExportPNG(background) }),
		fyne.NewMenuItem("Export PDF...", sess.ExportPDF),
	)
	edit := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() { ctrl.Undo() }),
		fyne.NewMenuItem("Redo", func() { ctrl.Redo() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Delete Selected", ctrl.DeleteSelected),
		fyne.NewMenuItem("Clear Board", ctrl.ClearAll),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", board.ZoomIn),
		fyne.NewMenuItem("Zoom Out", board.ZoomOut),
		fyne.NewMenuItem("Reset View", ctrl.ResetView),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Toggle Grid", board.ToggleGrid),
	)
	return fyne.NewMainMenu(file, edit, viewMenu)
}

func addShortcuts(c fyne.Canvas, ctrl *controller.Controller, sess *session) {
	bind := func(key fyne.KeyName, mod fyne.KeyModifier, fn func()) {
		c.AddShortcut(&desktop.CustomShortcut{KeyName: key, Modifier: mod}, func(fyne.Shortcut) { fn() })
	}
	bind(fyne.KeyZ, fyne.KeyModifierShortcutDefault, func() { ctrl.Undo() })
	bind(fyne.KeyZ, fyne.KeyModifierShortcutDefault|fyne.KeyModifierShift, func() { ctrl.Redo() })
	bind(fyne.KeyY, fyne.KeyModifierShortcutDefault, func() { ctrl.Redo() })
	bind(fyne.KeyS, fyne.KeyModifierShortcutDefault, sess.Save)
	bind(fyne.KeyS, fyne.KeyModifierShortcutDefault|fyne.KeyModifierShift, sess.SaveAs)
	bind(fyne.KeyO, fyne.KeyModifierShortcutDefault, sess.Open)
	bind(fyne.KeyN, fyne.KeyModifierShortcutDefault, sess.New)
}
