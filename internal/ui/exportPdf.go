package ui

import (
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"localboard/internal/export"
)

// pngScale renders exported images at twice the canvas resolution.
const pngScale = 2.0

// ExportPDF asks for a file and writes the board as a PDF page.
func (s *session) ExportPDF() {
	s.exportTo(".pdf", func(w fyne.URIWriteCloser) error {
		return export.WritePDF(w, s.ctrl.Strokes(), s.fonts)
	})
}

// ExportPNG asks for a file and writes the board as a PNG image.
func (s *session) ExportPNG(background color.Color) {
	s.exportTo(".png", func(w fyne.URIWriteCloser) error {
		return export.WritePNG(w, s.ctrl.Strokes(), s.fonts, export.ImageOptions{
			Scale:      pngScale,
			Margin:     export.DefaultMargin,
			Background: background,
		})
	})
}

func (s *session) exportTo(ext string, write func(fyne.URIWriteCloser) error) {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, s.win)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()
		if err := write(w); err != nil {
			dialog.ShowError(err, s.win)
			return
		}
		slog.Info("ui: exported", "uri", w.URI().String())
	}, s.win)
	d.SetFileName(s.doc.Name + ext)
	d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	d.Show()
}
