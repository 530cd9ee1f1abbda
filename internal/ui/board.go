package ui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"localboard/internal/controller"
	"localboard/internal/document"
	"localboard/internal/export"
	"localboard/internal/render"
)

const thumbnailSize = 256

// session tracks the open document and the file it came from.
type session struct {
	win   fyne.Window
	ctrl  *controller.Controller
	fonts *render.FontMeasurer

	doc document.Document
	uri fyne.URI
}

func newSession(win fyne.Window, ctrl *controller.Controller, fonts *render.FontMeasurer) *session {
	s := &session{win: win, ctrl: ctrl, fonts: fonts, doc: document.New("", nil)}
	s.updateTitle()
	return s
}

func (s *session) updateTitle() {
	s.win.SetTitle("LocalBoard - " + s.doc.Name)
}

// New starts an empty document.
func (s *session) New() {
	s.ctrl.NewDocument()
	s.doc = document.New("", nil)
	s.uri = nil
	s.updateTitle()
	slog.Info("ui: new document", "doc", s.doc.ID)
}

// Load opens the document at path, for start-up arguments.
func (s *session) Load(path string) error {
	doc, err := document.Open(path)
	if err != nil {
		return err
	}
	s.adopt(doc, storage.NewFileURI(path))
	return nil
}

func (s *session) adopt(doc document.Document, uri fyne.URI) {
	s.ctrl.LoadStrokes(doc.Strokes)
	s.doc = doc
	s.uri = uri
	s.updateTitle()
}

// Open asks for a file and loads it.
func (s *session) Open() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, s.win)
			return
		}
		if r == nil {
			return
		}
		defer r.Close()
		doc, err := document.Read(r)
		if err != nil {
			dialog.ShowError(fmt.Errorf("open %s: %w", r.URI().Name(), err), s.win)
			return
		}
		s.adopt(doc, r.URI())
		slog.Info("ui: opened", "uri", r.URI().String(), "strokes", len(doc.Strokes))
	}, s.win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

// Save writes to the current file, or asks for one.
func (s *session) Save() {
	if s.uri == nil {
		s.SaveAs()
		return
	}
	w, err := storage.Writer(s.uri)
	if err != nil {
		dialog.ShowError(err, s.win)
		return
	}
	s.write(w)
}

// SaveAs asks for a file and saves to it.
func (s *session) SaveAs() {
	d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, s.win)
			return
		}
		if w == nil {
			return
		}
		name := strings.TrimSuffix(w.URI().Name(), filepath.Ext(w.URI().Name()))
		if name != "" {
			s.doc.Name = name
		}
		s.uri = w.URI()
		s.write(w)
		s.updateTitle()
	}, s.win)
	d.SetFileName(s.doc.Name + ".json")
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func (s *session) write(w fyne.URIWriteCloser) {
	defer func() {
		if err := w.Close(); err != nil {
			slog.Error("ui: closing save target", "err", err)
		}
	}()

	strokes := s.ctrl.Strokes()
	thumb, err := export.Thumbnail(strokes, s.fonts, thumbnailSize)
	if err != nil {
		slog.Warn("ui: thumbnail", "err", err)
	}
	s.doc.Update(strokes, thumb, time.Now())
	if err := document.Write(w, s.doc); err != nil {
		dialog.ShowError(err, s.win)
		return
	}
	slog.Info("ui: saved", "uri", w.URI().String(), "strokes", len(strokes))
}
