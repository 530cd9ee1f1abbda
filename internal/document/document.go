// Package document stores boards as JSON files.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"localboard/internal/state"
)

// ErrEmptyDocument is returned when reading input with no content.
var ErrEmptyDocument = errors.New("empty document")

// DefaultName is given to documents created without one.
const DefaultName = "Untitled board"

// Document is one saved board.
type Document struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Strokes   []state.Stroke `json:"strokes"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	// Thumbnail is a data URL of a small PNG preview.
	Thumbnail string `json:"thumbnail,omitempty"`
}

// New returns a document created now.
func New(name string, strokes []state.Stroke) Document {
	if strings.TrimSpace(name) == "" {
		name = DefaultName
	}
	now := time.Now().UTC()
	return Document{
		ID:        state.NewID(),
		Name:      name,
		Strokes:   strokes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Update replaces the content and bumps UpdatedAt.
func (d *Document) Update(strokes []state.Stroke, thumbnail string, now time.Time) {
	d.Strokes = strokes
	d.Thumbnail = thumbnail
	d.UpdatedAt = now.UTC()
}

// Write encodes d as indented JSON.
func Write(w io.Writer, d Document) error {
	if d.Strokes == nil {
		d.Strokes = []state.Stroke{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode document %s: %w", d.ID, err)
	}
	return nil
}

// Read decodes a document. A bare JSON array of strokes is accepted as a
// document with no metadata. Malformed strokes are dropped with a warning.
func Read(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Document{}, ErrEmptyDocument
	}

	var d Document
	if data[0] == '[' {
		var strokes []state.Stroke
		if err := json.Unmarshal(data, &strokes); err != nil {
			return Document{}, fmt.Errorf("decode strokes: %w", err)
		}
		d = New("", strokes)
	} else if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}

	kept := d.Strokes[:0]
	for _, s := range d.Strokes {
		if err := s.Validate(); err != nil {
			slog.Warn("document: dropping stroke", "doc", d.ID, "err", err)
			continue
		}
		kept = append(kept, s)
	}
	d.Strokes = kept
	if d.ID == "" {
		d.ID = state.NewID()
	}
	return d, nil
}

// Save writes d to path.
func Save(path string, d Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, d); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	slog.Info("document: saved", "path", path, "strokes", len(d.Strokes))
	return nil
}

// Open reads the document at path.
func Open(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	d, err := Read(f)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	slog.Info("document: opened", "path", path, "strokes", len(d.Strokes))
	return d, nil
}
