package overlay

import (
	"github.com/google/uuid"

	"github.com/go-drift/photoedit/pkg/errors"
	"github.com/go-drift/photoedit/pkg/graphics"
	"github.com/go-drift/photoedit/pkg/sticker"
)

// Entry is a sticker held by an overlay under a stable id.
type Entry struct {
	id      string
	sticker sticker.Sticker
	overlay *Overlay
}

func newEntry(s sticker.Sticker) *Entry {
	return &Entry{id: uuid.NewString(), sticker: s}
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() string {
	return e.id
}

// Sticker returns the sticker in this entry.
func (e *Entry) Sticker() sticker.Sticker {
	return e.sticker
}

// Remove removes this entry from its overlay.
// Safe to call if already removed (no-op).
func (e *Entry) Remove() {
	if e.overlay == nil {
		return
	}
	e.overlay.Remove(e.id)
}

func (e *Entry) paint(canvas graphics.Canvas) {
	defer errors.Recover("overlay.Paint")
	e.sticker.Paint(canvas)
}
