// Package overlay keeps the stickers placed over a photo: it assigns ids,
// copies and removes stickers, finds the sticker under a point and paints
// them in order.
package overlay

import (
	"slices"

	"github.com/go-drift/photoedit/pkg/graphics"
	"github.com/go-drift/photoedit/pkg/sticker"
)

// CopyOffset is how far a copied sticker is moved from its source in both
// directions.
const CopyOffset = 20

// Overlay is an ordered stack of stickers. Later entries are above earlier
// ones. It is not safe for concurrent use.
type Overlay struct {
	entries []*Entry
}

// New creates an empty overlay.
func New() *Overlay {
	return &Overlay{}
}

// Add places s on top and returns its id.
func (o *Overlay) Add(s sticker.Sticker) string {
	e := newEntry(s)
	e.overlay = o
	o.entries = append(o.entries, e)
	return e.id
}

// Get returns the entry for id.
func (o *Overlay) Get(id string) (*Entry, bool) {
	i := o.index(id)
	if i < 0 {
		return nil, false
	}
	return o.entries[i], true
}

// Remove deletes the sticker with id, reporting whether it existed.
func (o *Overlay) Remove(id string) bool {
	i := o.index(id)
	if i < 0 {
		return false
	}
	o.entries[i].overlay = nil
	o.entries = slices.Delete(o.entries, i, i+1)
	return true
}

// Copy duplicates the sticker with id, offsets the duplicate by CopyOffset
// and places it on top. It returns the new id.
func (o *Overlay) Copy(id string) (string, bool) {
	e, ok := o.Get(id)
	if !ok {
		return "", false
	}
	dup := e.sticker.Clone()
	dup.Translate(CopyOffset, CopyOffset)
	return o.Add(dup), true
}

// Len returns the number of stickers.
func (o *Overlay) Len() int {
	return len(o.entries)
}

// Entries returns the entries bottom to top.
func (o *Overlay) Entries() []*Entry {
	return slices.Clone(o.entries)
}

// HitTest returns the topmost entry whose sticker contains p.
func (o *Overlay) HitTest(p graphics.Offset) (*Entry, bool) {
	for i := len(o.entries) - 1; i >= 0; i-- {
		if o.entries[i].sticker.HitTest(p) {
			return o.entries[i], true
		}
	}
	return nil, false
}

// Paint draws every sticker bottom to top. A sticker that panics is
// reported through errors.Recover and the rest still paint.
func (o *Overlay) Paint(canvas graphics.Canvas) {
	for _, e := range o.entries {
		e.paint(canvas)
	}
}

func (o *Overlay) index(id string) int {
	return slices.IndexFunc(o.entries, func(e *Entry) bool { return e.id == id })
}
