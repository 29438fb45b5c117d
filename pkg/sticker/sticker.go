package sticker

import (
	"math"

	"github.com/go-drift/photoedit/pkg/errors"
	"github.com/go-drift/photoedit/pkg/graphics"
)

// Live scale bounds accepted from a pinch gesture.
const (
	MinGestureScale = 0.01
	MaxGestureScale = 100
)

// Sticker is an overlay element that can be transformed, resized, hit tested
// and painted.
type Sticker interface {
	// State returns the current transform snapshot.
	State() TransformState
	// Frame returns the translated, unscaled, unrotated frame.
	Frame() graphics.Rect
	// Resize changes the intrinsic content size, keeping the centre fixed.
	Resize(newContentSize graphics.Size)
	// HitTest reports whether a point in parent coordinates lies on the sticker.
	HitTest(p graphics.Offset) bool
	// Translate adds a pan delta.
	Translate(dx, dy float64)
	// Paint draws the sticker in parent coordinates.
	Paint(canvas graphics.Canvas)
	// Clone returns an independent copy.
	Clone() Sticker
}

// Base holds the geometry shared by every sticker variant. The zero value is
// not usable; embed a Base created by NewBase.
type Base struct {
	state  TransformState
	center graphics.Offset
	size   graphics.Size
}

// NewBase places a sticker at state.OriginFrame. It panics with a
// ContractError if the state has a non-positive scale.
func NewBase(state TransformState) Base {
	state.mustValidate("sticker.NewBase")
	return Base{
		state:  state,
		center: state.OriginFrame.Center(),
		size:   state.OriginFrame.Size(),
	}
}

// State returns the current transform snapshot.
func (b *Base) State() TransformState {
	return b.state
}

// SetState replaces the transform fields, leaving the current frame in place.
// Callers use it to fold a finished gesture into the origin values.
func (b *Base) SetState(state TransformState) {
	state.mustValidate("sticker.SetState")
	b.state = state
}

// Size returns the untransformed bounds size.
func (b *Base) Size() graphics.Size {
	return b.size
}

// Frame returns the bounds centred on the panned centre.
func (b *Base) Frame() graphics.Rect {
	return graphics.RectFromCenter(b.center.Add(b.state.TotalTranslation), b.size)
}

// Transform maps sticker-local coordinates, origin at the centre, to parent
// coordinates.
func (b *Base) Transform() graphics.Matrix {
	return graphics.TranslateMatrix(b.center.X, b.center.Y).Multiply(b.state.Matrix())
}

// BoundingFrame returns the axis-aligned bounds of the fully transformed sticker.
func (b *Base) BoundingFrame() graphics.Rect {
	local := graphics.RectFromCenter(graphics.Offset{}, b.size)
	return b.Transform().TransformRect(local)
}

// SetGestureScale updates the live pinch scale, clamped to
// [MinGestureScale, MaxGestureScale].
func (b *Base) SetGestureScale(scale float64) {
	switch {
	case math.IsNaN(scale) || scale < MinGestureScale:
		scale = MinGestureScale
	case scale > MaxGestureScale:
		scale = MaxGestureScale
	}
	b.state.GesScale = scale
}

// SetGestureRotation updates the live rotation in radians.
func (b *Base) SetGestureRotation(radians float64) {
	b.state.GesRotation = radians
}

// Translate adds a pan delta.
func (b *Base) Translate(dx, dy float64) {
	b.state.TotalTranslation.X += dx
	b.state.TotalTranslation.Y += dy
}

// Resize changes the bounds to newContentSize about the current centre.
func (b *Base) Resize(newContentSize graphics.Size) {
	frame, state := Resize(b.state, b.Frame(), newContentSize)
	b.state = state
	b.size = frame.Size()
	b.center = frame.Center().Sub(state.TotalTranslation)
}

// HitTest reports whether p, in parent coordinates, lies inside the
// transformed bounds.
func (b *Base) HitTest(p graphics.Offset) bool {
	inv, ok := b.Transform().Invert()
	if !ok {
		errors.Violation("sticker.HitTest", "transform", b.Transform(), "invertible")
	}
	local := inv.TransformPoint(p)
	return math.Abs(local.X) <= b.size.Width/2 && math.Abs(local.Y) <= b.size.Height/2
}
