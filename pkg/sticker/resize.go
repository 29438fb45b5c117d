package sticker

import (
	"github.com/go-drift/photoedit/pkg/errors"
	"github.com/go-drift/photoedit/pkg/graphics"
)

// Resize recomputes a sticker's geometry for a new intrinsic content size.
//
// frame is the sticker frame with translation applied but before scale and
// rotation. The composed transform is unwound in reverse order, the live frame
// and the origin frame are each resized about their own centre, and the
// transform is reapplied in forward order. Only OriginFrame changes in the
// returned state.
//
// Resize panics with *errors.ContractError if either scale is not positive.
func Resize(current TransformState, frame graphics.Rect, newContentSize graphics.Size) (graphics.Rect, TransformState) {
	const op = "sticker.Resize"
	current.mustValidate(op)

	composed := current.Matrix()
	m := composed.
		Scale(1/current.GesScale, 1/current.GesScale).
		Scale(1/current.OriginScale, 1/current.OriginScale).
		Rotate(-current.GesRotation).
		Rotate(-current.OriginRadians())
	// Scale and rotation pivot on the centre, so only the pan may remain.
	if !m.TranslationOnly() {
		errors.Violation(op, "transform", m, "translation after unwinding scale and rotation")
	}

	newFrame := graphics.RectFromCenter(frame.Center(), newContentSize)
	next := current
	next.OriginFrame = graphics.RectFromCenter(current.OriginFrame.Center(), newContentSize)

	m = m.
		Scale(current.OriginScale, current.OriginScale).
		Scale(current.GesScale, current.GesScale).
		Rotate(current.GesRotation).
		Rotate(current.OriginRadians())
	if !m.ApproxEqual(composed) {
		errors.Violation(op, "transform", m, "recomposition equal to the original transform")
	}
	return newFrame, next
}
