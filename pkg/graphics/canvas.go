package graphics

import "image"

// Canvas records or renders drawing commands.
type Canvas interface {
	// Save pushes the current transform state.
	Save()

	// Restore pops the most recent transform state.
	Restore()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// Scale scales the coordinate system by the given factors.
	Scale(sx, sy float64)

	// Rotate rotates the coordinate system by radians.
	Rotate(radians float64)

	// Concat appends m to the current transform.
	Concat(m Matrix)

	// Clear replaces every pixel of the canvas with color, ignoring the transform.
	Clear(color Color)

	// DrawRect fills a rectangle with the provided paint.
	DrawRect(rect Rect, paint Paint)

	// DrawText draws a measured text layout with its top-left corner at position.
	DrawText(layout *TextLayout, position Offset, paint Paint)

	// DrawImage draws an image with its top-left corner at the given position.
	DrawImage(image image.Image, position Offset)

	// Size returns the size of the canvas.
	Size() Size
}
