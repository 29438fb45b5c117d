package graphics

import (
	"image"

	"github.com/fogleman/gg"
)

// glyphOverhang pads text bounds so antialiased edges survive culling.
const glyphOverhang = 2

// ImageCanvas is a Canvas that rasterizes into an *image.RGBA through gg.
//
// Source-over drawing goes straight to the destination. Other blend modes
// render into a scratch layer sized to the operation's device bounds and are
// composited with Composite. Operations whose bounds fall outside the image
// are skipped.
type ImageCanvas struct {
	dst    *image.RGBA
	dc     *gg.Context
	matrix Matrix
	stack  []Matrix
}

// NewImageCanvas wraps dst.
func NewImageCanvas(dst *image.RGBA) *ImageCanvas {
	return &ImageCanvas{
		dst:    dst,
		dc:     gg.NewContextForRGBA(dst),
		matrix: Identity,
	}
}

// NewTransparentCanvas allocates a fully transparent canvas of the given pixel size.
func NewTransparentCanvas(width, height int) *ImageCanvas {
	return NewImageCanvas(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// Image returns the destination image.
func (c *ImageCanvas) Image() *image.RGBA {
	return c.dst
}

// Matrix returns the current transform.
func (c *ImageCanvas) Matrix() Matrix {
	return c.matrix
}

// SaveCount returns the depth of the save stack.
func (c *ImageCanvas) SaveCount() int {
	return len(c.stack)
}

func (c *ImageCanvas) Save() {
	c.stack = append(c.stack, c.matrix)
}

func (c *ImageCanvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.matrix = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

func (c *ImageCanvas) Translate(dx, dy float64) {
	c.matrix = c.matrix.Translate(dx, dy)
}

func (c *ImageCanvas) Scale(sx, sy float64) {
	c.matrix = c.matrix.Scale(sx, sy)
}

func (c *ImageCanvas) Rotate(radians float64) {
	c.matrix = c.matrix.Rotate(radians)
}

func (c *ImageCanvas) Concat(m Matrix) {
	c.matrix = c.matrix.Multiply(m)
}

func (c *ImageCanvas) Clear(color Color) {
	c.dc.SetColor(color.NRGBA())
	c.dc.Clear()
}

func (c *ImageCanvas) DrawRect(rect Rect, paint Paint) {
	c.draw(rect, paint.BlendMode, func(dc *gg.Context) {
		dc.DrawRectangle(rect.Left, rect.Top, rect.Width(), rect.Height())
		dc.SetColor(paint.Color.NRGBA())
		dc.Fill()
	})
}

func (c *ImageCanvas) DrawText(layout *TextLayout, position Offset, paint Paint) {
	if layout == nil || layout.Face == nil {
		return
	}
	bounds := RectFromLTWH(position.X, position.Y, layout.Size.Width, layout.Size.Height)
	bounds = Rect{
		Left:   bounds.Left - glyphOverhang,
		Top:    bounds.Top - glyphOverhang,
		Right:  bounds.Right + glyphOverhang,
		Bottom: bounds.Bottom + glyphOverhang,
	}
	c.draw(bounds, paint.BlendMode, func(dc *gg.Context) {
		dc.SetFontFace(layout.Face)
		dc.SetColor(paint.Color.NRGBA())
		for i, line := range layout.Lines {
			if line.Text == "" {
				continue
			}
			baseline := position.Y + layout.Ascent + float64(i)*layout.LineHeight
			dc.DrawString(line.Text, position.X, baseline)
		}
	})
}

func (c *ImageCanvas) DrawImage(img image.Image, position Offset) {
	if img == nil {
		return
	}
	b := img.Bounds()
	bounds := RectFromLTWH(position.X, position.Y, float64(b.Dx()), float64(b.Dy()))
	c.draw(bounds, BlendModeSrcOver, func(dc *gg.Context) {
		dc.Translate(position.X, position.Y)
		dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	})
}

func (c *ImageCanvas) Size() Size {
	b := c.dst.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// draw runs fn with a gg context whose transform matches the canvas, on the
// destination for source-over and on a scratch layer otherwise.
func (c *ImageCanvas) draw(local Rect, mode BlendMode, fn func(dc *gg.Context)) {
	device := c.matrix.TransformRect(local).ImageRect().Intersect(c.dst.Bounds())
	if device.Empty() {
		return
	}
	if mode == BlendModeSrcOver {
		applyMatrix(c.dc, c.matrix)
		fn(c.dc)
		return
	}
	layer := image.NewRGBA(image.Rect(0, 0, device.Dx(), device.Dy()))
	ldc := gg.NewContextForRGBA(layer)
	applyMatrix(ldc, TranslateMatrix(-float64(device.Min.X), -float64(device.Min.Y)).Multiply(c.matrix))
	fn(ldc)
	Composite(c.dst, device, layer, image.Point{}, mode)
}

// applyMatrix loads m into dc, which only exposes incremental operations.
func applyMatrix(dc *gg.Context, m Matrix) {
	theta, k, sx, sy := m.decompose()
	dc.Identity()
	dc.Translate(m.E, m.F)
	dc.Rotate(theta)
	dc.Shear(k, 0)
	dc.Scale(sx, sy)
}
