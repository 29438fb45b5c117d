package watermark

import (
	"github.com/go-drift/photoedit/pkg/errors"
	"github.com/go-drift/photoedit/pkg/graphics"
)

// Renderer draws the tiled watermark onto a canvas.
type Renderer struct {
	fonts *graphics.FontManager
}

// NewRenderer creates a renderer that measures text with fonts. A nil
// manager selects graphics.DefaultFontManager.
func NewRenderer(fonts *graphics.FontManager) *Renderer {
	if fonts == nil {
		fonts = graphics.DefaultFontManager()
	}
	return &Renderer{fonts: fonts}
}

// Render clears rect to transparent and fills it with rotated, interleaved
// copies of params.Text. Each tile is drawn in params.Color at params.Alpha
// using the soft-light blend mode.
//
// The canvas transform is restored before Render returns. If the text
// cannot be laid out the failure is reported through errors.Report and
// nothing but the clear is drawn.
func (r *Renderer) Render(canvas graphics.Canvas, rect graphics.Rect, params Params) Tiling {
	canvas.Save()
	defer canvas.Restore()
	canvas.Clear(graphics.ColorTransparent)

	layout, err := graphics.LayoutText(params.Text, params.TextStyle(), r.fonts)
	if err != nil {
		errors.Report(&errors.EditError{
			Op:   "watermark.Render",
			Kind: errors.KindRender,
			Err:  err,
		})
		return Tiling{}
	}

	center := rect.Center()
	canvas.Translate(center.X, center.Y)
	canvas.Rotate(Angle)
	canvas.Translate(-rect.Width()/2, -rect.Height()/2)

	tiles := PlanTiles(layout.Size, rect)
	if params.Text == "" {
		return tiles
	}
	paint := params.Paint()
	tiles.Each(func(x, y float64) {
		canvas.DrawText(layout, graphics.Offset{X: x, Y: y}, paint)
	})
	return tiles
}
