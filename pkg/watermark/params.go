// Package watermark draws a repeating diagonal text watermark.
//
// The pattern is rotated 45 degrees about the target's centre and laid out
// in rows wide enough to cover the rotated bounds, with every second row
// shifted by half a tile so neighbouring rows interleave.
package watermark

import "github.com/go-drift/photoedit/pkg/graphics"

const (
	// Spacing is added to the measured text size in both directions to get
	// the tile pitch.
	Spacing = 20

	// Angle is the rotation applied to the tile grid, in radians.
	Angle = -0.7853981633974483
)

// Params describes the watermark text and how it is drawn.
type Params struct {
	Text     string
	Color    graphics.Color
	FontSize float64
	// Alpha replaces the colour's alpha when drawing, in [0, 1].
	Alpha float64
}

// DefaultParams matches an unconfigured watermark layer: black 15pt text at
// full opacity.
func DefaultParams() Params {
	return Params{
		Color:    graphics.ColorBlack,
		FontSize: 15,
		Alpha:    1,
	}
}

// Paint returns the paint used for every tile.
func (p Params) Paint() graphics.Paint {
	return graphics.Paint{
		Color:     p.Color.WithAlpha(p.Alpha),
		BlendMode: graphics.BlendModeSoftLight,
	}
}

// TextStyle returns the style the text is measured and drawn with.
func (p Params) TextStyle() graphics.TextStyle {
	return graphics.TextStyle{FontSize: p.FontSize, PreserveWhitespace: true}
}
