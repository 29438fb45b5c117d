package sticker

import (
	"fmt"
	"image"
	"math"

	"github.com/go-drift/photoedit/pkg/graphics"
)

const (
	// FontSize is the point size text stickers are rasterized at.
	FontSize = 32
	// EdgeInset pads the rasterized text inside the sticker frame.
	EdgeInset = 10

	// backgroundPadding surrounds text drawn in StyleBackground.
	backgroundPadding = 6
)

// TextStyle selects how sticker text is rasterized.
type TextStyle int

const (
	// StyleNormal draws the text in its colour.
	StyleNormal TextStyle = iota
	// StyleBackground fills a box with the text colour and draws the text in
	// a contrasting colour on top.
	StyleBackground
)

func (s TextStyle) String() string {
	switch s {
	case StyleNormal:
		return "normal"
	case StyleBackground:
		return "background"
	default:
		return fmt.Sprintf("TextStyle(%d)", int(s))
	}
}

// ParseTextStyle resolves a style by name. The empty string selects StyleNormal.
func ParseTextStyle(name string) (TextStyle, error) {
	switch name {
	case "", "normal":
		return StyleNormal, nil
	case "background":
		return StyleBackground, nil
	default:
		return StyleNormal, fmt.Errorf("unknown text style %q", name)
	}
}

// TextContent is the payload of a text sticker. Image is the rasterized
// text and is replaced whenever Text, Color or Style change.
type TextContent struct {
	Text  string
	Color graphics.Color
	Style TextStyle
	Image image.Image
}

// CalculateSize returns the sticker size needed to show img with EdgeInset
// on every side.
func CalculateSize(img image.Image) graphics.Size {
	var w, h float64
	if img != nil {
		b := img.Bounds()
		w, h = float64(b.Dx()), float64(b.Dy())
	}
	return graphics.Size{Width: w + EdgeInset*2, Height: h + EdgeInset*2}
}

// TextSticker is the text variant of Sticker.
type TextSticker struct {
	Base
	content TextContent
}

// TextStickerState combines content and transform for snapshotting.
type TextStickerState struct {
	TextContent
	TransformState
}

// NewTextSticker creates a text sticker at state.OriginFrame.
func NewTextSticker(state TransformState, content TextContent) *TextSticker {
	return &TextSticker{Base: NewBase(state), content: content}
}

// NewTextStickerFromState restores a sticker from a snapshot.
func NewTextStickerFromState(s TextStickerState) *TextSticker {
	return NewTextSticker(s.TransformState, s.TextContent)
}

// Snapshot returns the combined content and transform state.
func (s *TextSticker) Snapshot() TextStickerState {
	return TextStickerState{TextContent: s.content, TransformState: s.State()}
}

// Content returns the current payload.
func (s *TextSticker) Content() TextContent {
	return s.content
}

// SetContent replaces the payload and resizes to fit the new image.
func (s *TextSticker) SetContent(content TextContent) {
	s.content = content
	s.Resize(CalculateSize(content.Image))
}

// Clone returns an independent copy sharing the immutable image.
func (s *TextSticker) Clone() Sticker {
	c := *s
	return &c
}

// Paint draws the image aspect-fitted into the inset frame.
func (s *TextSticker) Paint(canvas graphics.Canvas) {
	img := s.content.Image
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Empty() {
		return
	}
	size := s.Size()
	inner := graphics.Size{
		Width:  math.Max(size.Width-EdgeInset*2, 0),
		Height: math.Max(size.Height-EdgeInset*2, 0),
	}
	if inner.IsEmpty() {
		return
	}
	iw, ih := float64(b.Dx()), float64(b.Dy())
	fit := math.Min(inner.Width/iw, inner.Height/ih)

	canvas.Save()
	defer canvas.Restore()
	canvas.Concat(s.Transform())
	canvas.Scale(fit, fit)
	canvas.DrawImage(img, graphics.Offset{X: -iw / 2, Y: -ih / 2})
}

// RenderText rasterizes text for a sticker at FontSize. A positive maxWidth
// wraps lines.
func RenderText(fonts *graphics.FontManager, text string, color graphics.Color, style TextStyle, maxWidth float64) (image.Image, error) {
	layout, err := graphics.LayoutTextWithConstraints(text, graphics.TextStyle{FontSize: FontSize}, fonts, maxWidth)
	if err != nil {
		return nil, err
	}
	pad := 0.0
	if style == StyleBackground {
		pad = backgroundPadding
	}
	w := int(math.Ceil(layout.Size.Width + pad*2))
	h := int(math.Ceil(layout.Size.Height + pad*2))
	canvas := graphics.NewTransparentCanvas(max(w, 1), max(h, 1))

	textColor := color
	if style == StyleBackground {
		canvas.DrawRect(graphics.RectFromLTWH(0, 0, float64(w), float64(h)), graphics.Paint{Color: color})
		textColor = graphics.ColorWhite
		if color.Luminance() > 0.7 {
			textColor = graphics.ColorBlack
		}
	}
	canvas.DrawText(layout, graphics.Offset{X: pad, Y: pad}, graphics.Paint{Color: textColor})
	return canvas.Image(), nil
}
