package watermark

import "github.com/go-drift/photoedit/pkg/graphics"

// Layer is a watermark surface that records its tiles once and replays the
// recording until the text, style or size changes.
type Layer struct {
	renderer *Renderer
	params   Params
	size     graphics.Size

	dirty   bool
	content *graphics.DisplayList
	tiles   Tiling
}

// NewLayer creates an empty layer drawing with renderer.
func NewLayer(renderer *Renderer) *Layer {
	return &Layer{renderer: renderer, params: DefaultParams(), dirty: true}
}

// Params returns the current watermark parameters.
func (l *Layer) Params() Params {
	return l.params
}

// Reload replaces every parameter at once.
func (l *Layer) Reload(text string, color graphics.Color, fontSize, alpha float64) {
	l.SetParams(Params{Text: text, Color: color, FontSize: fontSize, Alpha: alpha})
}

// SetParams replaces the parameters, marking the layer dirty if they changed.
func (l *Layer) SetParams(p Params) {
	if p == l.params {
		return
	}
	l.params = p
	l.dirty = true
}

// SetText replaces only the text.
func (l *Layer) SetText(text string) {
	p := l.params
	p.Text = text
	l.SetParams(p)
}

// Layout sets the layer size.
func (l *Layer) Layout(size graphics.Size) {
	if size == l.size {
		return
	}
	l.size = size
	l.dirty = true
}

// Size returns the laid out size.
func (l *Layer) Size() graphics.Size {
	return l.size
}

// NeedsPaint reports whether the next Paint will re-record.
func (l *Layer) NeedsPaint() bool {
	return l.dirty || l.content == nil
}

// Tiles returns the grid from the most recent recording.
func (l *Layer) Tiles() Tiling {
	return l.tiles
}

// Paint draws the watermark onto canvas, recording it first if needed.
func (l *Layer) Paint(canvas graphics.Canvas) {
	if l.NeedsPaint() {
		recorder := &graphics.PictureRecorder{}
		rc := recorder.BeginRecording(l.size)
		l.tiles = l.renderer.Render(rc, graphics.RectFromLTWH(0, 0, l.size.Width, l.size.Height), l.params)
		l.content = recorder.EndRecording()
		l.dirty = false
	}
	l.content.Paint(canvas)
}
