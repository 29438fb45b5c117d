package testing

import (
	"fmt"
	"image"
	"math"

	"github.com/go-drift/photoedit/pkg/graphics"
)

// DisplayOp represents a serialized canvas drawing operation.
type DisplayOp struct {
	Op     string         `json:"op"`
	Params map[string]any `json:"params,omitempty"`
}

// Float returns a numeric parameter, or NaN when absent.
func (o DisplayOp) Float(key string) float64 {
	if v, ok := o.Params[key].(float64); ok {
		return v
	}
	return math.NaN()
}

// Str returns a string parameter, or "" when absent.
func (o DisplayOp) Str(key string) string {
	s, _ := o.Params[key].(string)
	return s
}

// RecordingCanvas implements graphics.Canvas and records ops as DisplayOp.
// Positions are recorded in the local coordinates passed to each call; the
// current transform is tracked separately and exposed through Matrix.
type RecordingCanvas struct {
	ops    []DisplayOp
	size   graphics.Size
	matrix graphics.Matrix
	stack  []graphics.Matrix
	depth  int
	max    int
}

// NewRecordingCanvas creates an empty recording canvas of the given size.
func NewRecordingCanvas(size graphics.Size) *RecordingCanvas {
	return &RecordingCanvas{size: size, matrix: graphics.Identity}
}

// AllOps returns every recorded operation in order.
func (c *RecordingCanvas) AllOps() []DisplayOp {
	return c.ops
}

// Ops returns the recorded operations named op.
func (c *RecordingCanvas) Ops(op string) []DisplayOp {
	var out []DisplayOp
	for _, o := range c.ops {
		if o.Op == op {
			out = append(out, o)
		}
	}
	return out
}

// SaveDepth returns the number of unmatched Save calls.
func (c *RecordingCanvas) SaveDepth() int {
	return c.depth
}

// MaxSaveDepth returns the deepest save nesting observed.
func (c *RecordingCanvas) MaxSaveDepth() int {
	return c.max
}

// Matrix returns the current transform.
func (c *RecordingCanvas) Matrix() graphics.Matrix {
	return c.matrix
}

// Reset discards recorded operations and transform state.
func (c *RecordingCanvas) Reset() {
	c.ops = c.ops[:0]
	c.matrix = graphics.Identity
	c.stack = c.stack[:0]
	c.depth, c.max = 0, 0
}

func (c *RecordingCanvas) Save() {
	c.stack = append(c.stack, c.matrix)
	c.depth++
	if c.depth > c.max {
		c.max = c.depth
	}
	c.ops = append(c.ops, DisplayOp{Op: "save"})
}

func (c *RecordingCanvas) Restore() {
	if n := len(c.stack); n > 0 {
		c.matrix = c.stack[n-1]
		c.stack = c.stack[:n-1]
		c.depth--
	}
	c.ops = append(c.ops, DisplayOp{Op: "restore"})
}

func (c *RecordingCanvas) Translate(dx, dy float64) {
	c.matrix = c.matrix.Translate(dx, dy)
	c.ops = append(c.ops, DisplayOp{
		Op:     "translate",
		Params: sortedMap("dx", round2(dx), "dy", round2(dy)),
	})
}

func (c *RecordingCanvas) Scale(sx, sy float64) {
	c.matrix = c.matrix.Scale(sx, sy)
	c.ops = append(c.ops, DisplayOp{
		Op:     "scale",
		Params: sortedMap("sx", round2(sx), "sy", round2(sy)),
	})
}

func (c *RecordingCanvas) Rotate(radians float64) {
	c.matrix = c.matrix.Rotate(radians)
	c.ops = append(c.ops, DisplayOp{
		Op:     "rotate",
		Params: sortedMap("radians", round4(radians)),
	})
}

func (c *RecordingCanvas) Concat(m graphics.Matrix) {
	c.matrix = c.matrix.Multiply(m)
	c.ops = append(c.ops, DisplayOp{
		Op: "concat",
		Params: sortedMap(
			"a", round4(m.A), "b", round4(m.B), "c", round4(m.C),
			"d", round4(m.D), "e", round2(m.E), "f", round2(m.F),
		),
	})
}

func (c *RecordingCanvas) Clear(color graphics.Color) {
	c.ops = append(c.ops, DisplayOp{
		Op:     "clear",
		Params: sortedMap("color", serializeColor(color)),
	})
}

func (c *RecordingCanvas) DrawRect(rect graphics.Rect, paint graphics.Paint) {
	c.ops = append(c.ops, DisplayOp{
		Op: "drawRect",
		Params: sortedMap(
			"rect", serializeRect(rect),
			"color", serializeColor(paint.Color),
			"blend", paint.BlendMode.String(),
		),
	})
}

// DrawText records the unrounded origin so tests can check tile spacing exactly.
func (c *RecordingCanvas) DrawText(layout *graphics.TextLayout, position graphics.Offset, paint graphics.Paint) {
	text := ""
	if layout != nil {
		text = layout.Text
	}
	c.ops = append(c.ops, DisplayOp{
		Op: "drawText",
		Params: sortedMap(
			"x", position.X,
			"y", position.Y,
			"text", text,
			"color", serializeColor(paint.Color),
			"blend", paint.BlendMode.String(),
		),
	})
}

func (c *RecordingCanvas) DrawImage(img image.Image, position graphics.Offset) {
	params := sortedMap("x", round2(position.X), "y", round2(position.Y))
	if img != nil {
		b := img.Bounds()
		params["width"] = float64(b.Dx())
		params["height"] = float64(b.Dy())
	}
	c.ops = append(c.ops, DisplayOp{Op: "drawImage", Params: params})
}

func (c *RecordingCanvas) Size() graphics.Size {
	return c.size
}

// SerializeDisplayList replays a DisplayList through a recording canvas.
func SerializeDisplayList(dl *graphics.DisplayList) []DisplayOp {
	canvas := NewRecordingCanvas(dl.Size())
	dl.Paint(canvas)
	return canvas.ops
}

func serializeRect(r graphics.Rect) map[string]any {
	return sortedMap(
		"left", round2(r.Left),
		"top", round2(r.Top),
		"right", round2(r.Right),
		"bottom", round2(r.Bottom),
	)
}

func serializeColor(c graphics.Color) string {
	return fmt.Sprintf("0x%08X", uint32(c))
}

// round2 rounds a float64 to 2 decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}

// sortedMap creates a map from alternating key-value pairs.
func sortedMap(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		m[kvs[i].(string)] = kvs[i+1]
	}
	return m
}
