package graphics

import "image"

// DisplayList is an immutable list of drawing operations.
// It can be replayed onto any Canvas implementation.
type DisplayList struct {
	ops  []displayOp
	size Size
}

// Paint replays the recorded operations onto the provided canvas.
func (d *DisplayList) Paint(canvas Canvas) {
	for _, op := range d.ops {
		op.execute(canvas)
	}
}

// Size returns the size recorded when the display list was created.
func (d *DisplayList) Size() Size {
	return d.size
}

// Len returns the number of recorded operations.
func (d *DisplayList) Len() int {
	return len(d.ops)
}

// PictureRecorder records drawing commands into a display list.
type PictureRecorder struct {
	ops       []displayOp
	recording bool
	size      Size
}

// BeginRecording starts a new recording session.
func (r *PictureRecorder) BeginRecording(size Size) Canvas {
	r.ops = r.ops[:0]
	r.recording = true
	r.size = size
	return &recordingCanvas{recorder: r, size: size}
}

// EndRecording finishes the recording and returns a display list.
func (r *PictureRecorder) EndRecording() *DisplayList {
	if !r.recording {
		return &DisplayList{size: r.size}
	}
	r.recording = false
	ops := make([]displayOp, len(r.ops))
	copy(ops, r.ops)
	return &DisplayList{ops: ops, size: r.size}
}

func (r *PictureRecorder) append(op displayOp) {
	if !r.recording {
		return
	}
	r.ops = append(r.ops, op)
}

type displayOp interface {
	execute(canvas Canvas)
}

type recordingCanvas struct {
	recorder *PictureRecorder
	size     Size
}

func (c *recordingCanvas) Save()                    { c.recorder.append(opSave{}) }
func (c *recordingCanvas) Restore()                 { c.recorder.append(opRestore{}) }
func (c *recordingCanvas) Translate(dx, dy float64) { c.recorder.append(opTranslate{dx: dx, dy: dy}) }
func (c *recordingCanvas) Scale(sx, sy float64)     { c.recorder.append(opScale{sx: sx, sy: sy}) }
func (c *recordingCanvas) Rotate(radians float64)   { c.recorder.append(opRotate{radians: radians}) }
func (c *recordingCanvas) Concat(m Matrix)          { c.recorder.append(opConcat{m: m}) }
func (c *recordingCanvas) Clear(color Color)        { c.recorder.append(opClear{color: color}) }

func (c *recordingCanvas) DrawRect(rect Rect, paint Paint) {
	c.recorder.append(opRect{rect: rect, paint: paint})
}

func (c *recordingCanvas) DrawText(layout *TextLayout, position Offset, paint Paint) {
	c.recorder.append(opText{layout: layout, position: position, paint: paint})
}

func (c *recordingCanvas) DrawImage(image image.Image, position Offset) {
	c.recorder.append(opImage{image: image, position: position})
}

func (c *recordingCanvas) Size() Size {
	return c.size
}

type opSave struct{}

func (opSave) execute(canvas Canvas) { canvas.Save() }

type opRestore struct{}

func (opRestore) execute(canvas Canvas) { canvas.Restore() }

type opTranslate struct {
	dx, dy float64
}

func (op opTranslate) execute(canvas Canvas) { canvas.Translate(op.dx, op.dy) }

type opScale struct {
	sx, sy float64
}

func (op opScale) execute(canvas Canvas) { canvas.Scale(op.sx, op.sy) }

type opRotate struct {
	radians float64
}

func (op opRotate) execute(canvas Canvas) { canvas.Rotate(op.radians) }

type opConcat struct {
	m Matrix
}

func (op opConcat) execute(canvas Canvas) { canvas.Concat(op.m) }

type opClear struct {
	color Color
}

func (op opClear) execute(canvas Canvas) { canvas.Clear(op.color) }

type opRect struct {
	rect  Rect
	paint Paint
}

func (op opRect) execute(canvas Canvas) { canvas.DrawRect(op.rect, op.paint) }

type opText struct {
	layout   *TextLayout
	position Offset
	paint    Paint
}

func (op opText) execute(canvas Canvas) { canvas.DrawText(op.layout, op.position, op.paint) }

type opImage struct {
	image    image.Image
	position Offset
}

func (op opImage) execute(canvas Canvas) { canvas.DrawImage(op.image, op.position) }
