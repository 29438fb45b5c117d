// Package testing provides canvas recording helpers for photoedit tests.
//
// A RecordingCanvas captures every draw call as a DisplayOp so tests can
// assert on what a layer emitted without rasterizing:
//
//	canvas := edittest.NewRecordingCanvas(graphics.Size{Width: 100, Height: 100})
//	renderer.Render(canvas, rect, params)
//	texts := canvas.Ops("drawText")
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import edittest "github.com/go-drift/photoedit/pkg/testing"
package testing
