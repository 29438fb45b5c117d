package cmd

import (
	"bytes"
	"context"
	stderrors "errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/go-drift/photoedit/pkg/config"
	"github.com/go-drift/photoedit/pkg/errors"
)

var gray = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}

func writePhoto(t *testing.T, w, h int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photo.png")
	if err := imaging.Save(imaging.New(w, h, gray), path); err != nil {
		t.Fatalf("save photo: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runContext(t, context.Background(), args...)
}

func runContext(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { errors.SetHandler(nil) })
	var buf bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return buf.String(), err
}

func writeFont(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "GoMono.ttf")
	if err := os.WriteFile(path, gomono.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func changedPixels(t *testing.T, path string) int {
	t.Helper()
	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if color.NRGBAModel.Convert(img.At(x, y)) != gray {
				n++
			}
		}
	}
	return n
}

func TestWatermarkCommand(t *testing.T) {
	in := writePhoto(t, 80, 60)
	out := filepath.Join(t.TempDir(), "out.png")

	logs, err := run(t, "watermark", "--in", in, "--out", out, "--text", "DRAFT", "--alpha", "1", "--font-size", "14")
	if err != nil {
		t.Fatalf("watermark: %v\n%s", err, logs)
	}
	if changedPixels(t, out) == 0 {
		t.Error("watermark left the photo unchanged")
	}
	if !strings.Contains(logs, "Watermarked") {
		t.Errorf("missing completion log:\n%s", logs)
	}
}

func TestWatermarkCommandRejectsBadFlags(t *testing.T) {
	in := writePhoto(t, 20, 20)
	out := filepath.Join(t.TempDir(), "out.png")
	tests := []struct {
		name string
		args []string
	}{
		{"missing input", []string{"watermark", "--out", out}},
		{"swatch out of range", []string{"watermark", "--in", in, "--out", out, "--swatch", "99"}},
		{"bad colour", []string{"watermark", "--in", in, "--out", out, "--color", "blue"}},
		{"bad blend", []string{"watermark", "--in", in, "--out", out, "--blend", "dissolve"}},
		{"unreadable input", []string{"watermark", "--in", in + ".missing", "--out", out}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output written despite errors: %v", err)
	}
}

func TestWatermarkCommandConfig(t *testing.T) {
	in := writePhoto(t, 40, 40)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "editor.yaml")
	if err := os.WriteFile(cfgPath, []byte("version: v3.0.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := run(t, "watermark", "--in", in, "--out", filepath.Join(dir, "out.png"), "--config", cfgPath)
	if err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Errorf("err = %v, want unsupported version", err)
	}
}

func TestStickerCommand(t *testing.T) {
	in := writePhoto(t, 200, 120)
	out := filepath.Join(t.TempDir(), "out.png")

	logs, err := run(t, "-v", "sticker", "--in", in, "--out", out, "--text", "hi", "--angle", "30", "--copies", "2", "--style", "background")
	if err != nil {
		t.Fatalf("sticker: %v\n%s", err, logs)
	}
	if changedPixels(t, out) == 0 {
		t.Error("sticker left the photo unchanged")
	}
	if n := strings.Count(logs, "placed sticker"); n != 2 {
		t.Errorf("debug log lists %d stickers, want 2:\n%s", n, logs)
	}
}

func TestStickerCommandRejectsBadScale(t *testing.T) {
	in := writePhoto(t, 20, 20)
	_, err := run(t, "sticker", "--in", in, "--out", filepath.Join(t.TempDir(), "o.png"), "--text", "x", "--scale", "0")
	if err == nil || !strings.Contains(err.Error(), "OriginScale") {
		t.Errorf("err = %v, want OriginScale contract error", err)
	}
}

func TestLoadImageNormalisesOrigin(t *testing.T) {
	src := imaging.New(10, 6, gray)
	sub := src.SubImage(image.Rect(2, 1, 10, 6))
	path := filepath.Join(t.TempDir(), "sub.png")
	if err := imaging.Save(sub, path); err != nil {
		t.Fatal(err)
	}
	img, err := loadImage(path)
	if err != nil {
		t.Fatalf("loadImage: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 8, 5) {
		t.Errorf("bounds = %v, want (0,0)-(8,5)", img.Bounds())
	}
}

func TestLoadImageReportsIOKind(t *testing.T) {
	_, err := loadImage(filepath.Join(t.TempDir(), "none.png"))
	ee, ok := err.(*errors.EditError)
	if !ok || ee.Kind != errors.KindIO {
		t.Errorf("err = %v, want io EditError", err)
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("expected default logger")
	}
	var buf bytes.Buffer
	l := newLogger(&buf, log.DebugLevel)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("logger not carried by context")
	}
}

func TestCommandsStopWhenCancelled(t *testing.T) {
	in := writePhoto(t, 40, 40)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name string
		args []string
	}{
		{"watermark", []string{"watermark", "--text", "A"}},
		{"sticker", []string{"sticker", "--text", "A"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.png")
			_, err := runContext(t, ctx, append(tt.args, "--in", in, "--out", out)...)
			if !stderrors.Is(err, context.Canceled) {
				t.Errorf("err = %v, want context.Canceled", err)
			}
			if _, err := os.Stat(out); !os.IsNotExist(err) {
				t.Errorf("output written after cancel: %v", err)
			}
		})
	}
}

func TestFontFlag(t *testing.T) {
	in := writePhoto(t, 120, 80)
	font := writeFont(t)
	for _, name := range []string{"watermark", "sticker"} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.png")
			logs, err := run(t, "-v", name, "--in", in, "--out", out, "--text", "mono", "--font", font)
			if err != nil {
				t.Fatalf("%s: %v\n%s", name, err, logs)
			}
			if !strings.Contains(logs, "registered font") || !strings.Contains(logs, "GoMono") {
				t.Errorf("font not registered:\n%s", logs)
			}
		})
	}

	_, err := run(t, "watermark", "--in", in, "--out", filepath.Join(t.TempDir(), "o.png"), "--text", "x", "--font", font+".missing")
	var ee *errors.EditError
	if !stderrors.As(err, &ee) || ee.Kind != errors.KindFont {
		t.Errorf("missing font err = %v, want font EditError", err)
	}
}

func TestConfigFontIsDefault(t *testing.T) {
	cfg := config.Defaults()
	cfg.Font = writeFont(t)
	fonts, err := loadFonts(cfg, "", "DRAFT", log.Default())
	if err != nil {
		t.Fatalf("loadFonts: %v", err)
	}
	if fonts.Default() != "GoMono" {
		t.Errorf("default family = %q, want GoMono", fonts.Default())
	}
}

// The default watermark text is CJK, which the bundled font lacks: a run
// either finds an installed font with real glyphs or fails asking for one.
func TestDefaultTextNeedsCoveringFont(t *testing.T) {
	text := config.Defaults().Watermark.Text
	fonts, err := loadFonts(config.Defaults(), "", text, log.Default())
	if err != nil {
		var ee *errors.EditError
		if !stderrors.As(err, &ee) || ee.Kind != errors.KindFont || !strings.Contains(err.Error(), "--font") {
			t.Fatalf("err = %v, want font EditError suggesting --font", err)
		}
		return
	}
	family, ok := fonts.FamilyFor(text)
	if !ok {
		t.Fatalf("no family covers %q", text)
	}
	if missing := fonts.Missing(family, text); len(missing) != 0 {
		t.Errorf("family %q misses %q", family, string(missing))
	}
}

func TestGuardedConvertsPanics(t *testing.T) {
	var panics []*errors.PanicError
	errors.SetHandler(&panicCapture{onPanic: func(p *errors.PanicError) { panics = append(panics, p) }})
	t.Cleanup(func() { errors.SetHandler(nil) })

	err := guarded("cmd.sticker", func() error {
		errors.Violation("sticker.Resize", "GesScale", 0.0, "finite > 0")
		return nil
	})
	var ee *errors.EditError
	if !stderrors.As(err, &ee) || ee.Kind != errors.KindContract || ee.Op != "cmd.sticker" {
		t.Fatalf("err = %v, want contract EditError from cmd.sticker", err)
	}
	if len(panics) != 1 || panics[0].Op != "cmd.sticker" {
		t.Errorf("handler saw %d panics", len(panics))
	}

	if err := guarded("cmd.sticker", func() error { return nil }); err != nil {
		t.Errorf("guarded(nil) = %v", err)
	}
}

type panicCapture struct {
	onPanic func(*errors.PanicError)
}

func (h *panicCapture) HandleError(*errors.EditError)      {}
func (h *panicCapture) HandlePanic(err *errors.PanicError) { h.onPanic(err) }
