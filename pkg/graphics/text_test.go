package graphics

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/go-drift/photoedit/pkg/errors"
)

const cjkText = "侵权必究"

// hanSource stands in for a CJK font: it only has Han glyphs.
type hanSource struct{}

func (hanSource) newFace(float64) (font.Face, error) { return basicfont.Face7x13, nil }
func (hanSource) hasGlyph(r rune) bool               { return unicode.Is(unicode.Han, r) }

func TestLayoutTextMeasuresSingleLine(t *testing.T) {
	layout, err := LayoutText("A", TextStyle{FontSize: 20}, DefaultFontManager())
	if err != nil {
		t.Fatalf("LayoutText: %v", err)
	}
	if layout.Size.Width <= 0 || layout.Size.Height <= 0 {
		t.Errorf("Size = %+v, want positive", layout.Size)
	}
	if len(layout.Lines) != 1 {
		t.Errorf("len(Lines) = %d, want 1", len(layout.Lines))
	}
	if layout.Face == nil {
		t.Error("expected resolved face")
	}
}

func TestLayoutTextEmpty(t *testing.T) {
	layout, err := LayoutText("", TextStyle{FontSize: 20}, DefaultFontManager())
	if err != nil {
		t.Fatalf("LayoutText: %v", err)
	}
	if layout.Size.Width != 0 {
		t.Errorf("Width = %v, want 0", layout.Size.Width)
	}
}

func TestLayoutTextNoWrapWithoutWidth(t *testing.T) {
	long := "a fairly long watermark line that never wraps"
	layout, err := LayoutText(long, TextStyle{FontSize: 14}, DefaultFontManager())
	if err != nil {
		t.Fatalf("LayoutText: %v", err)
	}
	if len(layout.Lines) != 1 {
		t.Errorf("len(Lines) = %d, want 1", len(layout.Lines))
	}
}

func TestLayoutTextWraps(t *testing.T) {
	manager := DefaultFontManager()
	wide, _ := LayoutText("hello", TextStyle{FontSize: 16}, manager)
	layout, err := LayoutTextWithConstraints("hello hello hello", TextStyle{FontSize: 16}, manager, wide.Size.Width+1)
	if err != nil {
		t.Fatalf("LayoutTextWithConstraints: %v", err)
	}
	if len(layout.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3", len(layout.Lines))
	}
	for _, line := range layout.Lines {
		if line.Text != "hello" {
			t.Errorf("line = %q, want %q", line.Text, "hello")
		}
	}
	if !floatEqual(layout.Size.Height, 3*layout.LineHeight) {
		t.Errorf("Height = %v, want %v", layout.Size.Height, 3*layout.LineHeight)
	}
}

func TestLayoutTextNewlines(t *testing.T) {
	layout, err := LayoutText("a\n\nb", TextStyle{FontSize: 16}, DefaultFontManager())
	if err != nil {
		t.Fatalf("LayoutText: %v", err)
	}
	if len(layout.Lines) != 3 {
		t.Errorf("len(Lines) = %d, want 3", len(layout.Lines))
	}
}

func TestFontManagerRegisterAndDefault(t *testing.T) {
	manager, err := NewFontManager()
	if err != nil {
		t.Fatalf("NewFontManager: %v", err)
	}
	if err := manager.RegisterFont("Mono", gomono.TTF); err != nil {
		t.Fatalf("RegisterFont: %v", err)
	}
	if err := manager.SetDefault("Mono"); err != nil {
		t.Fatalf("SetDefault: %v", err)
	}
	i, _ := LayoutText("iiii", TextStyle{FontSize: 20}, manager)
	m, _ := LayoutText("mmmm", TextStyle{FontSize: 20}, manager)
	if !floatEqual(i.Size.Width, m.Size.Width) {
		t.Errorf("monospace widths differ: %v vs %v", i.Size.Width, m.Size.Width)
	}
}

func TestFontManagerErrors(t *testing.T) {
	manager, _ := NewFontManager()
	if err := manager.RegisterFont("", gomono.TTF); err == nil {
		t.Error("RegisterFont with empty name should fail")
	}
	if err := manager.RegisterFont("Bad", []byte("not a font")); err == nil {
		t.Error("RegisterFont with garbage should fail")
	}
	if _, err := manager.Face(TextStyle{FontFamily: "Missing"}); err == nil {
		t.Error("Face for unknown family should fail")
	}
	if _, err := LayoutText("x", TextStyle{}, nil); err == nil {
		t.Error("LayoutText without manager should fail")
	}
}

func TestFontManagerCachesFaces(t *testing.T) {
	manager, _ := NewFontManager()
	a, _ := manager.Face(TextStyle{FontSize: 18})
	b, _ := manager.Face(TextStyle{FontSize: 18})
	if a != b {
		t.Error("expected cached face for identical style")
	}
}

func TestBundledFontLacksCJK(t *testing.T) {
	manager, _ := NewFontManager()
	if got := manager.Missing("", cjkText); string(got) != cjkText {
		t.Errorf("Missing = %q, want every rune of %q", string(got), cjkText)
	}
	if got := manager.Missing("", "DRAFT 1\t"); len(got) != 0 {
		t.Errorf("Missing = %q, want none", string(got))
	}
	if got := manager.Missing("Nope", "a"); string(got) != "a" {
		t.Errorf("unregistered family Missing = %q, want a", string(got))
	}
	if _, ok := manager.FamilyFor(cjkText); ok {
		t.Error("FamilyFor found a family for CJK text with only the bundled font")
	}
}

func TestLayoutTextFallsBackToCoveringFamily(t *testing.T) {
	manager, _ := NewFontManager()
	manager.addSource("Han", hanSource{})

	if family, ok := manager.FamilyFor(cjkText); !ok || family != "Han" {
		t.Fatalf("FamilyFor = %q, %v, want Han", family, ok)
	}
	if family, _ := manager.FamilyFor("abc"); family != DefaultFontFamily {
		t.Errorf("FamilyFor(latin) = %q, want default", family)
	}
	layout, err := LayoutText(cjkText, TextStyle{FontSize: 13}, manager)
	if err != nil {
		t.Fatalf("LayoutText: %v", err)
	}
	if layout.Style.FontFamily != "Han" || layout.Face != basicfont.Face7x13 {
		t.Errorf("layout family = %q, want Han face", layout.Style.FontFamily)
	}
	explicit, _ := LayoutText(cjkText, TextStyle{FontFamily: DefaultFontFamily, FontSize: 13}, manager)
	if explicit.Style.FontFamily != DefaultFontFamily {
		t.Errorf("explicit family replaced by %q", explicit.Style.FontFamily)
	}
}

func TestRegisterFontFile(t *testing.T) {
	manager, _ := NewFontManager()
	path := filepath.Join(t.TempDir(), "Mono.ttf")
	if err := os.WriteFile(path, gomono.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	family, err := manager.RegisterFontFile(path)
	if err != nil || family != "Mono" {
		t.Fatalf("RegisterFontFile = %q, %v", family, err)
	}
	if err := manager.SetDefault(family); err != nil || manager.Default() != "Mono" {
		t.Errorf("SetDefault: %v, default %q", err, manager.Default())
	}

	_, err = manager.RegisterFontFile(filepath.Join(t.TempDir(), "absent.ttf"))
	var ee *errors.EditError
	if !stderrors.As(err, &ee) || ee.Kind != errors.KindFont || ee.Path == "" {
		t.Errorf("missing file err = %v, want font EditError with path", err)
	}
}

func TestSFNTSource(t *testing.T) {
	src, err := parseSFNT(goregular.TTF)
	if err != nil {
		t.Fatalf("parseSFNT: %v", err)
	}
	if !src.hasGlyph('A') || src.hasGlyph('侵') {
		t.Error("sfnt coverage disagrees with the Go Regular character set")
	}
	face, err := src.newFace(20)
	if err != nil {
		t.Fatalf("newFace: %v", err)
	}
	if adv, ok := face.GlyphAdvance('A'); !ok || adv <= 0 {
		t.Errorf("GlyphAdvance('A') = %v, %v", adv, ok)
	}
}

func TestSystemFallbackCoversCJK(t *testing.T) {
	manager, _ := NewFontManager()
	family, err := manager.RegisterSystemFallback(cjkText)
	if err != nil {
		t.Skipf("no CJK font installed: %v", err)
	}
	if missing := manager.Missing(family, cjkText); len(missing) != 0 {
		t.Errorf("fallback %q misses %q", family, string(missing))
	}
	layout, err := LayoutText(cjkText, TextStyle{FontSize: 20}, manager)
	if err != nil {
		t.Fatalf("LayoutText: %v", err)
	}
	if layout.Style.FontFamily != family || layout.Size.Width <= 0 {
		t.Errorf("layout = family %q width %v, want %q", layout.Style.FontFamily, layout.Size.Width, family)
	}
}

func TestSystemFallbackKeepsCoveringFamily(t *testing.T) {
	manager, _ := NewFontManager()
	family, err := manager.RegisterSystemFallback("plain ascii")
	if err != nil || family != DefaultFontFamily {
		t.Errorf("RegisterSystemFallback = %q, %v, want default family", family, err)
	}
}
