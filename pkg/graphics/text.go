package graphics

import (
	stderrors "errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/photoedit/pkg/errors"
)

const (
	// defaultFontSize is used when no font size is specified.
	defaultFontSize = 16

	// DefaultFontFamily names the bundled Go Regular face.
	DefaultFontFamily = "Go"
)

// TextStyle describes the font used to measure and draw text.
type TextStyle struct {
	FontFamily         string
	FontSize           float64
	PreserveWhitespace bool
}

// TextLine represents a single laid-out line of text.
type TextLine struct {
	Text  string
	Width float64
}

// TextLayout contains measured text metrics and a resolved font face.
type TextLayout struct {
	Text       string
	Style      TextStyle
	Size       Size
	Ascent     float64
	Descent    float64
	Face       font.Face
	LineHeight float64
	Lines      []TextLine
}

type faceKey struct {
	family string
	size   float64
}

// fontSource is a parsed font that can produce sized faces.
type fontSource interface {
	newFace(size float64) (font.Face, error)
	hasGlyph(r rune) bool
}

type truetypeSource struct {
	f *truetype.Font
}

func (s truetypeSource) newFace(size float64) (font.Face, error) {
	return truetype.NewFace(s.f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

func (s truetypeSource) hasGlyph(r rune) bool {
	return s.f.Index(r) != 0
}

// sfntSource covers OpenType outlines and font collections, which the
// truetype parser rejects.
type sfntSource struct {
	f *sfnt.Font
}

func (s sfntSource) newFace(size float64) (font.Face, error) {
	return opentype.NewFace(s.f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

func (s sfntSource) hasGlyph(r rune) bool {
	var buf sfnt.Buffer
	i, err := s.f.GlyphIndex(&buf, r)
	return err == nil && i != 0
}

func parseFont(data []byte) (fontSource, error) {
	if f, err := truetype.Parse(data); err == nil {
		return truetypeSource{f: f}, nil
	}
	return parseSFNT(data)
}

// parseSFNT reads the first font of an OpenType file or collection.
func parseSFNT(data []byte) (fontSource, error) {
	c, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	f, err := c.Font(0)
	if err != nil {
		return nil, err
	}
	return sfntSource{f: f}, nil
}

// FontManager owns parsed fonts and caches sized faces. Families are kept
// in registration order, which is also the fallback order.
type FontManager struct {
	mu          sync.RWMutex
	fonts       map[string]fontSource
	order       []string
	faces       map[faceKey]font.Face
	defaultName string
}

var (
	defaultFontManager     *FontManager
	defaultFontManagerErr  error
	defaultFontManagerOnce sync.Once
)

// NewFontManager creates a font manager with the bundled Go Regular font
// registered as the default family.
func NewFontManager() (*FontManager, error) {
	manager := &FontManager{
		fonts: make(map[string]fontSource),
		faces: make(map[faceKey]font.Face),
	}
	if err := manager.RegisterFont(DefaultFontFamily, goregular.TTF); err != nil {
		return nil, err
	}
	manager.defaultName = DefaultFontFamily
	return manager, nil
}

// DefaultFontManagerErr returns a shared font manager with a bundled font.
// It returns both the manager and any error that occurred during initialization.
func DefaultFontManagerErr() (*FontManager, error) {
	defaultFontManagerOnce.Do(func() {
		manager, err := NewFontManager()
		if err != nil {
			defaultFontManagerErr = err
			errors.Report(&errors.EditError{
				Op:   "graphics.DefaultFontManager",
				Kind: errors.KindInit,
				Err:  err,
			})
			return
		}
		defaultFontManager = manager
	})
	return defaultFontManager, defaultFontManagerErr
}

// DefaultFontManager returns a shared font manager, or nil if it failed to initialize.
func DefaultFontManager() *FontManager {
	manager, _ := DefaultFontManagerErr()
	return manager
}

// RegisterFont registers a font family from TrueType, OpenType or font
// collection data. Collections contribute their first font.
func (m *FontManager) RegisterFont(name string, data []byte) error {
	if name == "" {
		return stderrors.New("font name required")
	}
	src, err := parseFont(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", name, err)
	}
	m.addSource(name, src)
	return nil
}

// RegisterFontFile registers the font at path under its base name without
// extension and returns that family name.
func (m *FontManager) RegisterFontFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &errors.EditError{Op: "graphics.RegisterFontFile", Kind: errors.KindFont, Path: path, Err: err}
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := m.RegisterFont(name, data); err != nil {
		return "", &errors.EditError{Op: "graphics.RegisterFontFile", Kind: errors.KindFont, Path: path, Err: err}
	}
	return name, nil
}

func (m *FontManager) addSource(name string, src fontSource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.fonts[name]; !ok {
		m.order = append(m.order, name)
	}
	m.fonts[name] = src
	for key := range m.faces {
		if key.family == name {
			delete(m.faces, key)
		}
	}
}

// SetDefault selects the family used when a style names none.
func (m *FontManager) SetDefault(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.fonts[name]; !ok {
		return fmt.Errorf("font %q not registered", name)
	}
	m.defaultName = name
	return nil
}

// Default returns the default family name.
func (m *FontManager) Default() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultName
}

// Missing returns the runes of text, other than spaces and control
// characters, that family has no glyph for. An empty family means the
// default. Every rune is missing from an unregistered family.
func (m *FontManager) Missing(family, text string) []rune {
	m.mu.RLock()
	if family == "" {
		family = m.defaultName
	}
	src := m.fonts[family]
	m.mu.RUnlock()

	var missing []rune
	for _, r := range text {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			continue
		}
		if src == nil || !src.hasGlyph(r) {
			missing = append(missing, r)
		}
	}
	return missing
}

// FamilyFor returns the default family if it covers text, otherwise the
// first registered family that does.
func (m *FontManager) FamilyFor(text string) (string, bool) {
	m.mu.RLock()
	candidates := append([]string{m.defaultName}, m.order...)
	m.mu.RUnlock()
	for _, family := range candidates {
		if len(m.Missing(family, text)) == 0 {
			return family, true
		}
	}
	return "", false
}

// Face resolves a font face for the given style.
func (m *FontManager) Face(style TextStyle) (font.Face, error) {
	family := style.FontFamily
	size := style.FontSize
	if size <= 0 {
		size = defaultFontSize
	}

	m.mu.RLock()
	if family == "" {
		family = m.defaultName
	}
	key := faceKey{family: family, size: size}
	face, ok := m.faces[key]
	src := m.fonts[family]
	m.mu.RUnlock()
	if ok {
		return face, nil
	}
	if src == nil {
		return nil, &errors.EditError{
			Op:   "graphics.FontManager.Face",
			Kind: errors.KindFont,
			Err:  fmt.Errorf("font family %q not registered", family),
		}
	}

	face, err := src.newFace(size)
	if err != nil {
		return nil, &errors.EditError{Op: "graphics.FontManager.Face", Kind: errors.KindFont, Err: err}
	}
	m.mu.Lock()
	m.faces[key] = face
	m.mu.Unlock()
	return face, nil
}

// LayoutText measures the given text on a single line per paragraph.
func LayoutText(text string, style TextStyle, manager *FontManager) (*TextLayout, error) {
	return LayoutTextWithConstraints(text, style, manager, 0)
}

// LayoutTextWithConstraints measures and wraps text within the given width.
// A maxWidth of zero disables wrapping.
func LayoutTextWithConstraints(text string, style TextStyle, manager *FontManager, maxWidth float64) (*TextLayout, error) {
	if manager == nil {
		return nil, stderrors.New("font manager required")
	}
	if style.FontSize <= 0 {
		style.FontSize = defaultFontSize
	}
	if style.FontFamily == "" {
		if family, ok := manager.FamilyFor(text); ok {
			style.FontFamily = family
		}
	}
	face, err := manager.Face(style)
	if err != nil {
		return nil, err
	}
	metrics := face.Metrics()
	ascent := fixedToFloat(metrics.Ascent)
	descent := fixedToFloat(metrics.Descent)
	lineHeight := fixedToFloat(metrics.Height)
	if lineHeight == 0 {
		lineHeight = ascent + descent
	}
	measure := func(s string) float64 {
		return fixedToFloat(font.MeasureString(face, s))
	}
	lines := layoutLines(text, maxWidth, measure, style.PreserveWhitespace)
	if len(lines) == 0 {
		lines = []TextLine{{}}
	}
	maxLineWidth := 0.0
	for _, line := range lines {
		maxLineWidth = math.Max(maxLineWidth, line.Width)
	}
	return &TextLayout{
		Text:       text,
		Style:      style,
		Size:       Size{Width: maxLineWidth, Height: lineHeight * float64(len(lines))},
		Ascent:     ascent,
		Descent:    descent,
		Face:       face,
		LineHeight: lineHeight,
		Lines:      lines,
	}, nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func layoutLines(text string, maxWidth float64, measure func(string) float64, preserveWhitespace bool) []TextLine {
	if maxWidth < 0 || math.IsInf(maxWidth, 0) {
		maxWidth = 0
	}
	paragraphs := strings.Split(text, "\n")
	lines := make([]TextLine, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		if paragraph == "" {
			lines = append(lines, TextLine{})
			continue
		}
		if maxWidth == 0 {
			lines = append(lines, TextLine{Text: paragraph, Width: measure(paragraph)})
			continue
		}
		for _, line := range wrapParagraph(paragraph, maxWidth, measure, preserveWhitespace) {
			lines = append(lines, TextLine{Text: line, Width: measure(line)})
		}
	}
	return lines
}

// wrapParagraph breaks text at the last whitespace that fits, falling back to
// a rune boundary when a single word exceeds maxWidth.
func wrapParagraph(text string, maxWidth float64, measure func(string) float64, preserveWhitespace bool) []string {
	var lines []string
	start := 0
	for start < len(text) {
		lastBreak := -1
		lastFit := -1
		for i := start; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			next := i + size
			if measure(text[start:next]) > maxWidth {
				break
			}
			lastFit = next
			if unicode.IsSpace(r) {
				lastBreak = next
			}
			i = next
		}
		if lastFit == -1 {
			_, size := utf8.DecodeRuneInString(text[start:])
			lastFit = start + size
		}
		cut := lastFit
		if lastFit < len(text) && lastBreak > start && lastBreak < lastFit {
			cut = lastBreak
		}
		line := text[start:cut]
		if !preserveWhitespace {
			line = strings.TrimRightFunc(line, unicode.IsSpace)
		}
		lines = append(lines, line)
		start = cut
		if preserveWhitespace {
			continue
		}
		for start < len(text) {
			r, size := utf8.DecodeRuneInString(text[start:])
			if !unicode.IsSpace(r) {
				break
			}
			start += size
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
