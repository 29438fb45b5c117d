package tools

import (
	"math"
	"testing"

	"github.com/go-drift/photoedit/pkg/config"
	"github.com/go-drift/photoedit/pkg/graphics"
	"github.com/go-drift/photoedit/pkg/watermark"
)

func newState(t *testing.T) (*State, *[]watermark.Params) {
	t.Helper()
	s, err := NewState(nil)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	var got []watermark.Params
	s.OnChange(func(p watermark.Params) { got = append(got, p) })
	return s, &got
}

func TestNewStateDefaults(t *testing.T) {
	s, _ := newState(t)
	p := s.Params()
	if p.FontSize != 24 || p.Alpha != 0.5 || p.Text != "侵权必究" {
		t.Errorf("Params = %+v", p)
	}
	if p.Color != graphics.RGB(0xf9, 0x50, 0x51) {
		t.Errorf("Color = %s, want #f95051", p.Color.Hex())
	}
	if s.SelectedIndex() != 2 {
		t.Errorf("SelectedIndex = %d, want 2", s.SelectedIndex())
	}
	if s.FontSize.Min != 12 || s.FontSize.Max != 36 {
		t.Errorf("FontSize slider = %+v", s.FontSize)
	}
}

func TestNewStateRejectsBadConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Palette = []string{"bogus"}
	if _, err := NewState(cfg); err == nil {
		t.Error("NewState accepted an invalid palette")
	}
}

func TestSetFontSizeClamps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{30, 30},
		{5, 12},
		{100, 36},
		{12, 12},
	}
	for _, tt := range tests {
		s, _ := newState(t)
		if got := s.SetFontSize(tt.in).FontSize; got != tt.want {
			t.Errorf("SetFontSize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetAlphaClamps(t *testing.T) {
	s, notes := newState(t)
	if got := s.SetAlpha(-1).Alpha; got != 0 {
		t.Errorf("SetAlpha(-1) = %v, want 0", got)
	}
	if got := s.SetAlpha(1.5).Alpha; got != 1 {
		t.Errorf("SetAlpha(1.5) = %v, want 1", got)
	}
	if got := s.SetAlpha(math.NaN()).Alpha; got != 1 {
		t.Errorf("SetAlpha(NaN) = %v, want unchanged 1", got)
	}
	if len(*notes) != 2 {
		t.Errorf("listener ran %d times, want 2", len(*notes))
	}
}

func TestListenersOnlyOnChange(t *testing.T) {
	s, notes := newState(t)
	s.SetFontSize(24)
	s.SetAlpha(0.5)
	s.SetText("侵权必究")
	s.SelectColor(s.Color())
	if len(*notes) != 0 {
		t.Fatalf("no-op changes notified %d times", len(*notes))
	}
	s.SetFontSize(20)
	s.SelectIndex(0)
	if len(*notes) != 2 {
		t.Fatalf("notified %d times, want 2", len(*notes))
	}
	last := (*notes)[1]
	if last.FontSize != 20 || last.Color != graphics.ColorWhite {
		t.Errorf("last notification = %+v", last)
	}
}

func TestSelectIndex(t *testing.T) {
	s, _ := newState(t)
	if _, ok := s.SelectIndex(-1); ok {
		t.Error("SelectIndex(-1) succeeded")
	}
	if _, ok := s.SelectIndex(len(s.Palette())); ok {
		t.Error("SelectIndex(len) succeeded")
	}
	p, ok := s.SelectIndex(1)
	if !ok || p.Color != graphics.ColorBlack {
		t.Errorf("SelectIndex(1) = %+v, %v", p, ok)
	}
	s.SelectColor(graphics.RGB(1, 2, 3))
	if s.SelectedIndex() != -1 {
		t.Errorf("SelectedIndex = %d for off-palette colour, want -1", s.SelectedIndex())
	}
}

func TestSetTextStripsNewlines(t *testing.T) {
	s, _ := newState(t)
	tests := map[string]string{
		"draft":            "draft",
		"two\nlines":       "twolines",
		"crlf\r\nend\r":    "crlfend",
		"":                 "",
		"\n":               "",
		"keep  spaces\t ok": "keep  spaces\t ok",
	}
	for in, want := range tests {
		if got := s.SetText(in).Text; got != want {
			t.Errorf("SetText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTrackingCommitsOnce(t *testing.T) {
	s, notes := newState(t)
	s.TrackFontSize(0)
	s.TrackFontSize(0.5)
	s.TrackFontSize(1)
	if len(*notes) != 0 {
		t.Fatalf("tracking notified %d times", len(*notes))
	}
	p := s.EndTracking()
	if p.FontSize != 36 || len(*notes) != 1 {
		t.Errorf("EndTracking = %+v after %d notifications", p, len(*notes))
	}
	s.EndTracking()
	if len(*notes) != 1 {
		t.Errorf("idle EndTracking notified")
	}
	s.TrackAlpha(0.25)
	if p := s.EndTracking(); p.Alpha != 0.25 {
		t.Errorf("Alpha = %v, want 0.25", p.Alpha)
	}
}

func TestTrackingBackToStartIsSilent(t *testing.T) {
	tests := []struct {
		name  string
		track func(*State, float64)
		start float64
	}{
		{"font size", (*State).TrackFontSize, 0.5},
		{"alpha", (*State).TrackAlpha, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, notes := newState(t)
			before := s.Params()
			tt.track(s, 1)
			tt.track(s, tt.start)
			if p := s.EndTracking(); p != before {
				t.Errorf("EndTracking = %+v, want %+v", p, before)
			}
			if len(*notes) != 0 {
				t.Errorf("drag back to start notified %d times", len(*notes))
			}
		})
	}
}

func TestBindUpdatesLayer(t *testing.T) {
	s, _ := newState(t)
	layer := watermark.NewLayer(watermark.NewRenderer(nil))
	s.Bind(layer)
	if layer.Params() != s.Params() {
		t.Fatalf("layer params = %+v, want %+v", layer.Params(), s.Params())
	}
	s.SetText("COPY")
	if layer.Params().Text != "COPY" || !layer.NeedsPaint() {
		t.Errorf("layer not updated: %+v", layer.Params())
	}
}

func TestPaletteIsCopy(t *testing.T) {
	s, _ := newState(t)
	p := s.Palette()
	p[0] = graphics.ColorTransparent
	if s.Palette()[0] == graphics.ColorTransparent {
		t.Error("Palette exposed internal slice")
	}
}
