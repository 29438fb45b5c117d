// Package tools holds the watermark toolbar state: font size and opacity
// sliders, the colour palette and the watermark text.
package tools

import (
	"slices"
	"strings"

	"github.com/go-drift/photoedit/pkg/config"
	"github.com/go-drift/photoedit/pkg/graphics"
	"github.com/go-drift/photoedit/pkg/watermark"
)

// Listener receives the watermark parameters after a committed change.
type Listener func(watermark.Params)

// State is the watermark toolbar model. Every committed change returns the
// resulting parameters and notifies listeners; nothing is stored on the
// watermark itself.
type State struct {
	FontSize Slider
	Alpha    Slider

	palette   []graphics.Color
	color     graphics.Color
	text      string
	tracking  bool
	committed watermark.Params
	listeners []Listener
}

// NewState builds the toolbar from cfg. A nil cfg uses config.Defaults.
func NewState(cfg *config.Config) (*State, error) {
	if cfg == nil {
		cfg = config.Defaults()
	}
	palette, err := cfg.Colors()
	if err != nil {
		return nil, err
	}
	color, err := cfg.DefaultDrawColor()
	if err != nil {
		return nil, err
	}
	return &State{
		FontSize: NewSlider(cfg.Watermark.FontSize),
		Alpha:    NewSlider(cfg.Watermark.Alpha),
		palette:  palette,
		color:    color,
		text:     stripNewlines(cfg.Watermark.Text),
	}, nil
}

// OnChange registers l to run after every committed change.
func (s *State) OnChange(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Bind keeps layer in sync with the toolbar, starting with the current values.
func (s *State) Bind(layer *watermark.Layer) {
	layer.SetParams(s.Params())
	s.OnChange(layer.SetParams)
}

// Params returns the current watermark parameters.
func (s *State) Params() watermark.Params {
	return watermark.Params{
		Text:     s.text,
		Color:    s.color,
		FontSize: s.FontSize.Value,
		Alpha:    s.Alpha.Value,
	}
}

// Text returns the watermark text.
func (s *State) Text() string {
	return s.text
}

// Color returns the selected colour.
func (s *State) Color() graphics.Color {
	return s.color
}

// Palette returns a copy of the selectable colours.
func (s *State) Palette() []graphics.Color {
	return slices.Clone(s.palette)
}

// SelectedIndex returns the palette index of the current colour, or -1 if
// it is not a palette colour.
func (s *State) SelectedIndex() int {
	return slices.Index(s.palette, s.color)
}

// SetFontSize sets the font size, clamped to the slider range.
func (s *State) SetFontSize(v float64) watermark.Params {
	if s.FontSize.Set(v) {
		s.commit()
	}
	return s.Params()
}

// SetAlpha sets the opacity, clamped to the slider range.
func (s *State) SetAlpha(v float64) watermark.Params {
	if s.Alpha.Set(v) {
		s.commit()
	}
	return s.Params()
}

// TrackFontSize moves the font slider during a drag without notifying.
// EndTracking commits the result.
func (s *State) TrackFontSize(position float64) {
	s.beginTracking()
	s.FontSize.SetPosition(position)
}

// TrackAlpha moves the opacity slider during a drag without notifying.
func (s *State) TrackAlpha(position float64) {
	s.beginTracking()
	s.Alpha.SetPosition(position)
}

// EndTracking finishes a slider drag. Listeners are notified only if the
// values differ from those before the drag started.
func (s *State) EndTracking() watermark.Params {
	if s.tracking {
		s.tracking = false
		if s.Params() != s.committed {
			s.commit()
		}
	}
	return s.Params()
}

func (s *State) beginTracking() {
	if !s.tracking {
		s.committed = s.Params()
		s.tracking = true
	}
}

// SelectColor selects c, which need not be in the palette.
func (s *State) SelectColor(c graphics.Color) watermark.Params {
	if c != s.color {
		s.color = c
		s.commit()
	}
	return s.Params()
}

// SelectIndex selects palette entry i. It reports false for an out of range
// index and leaves the state unchanged.
func (s *State) SelectIndex(i int) (watermark.Params, bool) {
	if i < 0 || i >= len(s.palette) {
		return s.Params(), false
	}
	return s.SelectColor(s.palette[i]), true
}

// SetText replaces the watermark text. Line breaks end editing rather than
// being inserted, so they are removed.
func (s *State) SetText(text string) watermark.Params {
	text = stripNewlines(text)
	if text != s.text {
		s.text = text
		s.commit()
	}
	return s.Params()
}

func (s *State) commit() {
	p := s.Params()
	for _, l := range s.listeners {
		l(p)
	}
}

func stripNewlines(text string) string {
	return strings.NewReplacer("\r\n", "", "\n", "", "\r", "").Replace(text)
}
