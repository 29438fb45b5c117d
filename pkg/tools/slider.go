package tools

import (
	"math"

	"github.com/go-drift/photoedit/pkg/config"
)

// Slider is a bounded continuous value.
type Slider struct {
	Min   float64
	Max   float64
	Value float64
}

// NewSlider creates a slider over r starting at r.Default.
func NewSlider(r config.Range) Slider {
	s := Slider{Min: r.Min, Max: r.Max}
	s.Set(r.Default)
	return s
}

// Set clamps v into [Min, Max] and stores it. It reports whether the value
// changed. NaN is ignored.
func (s *Slider) Set(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	v = math.Min(math.Max(v, s.Min), s.Max)
	if v == s.Value {
		return false
	}
	s.Value = v
	return true
}

// SetPosition sets the value from a track position in [0, 1], where 0 is
// Min and 1 is Max.
func (s *Slider) SetPosition(t float64) bool {
	if math.IsNaN(t) {
		return false
	}
	t = math.Min(math.Max(t, 0), 1)
	return s.Set(s.Min + t*(s.Max-s.Min))
}

// Position returns the track position of the current value.
func (s Slider) Position() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.Value - s.Min) / (s.Max - s.Min)
}
