package graphics

import "fmt"

// BlendMode controls how source and destination colors are composited.
type BlendMode int

const (
	BlendModeSrcOver   BlendMode = iota // src_over (default)
	BlendModeSrc                        // src
	BlendModeClear                      // clear
	BlendModeMultiply                   // multiply
	BlendModeScreen                     // screen
	BlendModeOverlay                    // overlay
	BlendModeSoftLight                  // soft_light
)

var blendModeNames = []string{
	"src_over", "src", "clear", "multiply", "screen", "overlay", "soft_light",
}

// String returns a human-readable representation of the blend mode.
func (m BlendMode) String() string {
	if m >= 0 && int(m) < len(blendModeNames) {
		return blendModeNames[m]
	}
	return fmt.Sprintf("BlendMode(%d)", int(m))
}

// ParseBlendMode resolves a name produced by String.
func ParseBlendMode(name string) (BlendMode, error) {
	for i, n := range blendModeNames {
		if n == name {
			return BlendMode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown blend mode %q", name)
}

// Paint describes how a draw operation fills its geometry.
type Paint struct {
	Color     Color
	BlendMode BlendMode
}

// DefaultPaint returns an opaque black source-over paint.
func DefaultPaint() Paint {
	return Paint{Color: ColorBlack}
}
