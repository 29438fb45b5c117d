// Package config loads editor settings from YAML or TOML files.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/photoedit/pkg/errors"
	"github.com/go-drift/photoedit/pkg/graphics"
)

// SupportedMajor is the only config major version this build reads.
const SupportedMajor = "v1"

// Config holds palette, toolbar and sticker settings.
type Config struct {
	Version      string          `yaml:"version,omitempty" toml:"version,omitempty"`
	Palette      []string        `yaml:"palette,omitempty" toml:"palette,omitempty"`
	DefaultColor string          `yaml:"default_color,omitempty" toml:"default_color,omitempty"`
	// Font is a TrueType, OpenType or collection file used as the default
	// family. A relative path is resolved against the config file.
	Font         string          `yaml:"font,omitempty" toml:"font,omitempty"`
	Watermark    WatermarkConfig `yaml:"watermark" toml:"watermark"`
	Sticker      StickerConfig   `yaml:"sticker" toml:"sticker"`
}

// WatermarkConfig contains the watermark toolbar defaults.
type WatermarkConfig struct {
	Text     string `yaml:"text,omitempty" toml:"text,omitempty"`
	FontSize Range  `yaml:"font_size" toml:"font_size"`
	Alpha    Range  `yaml:"alpha" toml:"alpha"`
}

// Range bounds a slider and gives its starting value.
type Range struct {
	Min     float64 `yaml:"min" toml:"min"`
	Max     float64 `yaml:"max" toml:"max"`
	Default float64 `yaml:"default" toml:"default"`
}

// StickerConfig contains text sticker defaults.
type StickerConfig struct {
	// MaxWidth wraps sticker text; zero disables wrapping.
	MaxWidth float64 `yaml:"max_width,omitempty" toml:"max_width,omitempty"`
	Style    string  `yaml:"style,omitempty" toml:"style,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Version: SupportedMajor + ".0.0",
		Palette: []string{
			"#ffffff", "#000000", "#f95051", "#f89c3b", "#ffc300", "#91d300",
			"#00c15e", "#10adfe", "#1084ec", "#6367f0", "#7f7f7f",
		},
		DefaultColor: "#f95051",
		Watermark: WatermarkConfig{
			Text:     "侵权必究",
			FontSize: Range{Min: 12, Max: 36, Default: 24},
			Alpha:    Range{Min: 0, Max: 1, Default: 0.5},
		},
		Sticker: StickerConfig{Style: "normal"},
	}
}

// Load reads and validates the file at path. Fields absent from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configError("config.Load", path, err)
	}
	cfg, err := Parse(data, Format(path))
	if err != nil {
		var ee *errors.EditError
		if stderrors.As(err, &ee) {
			ee.Path = path
			return nil, ee
		}
		return nil, configError("config.Load", path, err)
	}
	if cfg.Font != "" && !filepath.IsAbs(cfg.Font) {
		cfg.Font = filepath.Join(filepath.Dir(path), cfg.Font)
	}
	return cfg, nil
}

// LoadOptional is Load, except that a missing file yields Defaults.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		return Defaults(), nil
	}
	cfg, err := Load(path)
	if err != nil && stderrors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	return cfg, err
}

// Format returns "yaml" or "toml" from the file extension, or "" if the
// extension is not recognised.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}

// Parse decodes data in the given format over Defaults and validates the
// result.
func Parse(data []byte, format string) (*Config, error) {
	cfg := Defaults()
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, configError("config.Parse", "", fmt.Errorf("failed to parse yaml: %w", err))
		}
	case "toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, configError("config.Parse", "", fmt.Errorf("failed to parse toml: %w", err))
		}
	default:
		return nil, configError("config.Parse", "", fmt.Errorf("unsupported config format %q", format))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the version, colours and ranges.
func (c *Config) Validate() error {
	if c.Version != "" {
		v := c.Version
		if !strings.HasPrefix(v, "v") {
			v = "v" + v
		}
		if !semver.IsValid(v) {
			return configError("config.Validate", "", fmt.Errorf("version %q is not a semantic version", c.Version))
		}
		if major := semver.Major(v); major != SupportedMajor {
			return configError("config.Validate", "", fmt.Errorf("version %s not supported (want %s.x)", c.Version, SupportedMajor))
		}
	}
	if _, err := c.Colors(); err != nil {
		return err
	}
	if _, err := c.DefaultDrawColor(); err != nil {
		return err
	}
	if err := c.Watermark.FontSize.validate("watermark.font_size"); err != nil {
		return err
	}
	if err := c.Watermark.Alpha.validate("watermark.alpha"); err != nil {
		return err
	}
	if c.Watermark.Alpha.Min < 0 || c.Watermark.Alpha.Max > 1 {
		return configError("config.Validate", "", fmt.Errorf("watermark.alpha must lie within [0, 1]"))
	}
	if c.Watermark.FontSize.Min <= 0 {
		return configError("config.Validate", "", fmt.Errorf("watermark.font_size.min must be positive"))
	}
	if c.Sticker.MaxWidth < 0 {
		return configError("config.Validate", "", fmt.Errorf("sticker.max_width must not be negative"))
	}
	return nil
}

// Colors parses the palette.
func (c *Config) Colors() ([]graphics.Color, error) {
	if len(c.Palette) == 0 {
		return nil, configError("config.Colors", "", stderrors.New("palette must not be empty"))
	}
	colors := make([]graphics.Color, len(c.Palette))
	for i, hex := range c.Palette {
		col, err := graphics.ParseHex(hex)
		if err != nil {
			return nil, configError("config.Colors", "", fmt.Errorf("palette[%d]: %w", i, err))
		}
		colors[i] = col
	}
	return colors, nil
}

// DefaultDrawColor parses DefaultColor, falling back to the first palette
// entry when unset.
func (c *Config) DefaultDrawColor() (graphics.Color, error) {
	if c.DefaultColor == "" {
		colors, err := c.Colors()
		if err != nil {
			return 0, err
		}
		return colors[0], nil
	}
	col, err := graphics.ParseHex(c.DefaultColor)
	if err != nil {
		return 0, configError("config.DefaultDrawColor", "", fmt.Errorf("default_color: %w", err))
	}
	return col, nil
}

func (r Range) validate(name string) error {
	if r.Min >= r.Max {
		return configError("config.Validate", "", fmt.Errorf("%s: min %g must be below max %g", name, r.Min, r.Max))
	}
	if r.Default < r.Min || r.Default > r.Max {
		return configError("config.Validate", "", fmt.Errorf("%s: default %g outside [%g, %g]", name, r.Default, r.Min, r.Max))
	}
	return nil
}

func configError(op, path string, err error) *errors.EditError {
	return &errors.EditError{Op: op, Kind: errors.KindConfig, Path: path, Err: err}
}
