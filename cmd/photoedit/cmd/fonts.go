package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/go-drift/photoedit/pkg/config"
	"github.com/go-drift/photoedit/pkg/errors"
	"github.com/go-drift/photoedit/pkg/graphics"
)

// loadFonts builds the font manager for one run. A --font path wins over the
// config font, which becomes the default family. If no registered family
// covers text, an installed system font is looked up.
func loadFonts(cfg *config.Config, fontPath, text string, logger *log.Logger) (*graphics.FontManager, error) {
	fonts, err := graphics.NewFontManager()
	if err != nil {
		return nil, &errors.EditError{Op: "cmd.loadFonts", Kind: errors.KindInit, Err: err}
	}
	if fontPath == "" {
		fontPath = cfg.Font
	}
	if fontPath != "" {
		family, err := fonts.RegisterFontFile(fontPath)
		if err != nil {
			return nil, err
		}
		if err := fonts.SetDefault(family); err != nil {
			return nil, err
		}
		logger.Debug("registered font", "family", family, "path", fontPath)
	}

	family, err := fonts.RegisterSystemFallback(text)
	if err != nil {
		return nil, &errors.EditError{
			Op:   "cmd.loadFonts",
			Kind: errors.KindFont,
			Path: fontPath,
			Err:  fmt.Errorf("%w; pass --font with a font that has these glyphs", err),
		}
	}
	if family != fonts.Default() {
		logger.Debug("using fallback font", "family", family)
	}
	return fonts, nil
}
