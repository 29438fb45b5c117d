package graphics

import (
	"fmt"

	"github.com/flopp/go-findfont"
)

// SystemFallbackFonts lists font files searched for in the platform font
// directories when no registered family covers a text. The first file that
// parses and covers the text wins.
var SystemFallbackFonts = []string{
	"NotoSansCJK-Regular.ttc",
	"NotoSansCJKsc-Regular.otf",
	"NotoSansSC-Regular.otf",
	"NotoSansSC-Regular.ttf",
	"SourceHanSansSC-Regular.otf",
	"DroidSansFallbackFull.ttf",
	"DroidSansFallback.ttf",
	"wqy-microhei.ttc",
	"wqy-zenhei.ttc",
	"PingFang.ttc",
	"Hiragino Sans GB.ttc",
	"STHeiti Light.ttc",
	"Arial Unicode.ttf",
	"msyh.ttc",
	"simhei.ttf",
	"simsun.ttc",
}

// RegisterSystemFallback makes sure some family covers text. If none does,
// it registers the first of SystemFallbackFonts found on this machine that
// covers text and returns its family name.
func (m *FontManager) RegisterSystemFallback(text string) (string, error) {
	if family, ok := m.FamilyFor(text); ok {
		return family, nil
	}
	for _, name := range SystemFallbackFonts {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		family, err := m.RegisterFontFile(path)
		if err != nil {
			continue
		}
		if len(m.Missing(family, text)) == 0 {
			return family, nil
		}
	}
	return "", fmt.Errorf("no installed font covers %q", string(m.Missing("", text)))
}
