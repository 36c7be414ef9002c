package internal

import (
	"fmt"
	"os"

	"github.com/flopp/go-findfont"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
	"golang.org/x/image/font/gofont/goregular"
)

// Interface labels are mostly Chinese, so CJK faces are tried first.
var uiFontCandidates = []string{
	"NotoSansCJK-Regular.ttc",
	"NotoSansSC-Regular.otf",
	"NotoSansSC-Regular.ttf",
	"wqy-microhei.ttc",
	"wqy-zenhei.ttc",
	"msyh.ttc",
	"PingFang.ttc",
	"DejaVuSans.ttf",
}

type FontSizes struct {
	Large  int `json:"large"`
	Medium int `json:"medium"`
	Small  int `json:"small"`
	Tiny   int `json:"tiny"`
}

var DefaultFontSizes = FontSizes{
	Large:  26,
	Medium: 18,
	Small:  15,
	Tiny:   12,
}

var Fonts fontsManager

type fontsManager struct {
	LargeFont  *ttf.Font
	MediumFont *ttf.Font
	SmallFont  *ttf.Font
	TinyFont   *ttf.Font

	// ScriptFont draws Old Uyghur key labels. Nil until the editor
	// typeface has been resolved from a file on disk.
	ScriptFont *ttf.Font

	uiPath string
}

// GetScaleFactor returns the device pixel ratio of the window.
func GetScaleFactor() float32 {
	if window == nil {
		return 1
	}
	return float32(window.PixelRatio())
}

// Scaled converts a size in screen points to device pixels.
func Scaled(points int32) int32 {
	return int32(float32(points)*GetScaleFactor() + 0.5)
}

func initFonts(sizes FontSizes, configuredPath string) error {
	path := resolveUIFontPath(configuredPath)
	Fonts.uiPath = path

	var err error
	load := func(base int) *ttf.Font {
		if err != nil {
			return nil
		}
		var f *ttf.Font
		f, err = loadFont(path, int(float32(base)*GetScaleFactor()))
		return f
	}

	Fonts.LargeFont = load(sizes.Large)
	Fonts.MediumFont = load(sizes.Medium)
	Fonts.SmallFont = load(sizes.Small)
	Fonts.TinyFont = load(sizes.Tiny)
	return err
}

func resolveUIFontPath(configured string) string {
	for _, p := range []string{configured, os.Getenv("FALLBACK_FONT")} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
		GetInternalLogger().Debug("Configured UI font missing", "path", p)
	}

	for _, name := range uiFontCandidates {
		if p, err := findfont.Find(name); err == nil {
			return p
		}
	}

	GetInternalLogger().Warn("No system UI font found, using embedded Go Regular; CJK labels may not render")
	return ""
}

func loadFont(path string, size int) (*ttf.Font, error) {
	if path != "" {
		font, err := ttf.OpenFont(path, size)
		if err == nil {
			return font, nil
		}
		GetInternalLogger().Debug("Failed to load UI font, using embedded font", "path", path, "error", err)
	}
	return loadEmbeddedFont(goregular.TTF, size)
}

func loadEmbeddedFont(bytes []byte, size int) (*ttf.Font, error) {
	rw, err := sdl.RWFromMem(bytes)
	if err != nil {
		return nil, fmt.Errorf("embedded font: %w", err)
	}

	font, err := ttf.OpenFontRW(rw, 1, size)
	if err != nil {
		return nil, fmt.Errorf("embedded font at %d: %w", size, err)
	}
	return font, nil
}

// SetScriptFont opens the editor typeface for key labels. An empty path
// leaves key labels on the UI font.
func SetScriptFont(path string, points int) {
	if Fonts.ScriptFont != nil {
		Fonts.ScriptFont.Close()
		Fonts.ScriptFont = nil
	}
	if path == "" {
		return
	}
	font, err := ttf.OpenFont(path, int(float32(points)*GetScaleFactor()))
	if err != nil {
		GetInternalLogger().Warn("Failed to open script font for keyboard", "path", path, "error", err)
		return
	}
	Fonts.ScriptFont = font
}

func closeFonts() {
	for _, f := range []*ttf.Font{Fonts.LargeFont, Fonts.MediumFont, Fonts.SmallFont, Fonts.TinyFont, Fonts.ScriptFont} {
		if f != nil {
			f.Close()
		}
	}
	Fonts = fontsManager{}
}
