package handheld

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// PaletteEnvVar points at an optional JSON palette for handheld builds.
const PaletteEnvVar = "UYGHURPAD_PALETTE"

var defaultTheme = internal.Theme{
	HighlightColor:       internal.HexToColor(0xFFFFFF),
	AccentColor:          internal.HexToColor(0x9B2257),
	ButtonLabelColor:     internal.HexToColor(0x1E2329),
	TextColor:            internal.HexToColor(0xFFFFFF),
	HighlightedTextColor: internal.HexToColor(0x000000),
	HintColor:            internal.HexToColor(0xFFFFFF),
	BackgroundColor:      internal.HexToColor(0x000000),
	DisabledColor:        internal.HexToColor(0x5A5F66),
	EditorBorderColor:    internal.HexToColor(0x3A3F46),
	EditorFocusColor:     internal.HexToColor(0x9B2257),
	SelectionColor:       internal.RGBToColor(0x9B2257, 90),
	CaretColor:           internal.HexToColor(0x000000),
}

// Palette is the JSON form of a handheld color scheme, one hex string per
// role.
type Palette struct {
	Highlight       string `json:"highlight"`
	Accent          string `json:"accent"`
	ButtonLabel     string `json:"button_label"`
	Text            string `json:"text"`
	HighlightedText string `json:"highlighted_text"`
	Hint            string `json:"hint"`
	Background      string `json:"background"`
}

// Theme is the dark, high-contrast palette for small screens driven by a
// controller. A palette file named by UYGHURPAD_PALETTE overrides it.
func Theme(accent uint32) internal.Theme {
	theme := defaultTheme

	if path := os.Getenv(PaletteEnvVar); path != "" {
		p, err := LoadPalette(path)
		if err != nil {
			internal.GetInternalLogger().Warn("Failed to load palette, using default", "path", path, "error", err)
		} else {
			theme = p.apply(theme)
		}
	}

	if accent != 0 {
		theme.AccentColor = internal.HexToColor(accent)
		theme.EditorFocusColor = theme.AccentColor
	}
	return theme
}

func LoadPalette(filePath string) (*Palette, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading palette file: %w", err)
	}

	var p Palette
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("error parsing JSON from file: %w", err)
	}
	return &p, nil
}

func (p *Palette) apply(theme internal.Theme) internal.Theme {
	set := func(dst *sdl.Color, hex string) {
		if hex != "" {
			*dst = parseHexColor(hex)
		}
	}
	set(&theme.HighlightColor, p.Highlight)
	set(&theme.AccentColor, p.Accent)
	set(&theme.ButtonLabelColor, p.ButtonLabel)
	set(&theme.TextColor, p.Text)
	set(&theme.HighlightedTextColor, p.HighlightedText)
	set(&theme.HintColor, p.Hint)
	set(&theme.BackgroundColor, p.Background)
	theme.EditorFocusColor = theme.AccentColor
	return theme
}

// parseHexColor accepts "0xRRGGBB" or "#RRGGBB"; bad input shows up as red.
func parseHexColor(hexStr string) sdl.Color {
	hexStr = strings.TrimPrefix(strings.TrimPrefix(hexStr, "0x"), "#")

	hex, err := strconv.ParseUint(hexStr, 16, 32)
	if err != nil {
		return sdl.Color{R: 255, G: 0, B: 0, A: 255}
	}

	return internal.HexToColor(uint32(hex))
}
