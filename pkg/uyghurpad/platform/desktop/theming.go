package desktop

import (
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/internal"
)

// Theme is the light palette used in a desktop window. accent, a 0xRRGGBB
// value, replaces the default accent when non-zero.
func Theme(accent uint32) internal.Theme {
	theme := internal.Theme{
		HighlightColor:       internal.HexToColor(0x2B6CB0),
		AccentColor:          internal.HexToColor(0x3182CE),
		ButtonLabelColor:     internal.HexToColor(0xFFFFFF),
		TextColor:            internal.HexToColor(0x1A202C),
		HighlightedTextColor: internal.HexToColor(0xFFFFFF),
		HintColor:            internal.HexToColor(0x4A5568),
		BackgroundColor:      internal.HexToColor(0xF7FAFC),
		DisabledColor:        internal.HexToColor(0xA0AEC0),
		EditorBorderColor:    internal.HexToColor(0xCBD5E0),
		EditorFocusColor:     internal.HexToColor(0x3182CE),
		SelectionColor:       internal.RGBToColor(0x90CDF4, 110),
		CaretColor:           internal.HexToColor(0x1A202C),
	}
	if accent != 0 {
		theme.AccentColor = internal.HexToColor(accent)
		theme.EditorFocusColor = theme.AccentColor
	}
	return theme
}
