package uyghurpad

import (
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/constants"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/editor"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/i18n"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/internal"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/raster"
)

type buttonID int

const (
	buttonOrientation buttonID = iota
	buttonCopy
	buttonDownload
	buttonFontDown
	buttonFontSize
	buttonFontUp
	buttonKeyboard
	buttonNavEditor
	buttonNavAbout
	buttonNavDisclaimer
)

type button struct {
	id      buttonID
	label   string
	rect    sdl.Rect
	enabled bool
	active  bool
	// passive buttons are labels drawn as pills; they take no clicks.
	passive bool
}

// toolbar holds the buttons laid out for the current frame.
type toolbar struct {
	buttons []button
}

func (tb *toolbar) hit(x, y int32) (buttonID, bool) {
	for _, b := range tb.buttons {
		if !b.passive && b.enabled && internal.PointInRect(x, y, b.rect) {
			return b.id, true
		}
	}
	return 0, false
}

// toolbarButtons lists the editor actions available in the shell's
// current state.
func toolbarButtons(shell *editor.Shell) []button {
	var out []button
	if !shell.IsMobile() {
		label := i18n.GetString(i18n.ButtonToVertical)
		if shell.Orientation() == raster.Vertical {
			label = i18n.GetString(i18n.ButtonToHorizontal)
		}
		out = append(out, button{id: buttonOrientation, label: label, enabled: true})
	}

	ready := shell.FontReady()
	out = append(out,
		button{id: buttonCopy, label: i18n.GetString(i18n.ButtonCopyImage), enabled: ready},
		button{id: buttonDownload, label: i18n.GetString(i18n.ButtonDownloadImage), enabled: ready},
		button{id: buttonFontDown, label: "A-", enabled: shell.CanDecreaseFontSize()},
		button{id: buttonFontSize, label: i18n.GetStringWithData(i18n.FontSize, map[string]interface{}{"Size": shell.FontSize()}), enabled: true, passive: true},
		button{id: buttonFontUp, label: "A+", enabled: shell.CanIncreaseFontSize()},
	)

	kbLabel := i18n.GetString(i18n.ButtonShowKeyboard)
	if shell.KeyboardOpen() {
		kbLabel = i18n.GetString(i18n.ButtonHideKeyboard)
	}
	out = append(out, button{id: buttonKeyboard, label: kbLabel, enabled: true, active: shell.KeyboardOpen()})
	return out
}

func navButtons(shell *editor.Shell) []button {
	return []button{
		{id: buttonNavEditor, label: i18n.GetString(i18n.NavEditor), enabled: true, active: shell.Page() == editor.PageEditor},
		{id: buttonNavAbout, label: i18n.GetString(i18n.NavAbout), enabled: true, active: shell.Page() == editor.PageAbout},
		{id: buttonNavDisclaimer, label: i18n.GetString(i18n.NavDisclaimer), enabled: true, active: shell.Page() == editor.PageDisclaimer},
	}
}

func measureLabel(font *ttf.Font, label string) int32 {
	w, _, err := font.SizeUTF8(label)
	if err != nil {
		return int32(len(label)) * int32(font.Height()) / 2
	}
	return int32(w)
}

// layoutRow places buttons left to right inside rect. When they do not
// fit, horizontal padding shrinks before anything is clipped.
func layoutRow(font *ttf.Font, buttons []button, rect sdl.Rect, alignRight bool) {
	if len(buttons) == 0 {
		return
	}
	gap := internal.Scaled(8)
	padX := internal.Scaled(16)
	h := internal.Min32(rect.H-internal.Scaled(12), int32(font.Height())+internal.Scaled(14))

	widths := make([]int32, len(buttons))
	var labels int32
	for i, b := range buttons {
		widths[i] = measureLabel(font, b.label)
		labels += widths[i]
	}
	gaps := gap * int32(len(buttons)-1)
	if total := labels + gaps + 2*padX*int32(len(buttons)); total > rect.W {
		padX = internal.Max32((rect.W-labels-gaps)/int32(2*len(buttons)), internal.Scaled(2))
	}

	total := gaps
	for i := range widths {
		widths[i] += 2 * padX
		total += widths[i]
	}

	x := rect.X
	if alignRight {
		x = rect.X + rect.W - total
	}
	y := rect.Y + (rect.H-h)/2
	for i := range buttons {
		buttons[i].rect = sdl.Rect{X: x, Y: y, W: widths[i], H: h}
		x += widths[i] + gap
	}
}

func renderButtons(renderer *sdl.Renderer, font *ttf.Font, buttons []button, labels *internal.TextureCache) {
	theme := internal.GetTheme()
	for _, b := range buttons {
		bg, fg := theme.AccentColor, theme.ButtonLabelColor
		switch {
		case b.passive:
			bg, fg = theme.BackgroundColor, theme.TextColor
		case !b.enabled:
			bg = theme.DisabledColor
		case b.active:
			bg, fg = theme.HighlightColor, theme.HighlightedTextColor
		}
		r := b.rect
		if !b.passive {
			internal.DrawRoundedRect(renderer, &r, r.H/2, bg)
		}
		internal.RenderText(renderer, labels, b.label, font, r, fg, constants.TextAlignCenter)
	}
}

// renderNav draws the title bar: page title on the left, page tabs on the
// right.
func renderNav(renderer *sdl.Renderer, shell *editor.Shell, rect sdl.Rect, tb *toolbar, labels *internal.TextureCache) {
	theme := internal.GetTheme()
	renderer.SetDrawColor(theme.AccentColor.R, theme.AccentColor.G, theme.AccentColor.B, theme.AccentColor.A)
	renderer.FillRect(&rect)

	title := i18n.GetString(i18n.AppTitle)
	if shell.Orientation() == raster.Vertical {
		title = i18n.GetString(i18n.AppTitleVertical)
	}
	margin := internal.Scaled(outerMargin)
	titleRect := sdl.Rect{X: rect.X + margin, Y: rect.Y, W: rect.W / 2, H: rect.H}
	internal.RenderText(renderer, labels, title, internal.Fonts.MediumFont, titleRect, theme.ButtonLabelColor, constants.TextAlignLeft)

	nav := navButtons(shell)
	navRect := sdl.Rect{X: rect.X + rect.W/2, Y: rect.Y, W: rect.W/2 - margin, H: rect.H}
	layoutRow(internal.Fonts.SmallFont, nav, navRect, true)
	for _, b := range nav {
		fg := theme.ButtonLabelColor
		if b.active {
			r := b.rect
			internal.DrawRoundedRect(renderer, &r, r.H/2, theme.HighlightColor)
			fg = theme.HighlightedTextColor
		}
		internal.RenderText(renderer, labels, b.label, internal.Fonts.SmallFont, b.rect, fg, constants.TextAlignCenter)
	}
	tb.buttons = append(tb.buttons, nav...)
}
